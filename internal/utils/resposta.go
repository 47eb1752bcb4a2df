package utils

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gestaovarejo/api-backoffice/internal/erros"
	"github.com/gorilla/mux"
)

type respostaErro struct {
	Error     string `json:"error"`
	Available *int   `json:"available,omitempty"`
}

// JSON escreve payload com o status informado.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("erro ao serializar resposta: %v", err)
	}
}

// Mensagem responde {"message": msg}.
func Mensagem(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// ResponderErro traduz err para o corpo {"error": ...} e o status adequado.
// Erros internos são logados e a causa não é exposta.
func ResponderErro(w http.ResponseWriter, err error) {
	status := erros.Status(err)
	body := respostaErro{Error: err.Error()}

	var e *erros.Erro
	if errors.As(err, &e) {
		body.Error = e.Mensagem
		body.Available = e.Disponivel
	}
	if status == http.StatusInternalServerError {
		log.Printf("erro interno: %v", err)
		if e == nil {
			body.Error = "erro interno"
		}
	}
	JSON(w, status, body)
}

// DecodificarJSON lê o corpo da requisição em dst.
func DecodificarJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return erros.Validacao("JSON mal formado")
	}
	return nil
}

// IDDaRota lê a variável {name} da rota como uint positivo.
func IDDaRota(r *http.Request, name string) (uint, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		return 0, erros.Validacao("ID inválido")
	}
	return uint(id), nil
}

// Paginacao lida de ?page=&limit=.
type Paginacao struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (p Paginacao) Offset() int { return (p.Page - 1) * p.Limit }

// LerPaginacao aplica page>=1 e 1<=limit<=100 (padrão 20).
func LerPaginacao(r *http.Request) Paginacao {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return Paginacao{Page: page, Limit: limit}
}

// Pagina é o envelope das listagens paginadas.
type Pagina[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}
