package pedido

import (
	"net/http"
	"strconv"

	"github.com/gestaovarejo/api-backoffice/internal/auth"
	"github.com/gestaovarejo/api-backoffice/internal/erros"
	"github.com/gestaovarejo/api-backoffice/internal/models"
	"github.com/gestaovarejo/api-backoffice/internal/notificacao"
	"github.com/gestaovarejo/api-backoffice/internal/utils"
	"gorm.io/gorm"
)

type Handler struct {
	DB          *gorm.DB
	Repository  Repository
	Notificador notificacao.Notificador
}

func NewHandler(db *gorm.DB, n notificacao.Notificador) *Handler {
	return &Handler{
		DB:          db,
		Repository:  NewRepository(),
		Notificador: n,
	}
}

// POST /orders
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req PedidoRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if err := req.validar(); err != nil {
		utils.ResponderErro(w, err)
		return
	}

	usuarioID, _ := auth.UsuarioID(r.Context())
	p, err := h.Repository.Criar(h.DB, usuarioID, &req)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	h.alertarEstoqueBaixo(r, p)
	utils.JSON(w, http.StatusCreated, novaResposta(p))
}

// GET /orders?page=&limit=&clientId=&userId=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	f, err := lerFiltro(r)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	pag := utils.LerPaginacao(r)
	lista, total, err := h.Repository.Listar(h.DB, f, pag)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}

	data := make([]PedidoResponse, len(lista))
	for i := range lista {
		data[i] = novaResposta(&lista[i])
	}
	utils.JSON(w, http.StatusOK, utils.Pagina[PedidoResponse]{Data: data, Total: total, Page: pag.Page, Limit: pag.Limit})
}

// GET /orders/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	p, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, novaResposta(p))
}

// DELETE /orders/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	usuarioID, _ := auth.UsuarioID(r.Context())
	p, err := h.Repository.Remover(h.DB, id, usuarioID, auth.IsAdmin(r.Context()))
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, DeleteResponse{
		Message: "Pedido excluído e estoque restaurado",
		Pedido:  novaResposta(p),
	})
}

// alertarEstoqueBaixo avisa quando um produto do pedido chegou ao limite.
// Os produtos já vêm recarregados depois da baixa.
func (h *Handler) alertarEstoqueBaixo(r *http.Request, p *models.Pedido) {
	for _, it := range p.Itens {
		if it.Produto == nil || it.Produto.Quantidade > models.LimiteEstoqueBaixo {
			continue
		}
		h.Notificador.Notificar(r.Context(), notificacao.Evento{
			Tipo: notificacao.EventoEstoqueBaixo,
			Dados: map[string]string{
				"produtoId":  strconv.FormatUint(uint64(it.Produto.ID), 10),
				"codigo":     it.Produto.Codigo,
				"nome":       it.Produto.Nome,
				"quantidade": strconv.Itoa(it.Produto.Quantidade),
			},
		})
	}
}

func lerFiltro(r *http.Request) (Filtro, error) {
	var f Filtro
	q := r.URL.Query()
	for campo, dst := range map[string]*uint{"clientId": &f.ClienteID, "userId": &f.UsuarioID} {
		v := q.Get(campo)
		if v == "" {
			continue
		}
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return f, erros.Validacao("%s inválido", campo)
		}
		*dst = uint(n)
	}
	return f, nil
}
