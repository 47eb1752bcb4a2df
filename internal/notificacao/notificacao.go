package notificacao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

const (
	EventoRedefinicaoSenha = "redefinicao_senha"
	EventoNovoUsuario      = "novo_usuario"
	EventoEstoqueBaixo     = "estoque_baixo"
)

type Evento struct {
	Tipo         string            `json:"tipo"`
	Destinatario string            `json:"destinatario,omitempty"`
	Dados        map[string]string `json:"dados,omitempty"`
	CriadoEm     time.Time         `json:"criadoEm"`
}

// Notificador entrega eventos para fora da API. Falhas de entrega são
// registradas em log e nunca interrompem a requisição que as originou.
type Notificador interface {
	Notificar(ctx context.Context, e Evento)
}

// Novo escolhe o webhook quando há URL configurada, senão só registra em log.
func Novo(url string) Notificador {
	if url == "" {
		return Log{}
	}
	return &Webhook{URL: url, Client: &http.Client{Timeout: 5 * time.Second}}
}

type Webhook struct {
	URL    string
	Client *http.Client
}

func (wh *Webhook) Notificar(ctx context.Context, e Evento) {
	if err := wh.enviar(ctx, e); err != nil {
		log.Printf("Erro ao enviar webhook (%s): %v", e.Tipo, err)
	}
}

func (wh *Webhook) enviar(ctx context.Context, e Evento) error {
	if e.CriadoEm.IsZero() {
		e.CriadoEm = time.Now()
	}
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wh.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := wh.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

// Log é usado quando nenhum webhook foi configurado.
type Log struct{}

func (Log) Notificar(_ context.Context, e Evento) {
	log.Printf("notificação %s para %q (sem webhook configurado)", e.Tipo, e.Destinatario)
}
