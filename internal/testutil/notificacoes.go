package testutil

import (
	"context"
	"sync"

	"github.com/gestaovarejo/api-backoffice/internal/notificacao"
)

// Notificacoes guarda os eventos em memória para inspeção nos testes.
type Notificacoes struct {
	mu      sync.Mutex
	eventos []notificacao.Evento
}

func (n *Notificacoes) Notificar(_ context.Context, e notificacao.Evento) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.eventos = append(n.eventos, e)
}

func (n *Notificacoes) Eventos() []notificacao.Evento {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notificacao.Evento(nil), n.eventos...)
}

// Ultimo devolve o evento mais recente do tipo informado.
func (n *Notificacoes) Ultimo(tipo string) (notificacao.Evento, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := len(n.eventos) - 1; i >= 0; i-- {
		if n.eventos[i].Tipo == tipo {
			return n.eventos[i], true
		}
	}
	return notificacao.Evento{}, false
}
