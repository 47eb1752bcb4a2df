package utils

import (
	"net/http"

	"github.com/gestaovarejo/api-backoffice/internal/erros"
	"github.com/gestaovarejo/api-backoffice/internal/models"
)

// FiltroStatus interpreta ?status=active|inactive|all. Sem parâmetro lista
// só os ativos; "all" devolve nil (sem filtro).
func FiltroStatus(r *http.Request) (*int, error) {
	var s int
	switch r.URL.Query().Get("status") {
	case "", "active":
		s = models.StatusAtivo
	case "inactive":
		s = models.StatusInativo
	case "all":
		return nil, nil
	default:
		return nil, erros.Validacao("status deve ser active, inactive ou all")
	}
	return &s, nil
}
