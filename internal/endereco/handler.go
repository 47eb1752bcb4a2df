package endereco

import (
	"net/http"

	"github.com/gestaovarejo/api-backoffice/internal/utils"
	"github.com/gorilla/mux"
)

type Handler struct {
	ViaCEP *ViaCEP
}

func NewHandler(v *ViaCEP) *Handler {
	return &Handler{ViaCEP: v}
}

// GET /cep/{cep}
func (h *Handler) BuscarCEP(w http.ResponseWriter, r *http.Request) {
	consulta, err := h.ViaCEP.Buscar(r.Context(), mux.Vars(r)["cep"])
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, consulta)
}
