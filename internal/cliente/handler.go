package cliente

import (
	"net/http"
	"strings"

	"github.com/gestaovarejo/api-backoffice/internal/exclusao"
	"github.com/gestaovarejo/api-backoffice/internal/models"
	"github.com/gestaovarejo/api-backoffice/internal/utils"
	"gorm.io/gorm"
)

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// CriarCliente cadastra um cliente com endereço opcional.
func (h *Handler) CriarCliente(w http.ResponseWriter, r *http.Request) {
	var req ClienteRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	nascimento, err := req.validar()
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}

	c := models.Cliente{Status: models.StatusAtivo}
	req.aplicar(&c, nascimento)
	if err := h.Repository.Salvar(h.DB, &c); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, c)
}

// ListarClientes aceita ?status=active|inactive|all&search=&page=&limit=
func (h *Handler) ListarClientes(w http.ResponseWriter, r *http.Request) {
	status, err := utils.FiltroStatus(r)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	pag := utils.LerPaginacao(r)
	f := Filtro{Status: status, Busca: strings.TrimSpace(r.URL.Query().Get("search"))}
	lista, total, err := h.Repository.ListarTodos(h.DB, f, pag)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, utils.Pagina[models.Cliente]{Data: lista, Total: total, Page: pag.Page, Limit: pag.Limit})
}

func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	c, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, c)
}

// AtualizarCliente substitui os dados do cliente (PUT).
func (h *Handler) AtualizarCliente(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	var req ClienteRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	nascimento, err := req.validar()
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}

	c, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	req.aplicar(c, nascimento)
	if err := h.Repository.Atualizar(h.DB, c); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, c)
}

// DeletarCliente desativa clientes com pedidos e apaga os demais.
func (h *Handler) DeletarCliente(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	res, err := h.Repository.Remover(h.DB, id)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	resp := DeleteResponse{ClienteID: id, Message: "Cliente excluído com sucesso"}
	if res == exclusao.Desativado {
		resp.Desativado = true
		resp.Message = "Cliente possui pedidos e foi desativado"
	}
	utils.JSON(w, http.StatusOK, resp)
}
