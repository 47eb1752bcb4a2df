package usuario

import (
	"net/http"
	"strings"

	"github.com/gestaovarejo/api-backoffice/internal/auth"
	"github.com/gestaovarejo/api-backoffice/internal/erros"
	"github.com/gestaovarejo/api-backoffice/internal/exclusao"
	"github.com/gestaovarejo/api-backoffice/internal/models"
	"github.com/gestaovarejo/api-backoffice/internal/notificacao"
	"github.com/gestaovarejo/api-backoffice/internal/utils"
	"gorm.io/gorm"
)

// Todas as rotas deste handler ficam atrás de auth.RequireAdmin.
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

// POST /users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUsuarioRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if err := req.validar(); err != nil {
		utils.ResponderErro(w, err)
		return
	}

	senha, temporaria := req.Senha, ""
	if senha == "" {
		var err error
		if temporaria, err = utils.GerarSenhaTemporaria(); err != nil {
			utils.ResponderErro(w, erros.Interno("erro ao gerar senha temporária", err))
			return
		}
		senha = temporaria
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}

	u := models.Usuario{
		Nome:               strings.TrimSpace(req.Nome),
		Email:              normalizarEmail(req.Email),
		Senha:              hash,
		Role:               req.Role,
		Status:             models.StatusAtivo,
		CPF:                cpfOuNil(req.CPF),
		Telefone:           strings.TrimSpace(req.Telefone),
		PrecisaTrocarSenha: temporaria != "",
	}
	if req.Endereco != nil {
		u.Endereco = &models.Endereco{}
		req.Endereco.Aplicar(u.Endereco)
	}
	if err := h.Repository.Save(h.DB, &u); err != nil {
		utils.ResponderErro(w, err)
		return
	}

	if temporaria != "" {
		h.Notificador.Notificar(r.Context(), notificacao.Evento{
			Tipo:         notificacao.EventoNovoUsuario,
			Destinatario: u.Email,
			Dados:        map[string]string{"nome": u.Nome, "senhaTemporaria": temporaria},
		})
	}
	utils.JSON(w, http.StatusCreated, CreateUsuarioResponse{Usuario: &u, SenhaTemporaria: temporaria})
}

// GET /users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	status, err := utils.FiltroStatus(r)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	pag := utils.LerPaginacao(r)
	f := Filtro{Status: status, Busca: strings.TrimSpace(r.URL.Query().Get("search"))}
	list, total, err := h.Repository.ListAll(h.DB, f, pag)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, utils.Pagina[models.Usuario]{Data: list, Total: total, Page: pag.Page, Limit: pag.Limit})
}

// GET /users/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	u, err := h.Repository.FindByID(h.DB, id)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, u)
}

// PATCH /users/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	var req UpdateUsuarioRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if err := req.validar(); err != nil {
		utils.ResponderErro(w, err)
		return
	}

	u, err := h.Repository.FindByID(h.DB, id)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if err := h.aplicar(r, u, &req); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if err := h.Repository.Update(h.DB, u); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, u)
}

// DELETE /users/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if atual, _ := auth.UsuarioID(r.Context()); atual == id {
		utils.ResponderErro(w, erros.Validacao("Você não pode excluir o próprio usuário"))
		return
	}
	res, err := h.Repository.Delete(h.DB, id)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	resp := DeleteResponse{UsuarioID: id, Message: "Usuário excluído com sucesso"}
	if res == exclusao.Desativado {
		resp.Desativado = true
		resp.Message = "Usuário possui pedidos registrados e foi desativado"
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *Handler) aplicar(r *http.Request, u *models.Usuario, req *UpdateUsuarioRequest) error {
	atual, _ := auth.UsuarioID(r.Context())
	if u.ID == atual {
		if req.Role != nil && *req.Role != u.Role {
			return erros.Validacao("Você não pode alterar o próprio perfil de acesso")
		}
		if req.Status != nil && *req.Status != models.StatusAtivo {
			return erros.Validacao("Você não pode desativar o próprio usuário")
		}
	}

	if req.Nome != nil {
		u.Nome = strings.TrimSpace(*req.Nome)
	}
	if req.Email != nil {
		u.Email = normalizarEmail(*req.Email)
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.Status != nil {
		u.Status = *req.Status
	}
	if req.CPF != nil {
		u.CPF = cpfOuNil(*req.CPF)
	}
	if req.Telefone != nil {
		u.Telefone = strings.TrimSpace(*req.Telefone)
	}
	if req.Senha != nil {
		hash, err := utils.HashSenha(*req.Senha)
		if err != nil {
			return err
		}
		u.Senha = hash
	}
	if req.PrecisaTrocarSenha != nil {
		u.PrecisaTrocarSenha = *req.PrecisaTrocarSenha
	}
	if req.Endereco != nil {
		if u.Endereco == nil {
			u.Endereco = &models.Endereco{}
		}
		req.Endereco.Aplicar(u.Endereco)
	}
	return nil
}
