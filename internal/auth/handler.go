package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gestaovarejo/api-backoffice/internal/erros"
	"github.com/gestaovarejo/api-backoffice/internal/models"
	"github.com/gestaovarejo/api-backoffice/internal/notificacao"
	"github.com/gestaovarejo/api-backoffice/internal/utils"
	"gorm.io/gorm"
)

type Handler struct {
	DB           *gorm.DB
	JWT          *JWT
	Notificador  notificacao.Notificador
	CookieSecure bool
}

func NewHandler(db *gorm.DB, j *JWT, n notificacao.Notificador, cookieSecure bool) *Handler {
	return &Handler{DB: db, JWT: j, Notificador: n, CookieSecure: cookieSecure}
}

// POST /authenticate
func (h *Handler) Autenticar(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, err)
		return
	}

	var user models.Usuario
	err := h.DB.Where("email = ? AND status = ?", normalizarEmail(req.Email), models.StatusAtivo).First(&user).Error
	if err != nil || !utils.VerificarSenha(user.Senha, req.Password) {
		utils.ResponderErro(w, erros.Autenticacao("Email ou senha inválidos"))
		return
	}

	if user.PrecisaTrocarSenha {
		raw, err := criarTokenRedefinicao(h.DB, user.ID)
		if err != nil {
			utils.ResponderErro(w, erros.Interno("erro ao gerar token de redefinição", err))
			return
		}
		utils.JSON(w, http.StatusOK, TrocaObrigatoriaResponse{
			MustChangePassword: true,
			ResetToken:         raw,
			Message:            "É necessário definir uma nova senha",
		})
		return
	}

	token, err := h.JWT.GerarToken(user.ID, user.Role)
	if err != nil {
		utils.ResponderErro(w, erros.Interno("erro ao gerar token", err))
		return
	}
	setCookieSessao(w, token, time.Now().Add(TokenTTL), h.CookieSecure)
	utils.JSON(w, http.StatusOK, LoginResponse{Token: token, User: &user})
}

// POST /logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	limparCookieSessao(w, h.CookieSecure)
	utils.Mensagem(w, http.StatusOK, "Logout realizado")
}

// GET /me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, _ := UsuarioID(r.Context())
	var user models.Usuario
	if err := h.DB.Preload("Endereco").First(&user, id).Error; err != nil {
		utils.ResponderErro(w, erros.DoBanco(err, "usuário"))
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// POST /forgetPassword
// Responde sempre 200 para não revelar quais emails existem.
func (h *Handler) EsqueciSenha(w http.ResponseWriter, r *http.Request) {
	var req EsqueciSenhaRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, err)
		return
	}

	var user models.Usuario
	err := h.DB.Where("email = ? AND status = ?", normalizarEmail(req.Email), models.StatusAtivo).First(&user).Error
	if err == nil {
		raw, err := criarTokenRedefinicao(h.DB, user.ID)
		if err != nil {
			utils.ResponderErro(w, erros.Interno("erro ao gerar token de redefinição", err))
			return
		}
		h.Notificador.Notificar(r.Context(), notificacao.Evento{
			Tipo:         notificacao.EventoRedefinicaoSenha,
			Destinatario: user.Email,
			Dados:        map[string]string{"nome": user.Nome, "token": raw},
		})
	}
	utils.Mensagem(w, http.StatusOK, "Se o email estiver cadastrado, enviaremos as instruções de redefinição")
}

// POST /resetPassword
func (h *Handler) RedefinirSenha(w http.ResponseWriter, r *http.Request) {
	var req RedefinirSenhaRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if err := utils.ValidarSenha(req.Password); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	hash, err := utils.HashSenha(req.Password)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		userID, err := consumirTokenRedefinicao(tx, req.Token)
		if err != nil {
			return err
		}
		return tx.Model(&models.Usuario{}).Where("id = ?", userID).Updates(map[string]any{
			"senha":                hash,
			"precisa_trocar_senha": false,
		}).Error
	})
	if err != nil {
		utils.ResponderErro(w, erros.DoBanco(err, "usuário"))
		return
	}
	utils.Mensagem(w, http.StatusOK, "Senha redefinida com sucesso")
}

// PATCH /me/password
func (h *Handler) AlterarSenha(w http.ResponseWriter, r *http.Request) {
	var req AlterarSenhaRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if err := utils.ValidarSenha(req.NewPassword); err != nil {
		utils.ResponderErro(w, err)
		return
	}

	id, _ := UsuarioID(r.Context())
	var user models.Usuario
	if err := h.DB.First(&user, id).Error; err != nil {
		utils.ResponderErro(w, erros.DoBanco(err, "usuário"))
		return
	}
	if !utils.VerificarSenha(user.Senha, req.CurrentPassword) {
		utils.ResponderErro(w, erros.Validacao("Senha atual incorreta"))
		return
	}
	hash, err := utils.HashSenha(req.NewPassword)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	err = h.DB.Model(&user).Updates(map[string]any{"senha": hash, "precisa_trocar_senha": false}).Error
	if err != nil {
		utils.ResponderErro(w, erros.DoBanco(err, "usuário"))
		return
	}
	utils.Mensagem(w, http.StatusOK, "Senha alterada com sucesso")
}

func normalizarEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
