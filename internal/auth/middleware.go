package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gestaovarejo/api-backoffice/internal/erros"
	"github.com/gestaovarejo/api-backoffice/internal/models"
	"github.com/gestaovarejo/api-backoffice/internal/utils"
	"gorm.io/gorm"
)

type ctxKey string

const (
	CtxUserID ctxKey = "usuarioID"
	CtxRole   ctxKey = "role"
)

// Middleware exige um token de sessão válido, lido do cookie ou do
// cabeçalho Authorization: Bearer.
func Middleware(j *JWT) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			raw := tokenDaRequisicao(r)
			if raw == "" {
				utils.ResponderErro(w, erros.Autenticacao("Token ausente"))
				return
			}
			claims, err := j.ValidarToken(raw)
			if err != nil {
				utils.ResponderErro(w, erros.Autenticacao("Token inválido ou expirado"))
				return
			}
			ctx := ComUsuario(r.Context(), claims.UserID, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UsuarioAtivo roda depois de Middleware e confere o usuário do token no
// banco. Conta desativada ou excluída perde o acesso mesmo com token válido,
// e o perfil passa a vir do cadastro atual.
func UsuarioAtivo(db *gorm.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := UsuarioID(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			var u models.Usuario
			err := db.WithContext(r.Context()).Select("id", "role", "status").First(&u, id).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound), err == nil && u.Status != models.StatusAtivo:
				utils.ResponderErro(w, erros.Autenticacao("Usuário inativo ou removido"))
				return
			case err != nil:
				utils.ResponderErro(w, erros.DoBanco(err, "usuário"))
				return
			}
			next.ServeHTTP(w, r.WithContext(ComUsuario(r.Context(), u.ID, u.Role)))
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			utils.ResponderErro(w, erros.Autorizacao("Acesso restrito a administradores"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func tokenDaRequisicao(r *http.Request) string {
	if c, err := r.Cookie(CookieSessao); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

func ComUsuario(ctx context.Context, userID uint, role string) context.Context {
	ctx = context.WithValue(ctx, CtxUserID, userID)
	return context.WithValue(ctx, CtxRole, role)
}

func UsuarioID(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(CtxUserID).(uint)
	return id, ok && id != 0
}

func IsAdmin(ctx context.Context) bool {
	role, _ := ctx.Value(CtxRole).(string)
	return role == models.RoleAdministrador
}
