package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gestaovarejo/api-backoffice/internal/models"
	"github.com/gestaovarejo/api-backoffice/internal/notificacao"
	"github.com/gestaovarejo/api-backoffice/internal/testutil"
	"github.com/gestaovarejo/api-backoffice/internal/utils"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const segredo = "segredo-de-teste"

func montar(t *testing.T) (*gorm.DB, *JWT, *testutil.Notificacoes, *mux.Router) {
	t.Helper()
	db := testutil.NovoDB(t)
	j := NovoJWT(segredo)
	n := &testutil.Notificacoes{}
	h := NewHandler(db, j, n, false)

	r := mux.NewRouter()
	r.HandleFunc("/authenticate", h.Autenticar).Methods(http.MethodPost)
	r.HandleFunc("/forgetPassword", h.EsqueciSenha).Methods(http.MethodPost)
	r.HandleFunc("/resetPassword", h.RedefinirSenha).Methods(http.MethodPost)

	priv := r.NewRoute().Subrouter()
	priv.Use(Middleware(j), UsuarioAtivo(db))
	priv.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)
	priv.HandleFunc("/me", h.Me).Methods(http.MethodGet)
	priv.HandleFunc("/me/password", h.AlterarSenha).Methods(http.MethodPatch)
	priv.Handle("/admin", RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))).Methods(http.MethodGet)
	return db, j, n, r
}

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGerarEValidarToken(t *testing.T) {
	j := NovoJWT(segredo)
	raw, err := j.GerarToken(7, models.RoleAdministrador)
	require.NoError(t, err)

	c, err := j.ValidarToken(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(7), c.UserID)
	assert.Equal(t, models.RoleAdministrador, c.Role)
	assert.Equal(t, "7", c.Subject)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), c.ExpiresAt.Time, time.Minute)

	_, err = NovoJWT("outro").ValidarToken(raw)
	assert.Error(t, err)
}

func TestTokenExpirado(t *testing.T) {
	j := NovoJWT(segredo)
	j.agora = func() time.Time { return time.Now().Add(-7 * time.Hour) }
	raw, err := j.GerarToken(1, models.RoleUsuarioPadrao)
	require.NoError(t, err)

	_, err = NovoJWT(segredo).ValidarToken(raw)
	assert.Error(t, err)
}

func TestAutenticar(t *testing.T) {
	db, j, _, r := montar(t)
	u := testutil.NovoUsuario(t, db, "ana@loja.com", models.RoleAdministrador)

	rec := postJSON(t, r, "/authenticate", LoginRequest{Email: "ana@loja.com", Password: "errada!!"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(t, r, "/authenticate", LoginRequest{Email: "ANA@loja.com", Password: testutil.SenhaPadrao})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, u.ID, resp.User.ID)
	assert.NotContains(t, rec.Body.String(), u.Senha)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieSessao, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	c, err := j.ValidarToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, c.UserID)
}

func TestAutenticarUsuarioInativo(t *testing.T) {
	db, _, _, r := montar(t)
	u := testutil.NovoUsuario(t, db, "inativo@loja.com", models.RoleUsuarioPadrao)
	require.NoError(t, db.Model(u).Update("status", models.StatusInativo).Error)

	rec := postJSON(t, r, "/authenticate", LoginRequest{Email: u.Email, Password: testutil.SenhaPadrao})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAutenticarExigeTrocaDeSenha(t *testing.T) {
	db, _, _, r := montar(t)
	u := testutil.NovoUsuario(t, db, "novo@loja.com", models.RoleUsuarioPadrao)
	require.NoError(t, db.Model(u).Update("precisa_trocar_senha", true).Error)

	rec := postJSON(t, r, "/authenticate", LoginRequest{Email: u.Email, Password: testutil.SenhaPadrao})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies())

	var resp TrocaObrigatoriaResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.MustChangePassword)
	require.NotEmpty(t, resp.ResetToken)

	rec = postJSON(t, r, "/resetPassword", RedefinirSenhaRequest{Token: resp.ResetToken, Password: "nova-senha-1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var atual models.Usuario
	require.NoError(t, db.First(&atual, u.ID).Error)
	assert.False(t, atual.PrecisaTrocarSenha)
	assert.True(t, utils.VerificarSenha(atual.Senha, "nova-senha-1"))

	rec = postJSON(t, r, "/resetPassword", RedefinirSenhaRequest{Token: resp.ResetToken, Password: "outra-senha-2"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEsqueciSenha(t *testing.T) {
	db, _, n, r := montar(t)
	testutil.NovoUsuario(t, db, "bia@loja.com", models.RoleUsuarioPadrao)

	rec := postJSON(t, r, "/forgetPassword", EsqueciSenhaRequest{Email: "ninguem@loja.com"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, n.Eventos())

	rec = postJSON(t, r, "/forgetPassword", EsqueciSenhaRequest{Email: "bia@loja.com"})
	assert.Equal(t, http.StatusOK, rec.Code)
	e, ok := n.Ultimo(notificacao.EventoRedefinicaoSenha)
	require.True(t, ok)
	assert.Equal(t, "bia@loja.com", e.Destinatario)
	assert.NotEmpty(t, e.Dados["token"])

	rec = postJSON(t, r, "/resetPassword", RedefinirSenhaRequest{Token: e.Dados["token"], Password: "curta"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRedefinirSenhaTokenExpirado(t *testing.T) {
	db, _, _, r := montar(t)
	u := testutil.NovoUsuario(t, db, "exp@loja.com", models.RoleUsuarioPadrao)
	raw, err := criarTokenRedefinicao(db, u.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.TokenRedefinicao{}).Where("usuario_id = ?", u.ID).
		Update("expira_em", time.Now().Add(-time.Minute)).Error)

	rec := postJSON(t, r, "/resetPassword", RedefinirSenhaRequest{Token: raw, Password: "nova-senha-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, r, "/resetPassword", RedefinirSenhaRequest{Token: "inexistente", Password: "nova-senha-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMiddleware(t *testing.T) {
	db, j, _, r := montar(t)
	admin := testutil.NovoUsuario(t, db, "adm@loja.com", models.RoleAdministrador)
	funcionario := testutil.NovoUsuario(t, db, "func@loja.com", models.RoleUsuarioPadrao)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Token ausente"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer lixo")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tokFunc, _ := j.GerarToken(funcionario.ID, funcionario.Role)
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: CookieSessao, Value: tokFunc})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "func@loja.com")

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tokFunc)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	tokAdmin, _ := j.GerarToken(admin.ID, admin.Role)
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tokAdmin)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUsuarioAtivo(t *testing.T) {
	db, j, _, r := montar(t)
	admin := testutil.NovoUsuario(t, db, "adm@loja.com", models.RoleAdministrador)
	tok, _ := j.GerarToken(admin.ID, admin.Role)

	get := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}
	require.Equal(t, http.StatusNoContent, get("/admin"))

	// rebaixado: o token ainda diz Administrador, o cadastro não
	require.NoError(t, db.Model(admin).Update("role", models.RoleUsuarioPadrao).Error)
	assert.Equal(t, http.StatusForbidden, get("/admin"))
	assert.Equal(t, http.StatusOK, get("/me"))

	require.NoError(t, db.Model(admin).Update("status", models.StatusInativo).Error)
	assert.Equal(t, http.StatusUnauthorized, get("/me"))

	require.NoError(t, db.Delete(&models.Usuario{}, admin.ID).Error)
	assert.Equal(t, http.StatusUnauthorized, get("/me"))
}

func TestAlterarSenha(t *testing.T) {
	db, j, _, r := montar(t)
	u := testutil.NovoUsuario(t, db, "troca@loja.com", models.RoleUsuarioPadrao)
	tok, _ := j.GerarToken(u.ID, u.Role)

	patch := func(body AlterarSenhaRequest) int {
		b, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPatch, "/me/password", bytes.NewReader(b))
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusBadRequest, patch(AlterarSenhaRequest{CurrentPassword: "errada", NewPassword: "nova-senha-1"}))
	longa := strings.Repeat("x", utils.TamanhoMaximoSenha+1)
	assert.Equal(t, http.StatusBadRequest, patch(AlterarSenhaRequest{CurrentPassword: testutil.SenhaPadrao, NewPassword: longa}))
	assert.Equal(t, http.StatusOK, patch(AlterarSenhaRequest{CurrentPassword: testutil.SenhaPadrao, NewPassword: "nova-senha-1"}))

	var atual models.Usuario
	require.NoError(t, db.First(&atual, u.ID).Error)
	assert.True(t, utils.VerificarSenha(atual.Senha, "nova-senha-1"))
}

func TestLogoutLimpaCookie(t *testing.T) {
	db, j, _, r := montar(t)
	u := testutil.NovoUsuario(t, db, "sai@loja.com", models.RoleUsuarioPadrao)
	tok, _ := j.GerarToken(u.ID, u.Role)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: CookieSessao, Value: tok})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
