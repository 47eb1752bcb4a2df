package cliente

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gestaovarejo/api-backoffice/internal/auth"
	"github.com/gestaovarejo/api-backoffice/internal/endereco"
	"github.com/gestaovarejo/api-backoffice/internal/models"
	"github.com/gestaovarejo/api-backoffice/internal/testutil"
	"github.com/gestaovarejo/api-backoffice/internal/utils"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func montar(t *testing.T) (*gorm.DB, *mux.Router, string) {
	t.Helper()
	db := testutil.NovoDB(t)
	j := auth.NovoJWT("segredo")
	h := NewHandler(db)

	r := mux.NewRouter()
	r.Use(auth.Middleware(j))
	r.HandleFunc("/clients", h.ListarClientes).Methods(http.MethodGet)
	r.HandleFunc("/clients", h.CriarCliente).Methods(http.MethodPost)
	r.HandleFunc("/clients/{id}", h.BuscarPorID).Methods(http.MethodGet)
	r.HandleFunc("/clients/{id}", h.AtualizarCliente).Methods(http.MethodPut)
	r.HandleFunc("/clients/{id}", h.DeletarCliente).Methods(http.MethodDelete)

	u := testutil.NovoUsuario(t, db, "vend@loja.com", models.RoleUsuarioPadrao)
	tok, err := j.GerarToken(u.ID, u.Role)
	require.NoError(t, err)
	return db, r, tok
}

func clienteValido() ClienteRequest {
	return ClienteRequest{
		Nome:           "Maria Souza",
		Email:          "Maria@Email.com",
		CPF:            "529.982.247-25",
		Telefone:       "(81) 99999-0000",
		DataNascimento: "1990-05-20",
		Genero:         "F",
		Endereco: &endereco.Request{
			CEP:    "50030-230",
			Estado: "pe",
			Cidade: "Recife",
			Rua:    "Rua da Aurora",
			Numero: "100",
		},
	}
}

func TestCriarCliente(t *testing.T) {
	db, r, tok := montar(t)

	rec := testutil.Requisicao(t, r, http.MethodPost, "/clients", clienteValido(), tok)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var c models.Cliente
	testutil.Decodificar(t, rec, &c)
	assert.Len(t, c.UUID, 36)
	assert.Equal(t, "maria@email.com", c.Email)
	assert.Equal(t, "52998224725", c.CPF)
	require.NotNil(t, c.Endereco)
	assert.Equal(t, "PE", c.Endereco.Estado)

	var end models.Endereco
	require.NoError(t, db.Where("cliente_id = ?", c.ID).First(&end).Error)
	assert.Equal(t, "Recife", end.Cidade)
}

func TestCriarClienteInativo(t *testing.T) {
	db, r, tok := montar(t)
	req := clienteValido()
	inativo := models.StatusInativo
	req.Status = &inativo

	rec := testutil.Requisicao(t, r, http.MethodPost, "/clients", req, tok)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c models.Cliente
	testutil.Decodificar(t, rec, &c)

	var salvo models.Cliente
	require.NoError(t, db.First(&salvo, c.ID).Error)
	assert.Equal(t, models.StatusInativo, salvo.Status)
}

func TestCriarClienteValidacao(t *testing.T) {
	_, r, tok := montar(t)

	req := clienteValido()
	req.CPF = "111.111.111-11"
	rec := testutil.Requisicao(t, r, http.MethodPost, "/clients", req, tok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cpf")

	req = clienteValido()
	req.Email = "sem-arroba"
	rec = testutil.Requisicao(t, r, http.MethodPost, "/clients", req, tok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = clienteValido()
	req.DataNascimento = "20/05/1990"
	rec = testutil.Requisicao(t, r, http.MethodPost, "/clients", req, tok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCriarClienteDuplicado(t *testing.T) {
	_, r, tok := montar(t)
	require.Equal(t, http.StatusCreated, testutil.Requisicao(t, r, http.MethodPost, "/clients", clienteValido(), tok).Code)

	req := clienteValido()
	req.CPF = "111.444.777-35"
	rec := testutil.Requisicao(t, r, http.MethodPost, "/clients", req, tok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "já cadastrado")
}

func TestAtualizarCliente(t *testing.T) {
	db, r, tok := montar(t)
	rec := testutil.Requisicao(t, r, http.MethodPost, "/clients", clienteValido(), tok)
	var c models.Cliente
	testutil.Decodificar(t, rec, &c)

	req := clienteValido()
	req.Nome = "Maria S. Lima"
	req.Endereco.Cidade = "Olinda"
	rec = testutil.Requisicao(t, r, http.MethodPut, fmt.Sprintf("/clients/%d", c.ID), req, tok)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var atual models.Cliente
	require.NoError(t, db.Preload("Endereco").First(&atual, c.ID).Error)
	assert.Equal(t, "Maria S. Lima", atual.Nome)
	assert.Equal(t, c.UUID, atual.UUID)
	require.NotNil(t, atual.Endereco)
	assert.Equal(t, "Olinda", atual.Endereco.Cidade)

	var n int64
	db.Model(&models.Endereco{}).Where("cliente_id = ?", c.ID).Count(&n)
	assert.Equal(t, int64(1), n)

	rec = testutil.Requisicao(t, r, http.MethodPut, "/clients/999", clienteValido(), tok)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAtualizarClienteSemEnderecoCriaNovo(t *testing.T) {
	db, r, tok := montar(t)
	c := testutil.NovoCliente(t, db, "sem@end.com")

	req := clienteValido()
	req.Email = c.Email
	rec := testutil.Requisicao(t, r, http.MethodPut, fmt.Sprintf("/clients/%d", c.ID), req, tok)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var end models.Endereco
	require.NoError(t, db.Where("cliente_id = ?", c.ID).First(&end).Error)
	assert.Equal(t, "50030-230", end.CEP)
}

func TestDeletarCliente(t *testing.T) {
	db, r, tok := montar(t)
	semPedido := testutil.NovoCliente(t, db, "a@x.com")
	comPedido := testutil.NovoCliente(t, db, "b@x.com")
	var u models.Usuario
	require.NoError(t, db.First(&u).Error)
	p := testutil.NovoProduto(t, db, "CAM0001", 10, 5)
	testutil.NovoPedido(t, db, comPedido, &u, time.Now(), 0, models.ItemPedido{ProdutoID: p.ID, Quantidade: 1, Preco: 10})

	rec := testutil.Requisicao(t, r, http.MethodDelete, fmt.Sprintf("/clients/%d", semPedido.ID), nil, tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusNotFound, testutil.Requisicao(t, r, http.MethodGet, fmt.Sprintf("/clients/%d", semPedido.ID), nil, tok).Code)

	rec = testutil.Requisicao(t, r, http.MethodDelete, fmt.Sprintf("/clients/%d", comPedido.ID), nil, tok)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp DeleteResponse
	testutil.Decodificar(t, rec, &resp)
	assert.True(t, resp.Desativado)

	var pagina utils.Pagina[models.Cliente]
	testutil.Decodificar(t, testutil.Requisicao(t, r, http.MethodGet, "/clients", nil, tok), &pagina)
	assert.Zero(t, pagina.Total)
	testutil.Decodificar(t, testutil.Requisicao(t, r, http.MethodGet, "/clients?status=all", nil, tok), &pagina)
	assert.Equal(t, int64(1), pagina.Total)
}

func TestListarClientesBusca(t *testing.T) {
	db, r, tok := montar(t)
	testutil.NovoCliente(t, db, "joana@x.com")
	testutil.NovoCliente(t, db, "pedro@x.com")

	var pagina utils.Pagina[models.Cliente]
	testutil.Decodificar(t, testutil.Requisicao(t, r, http.MethodGet, "/clients?search=JOANA", nil, tok), &pagina)
	require.Len(t, pagina.Data, 1)
	assert.Equal(t, "joana@x.com", pagina.Data[0].Email)
}
