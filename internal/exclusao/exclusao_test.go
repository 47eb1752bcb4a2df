package exclusao_test

import (
	"testing"
	"time"

	"github.com/gestaovarejo/api-backoffice/internal/erros"
	"github.com/gestaovarejo/api-backoffice/internal/exclusao"
	"github.com/gestaovarejo/api-backoffice/internal/models"
	"github.com/gestaovarejo/api-backoffice/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var politicaCliente = exclusao.Politica{
	Entidade:          "cliente",
	ContarDependentes: exclusao.ContarPor(&models.Pedido{}, "cliente_id"),
	AntesDeRemover:    exclusao.RemoverEndereco("cliente_id"),
}

func TestRemoverSemDependentesApaga(t *testing.T) {
	db := testutil.NovoDB(t)
	c := testutil.NovoCliente(t, db, "a@x.com")
	require.NoError(t, db.Create(&models.Endereco{ClienteID: &c.ID, Cidade: "Recife"}).Error)

	res, err := exclusao.Remover[models.Cliente](db, c.ID, politicaCliente)
	require.NoError(t, err)
	assert.Equal(t, exclusao.Removido, res)

	var n int64
	db.Model(&models.Cliente{}).Where("id = ?", c.ID).Count(&n)
	assert.Zero(t, n)
	db.Model(&models.Endereco{}).Where("cliente_id = ?", c.ID).Count(&n)
	assert.Zero(t, n)
}

func TestRemoverComDependentesDesativa(t *testing.T) {
	db := testutil.NovoDB(t)
	c := testutil.NovoCliente(t, db, "b@x.com")
	u := testutil.NovoUsuario(t, db, "vend@x.com", models.RoleUsuarioPadrao)
	p := testutil.NovoProduto(t, db, "CAM0001", 50, 10)
	testutil.NovoPedido(t, db, c, u, time.Now(), 0, models.ItemPedido{ProdutoID: p.ID, Quantidade: 1, Preco: 50})

	res, err := exclusao.Remover[models.Cliente](db, c.ID, politicaCliente)
	require.NoError(t, err)
	assert.Equal(t, exclusao.Desativado, res)

	var atual models.Cliente
	require.NoError(t, db.First(&atual, c.ID).Error)
	assert.Equal(t, models.StatusInativo, atual.Status)
}

func TestRemoverInexistente(t *testing.T) {
	db := testutil.NovoDB(t)
	_, err := exclusao.Remover[models.Produto](db, 99, exclusao.Politica{
		Entidade:          "produto",
		ContarDependentes: exclusao.ContarPor(&models.ItemPedido{}, "produto_id"),
	})
	assert.True(t, erros.E(err, erros.TipoNaoEncontrado))
}
