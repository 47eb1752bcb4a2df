package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcularMargem(t *testing.T) {
	tests := []struct {
		name          string
		compra, venda float64
		want          float64
	}{
		{"lucro de 50%", 100, 150, 50},
		{"prejuizo", 100, 80, -20},
		{"custo zero", 0, 50, 0},
		{"dizima", 30, 50, 66.67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalcularMargem(tt.compra, tt.venda))
		})
	}
}

func TestProdutoAtualizarMargem(t *testing.T) {
	p := &Produto{ValorCompra: 40, ValorVenda: 50, Margem: 999}
	p.AtualizarMargem()
	assert.Equal(t, 25.0, p.Margem)
}

func TestPedidoTotais(t *testing.T) {
	p := &Pedido{
		Desconto: 20,
		Itens: []ItemPedido{
			{Quantidade: 3, Preco: 50},
		},
	}
	assert.Equal(t, 150.0, p.Subtotal())
	assert.Equal(t, 130.0, p.Total())
	assert.Equal(t, 13.33, p.PercentualDesconto())

	p = &Pedido{
		Itens: []ItemPedido{
			{Quantidade: 3, Preco: 0.1},
			{Quantidade: 1, Preco: 0.2},
		},
	}
	assert.Equal(t, 0.5, p.Subtotal())
	assert.Equal(t, 0.0, (&Pedido{}).PercentualDesconto())
}

func TestClienteBeforeCreate(t *testing.T) {
	c := &Cliente{}
	assert.NoError(t, c.BeforeCreate(nil))
	assert.Len(t, c.UUID, 36)

	c = &Cliente{UUID: "fixo"}
	assert.NoError(t, c.BeforeCreate(nil))
	assert.Equal(t, "fixo", c.UUID)
}

func TestRoleValida(t *testing.T) {
	assert.True(t, RoleValida(RoleAdministrador))
	assert.True(t, RoleValida(RoleUsuarioPadrao))
	assert.False(t, RoleValida("root"))
	assert.True(t, (&Usuario{Role: RoleAdministrador}).IsAdmin())
}
