package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Pedido struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	ClienteID   uint         `gorm:"not null;index" json:"clientId"`
	Cliente     *Cliente     `gorm:"foreignKey:ClienteID" json:"client,omitempty"`
	UsuarioID   uint         `gorm:"not null;index" json:"userId"`
	Usuario     *Usuario     `gorm:"foreignKey:UsuarioID" json:"user,omitempty"`
	DataCompra  time.Time    `gorm:"not null;index" json:"purchaseDate"`
	Observacoes string       `gorm:"type:text" json:"notes"`
	Desconto    float64      `gorm:"not null;default:0" json:"discount"`
	Itens       []ItemPedido `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE" json:"orderItems"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// ItemPedido guarda o preço do produto no momento da compra.
type ItemPedido struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	PedidoID   uint     `gorm:"not null;index" json:"orderId"`
	ProdutoID  uint     `gorm:"not null;index" json:"productId"`
	Produto    *Produto `gorm:"foreignKey:ProdutoID" json:"product,omitempty"`
	Quantidade int      `gorm:"not null" json:"quantity"`
	Preco      float64  `gorm:"not null" json:"price"`
}

func (ItemPedido) TableName() string { return "itens_pedido" }

func (i ItemPedido) total() decimal.Decimal {
	return decimal.NewFromFloat(i.Preco).Mul(decimal.NewFromInt(int64(i.Quantidade)))
}

// Subtotal é a soma de preço × quantidade dos itens.
func (p *Pedido) Subtotal() float64 {
	return p.subtotal().Round(2).InexactFloat64()
}

// Total é o subtotal menos o desconto absoluto.
func (p *Pedido) Total() float64 {
	return p.subtotal().Sub(decimal.NewFromFloat(p.Desconto)).Round(2).InexactFloat64()
}

// PercentualDesconto é o desconto relativo ao subtotal, só para exibição.
func (p *Pedido) PercentualDesconto() float64 {
	sub := p.subtotal()
	if sub.IsZero() {
		return 0
	}
	return decimal.NewFromFloat(p.Desconto).Div(sub).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
}

func (p *Pedido) subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range p.Itens {
		total = total.Add(it.total())
	}
	return total
}
