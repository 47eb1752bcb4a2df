package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusInativo = 0
	StatusAtivo   = 1
)

// LimiteEstoqueBaixo é a quantidade a partir da qual um produto ativo
// entra no alerta de estoque baixo.
const LimiteEstoqueBaixo = 5

type Produto struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Codigo      string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Nome        string    `gorm:"size:255;not null" json:"name"`
	Tipo        string    `gorm:"size:100;index" json:"type"`
	Modelo      string    `gorm:"size:100" json:"model"`
	Tamanho     string    `gorm:"size:20" json:"size"`
	Cor         string    `gorm:"size:50" json:"color"`
	Material    string    `gorm:"size:100" json:"material"`
	Imagem      string    `gorm:"size:500" json:"image"`
	ValorCompra float64   `gorm:"not null;default:0" json:"purchaseValue"`
	ValorVenda  float64   `gorm:"not null;default:0" json:"saleValue"`
	Margem      float64   `gorm:"not null;default:0" json:"margin"`
	Quantidade  int       `gorm:"not null;default:0" json:"quantity"`
	Status      int       `gorm:"not null;index" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CalcularMargem devolve (venda-compra)/compra em percentual, com duas casas.
// Custo zero resulta em margem zero.
func CalcularMargem(valorCompra, valorVenda float64) float64 {
	compra := decimal.NewFromFloat(valorCompra)
	if compra.IsZero() {
		return 0
	}
	venda := decimal.NewFromFloat(valorVenda)
	return venda.Sub(compra).Div(compra).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
}

// AtualizarMargem mantém Margem coerente com os valores de compra e venda.
func (p *Produto) AtualizarMargem() {
	p.Margem = CalcularMargem(p.ValorCompra, p.ValorVenda)
}

func (p *Produto) Ativo() bool { return p.Status == StatusAtivo }
