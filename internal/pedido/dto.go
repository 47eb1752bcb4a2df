package pedido

import (
	"fmt"
	"math"

	"github.com/gestaovarejo/api-backoffice/internal/models"
	"github.com/gestaovarejo/api-backoffice/internal/utils"
)

// QuantidadeMaxima limita cada item e a soma de itens repetidos do mesmo
// produto.
const QuantidadeMaxima = math.MaxInt32

type ItemRequest struct {
	ProdutoID  uint `json:"productId"`
	Quantidade int  `json:"quantity"`
}

// PedidoRequest é o corpo de POST /orders. Preços enviados pelo cliente são
// ignorados: o valor de venda atual do produto é sempre usado.
type PedidoRequest struct {
	ClienteID   uint          `json:"clientId"`
	Observacoes string        `json:"notes"`
	Desconto    float64       `json:"discount"`
	Itens       []ItemRequest `json:"orderItems"`
}

type PedidoResponse struct {
	models.Pedido
	ValorSubtotal      float64 `json:"subtotal"`
	ValorDesconto      float64 `json:"discountAmount"`
	PercentualDesconto float64 `json:"discountPercentage"`
	ValorTotal         float64 `json:"total"`
}

type DeleteResponse struct {
	Message string         `json:"message"`
	Pedido  PedidoResponse `json:"order"`
}

type Filtro struct {
	ClienteID uint
	UsuarioID uint
}

func novaResposta(p *models.Pedido) PedidoResponse {
	return PedidoResponse{
		Pedido:             *p,
		ValorSubtotal:      p.Subtotal(),
		ValorDesconto:      p.Desconto,
		PercentualDesconto: p.PercentualDesconto(),
		ValorTotal:         p.Total(),
	}
}

func (req *PedidoRequest) validar() error {
	v := utils.Violacoes{}
	if req.ClienteID == 0 {
		v["clientId"] = "obrigatório"
	}
	if len(req.Itens) == 0 {
		v["orderItems"] = "informe ao menos um item"
	}
	soma := make(map[uint]int, len(req.Itens))
	for _, it := range req.Itens {
		if it.ProdutoID == 0 {
			v["orderItems.productId"] = "obrigatório"
		}
		switch {
		case it.Quantidade <= 0:
			v["orderItems.quantity"] = "deve ser maior que zero"
		case it.Quantidade > QuantidadeMaxima-soma[it.ProdutoID]:
			v["orderItems.quantity"] = fmt.Sprintf("máximo de %d por produto", QuantidadeMaxima)
		default:
			soma[it.ProdutoID] += it.Quantidade
		}
	}
	utils.NaoNegativo("discount", req.Desconto, v)
	return v.Erro()
}

// quantidades soma itens repetidos do mesmo produto, preservando a ordem
// da primeira ocorrência. Supõe um pedido já validado.
func (req *PedidoRequest) quantidades() ([]uint, map[uint]int) {
	ordem := make([]uint, 0, len(req.Itens))
	qtd := make(map[uint]int, len(req.Itens))
	for _, it := range req.Itens {
		if _, ok := qtd[it.ProdutoID]; !ok {
			ordem = append(ordem, it.ProdutoID)
		}
		qtd[it.ProdutoID] += it.Quantidade
	}
	return ordem, qtd
}
