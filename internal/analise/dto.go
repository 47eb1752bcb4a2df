package analise

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	limiteRankingPadrao = 5
	limiteRankingMaximo = 50
)

type PeriodoResponse struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	All       bool   `json:"all,omitempty"`
}

type Totais struct {
	Revenue       float64 `json:"revenue"`
	GrossRevenue  float64 `json:"grossRevenue"`
	Discounts     float64 `json:"discounts"`
	Orders        int64   `json:"orders"`
	AverageTicket float64 `json:"averageTicket"`
	ItemsSold     int64   `json:"itemsSold"`
}

type Dia struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

type VendasResponse struct {
	Period PeriodoResponse `json:"period"`
	Totals Totais          `json:"totals"`
	Daily  []Dia           `json:"daily"`
}

type ClienteResumo struct {
	ClientID uint    `json:"clientId"`
	Name     string  `json:"name"`
	Orders   int64   `json:"orders"`
	Revenue  float64 `json:"revenue"`
}

type ClientesResponse struct {
	Period        PeriodoResponse `json:"period"`
	TopClients    []ClienteResumo `json:"topClients"`
	NewClients    int64           `json:"newClients"`
	BuyingClients int64           `json:"buyingClients"`
	ActiveClients int64           `json:"activeClients"`
}

// ProdutoResumo soma os itens vendidos pelo preço registrado no pedido,
// sem ratear o desconto do pedido.
type ProdutoResumo struct {
	ProductID uint    `json:"productId"`
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Quantity  int64   `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

type TipoResumo struct {
	Type     string  `json:"type"`
	Quantity int64   `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type EstoqueBaixo struct {
	ProductID uint   `json:"productId"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

type ProdutosResponse struct {
	Period        PeriodoResponse `json:"period"`
	TopByQuantity []ProdutoResumo `json:"topByQuantity"`
	TopByRevenue  []ProdutoResumo `json:"topByRevenue"`
	ByType        []TipoResumo    `json:"byType"`
	LowStock      []EstoqueBaixo  `json:"lowStock"`
}

type FuncionarioResumo struct {
	UserID        uint    `json:"userId"`
	Name          string  `json:"name"`
	Orders        int64   `json:"orders"`
	Revenue       float64 `json:"revenue"`
	AverageTicket float64 `json:"averageTicket"`
}

type FuncionariosResponse struct {
	Period    PeriodoResponse     `json:"period"`
	Employees []FuncionarioResumo `json:"employees"`
}

type Comparativo struct {
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

// InsightsResponse compara o período com o anterior de mesma duração.
// Previous e RevenueGrowth ficam nulos em period=all ou sem receita anterior.
type InsightsResponse struct {
	Period        PeriodoResponse    `json:"period"`
	Current       Comparativo        `json:"current"`
	Previous      *Comparativo       `json:"previous"`
	RevenueGrowth *float64           `json:"revenueGrowth"`
	BestProduct   *ProdutoResumo     `json:"bestProduct"`
	BestClient    *ClienteResumo     `json:"bestClient"`
	BestEmployee  *FuncionarioResumo `json:"bestEmployee"`
}

func lerLimite(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n < 1 {
		return limiteRankingPadrao
	}
	if n > limiteRankingMaximo {
		return limiteRankingMaximo
	}
	return n
}

func arredondar(v decimal.Decimal) float64 {
	return v.Round(2).InexactFloat64()
}

func media(total decimal.Decimal, n int64) float64 {
	if n == 0 {
		return 0
	}
	return arredondar(total.Div(decimal.NewFromInt(n)))
}

// crescimento devolve a variação percentual de anterior para atual, ou nil
// quando não há base de comparação.
func crescimento(atual, anterior float64) *float64 {
	base := decimal.NewFromFloat(anterior)
	if base.IsZero() {
		return nil
	}
	v := arredondar(decimal.NewFromFloat(atual).Sub(base).Div(base).Mul(decimal.NewFromInt(100)))
	return &v
}
