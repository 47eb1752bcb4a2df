package analise

import (
	"net/http"
	"time"

	"github.com/gestaovarejo/api-backoffice/internal/utils"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	// Agora permite fixar o relógio nos testes.
	Agora func() time.Time
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Agora:      time.Now,
	}
}

func (h *Handler) periodo(w http.ResponseWriter, r *http.Request) (Periodo, bool) {
	p, err := LerPeriodo(r, h.Agora())
	if err != nil {
		utils.ResponderErro(w, err)
		return Periodo{}, false
	}
	return p, true
}

// GET /analytics/sales
func (h *Handler) Vendas(w http.ResponseWriter, r *http.Request) {
	p, ok := h.periodo(w, r)
	if !ok {
		return
	}
	db := h.DB.WithContext(r.Context())

	totais, err := h.Repository.Totais(db, p)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	dias, err := h.Repository.SerieDiaria(db, p)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, VendasResponse{Period: p.resposta(), Totals: totais, Daily: dias})
}

// GET /analytics/clients
func (h *Handler) Clientes(w http.ResponseWriter, r *http.Request) {
	p, ok := h.periodo(w, r)
	if !ok {
		return
	}
	db := h.DB.WithContext(r.Context())

	top, err := h.Repository.TopClientes(db, p, lerLimite(r))
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	novos, compradores, ativos, err := h.Repository.ContarClientes(db, p)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, ClientesResponse{
		Period:        p.resposta(),
		TopClients:    top,
		NewClients:    novos,
		BuyingClients: compradores,
		ActiveClients: ativos,
	})
}

// GET /analytics/products
func (h *Handler) Produtos(w http.ResponseWriter, r *http.Request) {
	p, ok := h.periodo(w, r)
	if !ok {
		return
	}
	db := h.DB.WithContext(r.Context())
	limite := lerLimite(r)

	var res ProdutosResponse
	var err error
	res.Period = p.resposta()
	if res.TopByQuantity, err = h.Repository.TopProdutos(db, p, PorQuantidade, limite); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if res.TopByRevenue, err = h.Repository.TopProdutos(db, p, PorReceita, limite); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if res.ByType, err = h.Repository.ReceitaPorTipo(db, p); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if res.LowStock, err = h.Repository.EstoqueBaixo(db); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, res)
}

// GET /analytics/employees
func (h *Handler) Funcionarios(w http.ResponseWriter, r *http.Request) {
	p, ok := h.periodo(w, r)
	if !ok {
		return
	}
	lista, err := h.Repository.Funcionarios(h.DB.WithContext(r.Context()), p)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, FuncionariosResponse{Period: p.resposta(), Employees: lista})
}

// GET /analytics/insights
//
// As consultas são independentes e só leem, então rodam em paralelo; a
// primeira falha cancela as demais.
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	p, ok := h.periodo(w, r)
	if !ok {
		return
	}

	g, ctx := errgroup.WithContext(r.Context())
	db := h.DB.WithContext(ctx)

	var (
		atual, anterior Totais
		produtos        []ProdutoResumo
		clientes        []ClienteResumo
		funcionarios    []FuncionarioResumo
	)
	g.Go(func() (err error) {
		atual, err = h.Repository.Totais(db, p)
		return err
	})
	ant, temAnterior := p.Anterior()
	if temAnterior {
		g.Go(func() (err error) {
			anterior, err = h.Repository.Totais(db, ant)
			return err
		})
	}
	g.Go(func() (err error) {
		produtos, err = h.Repository.TopProdutos(db, p, PorReceita, 1)
		return err
	})
	g.Go(func() (err error) {
		clientes, err = h.Repository.TopClientes(db, p, 1)
		return err
	})
	g.Go(func() (err error) {
		funcionarios, err = h.Repository.Funcionarios(db, p)
		return err
	})
	if err := g.Wait(); err != nil {
		utils.ResponderErro(w, err)
		return
	}

	res := InsightsResponse{
		Period:  p.resposta(),
		Current: Comparativo{Revenue: atual.Revenue, Orders: atual.Orders},
	}
	if temAnterior {
		res.Previous = &Comparativo{Revenue: anterior.Revenue, Orders: anterior.Orders}
		res.RevenueGrowth = crescimento(atual.Revenue, anterior.Revenue)
	}
	if len(produtos) > 0 {
		res.BestProduct = &produtos[0]
	}
	if len(clientes) > 0 {
		res.BestClient = &clientes[0]
	}
	if len(funcionarios) > 0 {
		res.BestEmployee = &funcionarios[0]
	}
	utils.JSON(w, http.StatusOK, res)
}
