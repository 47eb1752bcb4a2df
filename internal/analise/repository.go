package analise

import (
	"github.com/gestaovarejo/api-backoffice/internal/erros"
	"github.com/gestaovarejo/api-backoffice/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ordenações aceitas por TopProdutos.
const (
	PorQuantidade = "quantidade"
	PorReceita    = "receita"
)

// Repository agrega os pedidos no próprio banco. Receita de pedido é a soma
// de preço × quantidade dos itens menos o desconto.
type Repository interface {
	Totais(db *gorm.DB, p Periodo) (Totais, error)
	SerieDiaria(db *gorm.DB, p Periodo) ([]Dia, error)
	TopClientes(db *gorm.DB, p Periodo, limite int) ([]ClienteResumo, error)
	ContarClientes(db *gorm.DB, p Periodo) (novos, compradores, ativos int64, err error)
	TopProdutos(db *gorm.DB, p Periodo, ordem string, limite int) ([]ProdutoResumo, error)
	ReceitaPorTipo(db *gorm.DB, p Periodo) ([]TipoResumo, error)
	EstoqueBaixo(db *gorm.DB) ([]EstoqueBaixo, error)
	Funcionarios(db *gorm.DB, p Periodo) ([]FuncionarioResumo, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// pedidosTotais é a subconsulta com uma linha por pedido do período.
func pedidosTotais(db *gorm.DB, p Periodo) *gorm.DB {
	q := db.Table("pedidos p").
		Select("p.id, p.cliente_id, p.usuario_id, " + expressaoDia(db, "p.data_compra") + " AS dia, p.desconto, " +
			"SUM(i.preco * i.quantidade) AS subtotal, SUM(i.quantidade) AS itens").
		Joins("JOIN itens_pedido i ON i.pedido_id = p.id").
		Group("p.id, p.cliente_id, p.usuario_id, p.data_compra, p.desconto")
	return p.filtrar(q, "p.data_compra")
}

// expressaoDia formata a coluna como AAAA-MM-DD. No sqlite o horário é
// gravado como texto e o prefixo já é a data local.
func expressaoDia(db *gorm.DB, coluna string) string {
	if db.Dialector.Name() == "postgres" {
		return "to_char(" + coluna + ", 'YYYY-MM-DD')"
	}
	return "substr(" + coluna + ", 1, 10)"
}

func (r *repositoryImpl) Totais(db *gorm.DB, p Periodo) (Totais, error) {
	var l struct {
		Pedidos   int64
		Subtotal  float64
		Descontos float64
		Itens     int64
	}
	err := db.Table("(?) AS t", pedidosTotais(db, p)).
		Select("COUNT(*) AS pedidos, COALESCE(SUM(t.subtotal), 0) AS subtotal, " +
			"COALESCE(SUM(t.desconto), 0) AS descontos, COALESCE(SUM(t.itens), 0) AS itens").
		Scan(&l).Error
	if err != nil {
		return Totais{}, erros.DoBanco(err, "pedido")
	}

	bruto := decimal.NewFromFloat(l.Subtotal)
	receita := bruto.Sub(decimal.NewFromFloat(l.Descontos))
	return Totais{
		Revenue:       arredondar(receita),
		GrossRevenue:  arredondar(bruto),
		Discounts:     arredondar(decimal.NewFromFloat(l.Descontos)),
		Orders:        l.Pedidos,
		AverageTicket: media(receita, l.Pedidos),
		ItemsSold:     l.Itens,
	}, nil
}

func (r *repositoryImpl) SerieDiaria(db *gorm.DB, p Periodo) ([]Dia, error) {
	var linhas []struct {
		Dia     string
		Pedidos int64
		Receita float64
	}
	err := db.Table("(?) AS t", pedidosTotais(db, p)).
		Select("t.dia AS dia, COUNT(*) AS pedidos, SUM(t.subtotal - t.desconto) AS receita").
		Group("t.dia").
		Order("t.dia").
		Scan(&linhas).Error
	if err != nil {
		return nil, erros.DoBanco(err, "pedido")
	}

	dias := make([]Dia, len(linhas))
	for i, l := range linhas {
		dias[i] = Dia{Date: l.Dia, Orders: l.Pedidos, Revenue: arredondar(decimal.NewFromFloat(l.Receita))}
	}
	return dias, nil
}

func (r *repositoryImpl) TopClientes(db *gorm.DB, p Periodo, limite int) ([]ClienteResumo, error) {
	var linhas []struct {
		ID      uint
		Nome    string
		Pedidos int64
		Receita float64
	}
	err := db.Table("(?) AS t", pedidosTotais(db, p)).
		Select("c.id AS id, c.nome AS nome, COUNT(*) AS pedidos, SUM(t.subtotal - t.desconto) AS receita").
		Joins("JOIN clientes c ON c.id = t.cliente_id").
		Group("c.id, c.nome").
		Order("receita DESC, c.id").
		Limit(limite).
		Scan(&linhas).Error
	if err != nil {
		return nil, erros.DoBanco(err, "cliente")
	}

	res := make([]ClienteResumo, len(linhas))
	for i, l := range linhas {
		res[i] = ClienteResumo{ClientID: l.ID, Name: l.Nome, Orders: l.Pedidos, Revenue: arredondar(decimal.NewFromFloat(l.Receita))}
	}
	return res, nil
}

// ContarClientes devolve os cadastrados no período, os que compraram no
// período e o total de ativos hoje.
func (r *repositoryImpl) ContarClientes(db *gorm.DB, p Periodo) (novos, compradores, ativos int64, err error) {
	if err = p.filtrar(db.Model(&models.Cliente{}), "created_at").Count(&novos).Error; err != nil {
		return 0, 0, 0, erros.DoBanco(err, "cliente")
	}
	err = p.filtrar(db.Model(&models.Pedido{}), "data_compra").
		Distinct("cliente_id").
		Count(&compradores).Error
	if err != nil {
		return 0, 0, 0, erros.DoBanco(err, "pedido")
	}
	if err = db.Model(&models.Cliente{}).Where("status = ?", models.StatusAtivo).Count(&ativos).Error; err != nil {
		return 0, 0, 0, erros.DoBanco(err, "cliente")
	}
	return novos, compradores, ativos, nil
}

func itensDoPeriodo(db *gorm.DB, p Periodo) *gorm.DB {
	q := db.Table("itens_pedido i").
		Joins("JOIN pedidos p ON p.id = i.pedido_id").
		Joins("JOIN produtos pr ON pr.id = i.produto_id")
	return p.filtrar(q, "p.data_compra")
}

func (r *repositoryImpl) TopProdutos(db *gorm.DB, p Periodo, ordem string, limite int) ([]ProdutoResumo, error) {
	if ordem != PorQuantidade && ordem != PorReceita {
		return nil, erros.Validacao("ordenação inválida: %s", ordem)
	}
	var linhas []struct {
		ID         uint
		Codigo     string
		Nome       string
		Quantidade int64
		Receita    float64
	}
	err := itensDoPeriodo(db, p).
		Select("pr.id AS id, pr.codigo AS codigo, pr.nome AS nome, " +
			"SUM(i.quantidade) AS quantidade, SUM(i.preco * i.quantidade) AS receita").
		Group("pr.id, pr.codigo, pr.nome").
		Order(ordem + " DESC, pr.id").
		Limit(limite).
		Scan(&linhas).Error
	if err != nil {
		return nil, erros.DoBanco(err, "produto")
	}

	res := make([]ProdutoResumo, len(linhas))
	for i, l := range linhas {
		res[i] = ProdutoResumo{
			ProductID: l.ID,
			Code:      l.Codigo,
			Name:      l.Nome,
			Quantity:  l.Quantidade,
			Revenue:   arredondar(decimal.NewFromFloat(l.Receita)),
		}
	}
	return res, nil
}

func (r *repositoryImpl) ReceitaPorTipo(db *gorm.DB, p Periodo) ([]TipoResumo, error) {
	var linhas []struct {
		Tipo       string
		Quantidade int64
		Receita    float64
	}
	err := itensDoPeriodo(db, p).
		Select("pr.tipo AS tipo, SUM(i.quantidade) AS quantidade, SUM(i.preco * i.quantidade) AS receita").
		Group("pr.tipo").
		Order("receita DESC, pr.tipo").
		Scan(&linhas).Error
	if err != nil {
		return nil, erros.DoBanco(err, "produto")
	}

	res := make([]TipoResumo, len(linhas))
	for i, l := range linhas {
		tipo := l.Tipo
		if tipo == "" {
			tipo = "Sem tipo"
		}
		res[i] = TipoResumo{Type: tipo, Quantity: l.Quantidade, Revenue: arredondar(decimal.NewFromFloat(l.Receita))}
	}
	return res, nil
}

// EstoqueBaixo lista os produtos ativos com quantidade até LimiteEstoqueBaixo.
func (r *repositoryImpl) EstoqueBaixo(db *gorm.DB) ([]EstoqueBaixo, error) {
	var produtos []models.Produto
	err := db.Select("id", "codigo", "nome", "quantidade").
		Where("status = ? AND quantidade <= ?", models.StatusAtivo, models.LimiteEstoqueBaixo).
		Order("quantidade, id").
		Find(&produtos).Error
	if err != nil {
		return nil, erros.DoBanco(err, "produto")
	}

	res := make([]EstoqueBaixo, len(produtos))
	for i, p := range produtos {
		res[i] = EstoqueBaixo{ProductID: p.ID, Code: p.Codigo, Name: p.Nome, Quantity: p.Quantidade}
	}
	return res, nil
}

// Funcionarios agrega por usuário que registrou o pedido, maior receita primeiro.
func (r *repositoryImpl) Funcionarios(db *gorm.DB, p Periodo) ([]FuncionarioResumo, error) {
	var linhas []struct {
		ID      uint
		Nome    string
		Pedidos int64
		Receita float64
	}
	err := db.Table("(?) AS t", pedidosTotais(db, p)).
		Select("u.id AS id, u.nome AS nome, COUNT(*) AS pedidos, SUM(t.subtotal - t.desconto) AS receita").
		Joins("JOIN usuarios u ON u.id = t.usuario_id").
		Group("u.id, u.nome").
		Order("receita DESC, u.id").
		Scan(&linhas).Error
	if err != nil {
		return nil, erros.DoBanco(err, "usuário")
	}

	res := make([]FuncionarioResumo, len(linhas))
	for i, l := range linhas {
		receita := decimal.NewFromFloat(l.Receita)
		res[i] = FuncionarioResumo{
			UserID:        l.ID,
			Name:          l.Nome,
			Orders:        l.Pedidos,
			Revenue:       arredondar(receita),
			AverageTicket: media(receita, l.Pedidos),
		}
	}
	return res, nil
}
