package pedido

import (
	"time"

	"github.com/gestaovarejo/api-backoffice/internal/erros"
	"github.com/gestaovarejo/api-backoffice/internal/models"
	"github.com/gestaovarejo/api-backoffice/internal/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	Criar(db *gorm.DB, usuarioID uint, req *PedidoRequest) (*models.Pedido, error)
	Listar(db *gorm.DB, f Filtro, pag utils.Paginacao) ([]models.Pedido, int64, error)
	BuscarPorID(db *gorm.DB, id uint) (*models.Pedido, error)
	Remover(db *gorm.DB, id, usuarioID uint, admin bool) (*models.Pedido, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func completo(db *gorm.DB) *gorm.DB {
	return db.Preload("Cliente").Preload("Usuario").Preload("Itens.Produto")
}

// Criar valida cliente, usuário, produtos, estoque e desconto e grava o
// pedido, os itens e a baixa de estoque numa única transação.
func (r *repositoryImpl) Criar(db *gorm.DB, usuarioID uint, req *PedidoRequest) (*models.Pedido, error) {
	var pedido models.Pedido
	err := db.Transaction(func(tx *gorm.DB) error {
		var cliente models.Cliente
		if err := tx.First(&cliente, req.ClienteID).Error; err != nil {
			return erros.DoBanco(err, "cliente")
		}
		if cliente.Status != models.StatusAtivo {
			return erros.Validacao("Cliente %s está inativo", cliente.Nome)
		}
		var usuario models.Usuario
		if err := tx.First(&usuario, usuarioID).Error; err != nil {
			return erros.DoBanco(err, "usuário")
		}
		if usuario.Status != models.StatusAtivo {
			return erros.Autorizacao("Usuário inativo não pode registrar pedidos")
		}

		ordem, qtd := req.quantidades()
		var produtos []models.Produto
		if err := tx.Where("id IN ?", ordem).Find(&produtos).Error; err != nil {
			return erros.DoBanco(err, "produto")
		}
		porID := make(map[uint]models.Produto, len(produtos))
		for _, p := range produtos {
			porID[p.ID] = p
		}

		subtotal := decimal.Zero
		itens := make([]models.ItemPedido, 0, len(ordem))
		for _, id := range ordem {
			p, ok := porID[id]
			if !ok {
				return erros.NaoEncontrado("Produto %d não encontrado", id)
			}
			if !p.Ativo() {
				return erros.Validacao("Produto %s está inativo", p.Nome)
			}
			if qtd[id] <= 0 || qtd[id] > QuantidadeMaxima {
				return erros.Validacao("Quantidade inválida para o produto %s", p.Nome)
			}
			if qtd[id] > p.Quantidade {
				return erros.EstoqueInsuficiente(p.Nome, p.Quantidade)
			}
			itens = append(itens, models.ItemPedido{ProdutoID: id, Quantidade: qtd[id], Preco: p.ValorVenda})
			subtotal = subtotal.Add(decimal.NewFromFloat(p.ValorVenda).Mul(decimal.NewFromInt(int64(qtd[id]))))
		}

		desconto := decimal.NewFromFloat(req.Desconto)
		if desconto.GreaterThan(subtotal) {
			return erros.DescontoInvalido(req.Desconto, subtotal.Round(2).InexactFloat64())
		}

		pedido = models.Pedido{
			ClienteID:   cliente.ID,
			UsuarioID:   usuario.ID,
			DataCompra:  time.Now(),
			Observacoes: req.Observacoes,
			Desconto:    desconto.Round(2).InexactFloat64(),
		}
		if err := tx.Omit("Itens").Create(&pedido).Error; err != nil {
			return err
		}
		for i := range itens {
			itens[i].PedidoID = pedido.ID
		}
		if err := tx.Create(&itens).Error; err != nil {
			return err
		}

		for _, it := range itens {
			if err := baixarEstoque(tx, porID[it.ProdutoID], it.Quantidade); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, erros.DoBanco(err, "pedido")
	}
	return r.BuscarPorID(db, pedido.ID)
}

// baixarEstoque decrementa só se ainda houver saldo; sem linha afetada
// outro pedido levou o estoque entre a leitura e a escrita.
func baixarEstoque(tx *gorm.DB, p models.Produto, quantidade int) error {
	res := tx.Model(&models.Produto{}).
		Where("id = ? AND quantidade >= ?", p.ID, quantidade).
		Update("quantidade", gorm.Expr("quantidade - ?", quantidade))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var atual models.Produto
		if err := tx.Select("quantidade").First(&atual, p.ID).Error; err != nil {
			return err
		}
		return erros.EstoqueInsuficiente(p.Nome, atual.Quantidade)
	}
	return nil
}

func (r *repositoryImpl) Listar(db *gorm.DB, f Filtro, pag utils.Paginacao) ([]models.Pedido, int64, error) {
	q := db.Model(&models.Pedido{})
	if f.ClienteID != 0 {
		q = q.Where("cliente_id = ?", f.ClienteID)
	}
	if f.UsuarioID != 0 {
		q = q.Where("usuario_id = ?", f.UsuarioID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, erros.DoBanco(err, "pedido")
	}
	var lista []models.Pedido
	err := completo(q).Order("data_compra DESC, id DESC").Offset(pag.Offset()).Limit(pag.Limit).Find(&lista).Error
	return lista, total, erros.DoBanco(err, "pedido")
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*models.Pedido, error) {
	var p models.Pedido
	if err := completo(db).First(&p, id).Error; err != nil {
		return nil, erros.DoBanco(err, "pedido")
	}
	return &p, nil
}

// Remover devolve ao estoque as quantidades de cada item e apaga o pedido.
// Só o administrador ou quem registrou o pedido pode removê-lo.
func (r *repositoryImpl) Remover(db *gorm.DB, id, usuarioID uint, admin bool) (*models.Pedido, error) {
	var pedido models.Pedido
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := completo(tx).First(&pedido, id).Error; err != nil {
			return err
		}
		if !admin && pedido.UsuarioID != usuarioID {
			return erros.Autorizacao("Apenas o administrador ou quem registrou o pedido pode excluí-lo")
		}
		for _, it := range pedido.Itens {
			err := tx.Model(&models.Produto{}).Where("id = ?", it.ProdutoID).
				Update("quantidade", gorm.Expr("quantidade + ?", it.Quantidade)).Error
			if err != nil {
				return err
			}
		}
		if err := tx.Where("pedido_id = ?", pedido.ID).Delete(&models.ItemPedido{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Pedido{}, pedido.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, erros.DoBanco(err, "pedido")
	}
	return &pedido, nil
}
