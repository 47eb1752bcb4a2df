package produto

import (
	"errors"
	"strings"

	"github.com/gestaovarejo/api-backoffice/internal/erros"
	"github.com/gestaovarejo/api-backoffice/internal/exclusao"
	"github.com/gestaovarejo/api-backoffice/internal/models"
	"github.com/gestaovarejo/api-backoffice/internal/utils"
	"gorm.io/gorm"
)

// tentativasCodigo cobre criações simultâneas que calcularam o mesmo código.
const tentativasCodigo = 3

var politicaExclusao = exclusao.Politica{
	Entidade:          "produto",
	ContarDependentes: exclusao.ContarPor(&models.ItemPedido{}, "produto_id"),
}

type Repository interface {
	List(db *gorm.DB, f Filtro, pag utils.Paginacao) ([]models.Produto, int64, error)
	FindByID(db *gorm.DB, id uint) (*models.Produto, error)
	Create(db *gorm.DB, p *models.Produto) error
	Update(db *gorm.DB, p *models.Produto, colunas []string) (*models.Produto, error)
	AdicionarEstoque(db *gorm.DB, id uint, quantidade int) (*models.Produto, error)
	Delete(db *gorm.DB, id uint) (exclusao.Resultado, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) List(db *gorm.DB, f Filtro, pag utils.Paginacao) ([]models.Produto, int64, error) {
	q := db.Model(&models.Produto{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Busca != "" {
		like := "%" + strings.ToLower(f.Busca) + "%"
		q = q.Where("LOWER(nome) LIKE ? OR LOWER(codigo) LIKE ? OR LOWER(tipo) LIKE ? OR LOWER(modelo) LIKE ?", like, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, erros.DoBanco(err, "produto")
	}
	var ps []models.Produto
	err := q.Order("nome ASC, id ASC").Offset(pag.Offset()).Limit(pag.Limit).Find(&ps).Error
	return ps, total, erros.DoBanco(err, "produto")
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Produto, error) {
	var p models.Produto
	if err := db.First(&p, id).Error; err != nil {
		return nil, erros.DoBanco(err, "produto")
	}
	return &p, nil
}

// Create gera o código do produto e insere. Se outro cadastro levar o mesmo
// código antes, recalcula e tenta de novo.
func (r *repositoryImpl) Create(db *gorm.DB, p *models.Produto) error {
	prefixo := PrefixoCodigo(p.Modelo, p.Nome)
	p.AtualizarMargem()
	var err error
	for i := 0; i < tentativasCodigo; i++ {
		var existentes []string
		if err = db.Model(&models.Produto{}).Where("codigo LIKE ?", prefixo+"%").Pluck("codigo", &existentes).Error; err != nil {
			return erros.DoBanco(err, "produto")
		}
		p.Codigo = CodigoSeguinte(prefixo, existentes)
		err = db.Create(p).Error
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		p.ID = 0
	}
	return erros.DoBanco(err, "produto")
}

// Update grava só as colunas informadas e devolve o registro atual.
// Colunas fora da lista, como quantidade num PATCH que não a envia, ficam
// com o que estiver no banco.
func (r *repositoryImpl) Update(db *gorm.DB, p *models.Produto, colunas []string) (*models.Produto, error) {
	if len(colunas) > 0 {
		p.AtualizarMargem()
		res := db.Model(p).Select(append(colunas, "updated_at")).Updates(p)
		if res.Error != nil {
			return nil, erros.DoBanco(res.Error, "produto")
		}
		if res.RowsAffected == 0 {
			return nil, erros.NaoEncontrado("produto não encontrado")
		}
	}
	return r.FindByID(db, p.ID)
}

func (r *repositoryImpl) AdicionarEstoque(db *gorm.DB, id uint, quantidade int) (*models.Produto, error) {
	if quantidade < 0 {
		return nil, erros.Validacao("quantityToAdd não pode ser negativo")
	}
	res := db.Model(&models.Produto{}).Where("id = ?", id).
		Update("quantidade", gorm.Expr("quantidade + ?", quantidade))
	if res.Error != nil {
		return nil, erros.DoBanco(res.Error, "produto")
	}
	if res.RowsAffected == 0 {
		return nil, erros.NaoEncontrado("produto não encontrado")
	}
	return r.FindByID(db, id)
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) (exclusao.Resultado, error) {
	var res exclusao.Resultado
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		res, err = exclusao.Remover[models.Produto](tx, id, politicaExclusao)
		return err
	})
	return res, err
}
