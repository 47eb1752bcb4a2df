package cliente

import (
	"strings"

	"github.com/gestaovarejo/api-backoffice/internal/erros"
	"github.com/gestaovarejo/api-backoffice/internal/exclusao"
	"github.com/gestaovarejo/api-backoffice/internal/models"
	"github.com/gestaovarejo/api-backoffice/internal/utils"
	"gorm.io/gorm"
)

var politicaExclusao = exclusao.Politica{
	Entidade:          "cliente",
	ContarDependentes: exclusao.ContarPor(&models.Pedido{}, "cliente_id"),
	AntesDeRemover:    exclusao.RemoverEndereco("cliente_id"),
}

type Repository interface {
	Salvar(db *gorm.DB, c *models.Cliente) error
	ListarTodos(db *gorm.DB, f Filtro, pag utils.Paginacao) ([]models.Cliente, int64, error)
	BuscarPorID(db *gorm.DB, id uint) (*models.Cliente, error)
	Atualizar(db *gorm.DB, c *models.Cliente) error
	Remover(db *gorm.DB, id uint) (exclusao.Resultado, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *models.Cliente) error {
	return erros.DoBanco(db.Create(c).Error, "cliente")
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB, f Filtro, pag utils.Paginacao) ([]models.Cliente, int64, error) {
	q := db.Model(&models.Cliente{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Busca != "" {
		like := "%" + strings.ToLower(f.Busca) + "%"
		q = q.Where("LOWER(nome) LIKE ? OR LOWER(email) LIKE ? OR cpf LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, erros.DoBanco(err, "cliente")
	}
	var lista []models.Cliente
	err := q.Preload("Endereco").Order("nome ASC, id ASC").Offset(pag.Offset()).Limit(pag.Limit).Find(&lista).Error
	return lista, total, erros.DoBanco(err, "cliente")
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*models.Cliente, error) {
	var c models.Cliente
	if err := db.Preload("Endereco").First(&c, id).Error; err != nil {
		return nil, erros.DoBanco(err, "cliente")
	}
	return &c, nil
}

// Atualizar grava o cliente e faz upsert do endereço na mesma transação.
func (r *repositoryImpl) Atualizar(db *gorm.DB, c *models.Cliente) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Endereco").Save(c).Error; err != nil {
			return err
		}
		if c.Endereco == nil {
			return nil
		}
		c.Endereco.ClienteID = &c.ID
		return tx.Save(c.Endereco).Error
	})
	return erros.DoBanco(err, "cliente")
}

func (r *repositoryImpl) Remover(db *gorm.DB, id uint) (exclusao.Resultado, error) {
	var res exclusao.Resultado
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		res, err = exclusao.Remover[models.Cliente](tx, id, politicaExclusao)
		return err
	})
	return res, err
}
