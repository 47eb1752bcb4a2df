package usuario

import (
	"strings"

	"github.com/gestaovarejo/api-backoffice/internal/erros"
	"github.com/gestaovarejo/api-backoffice/internal/exclusao"
	"github.com/gestaovarejo/api-backoffice/internal/models"
	"github.com/gestaovarejo/api-backoffice/internal/utils"
	"gorm.io/gorm"
)

var politicaExclusao = exclusao.Politica{
	Entidade:          "usuário",
	ContarDependentes: exclusao.ContarPor(&models.Pedido{}, "usuario_id"),
	AntesDeRemover: func(tx *gorm.DB, id uint) error {
		if err := tx.Where("usuario_id = ?", id).Delete(&models.TokenRedefinicao{}).Error; err != nil {
			return err
		}
		return exclusao.RemoverEndereco("usuario_id")(tx, id)
	},
}

type Repository interface {
	FindByEmail(db *gorm.DB, email string) (*models.Usuario, error)
	Save(db *gorm.DB, u *models.Usuario) error
	ListAll(db *gorm.DB, f Filtro, pag utils.Paginacao) ([]models.Usuario, int64, error)
	FindByID(db *gorm.DB, id uint) (*models.Usuario, error)
	Update(db *gorm.DB, u *models.Usuario) error
	Delete(db *gorm.DB, id uint) (exclusao.Resultado, error)
	ExisteAdmin(db *gorm.DB) (bool, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.Usuario, error) {
	var u models.Usuario
	if err := db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, erros.DoBanco(err, "usuário")
	}
	return &u, nil
}

func (r *repositoryImpl) Save(db *gorm.DB, u *models.Usuario) error {
	return erros.DoBanco(db.Create(u).Error, "usuário")
}

func (r *repositoryImpl) ListAll(db *gorm.DB, f Filtro, pag utils.Paginacao) ([]models.Usuario, int64, error) {
	q := db.Model(&models.Usuario{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Busca != "" {
		like := "%" + strings.ToLower(f.Busca) + "%"
		q = q.Where("LOWER(nome) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, erros.DoBanco(err, "usuário")
	}
	var list []models.Usuario
	err := q.Preload("Endereco").Order("nome ASC, id ASC").Offset(pag.Offset()).Limit(pag.Limit).Find(&list).Error
	return list, total, erros.DoBanco(err, "usuário")
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Usuario, error) {
	var u models.Usuario
	if err := db.Preload("Endereco").First(&u, id).Error; err != nil {
		return nil, erros.DoBanco(err, "usuário")
	}
	return &u, nil
}

// Update grava o usuário e faz upsert do endereço na mesma transação.
func (r *repositoryImpl) Update(db *gorm.DB, u *models.Usuario) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Endereco").Save(u).Error; err != nil {
			return err
		}
		if u.Endereco == nil {
			return nil
		}
		u.Endereco.UsuarioID = &u.ID
		return tx.Save(u.Endereco).Error
	})
	return erros.DoBanco(err, "usuário")
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) (exclusao.Resultado, error) {
	var res exclusao.Resultado
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		res, err = exclusao.Remover[models.Usuario](tx, id, politicaExclusao)
		return err
	})
	return res, err
}

func (r *repositoryImpl) ExisteAdmin(db *gorm.DB) (bool, error) {
	var n int64
	err := db.Model(&models.Usuario{}).
		Where("role = ? AND status = ?", models.RoleAdministrador, models.StatusAtivo).
		Count(&n).Error
	return n > 0, err
}
