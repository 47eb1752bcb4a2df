package db

import (
	"github.com/gestaovarejo/api-backoffice/internal/models"
	"gorm.io/gorm"
)

// Migrate cria ou ajusta as tabelas de todos os modelos.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Usuario{},
		&models.Cliente{},
		&models.Endereco{},
		&models.Produto{},
		&models.Pedido{},
		&models.ItemPedido{},
		&models.TokenRedefinicao{},
	)
}
