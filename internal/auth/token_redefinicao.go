package auth

import (
	"time"

	"github.com/gestaovarejo/api-backoffice/internal/erros"
	"github.com/gestaovarejo/api-backoffice/internal/models"
	"github.com/gestaovarejo/api-backoffice/internal/utils"
	"gorm.io/gorm"
)

const RedefinicaoTTL = time.Hour

// criarTokenRedefinicao grava o hash e devolve o token em claro,
// que só existe na resposta ou na notificação.
func criarTokenRedefinicao(db *gorm.DB, usuarioID uint) (string, error) {
	raw, err := utils.GerarTokenAleatorio()
	if err != nil {
		return "", err
	}
	t := models.TokenRedefinicao{
		UsuarioID: usuarioID,
		Hash:      utils.HashToken(raw),
		ExpiraEm:  time.Now().Add(RedefinicaoTTL),
	}
	if err := db.Create(&t).Error; err != nil {
		return "", err
	}
	return raw, nil
}

// consumirTokenRedefinicao marca o token como usado e devolve o dono.
func consumirTokenRedefinicao(tx *gorm.DB, raw string) (uint, error) {
	var t models.TokenRedefinicao
	if err := tx.Where("hash = ?", utils.HashToken(raw)).First(&t).Error; err != nil {
		return 0, erros.Validacao("Token de redefinição inválido")
	}
	now := time.Now()
	if t.UsadoEm != nil || now.After(t.ExpiraEm) {
		return 0, erros.Validacao("Token de redefinição expirado ou já utilizado")
	}
	res := tx.Model(&models.TokenRedefinicao{}).
		Where("id = ? AND usado_em IS NULL", t.ID).
		Update("usado_em", &now)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, erros.Validacao("Token de redefinição expirado ou já utilizado")
	}
	return t.UsuarioID, nil
}
