// Package exclusao aplica a regra de remoção compartilhada por produtos,
// clientes e usuários: registros referenciados pelo histórico de pedidos são
// apenas desativados, os demais são apagados.
package exclusao

import (
	"github.com/gestaovarejo/api-backoffice/internal/erros"
	"github.com/gestaovarejo/api-backoffice/internal/models"
	"gorm.io/gorm"
)

type Resultado int

const (
	Removido Resultado = iota
	Desativado
)

// Politica descreve como verificar dependentes de uma entidade.
type Politica struct {
	Entidade string
	// ContarDependentes devolve quantos registros do histórico referenciam id.
	ContarDependentes func(tx *gorm.DB, id uint) (int64, error)
	// AntesDeRemover roda só no caminho de remoção física (ex.: endereço).
	AntesDeRemover func(tx *gorm.DB, id uint) error
}

// Remover decide entre desativar (status=0) e apagar o registro T de id.
// Deve ser chamado dentro de uma transação.
func Remover[T any](tx *gorm.DB, id uint, p Politica) (Resultado, error) {
	var alvo T
	if err := tx.First(&alvo, id).Error; err != nil {
		return 0, erros.DoBanco(err, p.Entidade)
	}

	n, err := p.ContarDependentes(tx, id)
	if err != nil {
		return 0, erros.DoBanco(err, p.Entidade)
	}
	if n > 0 {
		if err := tx.Model(&alvo).Update("status", models.StatusInativo).Error; err != nil {
			return 0, erros.DoBanco(err, p.Entidade)
		}
		return Desativado, nil
	}

	if p.AntesDeRemover != nil {
		if err := p.AntesDeRemover(tx, id); err != nil {
			return 0, erros.DoBanco(err, p.Entidade)
		}
	}
	if err := tx.Delete(&alvo).Error; err != nil {
		return 0, erros.DoBanco(err, p.Entidade)
	}
	return Removido, nil
}

// ContarPor devolve um contador de linhas de model onde coluna = id.
func ContarPor(model any, coluna string) func(tx *gorm.DB, id uint) (int64, error) {
	return func(tx *gorm.DB, id uint) (int64, error) {
		var n int64
		err := tx.Model(model).Where(coluna+" = ?", id).Count(&n).Error
		return n, err
	}
}

// RemoverEndereco apaga o endereço ligado ao dono pela coluna informada.
func RemoverEndereco(coluna string) func(tx *gorm.DB, id uint) error {
	return func(tx *gorm.DB, id uint) error {
		return tx.Where(coluna+" = ?", id).Delete(&models.Endereco{}).Error
	}
}
