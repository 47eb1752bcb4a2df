package usuario

import (
	"log"

	"github.com/gestaovarejo/api-backoffice/internal/erros"
	"github.com/gestaovarejo/api-backoffice/internal/models"
	"github.com/gestaovarejo/api-backoffice/internal/utils"
	"gorm.io/gorm"
)

// GarantirAdmin cria o administrador inicial quando não há nenhum ativo.
// Sem email ou senha configurados não faz nada.
func GarantirAdmin(db *gorm.DB, repo Repository, email, senha string) error {
	if email == "" || senha == "" {
		return nil
	}
	existe, err := repo.ExisteAdmin(db)
	if err != nil || existe {
		return err
	}
	if u, err := repo.FindByEmail(db, normalizarEmail(email)); err == nil {
		log.Printf("administrador inicial não criado: %s já cadastrado como %s", u.Email, u.Role)
		return nil
	} else if !erros.E(err, erros.TipoNaoEncontrado) {
		return err
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		return err
	}
	u := models.Usuario{
		Nome:   "Administrador",
		Email:  normalizarEmail(email),
		Senha:  hash,
		Role:   models.RoleAdministrador,
		Status: models.StatusAtivo,
	}
	if err := repo.Save(db, &u); err != nil {
		return err
	}
	log.Printf("administrador inicial criado: %s", u.Email)
	return nil
}
