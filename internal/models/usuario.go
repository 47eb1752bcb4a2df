package models

import "time"

const (
	RoleAdministrador = "Administrador"
	RoleUsuarioPadrao = "UsuarioPadrao"
)

// Usuario é o funcionário (ou administrador) que opera o sistema.
type Usuario struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Nome               string    `gorm:"size:255;not null" json:"name"`
	Email              string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Senha              string    `gorm:"size:255;not null" json:"-"`
	Role               string    `gorm:"size:20;not null;default:'UsuarioPadrao'" json:"role"`
	Status             int       `gorm:"not null;index" json:"status"`
	CPF                *string   `gorm:"size:11;uniqueIndex" json:"cpf,omitempty"`
	Telefone           string    `gorm:"size:20" json:"phoneNumber"`
	PrecisaTrocarSenha bool      `gorm:"not null;default:false" json:"mustChangePassword"`
	Endereco           *Endereco `gorm:"foreignKey:UsuarioID" json:"address,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (u *Usuario) IsAdmin() bool { return u.Role == RoleAdministrador }

func RoleValida(role string) bool {
	return role == RoleAdministrador || role == RoleUsuarioPadrao
}

// TokenRedefinicao guarda o hash de um token de troca de senha.
type TokenRedefinicao struct {
	ID        uint       `gorm:"primaryKey"`
	UsuarioID uint       `gorm:"index;not null"`
	Hash      string     `gorm:"uniqueIndex;not null"`
	ExpiraEm  time.Time  `gorm:"index"`
	UsadoEm   *time.Time
	CreatedAt time.Time
}

func (TokenRedefinicao) TableName() string { return "tokens_redefinicao" }
