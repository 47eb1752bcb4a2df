package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Cliente struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UUID           string     `gorm:"size:36;uniqueIndex;not null" json:"uuid"`
	Nome           string     `gorm:"size:255;not null" json:"name"`
	Email          string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	CPF            string     `gorm:"size:11;uniqueIndex" json:"cpf"`
	Telefone       string     `gorm:"size:20" json:"phoneNumber"`
	DataNascimento *time.Time `json:"birthDate,omitempty"`
	Genero         string     `gorm:"size:20" json:"gender"`
	Status         int        `gorm:"not null;index" json:"status"`
	Endereco       *Endereco  `gorm:"foreignKey:ClienteID" json:"address,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// BeforeCreate gera o UUID público do cliente.
func (c *Cliente) BeforeCreate(_ *gorm.DB) error {
	if c.UUID == "" {
		c.UUID = uuid.NewString()
	}
	return nil
}
