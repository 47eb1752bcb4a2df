package models

import "time"

// Endereco pertence a um Cliente ou a um Usuario, nunca aos dois.
type Endereco struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClienteID   *uint     `gorm:"uniqueIndex" json:"clientId,omitempty"`
	UsuarioID   *uint     `gorm:"uniqueIndex" json:"userId,omitempty"`
	CEP         string    `gorm:"size:9" json:"cep"`
	Pais        string    `gorm:"size:60;default:'Brasil'" json:"country"`
	Estado      string    `gorm:"size:2" json:"state"`
	Cidade      string    `gorm:"size:120" json:"city"`
	Bairro      string    `gorm:"size:120" json:"district"`
	Rua         string    `gorm:"size:255" json:"street"`
	Numero      string    `gorm:"size:20" json:"number"`
	Complemento string    `gorm:"size:255" json:"complement"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
