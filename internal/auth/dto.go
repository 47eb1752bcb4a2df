package auth

import "github.com/gestaovarejo/api-backoffice/internal/models"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  *models.Usuario `json:"user"`
}

type TrocaObrigatoriaResponse struct {
	MustChangePassword bool   `json:"mustChangePassword"`
	ResetToken         string `json:"resetToken"`
	Message            string `json:"message"`
}

type EsqueciSenhaRequest struct {
	Email string `json:"email"`
}

type RedefinirSenhaRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type AlterarSenhaRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
