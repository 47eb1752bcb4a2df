// internal/usuario/dto.go
package usuario

import (
	"fmt"
	"strings"

	"github.com/gestaovarejo/api-backoffice/internal/endereco"
	"github.com/gestaovarejo/api-backoffice/internal/models"
	"github.com/gestaovarejo/api-backoffice/internal/utils"
)

// CreateUsuarioRequest é usado em POST /users.
// Sem senha, uma temporária é gerada e o usuário troca no primeiro acesso.
type CreateUsuarioRequest struct {
	Nome     string            `json:"name"`
	Email    string            `json:"email"`
	Senha    string            `json:"password"`
	Role     string            `json:"role"`
	CPF      string            `json:"cpf"`
	Telefone string            `json:"phoneNumber"`
	Endereco *endereco.Request `json:"address"`
}

// UpdateUsuarioRequest é usado em PATCH /users/{id}
// Campos como ponteiro permitem omitir no JSON se não quiser alterar
type UpdateUsuarioRequest struct {
	Nome               *string           `json:"name,omitempty"`
	Email              *string           `json:"email,omitempty"`
	Senha              *string           `json:"password,omitempty"`
	Role               *string           `json:"role,omitempty"`
	Status             *int              `json:"status,omitempty"`
	CPF                *string           `json:"cpf,omitempty"`
	Telefone           *string           `json:"phoneNumber,omitempty"`
	PrecisaTrocarSenha *bool             `json:"mustChangePassword,omitempty"`
	Endereco           *endereco.Request `json:"address,omitempty"`
}

type CreateUsuarioResponse struct {
	*models.Usuario
	SenhaTemporaria string `json:"temporaryPassword,omitempty"`
}

type DeleteResponse struct {
	Message    string `json:"message"`
	Desativado bool   `json:"deactivated"`
	UsuarioID  uint   `json:"id"`
}

type Filtro struct {
	Status *int
	Busca  string
}

func (req *CreateUsuarioRequest) validar() error {
	v := utils.Violacoes{}
	utils.Obrigatorio("name", req.Nome, v)
	utils.Email("email", req.Email, v)
	if req.Senha != "" {
		validarSenha(req.Senha, v)
	}
	if req.Role == "" {
		req.Role = models.RoleUsuarioPadrao
	}
	if !models.RoleValida(req.Role) {
		v["role"] = "use Administrador ou UsuarioPadrao"
	}
	if req.CPF != "" {
		utils.CPF("cpf", req.CPF, v)
	}
	if req.Endereco != nil {
		req.Endereco.Validar(v)
	}
	return v.Erro()
}

func (req *UpdateUsuarioRequest) validar() error {
	v := utils.Violacoes{}
	if req.Nome != nil {
		utils.Obrigatorio("name", *req.Nome, v)
	}
	if req.Email != nil {
		utils.Email("email", *req.Email, v)
	}
	if req.Senha != nil {
		validarSenha(*req.Senha, v)
	}
	if req.Role != nil && !models.RoleValida(*req.Role) {
		v["role"] = "use Administrador ou UsuarioPadrao"
	}
	if req.Status != nil && *req.Status != models.StatusAtivo && *req.Status != models.StatusInativo {
		v["status"] = "use 0 ou 1"
	}
	if req.CPF != nil && *req.CPF != "" {
		utils.CPF("cpf", *req.CPF, v)
	}
	if req.Endereco != nil {
		req.Endereco.Validar(v)
	}
	return v.Erro()
}

func validarSenha(s string, v utils.Violacoes) {
	if len(s) < utils.TamanhoMinimoSenha || len(s) > utils.TamanhoMaximoSenha {
		v["password"] = fmt.Sprintf("entre %d e %d caracteres", utils.TamanhoMinimoSenha, utils.TamanhoMaximoSenha)
	}
}

func cpfOuNil(cpf string) *string {
	d := utils.SomenteDigitos(cpf)
	if d == "" {
		return nil
	}
	return &d
}

func normalizarEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
