package cliente

import (
	"strings"
	"time"

	"github.com/gestaovarejo/api-backoffice/internal/endereco"
	"github.com/gestaovarejo/api-backoffice/internal/models"
	"github.com/gestaovarejo/api-backoffice/internal/utils"
)

const formatoData = "2006-01-02"

type ClienteRequest struct {
	Nome           string            `json:"name"`
	Email          string            `json:"email"`
	CPF            string            `json:"cpf"`
	Telefone       string            `json:"phoneNumber"`
	DataNascimento string            `json:"birthDate"`
	Genero         string            `json:"gender"`
	Status         *int              `json:"status"`
	Endereco       *endereco.Request `json:"address"`
}

type DeleteResponse struct {
	Message    string `json:"message"`
	Desativado bool   `json:"deactivated"`
	ClienteID  uint   `json:"id"`
}

type Filtro struct {
	Status *int
	Busca  string
}

func (req *ClienteRequest) validar() (*time.Time, error) {
	v := utils.Violacoes{}
	utils.Obrigatorio("name", req.Nome, v)
	utils.Email("email", req.Email, v)
	utils.CPF("cpf", req.CPF, v)

	var nascimento *time.Time
	if req.DataNascimento != "" {
		d, err := time.Parse(formatoData, req.DataNascimento)
		if err != nil {
			v["birthDate"] = "use o formato AAAA-MM-DD"
		} else if d.After(time.Now()) {
			v["birthDate"] = "não pode estar no futuro"
		} else {
			nascimento = &d
		}
	}
	if req.Status != nil && *req.Status != models.StatusAtivo && *req.Status != models.StatusInativo {
		v["status"] = "use 0 ou 1"
	}
	if req.Endereco != nil {
		req.Endereco.Validar(v)
	}
	return nascimento, v.Erro()
}

// aplicar copia o request para c. O endereço existente é reaproveitado
// para que o PUT atualize em vez de duplicar.
func (req *ClienteRequest) aplicar(c *models.Cliente, nascimento *time.Time) {
	c.Nome = strings.TrimSpace(req.Nome)
	c.Email = strings.ToLower(strings.TrimSpace(req.Email))
	c.CPF = utils.SomenteDigitos(req.CPF)
	c.Telefone = strings.TrimSpace(req.Telefone)
	c.DataNascimento = nascimento
	c.Genero = strings.TrimSpace(req.Genero)
	if req.Status != nil {
		c.Status = *req.Status
	}
	if req.Endereco != nil {
		if c.Endereco == nil {
			c.Endereco = &models.Endereco{}
		}
		req.Endereco.Aplicar(c.Endereco)
	}
}
