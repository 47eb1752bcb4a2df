package endereco

import (
	"strings"

	"github.com/gestaovarejo/api-backoffice/internal/models"
	"github.com/gestaovarejo/api-backoffice/internal/utils"
)

// Request é o endereço aninhado nos cadastros de cliente e usuário.
type Request struct {
	CEP         string `json:"cep"`
	Pais        string `json:"country"`
	Estado      string `json:"state"`
	Cidade      string `json:"city"`
	Bairro      string `json:"district"`
	Rua         string `json:"street"`
	Numero      string `json:"number"`
	Complemento string `json:"complement"`
}

func (r *Request) Validar(v utils.Violacoes) {
	if r.CEP != "" {
		if _, ok := NormalizarCEP(r.CEP); !ok {
			v["address.cep"] = "CEP inválido"
		}
	}
	if r.Estado != "" && len(strings.TrimSpace(r.Estado)) != 2 {
		v["address.state"] = "use a sigla do estado (UF)"
	}
}

// Aplicar copia os campos para e, preservando ID e dono.
func (r *Request) Aplicar(e *models.Endereco) {
	cep, _ := NormalizarCEP(r.CEP)
	e.CEP = cep
	e.Pais = strings.TrimSpace(r.Pais)
	if e.Pais == "" {
		e.Pais = "Brasil"
	}
	e.Estado = strings.ToUpper(strings.TrimSpace(r.Estado))
	e.Cidade = strings.TrimSpace(r.Cidade)
	e.Bairro = strings.TrimSpace(r.Bairro)
	e.Rua = strings.TrimSpace(r.Rua)
	e.Numero = strings.TrimSpace(r.Numero)
	e.Complemento = strings.TrimSpace(r.Complemento)
}
