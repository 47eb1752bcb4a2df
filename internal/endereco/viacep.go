package endereco

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gestaovarejo/api-backoffice/internal/erros"
	"github.com/gestaovarejo/api-backoffice/internal/utils"
)

// Consulta é o endereço devolvido para um CEP, nos mesmos campos de Endereco.
type Consulta struct {
	CEP         string `json:"cep"`
	Pais        string `json:"country"`
	Estado      string `json:"state"`
	Cidade      string `json:"city"`
	Bairro      string `json:"district"`
	Rua         string `json:"street"`
	Complemento string `json:"complement"`
}

type respostaViaCEP struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	// ViaCEP já respondeu tanto true quanto "true".
	Erro any `json:"erro"`
}

type ViaCEP struct {
	BaseURL string
	Client  *http.Client
}

func NovoViaCEP(baseURL string) *ViaCEP {
	return &ViaCEP{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// NormalizarCEP aceita "01001-000" ou "01001000" e devolve "01001-000".
func NormalizarCEP(cep string) (string, bool) {
	d := utils.SomenteDigitos(cep)
	if len(d) != 8 || len(strings.TrimSpace(cep)) > 9 {
		return "", false
	}
	return d[:5] + "-" + d[5:], true
}

func (v *ViaCEP) Buscar(ctx context.Context, cep string) (*Consulta, error) {
	normalizado, ok := NormalizarCEP(cep)
	if !ok {
		return nil, erros.Validacao("CEP inválido: informe 8 dígitos")
	}
	url := fmt.Sprintf("%s/%s/json/", v.BaseURL, utils.SomenteDigitos(normalizado))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, erros.Interno("erro ao consultar CEP", err)
	}

	resp, err := v.Client.Do(req)
	if err != nil {
		return nil, erros.Interno("erro ao consultar CEP", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return nil, erros.Validacao("CEP inválido: informe 8 dígitos")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, erros.Interno("erro ao consultar CEP", fmt.Errorf("viacep status %d", resp.StatusCode))
	}

	var r respostaViaCEP
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, erros.Interno("resposta inválida do serviço de CEP", err)
	}
	if r.Erro == true || r.Erro == "true" {
		return nil, erros.NaoEncontrado("CEP %s não encontrado", normalizado)
	}
	return &Consulta{
		CEP:         normalizado,
		Pais:        "Brasil",
		Estado:      r.UF,
		Cidade:      r.Localidade,
		Bairro:      r.Bairro,
		Rua:         r.Logradouro,
		Complemento: r.Complemento,
	}, nil
}
