package produto

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gestaovarejo/api-backoffice/internal/models"
	"github.com/gestaovarejo/api-backoffice/internal/utils"
)

// ProdutoRequest serve para criação (POST) e atualização parcial (PATCH).
// Margem e código não são aceitos do cliente.
type ProdutoRequest struct {
	Nome        *string  `json:"name"`
	Tipo        *string  `json:"type"`
	Modelo      *string  `json:"model"`
	Tamanho     *string  `json:"size"`
	Cor         *string  `json:"color"`
	Material    *string  `json:"material"`
	Imagem      *string  `json:"image"`
	ValorCompra *float64 `json:"purchaseValue"`
	ValorVenda  *float64 `json:"saleValue"`
	Quantidade  *int     `json:"quantity"`
	Status      *int     `json:"status"`
}

type EstoqueRequest struct {
	QuantidadeAdicionar *int `json:"quantityToAdd"`
}

type DeleteResponse struct {
	Message    string `json:"message"`
	Desativado bool   `json:"deactivated"`
	ProdutoID  uint   `json:"id"`
}

// Filtro de listagem. Status nil lista ativos e inativos.
type Filtro struct {
	Status *int
	Busca  string
}

func (req *ProdutoRequest) validar(criacao bool) error {
	v := utils.Violacoes{}
	if criacao || req.Nome != nil {
		nome := ""
		if req.Nome != nil {
			nome = *req.Nome
		}
		utils.Obrigatorio("name", nome, v)
	}
	if req.ValorCompra != nil {
		utils.NaoNegativo("purchaseValue", *req.ValorCompra, v)
	}
	if req.ValorVenda != nil {
		utils.NaoNegativo("saleValue", *req.ValorVenda, v)
	}
	if req.Quantidade != nil && *req.Quantidade < 0 {
		v["quantity"] = "não pode ser negativo"
	}
	if req.Status != nil && *req.Status != models.StatusAtivo && *req.Status != models.StatusInativo {
		v["status"] = "use 0 ou 1"
	}
	return v.Erro()
}

func (req *ProdutoRequest) aplicar(p *models.Produto) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&p.Nome, req.Nome)
	set(&p.Tipo, req.Tipo)
	set(&p.Modelo, req.Modelo)
	set(&p.Tamanho, req.Tamanho)
	set(&p.Cor, req.Cor)
	set(&p.Material, req.Material)
	set(&p.Imagem, req.Imagem)
	if req.ValorCompra != nil {
		p.ValorCompra = *req.ValorCompra
	}
	if req.ValorVenda != nil {
		p.ValorVenda = *req.ValorVenda
	}
	if req.Quantidade != nil {
		p.Quantidade = *req.Quantidade
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	p.AtualizarMargem()
}

// colunas lista o que o PATCH altera. Margem acompanha qualquer mudança
// de valor de compra ou venda.
func (req *ProdutoRequest) colunas() []string {
	var cs []string
	add := func(enviado bool, coluna string) {
		if enviado {
			cs = append(cs, coluna)
		}
	}
	add(req.Nome != nil, "nome")
	add(req.Tipo != nil, "tipo")
	add(req.Modelo != nil, "modelo")
	add(req.Tamanho != nil, "tamanho")
	add(req.Cor != nil, "cor")
	add(req.Material != nil, "material")
	add(req.Imagem != nil, "imagem")
	add(req.ValorCompra != nil, "valor_compra")
	add(req.ValorVenda != nil, "valor_venda")
	add(req.ValorCompra != nil || req.ValorVenda != nil, "margem")
	add(req.Quantidade != nil, "quantidade")
	add(req.Status != nil, "status")
	return cs
}

// requestDoFormulario lê os campos de um multipart/form-data.
// Campos ausentes ficam nil, como no JSON.
func requestDoFormulario(r *http.Request) (*ProdutoRequest, error) {
	req := &ProdutoRequest{}
	texto := func(campo string) *string {
		if vals, ok := r.MultipartForm.Value[campo]; ok && len(vals) > 0 {
			return &vals[0]
		}
		return nil
	}
	req.Nome = texto("name")
	req.Tipo = texto("type")
	req.Modelo = texto("model")
	req.Tamanho = texto("size")
	req.Cor = texto("color")
	req.Material = texto("material")

	v := utils.Violacoes{}
	decimal := func(campo string) *float64 {
		s := texto(campo)
		if s == nil || strings.TrimSpace(*s) == "" {
			return nil
		}
		f, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(*s), ",", ".", 1), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			v[campo] = "número inválido"
			return nil
		}
		return &f
	}
	inteiro := func(campo string) *int {
		s := texto(campo)
		if s == nil || strings.TrimSpace(*s) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(*s))
		if err != nil {
			v[campo] = "inteiro inválido"
			return nil
		}
		return &n
	}
	req.ValorCompra = decimal("purchaseValue")
	req.ValorVenda = decimal("saleValue")
	req.Quantidade = inteiro("quantity")
	req.Status = inteiro("status")
	if err := v.Erro(); err != nil {
		return nil, err
	}
	return req, nil
}

func lerFiltro(r *http.Request) (Filtro, error) {
	status, err := utils.FiltroStatus(r)
	if err != nil {
		return Filtro{}, err
	}
	return Filtro{Status: status, Busca: strings.TrimSpace(r.URL.Query().Get("search"))}, nil
}
