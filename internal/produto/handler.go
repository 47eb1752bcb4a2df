package produto

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gestaovarejo/api-backoffice/internal/armazenamento"
	"github.com/gestaovarejo/api-backoffice/internal/erros"
	"github.com/gestaovarejo/api-backoffice/internal/exclusao"
	"github.com/gestaovarejo/api-backoffice/internal/models"
	"github.com/gestaovarejo/api-backoffice/internal/utils"
	"gorm.io/gorm"
)

type Handler struct {
	DB             *gorm.DB
	Repository     Repository
	Armazenamento  armazenamento.Armazenamento
	PrefixoImagens string
}

func NewHandler(db *gorm.DB, a armazenamento.Armazenamento, prefixoImagens string) *Handler {
	return &Handler{
		DB:             db,
		Repository:     NewRepository(),
		Armazenamento:  a,
		PrefixoImagens: prefixoImagens,
	}
}

// GET /products
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	f, err := lerFiltro(r)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	pag := utils.LerPaginacao(r)
	ps, total, err := h.Repository.List(h.DB, f, pag)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, utils.Pagina[models.Produto]{Data: ps, Total: total, Page: pag.Page, Limit: pag.Limit})
}

// GET /products/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	p, err := h.Repository.FindByID(h.DB, id)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, p)
}

// POST /products
// Aceita multipart/form-data (campo "image" opcional) ou JSON.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, img, err := h.lerRequest(w, r)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if err := req.validar(true); err != nil {
		utils.ResponderErro(w, err)
		return
	}

	p := models.Produto{Status: models.StatusAtivo}
	req.aplicar(&p)
	if img != nil {
		if p.Imagem, err = armazenamento.SalvarImagem(r.Context(), h.Armazenamento, h.PrefixoImagens, img); err != nil {
			utils.ResponderErro(w, err)
			return
		}
	}

	if err := h.Repository.Create(h.DB, &p); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, p)
}

// PATCH /products/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	req, img, err := h.lerRequest(w, r)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if err := req.validar(false); err != nil {
		utils.ResponderErro(w, err)
		return
	}

	p, err := h.Repository.FindByID(h.DB, id)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	req.aplicar(p)
	colunas := req.colunas()
	if img != nil {
		if p.Imagem, err = armazenamento.SalvarImagem(r.Context(), h.Armazenamento, h.PrefixoImagens, img); err != nil {
			utils.ResponderErro(w, err)
			return
		}
		colunas = append(colunas, "imagem")
	}
	atualizado, err := h.Repository.Update(h.DB, p, colunas)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, atualizado)
}

// PATCH /products/{id}/stock
func (h *Handler) AdicionarEstoque(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	var req EstoqueRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if req.QuantidadeAdicionar == nil {
		utils.ResponderErro(w, erros.Validacao("quantityToAdd é obrigatório"))
		return
	}
	p, err := h.Repository.AdicionarEstoque(h.DB, id, *req.QuantidadeAdicionar)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, p)
}

// DELETE /products/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	res, err := h.Repository.Delete(h.DB, id)
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	resp := DeleteResponse{ProdutoID: id, Message: "Produto excluído com sucesso"}
	if res == exclusao.Desativado {
		resp.Desativado = true
		resp.Message = "Produto possui pedidos vinculados e foi desativado"
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *Handler) lerRequest(w http.ResponseWriter, r *http.Request) (*ProdutoRequest, *armazenamento.Imagem, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		var req ProdutoRequest
		if err := utils.DecodificarJSON(r, &req); err != nil {
			return nil, nil, err
		}
		return &req, nil, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, armazenamento.TamanhoMaximo+1<<20)
	if err := r.ParseMultipartForm(armazenamento.TamanhoMaximo); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, nil, erros.Validacao("Imagem excede o limite de 5MB")
		}
		return nil, nil, erros.Validacao("formulário inválido")
	}
	req, err := requestDoFormulario(r)
	if err != nil {
		return nil, nil, err
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil, nil
	}
	if err != nil {
		return nil, nil, erros.Validacao("imagem inválida")
	}
	img, err := armazenamento.LerImagem(file, header)
	if err != nil {
		return nil, nil, err
	}
	return req, img, nil
}
