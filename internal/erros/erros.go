// Package erros define a taxonomia de erros da API e o mapeamento para HTTP.
package erros

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// Tipo identifica a categoria de um erro de negócio.
type Tipo int

const (
	TipoInterno Tipo = iota
	TipoValidacao
	TipoAutenticacao
	TipoAutorizacao
	TipoNaoEncontrado
	TipoConflito
	TipoEstoqueInsuficiente
	TipoDescontoInvalido
)

// Erro é o erro tipado devolvido por repositórios e handlers.
type Erro struct {
	Tipo     Tipo
	Mensagem string
	// Disponivel só é preenchido em TipoEstoqueInsuficiente.
	Disponivel *int
	Causa      error
}

func (e *Erro) Error() string {
	if e.Causa != nil {
		return fmt.Sprintf("%s: %v", e.Mensagem, e.Causa)
	}
	return e.Mensagem
}

func (e *Erro) Unwrap() error { return e.Causa }

func Validacao(format string, args ...any) *Erro {
	return &Erro{Tipo: TipoValidacao, Mensagem: fmt.Sprintf(format, args...)}
}

func Autenticacao(msg string) *Erro {
	return &Erro{Tipo: TipoAutenticacao, Mensagem: msg}
}

func Autorizacao(msg string) *Erro {
	return &Erro{Tipo: TipoAutorizacao, Mensagem: msg}
}

func NaoEncontrado(format string, args ...any) *Erro {
	return &Erro{Tipo: TipoNaoEncontrado, Mensagem: fmt.Sprintf(format, args...)}
}

func Conflito(format string, args ...any) *Erro {
	return &Erro{Tipo: TipoConflito, Mensagem: fmt.Sprintf(format, args...)}
}

// EstoqueInsuficiente informa a quantidade ainda disponível do produto.
func EstoqueInsuficiente(produto string, disponivel int) *Erro {
	return &Erro{
		Tipo:       TipoEstoqueInsuficiente,
		Mensagem:   fmt.Sprintf("Estoque insuficiente para o produto %s. Disponível: %d", produto, disponivel),
		Disponivel: &disponivel,
	}
}

func DescontoInvalido(desconto, subtotal float64) *Erro {
	return &Erro{
		Tipo:     TipoDescontoInvalido,
		Mensagem: fmt.Sprintf("Desconto (%.2f) não pode ser maior que o subtotal (%.2f)", desconto, subtotal),
	}
}

// Interno embrulha uma falha inesperada; a causa não vai para o cliente.
func Interno(msg string, causa error) *Erro {
	return &Erro{Tipo: TipoInterno, Mensagem: msg, Causa: causa}
}

// DoBanco traduz erros do gorm: registro ausente vira NaoEncontrado,
// chave duplicada vira Conflito e o resto vira Interno.
func DoBanco(err error, entidade string) error {
	if err == nil {
		return nil
	}
	var e *Erro
	if errors.As(err, &e) {
		return e
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NaoEncontrado("%s não encontrado", entidade)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflito("%s já cadastrado com esses dados", entidade)
	}
	return Interno("erro ao acessar "+entidade, err)
}

// Status devolve o código HTTP correspondente ao erro.
func Status(err error) int {
	var e *Erro
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Tipo {
	case TipoValidacao, TipoConflito, TipoEstoqueInsuficiente, TipoDescontoInvalido:
		return http.StatusBadRequest
	case TipoAutenticacao:
		return http.StatusUnauthorized
	case TipoAutorizacao:
		return http.StatusForbidden
	case TipoNaoEncontrado:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// E verifica se err é do tipo informado.
func E(err error, t Tipo) bool {
	var e *Erro
	return errors.As(err, &e) && e.Tipo == t
}
