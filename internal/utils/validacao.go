package utils

import (
	"math"
	"net/mail"
	"sort"
	"strings"

	"github.com/gestaovarejo/api-backoffice/internal/erros"
)

// Violacoes acumula problemas de validação por campo.
type Violacoes map[string]string

func (v Violacoes) Vazia() bool { return len(v) == 0 }

// Erro junta as violações em um único erros.Validacao.
func (v Violacoes) Erro() error {
	if v.Vazia() {
		return nil
	}
	campos := make([]string, 0, len(v))
	for c, msg := range v {
		campos = append(campos, c+": "+msg)
	}
	sort.Strings(campos)
	return erros.Validacao("Dados inválidos (%s)", strings.Join(campos, "; "))
}

func Obrigatorio(campo, valor string, v Violacoes) {
	if strings.TrimSpace(valor) == "" {
		v[campo] = "obrigatório"
	}
}

// NaoNegativo também recusa NaN e infinitos, que não cabem em decimal.
func NaoNegativo(campo string, valor float64, v Violacoes) {
	if math.IsNaN(valor) || math.IsInf(valor, 0) {
		v[campo] = "valor inválido"
		return
	}
	if valor < 0 {
		v[campo] = "não pode ser negativo"
	}
}

func Email(campo, valor string, v Violacoes) {
	if strings.TrimSpace(valor) == "" {
		v[campo] = "obrigatório"
		return
	}
	if _, err := mail.ParseAddress(valor); err != nil {
		v[campo] = "email inválido"
	}
}

// CPF valida tamanho e dígitos verificadores; aceita com ou sem máscara.
func CPF(campo, valor string, v Violacoes) {
	if !CPFValido(valor) {
		v[campo] = "cpf inválido"
	}
}

// SomenteDigitos remove máscara de CPF, CEP e telefone.
func SomenteDigitos(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func CPFValido(valor string) bool {
	d := SomenteDigitos(valor)
	if len(d) != 11 {
		return false
	}
	iguais := true
	for i := 1; i < 11; i++ {
		if d[i] != d[0] {
			iguais = false
			break
		}
	}
	if iguais {
		return false
	}
	digito := func(n int) byte {
		soma := 0
		for i := 0; i < n; i++ {
			soma += int(d[i]-'0') * (n + 1 - i)
		}
		resto := (soma * 10) % 11
		if resto == 10 {
			resto = 0
		}
		return byte('0' + resto)
	}
	return digito(9) == d[9] && digito(10) == d[10]
}
