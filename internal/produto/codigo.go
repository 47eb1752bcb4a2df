package produto

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const tamanhoPrefixo = 3

// PrefixoCodigo usa as três primeiras letras do modelo, ou do nome quando o
// modelo não tem letras. Acentos são removidos e o resultado completado com X.
func PrefixoCodigo(modelo, nome string) string {
	letras := somenteLetras(modelo)
	if letras == "" {
		letras = somenteLetras(nome)
	}
	if len(letras) > tamanhoPrefixo {
		letras = letras[:tamanhoPrefixo]
	}
	return letras + strings.Repeat("X", tamanhoPrefixo-len(letras))
}

func somenteLetras(s string) string {
	semAcento, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		semAcento = s
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(semAcento) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CodigoSeguinte devolve prefixo + sequência de 4 dígitos, um acima do maior
// sufixo numérico já usado com esse prefixo.
func CodigoSeguinte(prefixo string, existentes []string) string {
	maior := 0
	for _, c := range existentes {
		if !strings.HasPrefix(c, prefixo) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(c, prefixo))
		if err == nil && n > maior {
			maior = n
		}
	}
	return fmt.Sprintf("%s%04d", prefixo, maior+1)
}
