package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"math/big"

	"github.com/gestaovarejo/api-backoffice/internal/erros"
	"golang.org/x/crypto/bcrypt"
)

const (
	TamanhoMinimoSenha = 8
	// bcrypt recusa entradas acima de 72 bytes.
	TamanhoMaximoSenha = 72

	tamanhoSenhaTemporaria = 12
	alfabetoSenha          = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// ValidarSenha confere os limites de tamanho de uma senha nova.
func ValidarSenha(senha string) error {
	switch {
	case len(senha) < TamanhoMinimoSenha:
		return erros.Validacao("A senha deve ter pelo menos %d caracteres", TamanhoMinimoSenha)
	case len(senha) > TamanhoMaximoSenha:
		return erros.Validacao("A senha deve ter no máximo %d bytes", TamanhoMaximoSenha)
	}
	return nil
}

func HashSenha(senha string) (string, error) {
	if len(senha) > TamanhoMaximoSenha {
		return "", ValidarSenha(senha)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return "", erros.Interno("erro ao processar senha", err)
	}
	return string(hash), nil
}

func VerificarSenha(hash, senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}

// GerarSenhaTemporaria sorteia uma senha sem caracteres ambíguos (0/O, 1/l/I).
func GerarSenhaTemporaria() (string, error) {
	limite := big.NewInt(int64(len(alfabetoSenha)))
	senha := make([]byte, tamanhoSenhaTemporaria)
	for i := range senha {
		n, err := rand.Int(rand.Reader, limite)
		if err != nil {
			return "", err
		}
		senha[i] = alfabetoSenha[n.Int64()]
	}
	return string(senha), nil
}

// GerarTokenAleatorio devolve 32 bytes aleatórios em base64 url-safe.
func GerarTokenAleatorio() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashToken é o que fica gravado no banco no lugar do token bruto.
func HashToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(h[:])
}
