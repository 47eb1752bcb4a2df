// Package armazenamento guarda as imagens de produtos no S3 ou em disco.
package armazenamento

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"path"

	"github.com/gestaovarejo/api-backoffice/internal/erros"
	"github.com/google/uuid"
)

// TamanhoMaximo é o limite de uma imagem enviada (5 MB).
const TamanhoMaximo = 5 << 20

var extensoes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type Armazenamento interface {
	// Salvar grava o conteúdo sob chave e devolve a URL pública.
	Salvar(ctx context.Context, chave, contentType string, conteudo io.Reader) (string, error)
}

// Imagem é um upload já validado.
type Imagem struct {
	ContentType string
	Conteudo    []byte
}

// LerImagem valida tamanho e tipo do arquivo enviado. O tipo é detectado
// pelo conteúdo, não pela extensão informada pelo cliente.
func LerImagem(file multipart.File, header *multipart.FileHeader) (*Imagem, error) {
	defer file.Close()
	if header.Size > TamanhoMaximo {
		return nil, erros.Validacao("Imagem excede o limite de 5MB")
	}
	conteudo, err := io.ReadAll(io.LimitReader(file, TamanhoMaximo+1))
	if err != nil {
		return nil, erros.Interno("erro ao ler imagem", err)
	}
	if len(conteudo) > TamanhoMaximo {
		return nil, erros.Validacao("Imagem excede o limite de 5MB")
	}
	ct := http.DetectContentType(conteudo)
	if _, ok := extensoes[ct]; !ok {
		return nil, erros.Validacao("Formato de imagem não suportado (%s)", ct)
	}
	return &Imagem{ContentType: ct, Conteudo: conteudo}, nil
}

// SalvarImagem gera uma chave única sob prefixo e grava a imagem.
func SalvarImagem(ctx context.Context, a Armazenamento, prefixo string, img *Imagem) (string, error) {
	chave := path.Join(prefixo, uuid.NewString()+extensoes[img.ContentType])
	url, err := a.Salvar(ctx, chave, img.ContentType, bytes.NewReader(img.Conteudo))
	if err != nil {
		return "", erros.Interno("erro ao salvar imagem", err)
	}
	return url, nil
}
