package armazenamento

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// Disco grava em Dir; os arquivos são servidos em URLBase (ex.: /uploads).
type Disco struct {
	Dir     string
	URLBase string
}

func (d *Disco) Salvar(_ context.Context, chave, _ string, conteudo io.Reader) (string, error) {
	destino := filepath.Join(d.Dir, filepath.FromSlash(chave))
	if err := os.MkdirAll(filepath.Dir(destino), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(destino)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, conteudo); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return d.URLBase + "/" + chave, nil
}
