package armazenamento

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gestaovarejo/api-backoffice/internal/erros"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngValido(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// upload monta um multipart real e devolve o arquivo como o handler veria.
func upload(t *testing.T, nome string, conteudo []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", nome)
	require.NoError(t, err)
	_, err = fw.Write(conteudo)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	f, h, err := req.FormFile("image")
	require.NoError(t, err)
	return f, h
}

func TestLerImagem(t *testing.T) {
	img, err := LerImagem(upload(t, "foto.png", pngValido(t)))
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)

	_, err = LerImagem(upload(t, "foto.png", []byte("isto não é uma imagem")))
	assert.True(t, erros.E(err, erros.TipoValidacao))

	grande := append(pngValido(t), bytes.Repeat([]byte{0}, TamanhoMaximo)...)
	_, err = LerImagem(upload(t, "grande.png", grande))
	assert.True(t, erros.E(err, erros.TipoValidacao))
}

func TestDiscoSalvarImagem(t *testing.T) {
	dir := t.TempDir()
	d := &Disco{Dir: dir, URLBase: "/uploads"}
	img := &Imagem{ContentType: "image/png", Conteudo: pngValido(t)}

	url, err := SalvarImagem(context.Background(), d, "produtos", img)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/produtos/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	gravado, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, img.Conteudo, gravado)
}

type fakeS3 struct {
	in  *s3.PutObjectInput
	err error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	if in.Body != nil {
		_, _ = io.Copy(io.Discard, in.Body)
	}
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Salvar(t *testing.T) {
	fake := &fakeS3{}
	s := &S3{client: fake, Bucket: "loja"}

	url, err := s.Salvar(context.Background(), "produtos/a.png", "image/png", bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	assert.Equal(t, "https://loja.s3.amazonaws.com/produtos/a.png", url)
	assert.Equal(t, "loja", *fake.in.Bucket)
	assert.Equal(t, "produtos/a.png", *fake.in.Key)
	assert.Equal(t, "image/png", *fake.in.ContentType)

	s.URLPublica = "https://cdn.loja.com/"
	url, err = s.Salvar(context.Background(), "produtos/b.png", "image/png", bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.loja.com/produtos/b.png", url)

	fake.err = errors.New("acesso negado")
	_, err = s.Salvar(context.Background(), "produtos/c.png", "image/png", bytes.NewReader([]byte("x")))
	assert.Error(t, err)
}
