package armazenamento

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3 struct {
	client     putObjectAPI
	Bucket     string
	URLPublica string
}

// NovoS3 usa a cadeia padrão de credenciais da AWS.
func NovoS3(ctx context.Context, bucket, urlPublica string) (*S3, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar config AWS: %w", err)
	}
	return &S3{client: s3.NewFromConfig(cfg), Bucket: bucket, URLPublica: urlPublica}, nil
}

func (s *S3) Salvar(ctx context.Context, chave, contentType string, conteudo io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(chave),
		Body:        conteudo,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", chave, err)
	}
	return s.url(chave), nil
}

func (s *S3) url(chave string) string {
	if s.URLPublica != "" {
		return strings.TrimRight(s.URLPublica, "/") + "/" + chave
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.Bucket, chave)
}
