// Package config carrega a configuração da API a partir do ambiente.
package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Auth        AuthConfig
	Storage     StorageConfig
	Integracoes IntegracoesConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host       string
	Port       uint
	Name       string
	Username   string
	Password   string
	SecretID   string // AWS Secrets Manager, usado quando Username/Password vazios
	SSLDisable bool
	Debug      bool
}

type AuthConfig struct {
	JWTSecret     string
	CookieSecure  bool
	AdminEmail    string
	AdminPassword string
}

type StorageConfig struct {
	S3Bucket    string
	S3Prefix    string
	S3PublicURL string
	UploadDir   string
}

type IntegracoesConfig struct {
	WebhookURL string
	ViaCEPURL  string
}

// Load lê o .env (se existir) e depois as variáveis de ambiente.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("aviso: .env ignorado: %v", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		},
		Database: DatabaseConfig{
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       uint(getEnvInt("DB_PORT", 5432)),
			Name:       getEnv("DB_NAME", "backoffice"),
			Username:   os.Getenv("DB_USERNAME"),
			Password:   os.Getenv("DB_PASSWORD"),
			SecretID:   os.Getenv("DB_SECRET_ID"),
			SSLDisable: getEnvBool("DB_SSL_MODE_DISABLE", false),
			Debug:      getEnvBool("DB_DEBUG", false),
		},
		Auth: AuthConfig{
			JWTSecret:     os.Getenv("JWT_SECRET"),
			CookieSecure:  getEnvBool("COOKIE_SECURE", false),
			AdminEmail:    os.Getenv("ADMIN_EMAIL"),
			AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		},
		Storage: StorageConfig{
			S3Bucket:    os.Getenv("S3_BUCKET"),
			S3Prefix:    getEnv("S3_PREFIX", "produtos"),
			S3PublicURL: os.Getenv("S3_PUBLIC_URL"),
			UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
		},
		Integracoes: IntegracoesConfig{
			WebhookURL: os.Getenv("NOTIFICACAO_WEBHOOK_URL"),
			ViaCEPURL:  getEnv("VIACEP_URL", "https://viacep.com.br/ws"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET não definida")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("valor inválido para %s: %s", key, v)
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("valor booleano inválido para %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
