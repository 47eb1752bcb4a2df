package db

import (
	"context"
	"fmt"

	"github.com/gestaovarejo/api-backoffice/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDataBase abre a conexão com o Postgres usando as credenciais do
// ambiente ou, na falta delas, do Secrets Manager.
func ConnectDataBase(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	username, password := cfg.Username, cfg.Password
	if username == "" || password == "" {
		creds, err := retrieveCredentials(ctx, cfg.SecretID)
		if err != nil {
			return nil, err
		}
		username, password = creds.Username, creds.Password
	}

	var sslMode string
	if cfg.SSLDisable {
		sslMode = " sslmode=disable"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s",
		cfg.Host, username, password, cfg.Name, cfg.Port, sslMode)

	level := logger.Error
	if cfg.Debug {
		level = logger.Info
	}
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar no banco: %w", err)
	}
	return database, nil
}
