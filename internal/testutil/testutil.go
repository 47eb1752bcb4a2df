// Package testutil monta bancos sqlite em memória e registros de apoio
// para os testes dos pacotes de domínio.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gestaovarejo/api-backoffice/internal/models"
	"github.com/gestaovarejo/api-backoffice/internal/utils"
	dbutil "github.com/gestaovarejo/api-backoffice/internal/utils/db"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SenhaPadrao é a senha dos usuários criados por NovoUsuario.
const SenhaPadrao = "senha-segura"

var seqCPF atomic.Int64

// NovoDB abre um banco isolado por teste, já migrado.
func NovoDB(t *testing.T) *gorm.DB {
	t.Helper()
	nome := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", nome)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, dbutil.Migrate(db))
	return db
}

func NovoUsuario(t *testing.T, db *gorm.DB, email, role string) *models.Usuario {
	t.Helper()
	hash, err := utils.HashSenha(SenhaPadrao)
	require.NoError(t, err)
	u := &models.Usuario{
		Nome:   "Usuário " + email,
		Email:  email,
		Senha:  hash,
		Role:   role,
		Status: models.StatusAtivo,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func NovoCliente(t *testing.T, db *gorm.DB, email string) *models.Cliente {
	t.Helper()
	c := &models.Cliente{
		Nome:   "Cliente " + email,
		Email:  email,
		CPF:    fmt.Sprintf("%011d", seqCPF.Add(1)),
		Status: models.StatusAtivo,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func NovoProduto(t *testing.T, db *gorm.DB, codigo string, valorVenda float64, quantidade int) *models.Produto {
	t.Helper()
	p := &models.Produto{
		Codigo:      codigo,
		Nome:        "Produto " + codigo,
		Tipo:        "Camiseta",
		ValorCompra: valorVenda / 2,
		ValorVenda:  valorVenda,
		Quantidade:  quantidade,
		Status:      models.StatusAtivo,
	}
	p.AtualizarMargem()
	require.NoError(t, db.Create(p).Error)
	return p
}

// NovoPedido grava um pedido direto no banco, sem passar pelo controle de estoque.
func NovoPedido(t *testing.T, db *gorm.DB, cliente *models.Cliente, usuario *models.Usuario, data time.Time, desconto float64, itens ...models.ItemPedido) *models.Pedido {
	t.Helper()
	p := &models.Pedido{
		ClienteID:  cliente.ID,
		UsuarioID:  usuario.ID,
		DataCompra: data,
		Desconto:   desconto,
		Itens:      itens,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}
