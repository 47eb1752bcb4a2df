package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gestaovarejo/api-backoffice/internal/analise"
	"github.com/gestaovarejo/api-backoffice/internal/armazenamento"
	"github.com/gestaovarejo/api-backoffice/internal/auth"
	"github.com/gestaovarejo/api-backoffice/internal/cliente"
	"github.com/gestaovarejo/api-backoffice/internal/config"
	"github.com/gestaovarejo/api-backoffice/internal/endereco"
	"github.com/gestaovarejo/api-backoffice/internal/notificacao"
	"github.com/gestaovarejo/api-backoffice/internal/pedido"
	"github.com/gestaovarejo/api-backoffice/internal/produto"
	"github.com/gestaovarejo/api-backoffice/internal/usuario"
	"github.com/gestaovarejo/api-backoffice/internal/utils"
	"github.com/gestaovarejo/api-backoffice/internal/utils/db"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Erro na configuração: ", err)
	}

	database, err := db.ConnectDataBase(ctx, cfg.Database)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatal("Erro no AutoMigrate: ", err)
	}
	if err := usuario.GarantirAdmin(database, usuario.NewRepository(), cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		log.Fatal("Erro ao criar administrador inicial: ", err)
	}

	notificador := notificacao.Novo(cfg.Integracoes.WebhookURL)
	jwt := auth.NovoJWT(cfg.Auth.JWTSecret)

	// Imagens vão para o S3 quando há bucket; senão ficam em disco.
	var imagens armazenamento.Armazenamento
	if cfg.Storage.S3Bucket != "" {
		s3, err := armazenamento.NovoS3(ctx, cfg.Storage.S3Bucket, cfg.Storage.S3PublicURL)
		if err != nil {
			log.Fatal(err)
		}
		imagens = s3
	} else {
		imagens = &armazenamento.Disco{Dir: cfg.Storage.UploadDir, URLBase: "/uploads"}
	}

	// Handlers
	authHandler := auth.NewHandler(database, jwt, notificador, cfg.Auth.CookieSecure)
	produtoHandler := produto.NewHandler(database, imagens, cfg.Storage.S3Prefix)
	clienteHandler := cliente.NewHandler(database)
	pedidoHandler := pedido.NewHandler(database, notificador)
	usuarioHandler := usuario.NewHandler(database, notificador)
	analiseHandler := analise.NewHandler(database)
	enderecoHandler := endereco.NewHandler(endereco.NovoViaCEP(cfg.Integracoes.ViaCEPURL))

	r := mux.NewRouter()
	r.Use(utils.LogRequisicoes)

	// Rotas públicas
	r.HandleFunc("/authenticate", authHandler.Autenticar).Methods("POST")
	r.HandleFunc("/forgetPassword", authHandler.EsqueciSenha).Methods("POST")
	r.HandleFunc("/resetPassword", authHandler.RedefinirSenha).Methods("POST")
	if cfg.Storage.S3Bucket == "" {
		r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.UploadDir))))
	}

	api := r.NewRoute().Subrouter()
	api.Use(auth.Middleware(jwt), auth.UsuarioAtivo(database))

	// Rotas de sessão
	api.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	api.HandleFunc("/me", authHandler.Me).Methods("GET")
	api.HandleFunc("/me/password", authHandler.AlterarSenha).Methods("PATCH")

	// Rotas de produtos
	api.HandleFunc("/products", produtoHandler.List).Methods("GET")
	api.HandleFunc("/products/{id}", produtoHandler.GetByID).Methods("GET")
	api.HandleFunc("/products/{id}/stock", produtoHandler.AdicionarEstoque).Methods("PATCH")

	// Rotas de clientes
	api.HandleFunc("/clients", clienteHandler.CriarCliente).Methods("POST")
	api.HandleFunc("/clients", clienteHandler.ListarClientes).Methods("GET")
	api.HandleFunc("/clients/{id}", clienteHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/clients/{id}", clienteHandler.AtualizarCliente).Methods("PUT")
	api.HandleFunc("/clients/{id}", clienteHandler.DeletarCliente).Methods("DELETE")

	// Rotas de pedidos
	api.HandleFunc("/orders", pedidoHandler.Criar).Methods("POST")
	api.HandleFunc("/orders", pedidoHandler.Listar).Methods("GET")
	api.HandleFunc("/orders/{id}", pedidoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/orders/{id}", pedidoHandler.Deletar).Methods("DELETE")

	// Rotas de análise
	api.HandleFunc("/analytics/sales", analiseHandler.Vendas).Methods("GET")
	api.HandleFunc("/analytics/clients", analiseHandler.Clientes).Methods("GET")
	api.HandleFunc("/analytics/products", analiseHandler.Produtos).Methods("GET")
	api.HandleFunc("/analytics/employees", analiseHandler.Funcionarios).Methods("GET")
	api.HandleFunc("/analytics/insights", analiseHandler.Insights).Methods("GET")

	// Consulta de CEP
	api.HandleFunc("/cep/{cep}", enderecoHandler.BuscarCEP).Methods("GET")

	// Rotas de administrador
	admin := api.NewRoute().Subrouter()
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/products", produtoHandler.Create).Methods("POST")
	admin.HandleFunc("/products/{id}", produtoHandler.Update).Methods("PATCH")
	admin.HandleFunc("/products/{id}", produtoHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/users", usuarioHandler.List).Methods("GET")
	admin.HandleFunc("/users", usuarioHandler.Create).Methods("POST")
	admin.HandleFunc("/users/{id}", usuarioHandler.GetByID).Methods("GET")
	admin.HandleFunc("/users/{id}", usuarioHandler.Update).Methods("PATCH")
	admin.HandleFunc("/users/{id}", usuarioHandler.Delete).Methods("DELETE")

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("erro ao encerrar servidor: %v", err)
		}
	}()

	log.Printf("Servidor rodando em http://localhost:%s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
