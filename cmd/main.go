package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Pacotes de infraestrutura e utilitários
	"estoquefront/config"
	"estoquefront/internal/pkg/logger"
	"estoquefront/internal/pkg/middleware"
	"estoquefront/internal/pkg/session"

	// Camadas da aplicação para Injeção de Dependências
	"estoquefront/internal/apiclient"
	"estoquefront/internal/service/authservice"
	"estoquefront/internal/service/movimentacaoservice"
	"estoquefront/internal/service/produtoservice"
	"estoquefront/internal/web/auth"
	"estoquefront/internal/web/estoque"
	"estoquefront/internal/web/home"
	"estoquefront/internal/web/produtos"
	"estoquefront/internal/web/router"
	"estoquefront/internal/web/view"
)

func main() {
	// 1. Configuração e Inicialização
	stdlog.Println("⚡ Inicializando front end de estoque...")

	// O godotenv.Load() procura por um arquivo chamado .env na raiz.
	if err := godotenv.Load(); err != nil {
		// Sem .env as variáveis essenciais podem estar no ambiente do
		// sistema (ex: Docker), então apenas avisamos.
		stdlog.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", nil)

	// 2. Infraestrutura de sessão (Redis)
	store := session.NewRedisStore(cfg.RedisAddr, cfg.SessionTTL)
	manager := session.NewManager(store, cfg.SessionTTL)
	log.Info("Store de sessões Redis inicializado.", nil)

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Cliente da API -> Service -> Handler

	// A. Cliente da API remota de estoque. O token de acesso é lido da
	// sessão da requisição corrente, a cada requisição.
	api := apiclient.New(cfg.APIBaseURL, middleware.SessionTokenSource{}, log)
	log.Debug("Cliente da API remota inicializado.", nil)

	// B. Serviços (Camada de Lógica de Negócio)
	authSvc := authservice.NewService(api, log)
	produtoSvc := produtoservice.NewService(api, log)
	movimentacaoSvc := movimentacaoservice.NewService(api, log)
	log.Debug("Serviços inicializados.", nil)

	// C. Renderização (templates embarcados)
	renderer, err := view.New(log)
	if err != nil {
		log.Fatal("Falha ao compilar templates.", err)
	}

	// D. Handlers (Camada de Apresentação)
	authHandler := auth.NewHandler(authSvc, renderer, log)
	homeHandler := home.NewHandler(authSvc, renderer, log)
	produtosHandler := produtos.NewHandler(produtoSvc, authSvc, renderer, log)
	estoqueHandler := estoque.NewHandler(movimentacaoSvc, authSvc, renderer, log)
	log.Debug("Handlers inicializados.", nil)

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(authHandler, homeHandler, produtosHandler, estoqueHandler, router.Options{
		SessionManager:  manager,
		LoginCounter:    store,
		RateLimitMax:    cfg.RateLimitMaxRequests,
		RateLimitJanela: cfg.RateLimitPeriod,
		Logger:          log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
