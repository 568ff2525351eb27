package router

import (
	"net/http"
	"time"

	"estoquefront/internal/pkg/logger"
	"estoquefront/internal/pkg/middleware"
	"estoquefront/internal/pkg/session"
	"estoquefront/internal/web/auth"
	"estoquefront/internal/web/estoque"
	"estoquefront/internal/web/home"
	"estoquefront/internal/web/produtos"
)

// Options agrupa os parâmetros transversais do roteador.
type Options struct {
	SessionManager  *session.Manager
	LoginCounter    session.Counter
	RateLimitMax    int
	RateLimitJanela time.Duration
	Logger          logger.Logger
}

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(
	authHandler *auth.Handler,
	homeHandler *home.Handler,
	produtosHandler *produtos.Handler,
	estoqueHandler *estoque.Handler,
	opts Options,
) http.Handler {

	mux := http.NewServeMux()

	// --- 1. Health Check ---
	mux.HandleFunc("/ping", PingHandler)

	// --- 2. Rotas públicas ---

	// POST /login passa pelo limitador de tentativas; GET renderiza a página
	// sem consumir a janela.
	limitado := middleware.RateLimiter(opts.LoginCounter, opts.RateLimitMax, opts.RateLimitJanela)(authHandler.LoginHandler)
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			limitado(w, r)
			return
		}
		authHandler.LoginHandler(w, r)
	})

	mux.HandleFunc("/logout", authHandler.LogoutHandler)

	// --- 3. Rotas protegidas pelo guardião de sessão ---
	mux.HandleFunc("/home", middleware.RequireSession(homeHandler.HomeHandler))

	mux.HandleFunc("/produtos", middleware.RequireSession(produtosHandler.ListHandler))
	mux.HandleFunc("/produtos/novo", middleware.RequireSession(produtosHandler.NovoHandler))
	mux.HandleFunc("/produtos/", middleware.RequireSession(produtosHandler.SubrotaHandler))

	mux.HandleFunc("/estoque", middleware.RequireSession(estoqueHandler.PageHandler))
	mux.HandleFunc("/estoque/movimentacoes", middleware.RequireSession(estoqueHandler.RegistrarHandler))

	// --- 4. Raiz ---
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/home", http.StatusSeeOther)
	})

	// --- 5. Middlewares globais ---
	var handler http.Handler = mux
	handler = middleware.WithSession(opts.SessionManager)(handler)
	handler = middleware.RequestLogger(opts.Logger)(handler)

	return handler
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
