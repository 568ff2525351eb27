package auth

import (
	"context"
	"errors"
	"net/http"

	apperror "estoquefront/internal/errors"
	"estoquefront/internal/pkg/logger"
	"estoquefront/internal/pkg/middleware"
	"estoquefront/internal/service/authservice"
	"estoquefront/internal/web/view"
)

// AuthService define o contrato que o Handler espera da camada de Serviço.
type AuthService interface {
	Login(ctx context.Context, sess authservice.Sessao, username, password string) error
	Logout(ctx context.Context, sess authservice.Sessao) error
}

// Handler agrupa os handlers das páginas de autenticação.
type Handler struct {
	Service AuthService
	View    *view.Renderer
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service, o
// Renderer e o Logger.
func NewHandler(svc AuthService, renderer *view.Renderer, log logger.Logger) *Handler {
	return &Handler{Service: svc, View: renderer, Logger: log}
}

// loginData são os dados da página de login.
type loginData struct {
	view.Base
	Erro     string
	Username string
}

// LoginHandler atende GET (página) e POST (submissão) de /login.
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.loginPage(w, r)
	case http.MethodPost:
		h.loginSubmit(w, r)
	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// loginPage renderiza o formulário. Usuário já autenticado vai direto para
// a home.
func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.SessionFromContext(r.Context()); ok && sess.IsAuthenticated(r.Context()) {
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	}
	h.View.Render(w, http.StatusOK, "login", loginData{Base: view.Base{Titulo: "Login"}})
}

// loginSubmit processa as credenciais e traduz o desfecho para a mensagem
// exibida no formulário.
func (h *Handler) loginSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, ok := middleware.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "Sessão indisponível.", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.View.Render(w, http.StatusBadRequest, "login", loginData{
			Base: view.Base{Titulo: "Login"},
			Erro: "Formulário inválido. Tente novamente.",
		})
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	err := h.Service.Login(ctx, sess, username, password)
	if err == nil {
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	}

	data := loginData{Base: view.Base{Titulo: "Login"}, Username: username}

	var validationErr *apperror.ValidationError
	switch {
	case errors.As(err, &validationErr):
		data.Erro = validationErr.Fields.Global()
	case apperror.IsAuthentication(err):
		data.Erro = "Credenciais inválidas. Tente novamente."
	default:
		h.Logger.Error("Falha inesperada no login.", err)
		data.Erro = "Erro de conexão ou servidor. Tente novamente."
	}

	h.View.Render(w, http.StatusOK, "login", data)
}

// LogoutHandler destrói a sessão e volta para o login.
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	if sess, ok := middleware.SessionFromContext(ctx); ok {
		if err := h.Service.Logout(ctx, sess); err != nil {
			h.Logger.Error("Falha ao encerrar a sessão.", err)
		}
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ForcarLogout limpa a sessão após uma falha de autenticação remota e
// redireciona para o login. Compartilhado pelas páginas protegidas.
func ForcarLogout(w http.ResponseWriter, r *http.Request, log logger.Logger) {
	ctx := r.Context()
	if sess, ok := middleware.SessionFromContext(ctx); ok {
		if err := sess.Clear(ctx); err != nil {
			log.Error("Falha ao limpar sessão após 401.", err)
		}
	}
	log.Warn("Sessão encerrada por falha de autenticação remota.", map[string]interface{}{
		"path": r.URL.Path,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
