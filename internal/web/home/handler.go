package home

import (
	"context"
	"net/http"

	"estoquefront/internal/domain"
	apperror "estoquefront/internal/errors"
	"estoquefront/internal/pkg/logger"
	"estoquefront/internal/web/auth"
	"estoquefront/internal/web/view"
)

// AuthService define o contrato que o Handler espera da camada de Serviço.
type AuthService interface {
	UserInfo(ctx context.Context) (domain.UserInfo, error)
}

// Handler atende a página inicial com os cartões dos módulos.
type Handler struct {
	Service AuthService
	View    *view.Renderer
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc AuthService, renderer *view.Renderer, log logger.Logger) *Handler {
	return &Handler{Service: svc, View: renderer, Logger: log}
}

type homeData struct {
	view.Base
}

// HomeHandler atende GET /home. A busca do usuário do cabeçalho é a
// primeira chamada autenticada após o login: um 401 aqui derruba a sessão.
func (h *Handler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	info, err := h.Service.UserInfo(ctx)
	if err != nil {
		if apperror.IsAuthentication(err) {
			auth.ForcarLogout(w, r, h.Logger)
			return
		}
		h.Logger.Error("Falha ao buscar dados do usuário.", err)
		// Sem nome de usuário a página ainda é utilizável.
	}

	h.View.Render(w, http.StatusOK, "home", homeData{
		Base: view.Base{Titulo: "Home", Usuario: info.DisplayName()},
	})
}
