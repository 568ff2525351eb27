package estoque

import (
	"context"
	"net/http"

	"estoquefront/internal/domain"
	apperror "estoquefront/internal/errors"
	"estoquefront/internal/pkg/logger"
	"estoquefront/internal/service/movimentacaoservice"
	"estoquefront/internal/web/auth"
	"estoquefront/internal/web/view"
)

// MovimentacaoService define o contrato que o Handler espera da camada de
// Serviço.
type MovimentacaoService interface {
	Dados(ctx context.Context) (movimentacaoservice.Dados, error)
	Registrar(ctx context.Context, form domain.MovimentacaoForm, notificador movimentacaoservice.Notificador) (movimentacaoservice.Resultado, error)
}

// AuthService é o contrato mínimo para o usuário do cabeçalho.
type AuthService interface {
	UserInfo(ctx context.Context) (domain.UserInfo, error)
}

// Handler agrupa os handlers da página de gestão de estoque.
type Handler struct {
	Service MovimentacaoService
	Auth    AuthService
	View    *view.Renderer
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc MovimentacaoService, authSvc AuthService, renderer *view.Renderer, log logger.Logger) *Handler {
	return &Handler{Service: svc, Auth: authSvc, View: renderer, Logger: log}
}

type estoqueData struct {
	view.Base
	Dados            movimentacaoservice.Dados
	Form             domain.MovimentacaoForm
	Erros            domain.FormErrors
	Alerta           string
	AlertaBloqueante string
}

// alertaColetor captura o alerta de estoque mínimo da submissão para que a
// renderização o confirme de forma bloqueante, junto com a exibição inline.
type alertaColetor struct {
	msg string
}

func (a *alertaColetor) AlertaEstoque(msg string) {
	a.msg = msg
}

// usuario resolve o nome do cabeçalho. Um 401 aqui derruba a sessão; o
// retorno false indica que a resposta já foi escrita.
func (h *Handler) usuario(w http.ResponseWriter, r *http.Request) (string, bool) {
	info, err := h.Auth.UserInfo(r.Context())
	if err != nil {
		if apperror.IsAuthentication(err) {
			auth.ForcarLogout(w, r, h.Logger)
			return "", false
		}
		h.Logger.Debug("Cabeçalho sem nome de usuário.", map[string]interface{}{"err": err.Error()})
		return "", true
	}
	return info.DisplayName(), true
}

// PageHandler atende GET /estoque com o formulário e o histórico.
func (h *Handler) PageHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	dados, err := h.Service.Dados(ctx)
	erros := domain.FormErrors{}
	if err != nil {
		if apperror.IsAuthentication(err) {
			auth.ForcarLogout(w, r, h.Logger)
			return
		}
		h.Logger.Error("Falha ao carregar dados de estoque.", err)
		erros[domain.ChaveErroGlobal] = "Erro ao carregar dados. Tente novamente."
	}

	nome, ok := h.usuario(w, r)
	if !ok {
		return
	}

	h.View.Render(w, http.StatusOK, "estoque", estoqueData{
		Base:  view.Base{Titulo: "Estoque", Usuario: nome},
		Dados: dados,
		Form:  domain.DefaultMovimentacaoForm(),
		Erros: erros,
	})
}

// RegistrarHandler atende POST /estoque/movimentacoes.
func (h *Handler) RegistrarHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Formulário inválido.", http.StatusBadRequest)
		return
	}

	form := domain.MovimentacaoForm{
		ProdutoID:  r.PostFormValue("produto_id"),
		Categoria:  r.PostFormValue("categoria_movimentacao"),
		Quantidade: r.PostFormValue("quantidade_movimentacao"),
		Observacao: r.PostFormValue("observacao_movimentacao"),
	}

	coletor := &alertaColetor{}
	resultado, err := h.Service.Registrar(ctx, form, coletor)
	if err != nil {
		if apperror.IsAuthentication(err) {
			auth.ForcarLogout(w, r, h.Logger)
			return
		}
		h.Logger.Error("Falha inesperada ao registrar movimentação.", err)
		http.Error(w, "Erro interno.", http.StatusInternalServerError)
		return
	}

	nome, ok := h.usuario(w, r)
	if !ok {
		return
	}

	data := estoqueData{
		Base:             view.Base{Titulo: "Estoque", Usuario: nome},
		Form:             resultado.Form,
		Erros:            resultado.Erros,
		Alerta:           resultado.Alerta,
		AlertaBloqueante: coletor.msg,
	}

	if resultado.Estado == movimentacaoservice.Sucesso {
		data.Dados = resultado.Dados
	} else {
		// Rejeição não recarrega listas pelo Serviço; busca aqui para a
		// página continuar completa.
		dados, err := h.Service.Dados(ctx)
		if err != nil {
			if apperror.IsAuthentication(err) {
				auth.ForcarLogout(w, r, h.Logger)
				return
			}
			h.Logger.Error("Falha ao carregar dados de estoque.", err)
		}
		data.Dados = dados
	}

	h.View.Render(w, http.StatusOK, "estoque", data)
}
