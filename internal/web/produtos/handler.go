package produtos

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"estoquefront/internal/domain"
	apperror "estoquefront/internal/errors"
	"estoquefront/internal/pkg/logger"
	"estoquefront/internal/service/produtoservice"
	"estoquefront/internal/web/auth"
	"estoquefront/internal/web/view"
)

// ProdutoService define o contrato que o Handler espera da camada de Serviço.
type ProdutoService interface {
	Listar(ctx context.Context, busca string) ([]domain.Produto, error)
	Salvar(ctx context.Context, form domain.ProdutoForm) (produtoservice.Resultado, error)
	Excluir(ctx context.Context, id int) error
}

// AuthService é o contrato mínimo para o usuário do cabeçalho.
type AuthService interface {
	UserInfo(ctx context.Context) (domain.UserInfo, error)
}

// Handler agrupa os handlers das páginas do catálogo de produtos.
type Handler struct {
	Service ProdutoService
	Auth    AuthService
	View    *view.Renderer
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc ProdutoService, authSvc AuthService, renderer *view.Renderer, log logger.Logger) *Handler {
	return &Handler{Service: svc, Auth: authSvc, View: renderer, Logger: log}
}

// --- Dados das páginas ---

type listaData struct {
	view.Base
	Produtos   []domain.Produto
	Busca      string
	ErroGlobal string
}

type formData struct {
	view.Base
	Form         domain.ProdutoForm
	Erros        domain.FormErrors
	Edicao       bool
	EstoqueAtual int
	Acao         string
}

type excluirData struct {
	view.Base
	Produto domain.Produto
}

// usuario resolve o nome do cabeçalho. Um 401 aqui derruba a sessão como em
// qualquer outra chamada autenticada; o retorno false indica que a resposta
// já foi escrita. Outras falhas apenas deixam o cabeçalho sem nome.
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

// --- Rotas planas (/produtos e /produtos/novo) ---

// ListHandler atende GET /produtos (lista, com busca opcional) e
// POST /produtos (criação).
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.lista(w, r, "")
	case http.MethodPost:
		h.salvar(w, r, domain.ProdutoForm{})
	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// NovoHandler atende GET /produtos/novo com o formulário de criação.
func (h *Handler) NovoHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	h.renderForm(w, r, http.StatusOK, formData{
		Form: domain.DefaultProdutoForm(),
		Acao: "/produtos",
	})
}

// SubrotaHandler despacha /produtos/{id}/editar e /produtos/{id}/excluir.
// A extração de segmentos segue o roteamento manual do ServeMux.
func (h *Handler) SubrotaHandler(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(r.URL.Path, "/")
	segments := strings.Split(path, "/")

	// Esperado: ["produtos", "{id}", "{acao}"]
	if len(segments) != 3 {
		http.NotFound(w, r)
		return
	}

	id, err := strconv.Atoi(segments[1])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	switch segments[2] {
	case "editar":
		h.editar(w, r, id)
	case "excluir":
		h.excluir(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

// --- Implementações ---

// lista renderiza a listagem, propagando uma eventual mensagem global.
func (h *Handler) lista(w http.ResponseWriter, r *http.Request, erroGlobal string) {
	ctx := r.Context()
	busca := r.URL.Query().Get("busca")

	produtos, err := h.Service.Listar(ctx, busca)
	if err != nil {
		if apperror.IsAuthentication(err) {
			auth.ForcarLogout(w, r, h.Logger)
			return
		}
		h.Logger.Error("Falha ao listar produtos.", err)
		erroGlobal = "Erro ao carregar produtos. Tente novamente."
	}

	nome, ok := h.usuario(w, r)
	if !ok {
		return
	}

	h.View.Render(w, http.StatusOK, "produtos", listaData{
		Base:       view.Base{Titulo: "Produtos", Usuario: nome},
		Produtos:   produtos,
		Busca:      busca,
		ErroGlobal: erroGlobal,
	})
}

// editar atende GET (formulário preenchido) e POST (submissão da edição).
func (h *Handler) editar(w http.ResponseWriter, r *http.Request, id int) {
	switch r.Method {
	case http.MethodGet:
		produto, ok := h.buscarProduto(w, r, id)
		if !ok {
			return
		}
		h.renderForm(w, r, http.StatusOK, formData{
			Form: domain.ProdutoForm{
				ID:            strconv.Itoa(produto.ID),
				Nome:          produto.NomeProduto,
				Descricao:     produto.DescricaoProduto,
				UnidadeMedida: produto.UnidadeMedidaProduto,
				EstoqueMinimo: strconv.Itoa(produto.EstoqueMinimoProduto),
			},
			Edicao:       true,
			EstoqueAtual: produto.EstoqueAtualProduto,
			Acao:         "/produtos/" + strconv.Itoa(id) + "/editar",
		})
	case http.MethodPost:
		h.salvar(w, r, domain.ProdutoForm{ID: strconv.Itoa(id)})
	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// salvar processa criação ou edição; o ID pré-preenchido distingue os dois.
func (h *Handler) salvar(w http.ResponseWriter, r *http.Request, base domain.ProdutoForm) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Formulário inválido.", http.StatusBadRequest)
		return
	}

	form := domain.ProdutoForm{
		ID:            base.ID,
		Nome:          r.PostFormValue("nome_produto"),
		Descricao:     r.PostFormValue("descricao_produto"),
		UnidadeMedida: r.PostFormValue("unidade_medida_produto"),
		EstoqueMinimo: r.PostFormValue("estoque_minimo_produto"),
		EstoqueAtual:  r.PostFormValue("estoque_atual_produto"),
	}

	resultado, err := h.Service.Salvar(ctx, form)
	if err != nil {
		if apperror.IsAuthentication(err) {
			auth.ForcarLogout(w, r, h.Logger)
			return
		}
		h.Logger.Error("Falha inesperada ao salvar produto.", err)
		http.Error(w, "Erro interno.", http.StatusInternalServerError)
		return
	}

	if resultado.Estado != produtoservice.Sucesso {
		edicao := base.ID != ""
		acao := "/produtos"
		var estoqueAtual int
		if edicao {
			acao = "/produtos/" + base.ID + "/editar"
			if produto, ok := h.buscarProduto(w, r, atoiOrZero(base.ID)); ok {
				estoqueAtual = produto.EstoqueAtualProduto
			} else {
				return
			}
		}
		h.renderForm(w, r, http.StatusOK, formData{
			Form:         resultado.Form,
			Erros:        resultado.Erros,
			Edicao:       edicao,
			EstoqueAtual: estoqueAtual,
			Acao:         acao,
		})
		return
	}

	// Sucesso: volta para a listagem, que refaz a busca completa no servidor.
	http.Redirect(w, r, "/produtos", http.StatusSeeOther)
}

// excluir atende GET (página de confirmação) e POST (exclusão confirmada).
// A requisição DELETE só é emitida após a confirmação explícita.
func (h *Handler) excluir(w http.ResponseWriter, r *http.Request, id int) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		produto, ok := h.buscarProduto(w, r, id)
		if !ok {
			return
		}
		nome, ok := h.usuario(w, r)
		if !ok {
			return
		}
		h.View.Render(w, http.StatusOK, "produto_excluir", excluirData{
			Base:    view.Base{Titulo: "Excluir Produto", Usuario: nome},
			Produto: produto,
		})
	case http.MethodPost:
		if err := h.Service.Excluir(ctx, id); err != nil {
			if apperror.IsAuthentication(err) {
				auth.ForcarLogout(w, r, h.Logger)
				return
			}
			h.Logger.Error("Falha ao excluir produto.", err)
			h.lista(w, r, "Erro ao excluir. Tente novamente.")
			return
		}
		http.Redirect(w, r, "/produtos", http.StatusSeeOther)
	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// buscarProduto localiza um produto pelo id na listagem completa.
// A API não expõe GET por id, então a lista é a fonte.
func (h *Handler) buscarProduto(w http.ResponseWriter, r *http.Request, id int) (domain.Produto, bool) {
	produtos, err := h.Service.Listar(r.Context(), "")
	if err != nil {
		if apperror.IsAuthentication(err) {
			auth.ForcarLogout(w, r, h.Logger)
			return domain.Produto{}, false
		}
		h.Logger.Error("Falha ao carregar produto.", err)
		h.lista(w, r, "Erro ao carregar produtos. Tente novamente.")
		return domain.Produto{}, false
	}

	for _, p := range produtos {
		if p.ID == id {
			return p, true
		}
	}

	http.NotFound(w, r)
	return domain.Produto{}, false
}

// renderForm renderiza o formulário de produto com o cabeçalho resolvido.
func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, data formData) {
	nome, ok := h.usuario(w, r)
	if !ok {
		return
	}
	titulo := "Novo Produto"
	if data.Edicao {
		titulo = "Editar Produto"
	}
	data.Base = view.Base{Titulo: titulo, Usuario: nome}
	h.View.Render(w, status, "produto_form", data)
}

func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
