package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"estoquefront/internal/domain"
	apperror "estoquefront/internal/errors"
	"estoquefront/internal/pkg/logger"
)

// TokenSource entrega o token de acesso vigente no momento da chamada.
// A leitura é feita a cada requisição: um token renovado em outro ponto da
// aplicação é usado pela próxima chamada sem cliente obsoleto em cache.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, bool)
}

// Client é a fábrica de requisições autenticadas contra a API remota de
// estoque. Base URL fixa; header Authorization montado por chamada.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
	logger  logger.Logger
}

// New cria um novo cliente da API remota.
// Sem timeout no http.Client: as requisições correm até completar ou
// falhar, com cancelamento apenas via contexto do chamador.
func New(baseURL string, tokens TokenSource, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/",
		httpc:   &http.Client{},
		tokens:  tokens,
		logger:  log,
	}
}

// --- Autenticação (único uso não autenticado) ---

// Login troca credenciais por um par de tokens via POST token/.
// Não armazena nada: a posse da sessão é do chamador. Falhas são
// propagadas sem tradução adicional.
func (c *Client) Login(ctx context.Context, username, password string) (domain.TokenPair, error) {
	body := map[string]string{"username": username, "password": password}

	var pair domain.TokenPair
	if err := c.do(ctx, http.MethodPost, "token/", body, &pair, false); err != nil {
		return domain.TokenPair{}, err
	}
	return pair, nil
}

// --- Endpoints autenticados ---

// UserInfo busca os dados do usuário logado via GET user/info/.
func (c *Client) UserInfo(ctx context.Context) (domain.UserInfo, error) {
	var info domain.UserInfo
	if err := c.do(ctx, http.MethodGet, "user/info/", nil, &info, true); err != nil {
		return domain.UserInfo{}, err
	}
	return info, nil
}

// ListarProdutos lista os produtos, opcionalmente filtrados por um termo de
// busca. O servidor devolve a lista em ordem alfabética.
func (c *Client) ListarProdutos(ctx context.Context, busca string) ([]domain.Produto, error) {
	path := "produtos/"
	if busca != "" {
		path += "?search=" + url.QueryEscape(busca)
	}

	var produtos []domain.Produto
	if err := c.do(ctx, http.MethodGet, path, nil, &produtos, true); err != nil {
		return nil, err
	}
	return produtos, nil
}

// CriarProduto cria um produto via POST produtos/.
func (c *Client) CriarProduto(ctx context.Context, payload domain.ProdutoPayload) (domain.Produto, error) {
	var produto domain.Produto
	if err := c.do(ctx, http.MethodPost, "produtos/", payload, &produto, true); err != nil {
		return domain.Produto{}, err
	}
	return produto, nil
}

// AtualizarProduto edita um produto via PUT produtos/{id}/.
// O payload de edição nunca carrega estoque_atual_produto.
func (c *Client) AtualizarProduto(ctx context.Context, id int, payload domain.ProdutoPayload) (domain.Produto, error) {
	var produto domain.Produto
	path := fmt.Sprintf("produtos/%d/", id)
	if err := c.do(ctx, http.MethodPut, path, payload, &produto, true); err != nil {
		return domain.Produto{}, err
	}
	return produto, nil
}

// ExcluirProduto remove um produto via DELETE produtos/{id}/.
func (c *Client) ExcluirProduto(ctx context.Context, id int) error {
	path := fmt.Sprintf("produtos/%d/", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, true)
}

// ListarMovimentacoes lista o histórico via GET movimentacoes/.
// O servidor devolve da mais recente para a mais antiga.
func (c *Client) ListarMovimentacoes(ctx context.Context) ([]domain.Movimentacao, error) {
	var movimentacoes []domain.Movimentacao
	if err := c.do(ctx, http.MethodGet, "movimentacoes/", nil, &movimentacoes, true); err != nil {
		return nil, err
	}
	return movimentacoes, nil
}

// CriarMovimentacao registra uma movimentação via POST movimentacoes/.
// A resposta pode carregar alerta_estoque em saídas que deixam o produto no
// mínimo ou abaixo dele.
func (c *Client) CriarMovimentacao(ctx context.Context, payload domain.MovimentacaoPayload) (domain.MovimentacaoCriada, error) {
	var criada domain.MovimentacaoCriada
	if err := c.do(ctx, http.MethodPost, "movimentacoes/", payload, &criada, true); err != nil {
		return domain.MovimentacaoCriada{}, err
	}
	return criada, nil
}

// --- Núcleo de requisição e decodificação de erros ---

// do monta, envia e decodifica uma requisição. Toda a tradução de erro
// remoto para a taxonomia tipada acontece aqui, uma única vez.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authenticated bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperror.NewRemoteError("Falha ao serializar o corpo da requisição.", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperror.NewRemoteError("Falha ao montar a requisição.", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if authenticated {
		// Token lido do store a cada chamada. Ausente, o header é omitido e
		// o servidor responde 401.
		if token, ok := c.tokens.AccessToken(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Error("Falha de transporte na chamada à API remota.", err)
		return apperror.NewRemoteError("Erro de conexão com o servidor.", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.decodeError(resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.logger.Error("Falha ao decodificar resposta da API remota.", err)
			return apperror.NewRemoteError("Resposta inválida do servidor.", err)
		}
	}

	c.logger.Debug("Chamada à API remota concluída.", map[string]interface{}{
		"method": method,
		"path":   path,
		"status": resp.StatusCode,
	})
	return nil
}

// decodeError traduz uma resposta de erro HTTP para a taxonomia tipada:
// 401 vira AuthenticationError; corpo 4xx no formato {campo: [mensagens]}
// vira FieldError; o restante vira RemoteError genérico.
func (c *Client) decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized {
		return apperror.NewAuthenticationError("O servidor rejeitou as credenciais da sessão.")
	}

	if resp.StatusCode < 500 {
		if fields := decodeFieldBody(raw); len(fields) > 0 {
			return apperror.NewFieldError(fields)
		}
	}

	c.logger.Warn("Resposta de erro não mapeada da API remota.", map[string]interface{}{
		"status": resp.StatusCode,
	})
	return apperror.NewRemoteError(
		fmt.Sprintf("O servidor respondeu com status %d.", resp.StatusCode), nil)
}

// chavesNaoDeCampo são as chaves que o servidor usa para erros que não
// pertencem a um campo do formulário (e.g. {"detail": "Não encontrado."} em
// um 404). Sem campo real, a resposta cai no erro remoto genérico.
var chavesNaoDeCampo = map[string]bool{
	"detail":           true,
	"non_field_errors": true,
}

// decodeFieldBody extrai o mapa campo -> mensagem do corpo de erro no
// formato do servidor (valores como lista de strings ou string única).
func decodeFieldBody(raw []byte) domain.FormErrors {
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}

	fields := domain.FormErrors{}
	for campo, valor := range body {
		if chavesNaoDeCampo[campo] {
			continue
		}
		switch v := valor.(type) {
		case string:
			fields[campo] = v
		case []interface{}:
			msgs := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					msgs = append(msgs, s)
				}
			}
			if len(msgs) > 0 {
				fields[campo] = strings.Join(msgs, ", ")
			}
		}
	}
	return fields
}
