package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"estoquefront/internal/apiclient"
	"estoquefront/internal/domain"
	apperror "estoquefront/internal/errors"
	"estoquefront/internal/pkg/logger"
)

// stubTokenSource devolve um token fixo (ou nenhum) para os testes.
type stubTokenSource struct {
	token string
}

func (s stubTokenSource) AccessToken(_ context.Context) (string, bool) {
	return s.token, s.token != ""
}

// TestLogin_SemHeaderDeAutorizacao garante que o login é a única chamada não
// autenticada e que o par de tokens é devolvido como recebido.
func TestLogin_SemHeaderDeAutorizacao(t *testing.T) {
	var gotAuth string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/token/", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"access": "T1", "refresh": "T2"})
	}))
	defer server.Close()

	client := apiclient.New(server.URL, stubTokenSource{token: "nao-deve-ser-usado"}, logger.NewLogger("error"))

	pair, err := client.Login(context.Background(), "maria", "senha123")

	assert.NoError(t, err)
	assert.Equal(t, "T1", pair.Access)
	assert.Equal(t, "T2", pair.Refresh)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "maria", gotBody["username"])
	assert.Equal(t, "senha123", gotBody["password"])
}

// TestListarProdutos_HeaderBearer garante o formato exato do header e o
// repasse do termo de busca.
func TestListarProdutos_HeaderBearer(t *testing.T) {
	var gotAuth, gotSearch string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/produtos/", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotSearch = r.URL.Query().Get("search")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 1, "nome_produto": "Parafuso", "estoque_atual_produto": 5, "estoque_minimo_produto": 10},
		})
	}))
	defer server.Close()

	client := apiclient.New(server.URL, stubTokenSource{token: "T1"}, logger.NewLogger("error"))

	produtos, err := client.ListarProdutos(context.Background(), "para fuso")

	assert.NoError(t, err)
	assert.Equal(t, "Bearer T1", gotAuth)
	assert.Equal(t, "para fuso", gotSearch)
	if assert.Len(t, produtos, 1) {
		assert.Equal(t, "Parafuso", produtos[0].NomeProduto)
		assert.True(t, produtos[0].EstoqueBaixo())
	}
}

// TestDo_SemToken_HeaderOmitido garante que sem token o header Authorization
// é omitido por inteiro, deixando o 401 para o servidor.
func TestDo_SemToken_HeaderOmitido(t *testing.T) {
	var gotAuth string
	var headerPresente bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, headerPresente = r.Header["Authorization"]
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := apiclient.New(server.URL, stubTokenSource{}, logger.NewLogger("error"))

	_, err := client.UserInfo(context.Background())

	assert.Empty(t, gotAuth)
	assert.False(t, headerPresente)
	assert.True(t, apperror.IsAuthentication(err))
}

// TestDecodeError_401 garante que qualquer 401 vira AuthenticationError.
func TestDecodeError_401(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Token expirado"}`))
	}))
	defer server.Close()

	client := apiclient.New(server.URL, stubTokenSource{token: "T-expirado"}, logger.NewLogger("error"))

	_, err := client.ListarMovimentacoes(context.Background())

	assert.Error(t, err)
	assert.True(t, apperror.IsAuthentication(err))
}

// TestDecodeError_CorpoDeCampos garante que um 400 com corpo no formato
// {campo: [mensagens]} vira FieldError com o mapa campo -> mensagem.
func TestDecodeError_CorpoDeCampos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"quantidade_movimentacao": ["Estoque insuficiente para esta saída."]}`))
	}))
	defer server.Close()

	client := apiclient.New(server.URL, stubTokenSource{token: "T1"}, logger.NewLogger("error"))

	_, err := client.CriarMovimentacao(context.Background(), domain.MovimentacaoPayload{
		Produto:                1,
		CategoriaMovimentacao:  domain.CategoriaSaida,
		QuantidadeMovimentacao: 99,
	})

	fields, ok := apperror.FieldsOf(err)
	assert.True(t, ok)
	assert.Equal(t, "Estoque insuficiente para esta saída.", fields["quantidade_movimentacao"])
}

// TestDecodeError_CorpoDetail garante que corpos como {"detail": ...} e
// {"non_field_errors": [...]} não viram rejeição por campo: sem campo de
// formulário real, o erro cai no remoto genérico, que o chamador apresenta
// como mensagem global visível.
func TestDecodeError_CorpoDetail(t *testing.T) {
	corpos := []string{
		`{"detail": "Não encontrado."}`,
		`{"non_field_errors": ["Requisição inválida."]}`,
	}

	for _, corpo := range corpos {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(corpo))
		}))

		client := apiclient.New(server.URL, stubTokenSource{token: "T1"}, logger.NewLogger("error"))

		_, err := client.AtualizarProduto(context.Background(), 7, domain.ProdutoPayload{
			NomeProduto:          "Parafuso",
			UnidadeMedidaProduto: "unidade",
			EstoqueMinimoProduto: 5,
		})

		assert.Error(t, err)
		var remoteErr *apperror.RemoteError
		assert.ErrorAs(t, err, &remoteErr, "corpo %s", corpo)
		_, temCampos := apperror.FieldsOf(err)
		assert.False(t, temCampos, "corpo %s", corpo)

		server.Close()
	}
}

// TestDecodeError_500 garante que erro de servidor vira RemoteError genérico,
// nunca FieldError.
func TestDecodeError_500(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail": "erro interno"}`))
	}))
	defer server.Close()

	client := apiclient.New(server.URL, stubTokenSource{token: "T1"}, logger.NewLogger("error"))

	_, err := client.ListarProdutos(context.Background(), "")

	assert.Error(t, err)
	assert.False(t, apperror.IsAuthentication(err))
	_, temCampos := apperror.FieldsOf(err)
	assert.False(t, temCampos)
}

// TestDo_FalhaDeTransporte garante a tradução de falha de rede para
// RemoteError com mensagem amigável.
func TestDo_FalhaDeTransporte(t *testing.T) {
	// Servidor fechado de propósito para forçar connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := apiclient.New(server.URL, stubTokenSource{token: "T1"}, logger.NewLogger("error"))

	_, err := client.ListarProdutos(context.Background(), "")

	assert.Error(t, err)
	var remoteErr *apperror.RemoteError
	assert.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "Erro de conexão com o servidor.", remoteErr.Msg)
}

// TestCriarMovimentacao_AlertaEstoque garante a decodificação do campo
// alerta_estoque da resposta de criação.
func TestCriarMovimentacao_AlertaEstoque(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/movimentacoes/", r.URL.Path)

		var payload map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		// A chave canônica da FK é "produto".
		assert.Equal(t, float64(7), payload["produto"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{
			"id": 42,
			"produto": 7,
			"categoria_movimentacao": "SAIDA",
			"quantidade_movimentacao": 3,
			"alerta_estoque": "Atenção: Parafuso atingiu o estoque mínimo."
		}`))
	}))
	defer server.Close()

	client := apiclient.New(server.URL, stubTokenSource{token: "T1"}, logger.NewLogger("error"))

	criada, err := client.CriarMovimentacao(context.Background(), domain.MovimentacaoPayload{
		Produto:                7,
		CategoriaMovimentacao:  domain.CategoriaSaida,
		QuantidadeMovimentacao: 3,
	})

	assert.NoError(t, err)
	assert.Equal(t, 42, criada.ID)
	assert.Equal(t, "Atenção: Parafuso atingiu o estoque mínimo.", criada.AlertaEstoque)
}

// TestExcluirProduto_SemConteudo garante que o DELETE aceita 204 sem corpo.
func TestExcluirProduto_SemConteudo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/produtos/7/", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := apiclient.New(server.URL, stubTokenSource{token: "T1"}, logger.NewLogger("error"))

	err := client.ExcluirProduto(context.Background(), 7)

	assert.NoError(t, err)
}
