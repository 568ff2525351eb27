package movimentacaoservice

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"estoquefront/internal/domain"
	apperror "estoquefront/internal/errors"
	"estoquefront/internal/pkg/logger"
)

// API define o contrato que este Serviço espera da camada de requisição
// (internal/apiclient).
type API interface {
	ListarProdutos(ctx context.Context, busca string) ([]domain.Produto, error)
	ListarMovimentacoes(ctx context.Context) ([]domain.Movimentacao, error)
	CriarMovimentacao(ctx context.Context, payload domain.MovimentacaoPayload) (domain.MovimentacaoCriada, error)
}

// Notificador é o canal de confirmação bloqueante do alerta de estoque
// mínimo. Disparado no máximo uma vez por submissão, sempre em conjunto com
// a exibição inline — um canal nunca suprime o outro.
type Notificador interface {
	AlertaEstoque(msg string)
}

// Estado é o desfecho de uma submissão de movimentação.
type Estado int

const (
	Sucesso Estado = iota
	RejeitadoLocal
	RejeitadoRemoto
)

// Dados agrupa as listas exibidas na página de estoque.
type Dados struct {
	Produtos      []domain.Produto
	Movimentacoes []domain.Movimentacao
}

// Resultado é o desfecho completo de uma submissão: estado, Form Error Set,
// alerta inline, formulário (resetado no sucesso, ecoado na rejeição) e as
// listas recarregadas por inteiro quando a movimentação foi registrada.
type Resultado struct {
	Estado       Estado
	Erros        domain.FormErrors
	Alerta       string
	Movimentacao domain.Movimentacao
	Dados        Dados
	Form         domain.MovimentacaoForm
}

// Service implementa o fluxo de registro de movimentações de estoque.
type Service struct {
	api    API
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Movimentação.
func NewService(api API, log logger.Logger) *Service {
	return &Service{api: api, logger: log}
}

// Dados carrega produtos e movimentações para a página de estoque.
func (s *Service) Dados(ctx context.Context) (Dados, error) {
	produtos, err := s.api.ListarProdutos(ctx, "")
	if err != nil {
		return Dados{}, err
	}

	movimentacoes, err := s.api.ListarMovimentacoes(ctx)
	if err != nil {
		return Dados{}, err
	}

	return Dados{Produtos: produtos, Movimentacoes: movimentacoes}, nil
}

// Registrar valida e submete uma movimentação.
//
// Validação local reprovada: nenhuma chamada de rede acontece e o Form
// Error Set contém exatamente os campos ofensores. Sucesso: o alerta de
// estoque (quando presente) é guardado para exibição inline E disparado no
// notificador, o formulário volta aos padrões e as listas são recarregadas
// por inteiro. Rejeição remota: erro de campo de estoque insuficiente volta
// para quantidade_movimentacao; qualquer outro erro vira a mensagem global.
//
// O retorno de erro é não-nulo apenas para falha de autenticação (401), que
// o chamador deve converter em limpeza de sessão + redirecionamento.
func (s *Service) Registrar(ctx context.Context, form domain.MovimentacaoForm, notificador Notificador) (Resultado, error) {
	// 1. Validação local (estado Validating -> RejectedLocal)
	payload, erros := validar(form)
	if len(erros) > 0 {
		s.logger.Debug("Movimentação rejeitada na validação local.", map[string]interface{}{
			"campos": len(erros),
		})
		return Resultado{Estado: RejeitadoLocal, Erros: erros, Form: form}, nil
	}

	// 2. Submissão (estado Submitting)
	criada, err := s.api.CriarMovimentacao(ctx, payload)
	if err != nil {
		if apperror.IsAuthentication(err) {
			return Resultado{}, err
		}

		var fieldErr *apperror.FieldError
		if errors.As(err, &fieldErr) {
			if msg, ok := fieldErr.Fields["quantidade_movimentacao"]; ok {
				// Estoque insuficiente reportado pelo servidor volta para o
				// campo de quantidade.
				return Resultado{
					Estado: RejeitadoRemoto,
					Erros:  domain.FormErrors{"quantidade_movimentacao": msg},
					Form:   form,
				}, nil
			}
		}

		s.logger.Error("Falha remota ao registrar movimentação.", err)
		return Resultado{
			Estado: RejeitadoRemoto,
			Erros:  domain.FormErrors{domain.ChaveErroGlobal: "Erro ao registrar. Tente novamente."},
			Form:   form,
		}, nil
	}

	// 3. Sucesso: alerta em dois canais, nenhum suprime o outro.
	if criada.AlertaEstoque != "" {
		notificador.AlertaEstoque(criada.AlertaEstoque)
	}

	s.logger.Info("Movimentação registrada.", map[string]interface{}{
		"movimentacao_id": criada.ID,
		"produto":         criada.Produto,
		"categoria":       criada.CategoriaMovimentacao,
		"quantidade":      criada.QuantidadeMovimentacao,
	})

	// 4. Recarga integral das listas (contrato explícito de refresh).
	dados, err := s.Dados(ctx)
	if err != nil {
		if apperror.IsAuthentication(err) {
			return Resultado{}, err
		}
		// A movimentação já foi registrada; a falha de recarga não desfaz o
		// sucesso, apenas deixa as listas vazias para esta renderização.
		s.logger.Error("Falha ao recarregar listas após movimentação.", err)
		dados = Dados{}
	}

	return Resultado{
		Estado:       Sucesso,
		Alerta:       criada.AlertaEstoque,
		Movimentacao: criada.Movimentacao,
		Dados:        dados,
		Form:         domain.DefaultMovimentacaoForm(),
	}, nil
}

// validar aplica o esquema local da movimentação e coage a quantidade.
// Cada campo carrega no máximo a primeira regra reprovada.
func validar(form domain.MovimentacaoForm) (domain.MovimentacaoPayload, domain.FormErrors) {
	erros := domain.FormErrors{}
	var payload domain.MovimentacaoPayload

	produtoID := strings.TrimSpace(form.ProdutoID)
	if produtoID == "" {
		erros["produto_id"] = "Selecione um produto."
	} else if n, err := strconv.Atoi(produtoID); err != nil {
		erros["produto_id"] = "Selecione um produto."
	} else {
		payload.Produto = n
	}

	if form.Categoria != domain.CategoriaEntrada && form.Categoria != domain.CategoriaSaida {
		erros["categoria_movimentacao"] = "Selecione o tipo de movimentação."
	} else {
		payload.CategoriaMovimentacao = form.Categoria
	}

	// Coerção numérica: fração é truncada em direção a zero, depois o
	// inteiro resultante precisa ser 1 ou mais. Entrada não numérica reprova
	// no mesmo campo.
	quantidade, err := strconv.ParseFloat(strings.TrimSpace(form.Quantidade), 64)
	if err != nil || math.IsNaN(quantidade) || math.IsInf(quantidade, 0) {
		erros["quantidade_movimentacao"] = "Quantidade deve ser 1 ou mais."
	} else if q := int(math.Trunc(quantidade)); q < 1 {
		erros["quantidade_movimentacao"] = "Quantidade deve ser 1 ou mais."
	} else {
		payload.QuantidadeMovimentacao = q
	}

	payload.ObservacaoMovimentacao = strings.TrimSpace(form.Observacao)

	if len(erros) > 0 {
		return domain.MovimentacaoPayload{}, erros
	}
	return payload, nil
}
