package produtoservice

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"estoquefront/internal/domain"
	apperror "estoquefront/internal/errors"
	"estoquefront/internal/pkg/logger"
)

// API define o contrato que este Serviço espera da camada de requisição.
type API interface {
	ListarProdutos(ctx context.Context, busca string) ([]domain.Produto, error)
	CriarProduto(ctx context.Context, payload domain.ProdutoPayload) (domain.Produto, error)
	AtualizarProduto(ctx context.Context, id int, payload domain.ProdutoPayload) (domain.Produto, error)
	ExcluirProduto(ctx context.Context, id int) error
}

// Estado é o desfecho de uma submissão de produto.
type Estado int

const (
	Sucesso Estado = iota
	RejeitadoLocal
	RejeitadoRemoto
)

// Resultado é o desfecho de um Salvar: estado, Form Error Set e o produto
// devolvido pelo servidor no sucesso.
type Resultado struct {
	Estado  Estado
	Erros   domain.FormErrors
	Produto domain.Produto
	Form    domain.ProdutoForm
}

// Service implementa o fluxo do catálogo de produtos: listagem com busca,
// criação, edição e exclusão, sempre via cliente autenticado.
type Service struct {
	api    API
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Produto.
func NewService(api API, log logger.Logger) *Service {
	return &Service{api: api, logger: log}
}

// Listar busca os produtos, opcionalmente filtrados por um termo.
func (s *Service) Listar(ctx context.Context, busca string) ([]domain.Produto, error) {
	return s.api.ListarProdutos(ctx, strings.TrimSpace(busca))
}

// Salvar valida e submete a criação (ID vazio) ou edição de um produto.
//
// O estoque inicial só participa da criação; na edição o campo é descartado
// do payload mesmo que presente no formulário, pois o estoque atual é
// mutado apenas por movimentações.
//
// O retorno de erro é não-nulo apenas para falha de autenticação (401).
func (s *Service) Salvar(ctx context.Context, form domain.ProdutoForm) (Resultado, error) {
	edicao := strings.TrimSpace(form.ID) != ""

	payload, id, erros := validar(form, edicao)
	if len(erros) > 0 {
		return Resultado{Estado: RejeitadoLocal, Erros: erros, Form: form}, nil
	}

	var (
		produto domain.Produto
		err     error
	)
	if edicao {
		produto, err = s.api.AtualizarProduto(ctx, id, payload)
	} else {
		produto, err = s.api.CriarProduto(ctx, payload)
	}

	if err != nil {
		if apperror.IsAuthentication(err) {
			return Resultado{}, err
		}

		var fieldErr *apperror.FieldError
		if errors.As(err, &fieldErr) {
			erros := domain.FormErrors{}
			for campo, msg := range fieldErr.Fields {
				erros[campo] = msg
			}
			if _, ok := erros["nome_produto"]; ok {
				// Violação de unicidade do nome reportada pelo servidor.
				erros["nome_produto"] = "Este nome de produto já existe."
			}
			return Resultado{Estado: RejeitadoRemoto, Erros: erros, Form: form}, nil
		}

		s.logger.Error("Falha remota ao salvar produto.", err)
		return Resultado{
			Estado: RejeitadoRemoto,
			Erros:  domain.FormErrors{domain.ChaveErroGlobal: "Erro ao salvar. Verifique sua conexão ou tente novamente."},
			Form:   form,
		}, nil
	}

	s.logger.Info("Produto salvo.", map[string]interface{}{
		"produto_id": produto.ID,
		"edicao":     edicao,
	})
	return Resultado{Estado: Sucesso, Produto: produto, Form: domain.DefaultProdutoForm()}, nil
}

// Excluir remove um produto. O chamador é responsável por só invocar após a
// confirmação explícita do usuário.
func (s *Service) Excluir(ctx context.Context, id int) error {
	if err := s.api.ExcluirProduto(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Produto excluído.", map[string]interface{}{"produto_id": id})
	return nil
}

// validar aplica o esquema local do produto. Na edição, o estoque atual não
// entra no payload; na criação, campo vazio vale 0.
func validar(form domain.ProdutoForm, edicao bool) (domain.ProdutoPayload, int, domain.FormErrors) {
	erros := domain.FormErrors{}
	var payload domain.ProdutoPayload
	var id int

	if edicao {
		n, err := strconv.Atoi(strings.TrimSpace(form.ID))
		if err != nil {
			erros[domain.ChaveErroGlobal] = "Produto inválido para edição."
		} else {
			id = n
		}
	}

	nome := strings.TrimSpace(form.Nome)
	if len([]rune(nome)) < 3 {
		erros["nome_produto"] = "Nome deve ter pelo menos 3 caracteres."
	} else {
		payload.NomeProduto = nome
	}

	unidade := strings.TrimSpace(form.UnidadeMedida)
	if unidade == "" {
		erros["unidade_medida_produto"] = "Unidade de medida é obrigatória."
	} else {
		payload.UnidadeMedidaProduto = unidade
	}

	minimo, err := strconv.Atoi(strings.TrimSpace(form.EstoqueMinimo))
	if err != nil || minimo < 1 {
		erros["estoque_minimo_produto"] = "O estoque mínimo deve ser 1 ou mais."
	} else {
		payload.EstoqueMinimoProduto = minimo
	}

	if !edicao {
		atualStr := strings.TrimSpace(form.EstoqueAtual)
		if atualStr == "" {
			atualStr = "0"
		}
		atual, err := strconv.Atoi(atualStr)
		if err != nil || atual < 0 {
			erros["estoque_atual_produto"] = "O estoque atual não pode ser negativo."
		} else {
			payload.EstoqueAtualProduto = &atual
		}
	}

	payload.DescricaoProduto = strings.TrimSpace(form.Descricao)

	if len(erros) > 0 {
		return domain.ProdutoPayload{}, 0, erros
	}
	return payload, id, nil
}
