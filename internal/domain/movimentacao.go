package domain

import "time"

// Categorias de movimentação aceitas pela API.
const (
	CategoriaEntrada = "ENTRADA"
	CategoriaSaida   = "SAIDA"
)

// Movimentacao representa um registro de entrada ou saída de estoque.
// Movimentações nunca são editadas ou removidas pelo cliente; o estoque
// atual do produto é um agregado calculado pelo servidor.
type Movimentacao struct {
	ID                     int       `json:"id"`
	Produto                int       `json:"produto"`
	ProdutoNome            string    `json:"produto_nome"`
	CategoriaMovimentacao  string    `json:"categoria_movimentacao"`
	QuantidadeMovimentacao int       `json:"quantidade_movimentacao"`
	DataMovimentacao       time.Time `json:"data_movimentacao"`
	Usuario                int       `json:"usuario"`
	UsuarioNome            string    `json:"usuario_nome"`
	ObservacaoMovimentacao string    `json:"observacao_movimentacao"`
}

// MovimentacaoPayload é o corpo enviado no POST movimentacoes/.
// O campo de FK canônico é "produto" (não "produto_id").
type MovimentacaoPayload struct {
	Produto                int    `json:"produto"`
	CategoriaMovimentacao  string `json:"categoria_movimentacao"`
	QuantidadeMovimentacao int    `json:"quantidade_movimentacao"`
	ObservacaoMovimentacao string `json:"observacao_movimentacao"`
}

// MovimentacaoCriada é a resposta do POST movimentacoes/. Em saídas que
// deixam o produto no estoque mínimo ou abaixo dele, o servidor anexa
// alerta_estoque.
type MovimentacaoCriada struct {
	Movimentacao
	AlertaEstoque string `json:"alerta_estoque"`
}

// MovimentacaoForm é a entrada crua do formulário de movimentação.
// Quantidade chega como string e é coagida para inteiro no serviço.
type MovimentacaoForm struct {
	ProdutoID  string
	Categoria  string
	Quantidade string
	Observacao string
}

// DefaultMovimentacaoForm retorna o formulário com os valores padrão
// (ENTRADA, quantidade 1), usados também no reset após o sucesso.
func DefaultMovimentacaoForm() MovimentacaoForm {
	return MovimentacaoForm{
		Categoria:  CategoriaEntrada,
		Quantidade: "1",
	}
}
