package domain

// Produto representa o item do catálogo, conforme exposto pela API remota.
// Os nomes de campo JSON seguem o contrato do servidor.
type Produto struct {
	ID                   int    `json:"id"`
	NomeProduto          string `json:"nome_produto"`
	DescricaoProduto     string `json:"descricao_produto"`
	EstoqueAtualProduto  int    `json:"estoque_atual_produto"`
	EstoqueMinimoProduto int    `json:"estoque_minimo_produto"`
	UnidadeMedidaProduto string `json:"unidade_medida_produto"`
}

// EstoqueBaixo informa se o estoque atual está no mínimo configurado ou abaixo dele.
// Usado apenas para destaque visual; o alerta oficial vem do servidor.
func (p Produto) EstoqueBaixo() bool {
	return p.EstoqueAtualProduto <= p.EstoqueMinimoProduto
}

// ProdutoPayload é o corpo enviado à API nas operações de criação e edição.
// EstoqueAtualProduto é um ponteiro: presente apenas na criação. Na edição o
// campo NUNCA é enviado, pois o estoque atual é controlado por movimentações.
type ProdutoPayload struct {
	NomeProduto          string `json:"nome_produto"`
	DescricaoProduto     string `json:"descricao_produto"`
	EstoqueMinimoProduto int    `json:"estoque_minimo_produto"`
	UnidadeMedidaProduto string `json:"unidade_medida_produto"`
	EstoqueAtualProduto  *int   `json:"estoque_atual_produto,omitempty"`
}

// ProdutoForm é a entrada crua do formulário HTML de produto.
// Os campos numéricos chegam como string e são validados/coagidos no serviço.
type ProdutoForm struct {
	ID            string
	Nome          string
	Descricao     string
	UnidadeMedida string
	EstoqueMinimo string
	EstoqueAtual  string
}

// DefaultProdutoForm retorna o formulário de criação com os valores iniciais.
func DefaultProdutoForm() ProdutoForm {
	return ProdutoForm{
		UnidadeMedida: "unidade",
		EstoqueMinimo: "1",
		EstoqueAtual:  "0",
	}
}
