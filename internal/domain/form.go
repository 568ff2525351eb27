package domain

// ChaveErroGlobal é a chave do Form Error Set usada para mensagens que não
// pertencem a um campo específico (falha de rede, resposta não mapeada).
const ChaveErroGlobal = "global"

// FormErrors é o Form Error Set: mapa de campo para mensagem, reconstruído
// a cada tentativa de submissão.
type FormErrors map[string]string

// Global retorna a mensagem de erro global, se houver.
func (e FormErrors) Global() string {
	return e[ChaveErroGlobal]
}

// Campo retorna a mensagem associada a um campo do formulário.
func (e FormErrors) Campo(nome string) string {
	return e[nome]
}
