package domain

// TokenPair é o par de tokens devolvido pelo POST token/.
// Os tokens são opacos para o cliente: nenhuma validação de expiração ou
// assinatura é feita localmente.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// UserInfo são os dados do usuário logado, obtidos via GET user/info/.
type UserInfo struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// DisplayName retorna o nome de exibição do usuário no cabeçalho:
// primeiro nome quando presente, senão o username.
func (u UserInfo) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}
