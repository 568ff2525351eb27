package middleware

import (
	"context"
	"net/http"

	"estoquefront/internal/pkg/session"
)

// ContextKey é o tipo das chaves de contexto deste pacote. Usamos um tipo
// próprio para garantir que a chave seja única e não conflite com chaves
// string de outros pacotes.
type ContextKey int

const (
	sessionKey ContextKey = iota
)

// WithSession resolve a sessão do navegador (via cookie) e a anexa ao
// contexto da requisição. Deve envolver todas as rotas.
func WithSession(manager *session.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := manager.Session(w, r)
			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext extrai o handle de sessão anexado pelo WithSession.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*session.Session)
	return sess, ok
}

// RequireSession é o guardião de rota: decide de forma síncrona, sem
// round trip de rede. Sem token de acesso presente, redireciona para o
// login em vez de renderizar a página protegida. A validade do token no
// servidor é descoberta depois, na primeira chamada que devolver 401.
func RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFromContext(r.Context())
		if !ok || !sess.IsAuthenticated(r.Context()) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// SessionTokenSource implementa apiclient.TokenSource lendo o token da
// sessão anexada ao contexto da requisição corrente.
type SessionTokenSource struct{}

// AccessToken lê o token de acesso vigente da sessão no contexto.
func (SessionTokenSource) AccessToken(ctx context.Context) (string, bool) {
	sess, ok := SessionFromContext(ctx)
	if !ok {
		return "", false
	}
	return sess.AccessToken(ctx)
}
