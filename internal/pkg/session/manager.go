package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"estoquefront/internal/domain"
)

// CookieName é o cookie que identifica a sessão do navegador. O cookie
// carrega apenas um id opaco; os tokens nunca saem do servidor.
const CookieName = "estoque_sessao"

// Manager é o ponto único de posse da sessão: resolve o cookie do navegador
// e entrega um handle Session amarrado ao store durável.
type Manager struct {
	store Store
	ttl   time.Duration
}

// NewManager cria um novo gerenciador de sessões.
func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// Session resolve (ou cria) a sessão do navegador da requisição.
// Quando não há cookie, um novo id é emitido e gravado na resposta.
func (m *Manager) Session(w http.ResponseWriter, r *http.Request) *Session {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return &Session{store: m.store, id: cookie.Value}
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.ttl / time.Second),
	})
	return &Session{store: m.store, id: id}
}

// Session é o handle de uma sessão de navegador específica. Expõe as quatro
// operações do ciclo de vida da autenticação.
type Session struct {
	store Store
	id    string
}

// ID retorna o identificador opaco da sessão.
func (s *Session) ID() string { return s.id }

// Set armazena o par de tokens. Nenhuma validação de formato é feita:
// os tokens são opacos para o cliente.
func (s *Session) Set(ctx context.Context, accessToken, refreshToken string) error {
	return s.store.Set(ctx, s.id, domain.TokenPair{Access: accessToken, Refresh: refreshToken})
}

// AccessToken retorna o token de acesso atual, lido do store a cada chamada.
// Ausência (ou falha de leitura) é reportada como (vazio, false).
func (s *Session) AccessToken(ctx context.Context) (string, bool) {
	pair, err := s.store.Get(ctx, s.id)
	if err != nil || pair.Access == "" {
		return "", false
	}
	return pair.Access, true
}

// IsAuthenticated informa se há um token de acesso presente. A presença do
// token é o único predicado de autenticação: não há verificação de
// expiração ou assinatura no cliente.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.AccessToken(ctx)
	return ok
}

// Clear remove os dois tokens armazenados (logout explícito ou 401).
func (s *Session) Clear(ctx context.Context) error {
	return s.store.Clear(ctx, s.id)
}
