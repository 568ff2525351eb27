package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"estoquefront/internal/domain"
	apperror "estoquefront/internal/errors"
	"estoquefront/internal/pkg/logger"
	"estoquefront/internal/pkg/middleware"
	"estoquefront/internal/pkg/session"
	"estoquefront/internal/service/authservice"
	"estoquefront/internal/web/auth"
	"estoquefront/internal/web/view"
)

// MockAuthService é uma implementação mock da interface AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, sess authservice.Sessao, username, password string) error {
	args := m.Called(ctx, sess, username, password)
	return args.Error(0)
}

func (m *MockAuthService) Logout(ctx context.Context, sess authservice.Sessao) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

// montar devolve o handler de login envolvido na cadeia de sessão.
func montar(t *testing.T, svc *MockAuthService) (http.Handler, *session.Manager) {
	t.Helper()

	log := logger.NewLogger("error")
	renderer, err := view.New(log)
	assert.NoError(t, err)

	handler := auth.NewHandler(svc, renderer, log)
	manager := session.NewManager(session.NewMemoryStore(), time.Hour)

	mux := http.NewServeMux()
	mux.HandleFunc("/login", handler.LoginHandler)
	mux.HandleFunc("/logout", handler.LogoutHandler)

	return middleware.WithSession(manager)(mux), manager
}

// postForm monta uma requisição POST de formulário HTML.
func postForm(path string, valores string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(valores))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// TestLoginPage_Renderiza garante a página de login sem cabeçalho de usuário.
func TestLoginPage_Renderiza(t *testing.T) {
	mockSvc := new(MockAuthService)
	handler, _ := montar(t, mockSvc)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Login no Sistema")
	assert.NotContains(t, w.Body.String(), "Logout")
}

// TestLoginPage_JaAutenticado garante o redirecionamento direto para a home.
func TestLoginPage_JaAutenticado(t *testing.T) {
	mockSvc := new(MockAuthService)
	handler, manager := montar(t, mockSvc)

	setup := httptest.NewRecorder()
	sess := manager.Session(setup, httptest.NewRequest(http.MethodGet, "/", nil))
	err := sess.Set(context.Background(), "T1", "T2")
	assert.NoError(t, err)
	cookie := setup.Result().Cookies()[0]

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	r.AddCookie(cookie)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/home", w.Header().Get("Location"))
}

// TestLoginSubmit_Sucesso garante o redirecionamento após o login.
func TestLoginSubmit_Sucesso(t *testing.T) {
	mockSvc := new(MockAuthService)
	handler, _ := montar(t, mockSvc)

	mockSvc.On("Login", mock.Anything, mock.Anything, "maria", "senha123").Return(nil)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, postForm("/login", "username=maria&password=senha123"))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/home", w.Header().Get("Location"))
	mockSvc.AssertExpectations(t)
}

// TestLoginSubmit_CamposVazios garante a mensagem da validação local.
func TestLoginSubmit_CamposVazios(t *testing.T) {
	mockSvc := new(MockAuthService)
	handler, _ := montar(t, mockSvc)

	mockSvc.On("Login", mock.Anything, mock.Anything, "maria", "").
		Return(apperror.NewValidationError(domain.FormErrors{
			domain.ChaveErroGlobal: "Preencha todos os campos.",
		}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, postForm("/login", "username=maria&password="))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Preencha todos os campos.")
	// O username digitado é preservado no formulário.
	assert.Contains(t, w.Body.String(), `value="maria"`)
}

// TestLoginSubmit_CredenciaisInvalidas garante a mensagem do 401.
func TestLoginSubmit_CredenciaisInvalidas(t *testing.T) {
	mockSvc := new(MockAuthService)
	handler, _ := montar(t, mockSvc)

	mockSvc.On("Login", mock.Anything, mock.Anything, "maria", "errada").
		Return(apperror.NewAuthenticationError("credenciais inválidas"))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, postForm("/login", "username=maria&password=errada"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Credenciais inválidas. Tente novamente.")
}

// TestLoginSubmit_FalhaDeConexao garante a mensagem de erro de rede.
func TestLoginSubmit_FalhaDeConexao(t *testing.T) {
	mockSvc := new(MockAuthService)
	handler, _ := montar(t, mockSvc)

	mockSvc.On("Login", mock.Anything, mock.Anything, "maria", "senha123").
		Return(apperror.NewRemoteError("Erro de conexão com o servidor.", nil))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, postForm("/login", "username=maria&password=senha123"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Erro de conexão ou servidor. Tente novamente.")
}

// TestLogout garante a limpeza da sessão e o retorno ao login.
func TestLogout(t *testing.T) {
	mockSvc := new(MockAuthService)
	handler, manager := montar(t, mockSvc)

	setup := httptest.NewRecorder()
	sess := manager.Session(setup, httptest.NewRequest(http.MethodGet, "/", nil))
	err := sess.Set(context.Background(), "T1", "T2")
	assert.NoError(t, err)
	cookie := setup.Result().Cookies()[0]

	mockSvc.On("Logout", mock.Anything, mock.Anything).Return(nil)

	w := httptest.NewRecorder()
	r := postForm("/logout", "")
	r.AddCookie(cookie)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	mockSvc.AssertExpectations(t)
}
