package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"estoquefront/internal/domain"
)

// AppError é a interface central para os erros tipados da aplicação.
// A taxonomia é decodificada uma única vez na camada de requisição
// (internal/apiclient) e nunca re-inspecionada por forma de corpo nos
// pontos de chamada.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR")
	HTTPStatus() int  // Código HTTP associado
	Unwrap() error    // Permite encapsular o erro subjacente
}

// --- Erros Locais (nunca chegam à rede) ---

// ValidationError representa falha de validação local de formulário.
// Carrega o Form Error Set completo, chaveado por campo.
type ValidationError struct {
	Fields domain.FormErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Erro de Validação: %s", joinFields(e.Fields))
}
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um erro de validação local com o Form Error Set.
func NewValidationError(fields domain.FormErrors) AppError {
	return &ValidationError{Fields: fields}
}

// --- Erros Remotos (decodificados na borda) ---

// AuthenticationError representa uma resposta 401 do servidor. Além da
// mensagem, dispara o efeito global de limpeza de sessão no chamador.
type AuthenticationError struct {
	Msg string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("Falha de autenticação: %s", e.Msg)
}
func (e *AuthenticationError) Category() string { return "AUTHENTICATION_ERROR" }
func (e *AuthenticationError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *AuthenticationError) Unwrap() error    { return nil }

// NewAuthenticationError cria um erro de autenticação (401).
func NewAuthenticationError(msg string) AppError {
	return &AuthenticationError{Msg: msg}
}

// FieldError representa uma rejeição por campo reportada pelo servidor
// (e.g., estoque insuficiente em quantidade_movimentacao, nome duplicado).
type FieldError struct {
	Fields domain.FormErrors
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("Rejeição por campo: %s", joinFields(e.Fields))
}
func (e *FieldError) Category() string { return "FIELD_CONSTRAINT" }
func (e *FieldError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *FieldError) Unwrap() error    { return nil }

// NewFieldError cria um erro de rejeição por campo vindo do servidor.
func NewFieldError(fields domain.FormErrors) AppError {
	return &FieldError{Fields: fields}
}

// RemoteError representa falha de rede ou qualquer resposta não mapeada.
// É sempre apresentado ao usuário como uma única mensagem global.
type RemoteError struct {
	Msg string
	Err error // Erro subjacente (e.g., erro de transporte)
}

func (e *RemoteError) Error() string    { return fmt.Sprintf("Erro Remoto: %s", e.Msg) }
func (e *RemoteError) Category() string { return "REMOTE_ERROR" }
func (e *RemoteError) HTTPStatus() int  { return http.StatusBadGateway } // 502
func (e *RemoteError) Unwrap() error    { return e.Err }

// NewRemoteError cria um erro remoto genérico, encapsulando a causa raiz.
func NewRemoteError(msg string, err error) AppError {
	return &RemoteError{Msg: msg, Err: err}
}

// --- Helpers para os chamadores ---

// IsAuthentication informa se há um AuthenticationError na cadeia do erro.
// Todo ponto de chamada que receber true deve limpar a sessão.
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// FieldsOf extrai o Form Error Set de um erro tipado por campo, se houver.
func FieldsOf(err error) (domain.FormErrors, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Fields, true
	}
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return fieldErr.Fields, true
	}
	return nil, false
}

// joinFields serializa o mapa de erros em ordem estável para mensagens de log.
func joinFields(fields domain.FormErrors) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fields[k]))
	}
	return strings.Join(parts, "; ")
}
