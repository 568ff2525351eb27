package authservice

import (
	"context"
	"fmt"

	"estoquefront/internal/domain"
	apperror "estoquefront/internal/errors"
	"estoquefront/internal/pkg/logger"
)

// API define o contrato que este Serviço espera da camada de requisição.
type API interface {
	Login(ctx context.Context, username, password string) (domain.TokenPair, error)
	UserInfo(ctx context.Context) (domain.UserInfo, error)
}

// Sessao é o contrato mínimo de escrita da sessão, satisfeito pelo handle
// de internal/pkg/session. Mockável em testes sem tocar o store real.
type Sessao interface {
	Set(ctx context.Context, accessToken, refreshToken string) error
	Clear(ctx context.Context) error
}

// Service implementa o fluxo de autenticação: login, logout e dados do
// usuário logado.
type Service struct {
	api    API
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Autenticação.
func NewService(api API, log logger.Logger) *Service {
	return &Service{api: api, logger: log}
}

// Login troca credenciais por tokens e os grava na sessão. Os tokens são
// armazenados como recebidos, sem validação de formato.
func (s *Service) Login(ctx context.Context, sess Sessao, username, password string) error {
	if username == "" || password == "" {
		return apperror.NewValidationError(domain.FormErrors{
			domain.ChaveErroGlobal: "Preencha todos os campos.",
		})
	}

	pair, err := s.api.Login(ctx, username, password)
	if err != nil {
		// O erro do endpoint de token é propagado sem tradução: o handler
		// decide a mensagem exibida.
		return err
	}

	if err := sess.Set(ctx, pair.Access, pair.Refresh); err != nil {
		return fmt.Errorf("falha ao gravar a sessão: %w", err)
	}

	s.logger.Info("Login realizado.", map[string]interface{}{"username": username})
	return nil
}

// Logout destrói a sessão corrente.
func (s *Service) Logout(ctx context.Context, sess Sessao) error {
	if err := sess.Clear(ctx); err != nil {
		return fmt.Errorf("falha ao limpar a sessão: %w", err)
	}
	s.logger.Info("Logout realizado.", nil)
	return nil
}

// UserInfo busca os dados do usuário logado para o cabeçalho.
func (s *Service) UserInfo(ctx context.Context) (domain.UserInfo, error) {
	return s.api.UserInfo(ctx)
}
