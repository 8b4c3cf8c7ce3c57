package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"authsvc/internal/domain"
	"authsvc/internal/repository"
)

// AuthService implementa las operaciones públicas componiendo el ciclo de
// vida de credenciales con el store de sesiones. No guarda estado entre
// llamadas.
type AuthService struct {
	logger      *zap.Logger
	credentials *CredentialService
	sessions    repository.SessionStore
	sessionTTL  time.Duration
}

func NewAuthService(logger *zap.Logger, credentials *CredentialService, sessions repository.SessionStore, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		logger:      logger,
		credentials: credentials,
		sessions:    sessions,
		sessionTTL:  sessionTTL,
	}
}

// Register crea la credencial y devuelve su id.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (uuid.UUID, error) {
	cred, err := s.credentials.Create(ctx, domain.CredentialForCreate{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return uuid.Nil, err
	}
	return cred.ID, nil
}

// Login resuelve la credencial, autentica, registra el login y emite una
// sesión con TTL fijo. touchLogin y la creación de sesión son llamadas
// independientes, sin rollback compensatorio entre ellas.
func (s *AuthService) Login(ctx context.Context, username, email, password string) (string, error) {
	if password == "" || (username == "" && email == "") {
		return "", fmt.Errorf("%w: missing login fields", ErrInvalidArgument)
	}

	cred, err := s.credentials.Resolve(ctx, username, email)
	if err != nil {
		return "", err
	}

	if err := s.credentials.Authenticate(cred, password); err != nil {
		return "", err
	}

	if err := s.credentials.TouchLogin(ctx, cred.ID); err != nil {
		return "", err
	}

	token, err := s.sessions.Create(ctx, cred.ID.String(), s.sessionTTL)
	if err != nil {
		return "", err
	}

	s.logger.Info("login", zap.String("id", cred.ID.String()))
	return token, nil
}

// Logout revoca la sesión tras comprobar que pertenece al usuario.
func (s *AuthService) Logout(ctx context.Context, token, userID string) error {
	if err := s.checkOwnership(ctx, token, userID); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, token)
}

// ValidateSession comprueba que la sesión existe y pertenece al usuario;
// no muta nada y no extiende el TTL.
func (s *AuthService) ValidateSession(ctx context.Context, token, userID string) error {
	return s.checkOwnership(ctx, token, userID)
}

// UpdatePassword valida la sesión y rota la contraseña de la credencial.
func (s *AuthService) UpdatePassword(ctx context.Context, token, userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: missing password fields", ErrInvalidArgument)
	}

	if err := s.checkOwnership(ctx, token, userID); err != nil {
		return err
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("%w: malformed user id", ErrInvalidArgument)
	}

	return s.credentials.RotatePassword(ctx, id, oldPassword, newPassword)
}

// DeleteAccount valida la sesión, borra la credencial y revoca la sesión.
func (s *AuthService) DeleteAccount(ctx context.Context, token, userID string) error {
	if err := s.checkOwnership(ctx, token, userID); err != nil {
		return err
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("%w: malformed user id", ErrInvalidArgument)
	}

	if err := s.credentials.Delete(ctx, id); err != nil {
		return err
	}

	return s.sessions.Delete(ctx, token)
}

// checkOwnership verifica que el valor guardado en la sesión coincide con el
// id que declara el llamador. El vínculo sesión -> credencial es una
// referencia débil: esta comparación es toda la integridad que existe.
func (s *AuthService) checkOwnership(ctx context.Context, token, userID string) error {
	if token == "" || userID == "" {
		return fmt.Errorf("%w: missing session fields", ErrInvalidArgument)
	}

	value, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("session: %w", ErrNotFound)
		}
		return err
	}

	if value != userID {
		return fmt.Errorf("%w: session does not belong to user", ErrInvalidArgument)
	}
	return nil
}
