package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"authsvc/internal/domain"
	"authsvc/internal/repository"
)

// Taxonomía de fallas que cruza el borde del transporte.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// CredentialService coordina el ciclo de vida de las credenciales:
// validación, hashing, transiciones de estado y persistencia.
type CredentialService struct {
	logger *zap.Logger
	repo   repository.CredentialRepository
	hasher *PasswordHasher
}

func NewCredentialService(logger *zap.Logger, repo repository.CredentialRepository, hasher *PasswordHasher) *CredentialService {
	return &CredentialService{
		logger: logger,
		repo:   repo,
		hasher: hasher,
	}
}

// Create valida el payload, hashea la contraseña y persiste el registro.
func (s *CredentialService) Create(ctx context.Context, fc domain.CredentialForCreate) (domain.Credential, error) {
	if err := fc.Validate(); err != nil {
		return domain.Credential{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	hash, err := s.hasher.Hash(fc.Password)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("hash password: %w", err)
	}

	cred, err := s.repo.Create(ctx, domain.NewCredential(fc, hash))
	if err != nil {
		return domain.Credential{}, err
	}

	s.logger.Info("credential created", zap.String("id", cred.ID.String()))
	return cred, nil
}

// Resolve busca la credencial por email o por username; el email gana si
// ambos vienen presentes.
func (s *CredentialService) Resolve(ctx context.Context, username, email string) (domain.Credential, error) {
	var (
		cred domain.Credential
		err  error
	)
	switch {
	case email != "":
		cred, err = s.repo.GetByEmail(ctx, email)
	case username != "":
		cred, err = s.repo.GetByUsername(ctx, username)
	default:
		return domain.Credential{}, fmt.Errorf("%w: no identifier", ErrInvalidArgument)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Credential{}, fmt.Errorf("credential: %w", ErrNotFound)
		}
		return domain.Credential{}, err
	}
	return cred, nil
}

// Authenticate aplica la política de cuenta y verifica la contraseña.
// Una cuenta bloqueada o pendiente de verificación nunca autentica.
func (s *CredentialService) Authenticate(cred domain.Credential, password string) error {
	if cred.IsBlocked || cred.NeedsVerify {
		return fmt.Errorf("account not active: %w", ErrUnauthenticated)
	}

	ok, err := s.hasher.Verify(password, cred.Password)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return fmt.Errorf("wrong password: %w", ErrUnauthenticated)
	}
	return nil
}

// RotatePassword reautentica con la contraseña vigente y persiste el hash
// nuevo como actualización parcial.
func (s *CredentialService) RotatePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error {
	cred, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Authenticate(cred, oldPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	fu := domain.NewCredentialForUpdate()
	fu.Password = &hash
	if err := s.updateByID(ctx, fu, id); err != nil {
		return err
	}

	s.logger.Info("password rotated", zap.String("id", id.String()))
	return nil
}

// TouchLogin registra el instante del login como actualización parcial.
func (s *CredentialService) TouchLogin(ctx context.Context, id uuid.UUID) error {
	fu := domain.NewCredentialForUpdate()
	fu.LastLogin = &fu.UpdatedAt
	return s.updateByID(ctx, fu, id)
}

// GetByID busca la credencial por id.
func (s *CredentialService) GetByID(ctx context.Context, id uuid.UUID) (domain.Credential, error) {
	cred, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Credential{}, fmt.Errorf("credential: %w", ErrNotFound)
		}
		return domain.Credential{}, err
	}
	return cred, nil
}

// Delete elimina el registro durable de la credencial.
func (s *CredentialService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("credential: %w", ErrNotFound)
		}
		return err
	}
	s.logger.Info("credential deleted", zap.String("id", id.String()))
	return nil
}

func (s *CredentialService) updateByID(ctx context.Context, fu domain.CredentialForUpdate, id uuid.UUID) error {
	if err := s.repo.UpdateByID(ctx, fu, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("credential: %w", ErrNotFound)
		}
		return err
	}
	return nil
}
