package repository

import (
	"context"

	"github.com/google/uuid"

	"authsvc/internal/domain"
)

const credentialsTable = "credentials"

// CredentialRepository define el contrato de persistencia para credenciales.
type CredentialRepository interface {
	Create(ctx context.Context, cred domain.Credential) (domain.Credential, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Credential, error)
	GetByUsername(ctx context.Context, username string) (domain.Credential, error)
	GetByEmail(ctx context.Context, email string) (domain.Credential, error)
	GetAll(ctx context.Context) ([]domain.Credential, error)
	UpdateByID(ctx context.Context, fu domain.CredentialForUpdate, id uuid.UUID) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// PgCredentialRepository implementa CredentialRepository sobre el motor CRUD
// genérico; no contiene SQL propio de la entidad.
type PgCredentialRepository struct {
	db Querier
}

func NewPgCredentialRepository(db Querier) *PgCredentialRepository {
	return &PgCredentialRepository{db: db}
}

func (r *PgCredentialRepository) Create(ctx context.Context, cred domain.Credential) (domain.Credential, error) {
	return Create[domain.Credential](ctx, r.db, credentialsTable, cred)
}

func (r *PgCredentialRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Credential, error) {
	return GetOneByID[domain.Credential](ctx, r.db, credentialsTable, id)
}

func (r *PgCredentialRepository) GetByUsername(ctx context.Context, username string) (domain.Credential, error) {
	return GetOneByField[domain.Credential](ctx, r.db, credentialsTable, "username", domain.TextField(username))
}

func (r *PgCredentialRepository) GetByEmail(ctx context.Context, email string) (domain.Credential, error) {
	return GetOneByField[domain.Credential](ctx, r.db, credentialsTable, "email", domain.TextField(email))
}

func (r *PgCredentialRepository) GetAll(ctx context.Context) ([]domain.Credential, error) {
	return GetAll[domain.Credential](ctx, r.db, credentialsTable)
}

func (r *PgCredentialRepository) UpdateByID(ctx context.Context, fu domain.CredentialForUpdate, id uuid.UUID) error {
	return UpdateByID(ctx, r.db, credentialsTable, fu, id)
}

func (r *PgCredentialRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return DeleteByID(ctx, r.db, credentialsTable, id)
}
