package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUsernameNotSet = errors.New("username not set")
	ErrEmailNotSet    = errors.New("email not set")
	ErrPasswordNotSet = errors.New("password not set")
)

// Credential es el registro durable de identidad de un usuario.
// Password siempre contiene un hash, nunca texto plano.
type Credential struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	LastLogin   *time.Time `db:"last_login" json:"last_login,omitempty"`
	NeedsVerify bool       `db:"needs_verify" json:"needs_verify"`
	IsBlocked   bool       `db:"is_blocked" json:"is_blocked"`
	Username    string     `db:"username" json:"username"`
	Email       string     `db:"email" json:"email"`
	Password    string     `db:"password" json:"-"`
}

// NewCredential construye un registro nuevo a partir de un payload ya
// validado y con la contraseña ya hasheada.
func NewCredential(fc CredentialForCreate, passwordHash string) Credential {
	now := time.Now().UTC()
	return Credential{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Username:  fc.Username,
		Email:     fc.Email,
		Password:  passwordHash,
	}
}

// Fields proyecta el registro completo para una inserción.
func (c Credential) Fields() ([]string, []FieldValue) {
	names := []string{
		"id",
		"created_at",
		"updated_at",
		"last_login",
		"needs_verify",
		"is_blocked",
		"username",
		"email",
		"password",
	}
	values := []FieldValue{
		IDField(c.ID),
		TimeField(c.CreatedAt),
		TimeField(c.UpdatedAt),
		NullTimeField(c.LastLogin),
		BoolField(c.NeedsVerify),
		BoolField(c.IsBlocked),
		TextField(c.Username),
		TextField(c.Email),
		TextField(c.Password),
	}
	return names, values
}

// CredentialForCreate es el payload transitorio de registro; la contraseña
// en texto plano se descarta apenas se hashea.
type CredentialForCreate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate verifica que ningún campo requerido esté vacío.
func (fc CredentialForCreate) Validate() error {
	if fc.Username == "" {
		return ErrUsernameNotSet
	}
	if fc.Email == "" {
		return ErrEmailNotSet
	}
	if fc.Password == "" {
		return ErrPasswordNotSet
	}
	return nil
}

// CredentialForUpdate es un payload de actualización parcial: un campo nil
// está ausente y no se escribe. UpdatedAt siempre está presente.
type CredentialForUpdate struct {
	UpdatedAt   time.Time
	LastLogin   *time.Time
	NeedsVerify *bool
	IsBlocked   *bool
	Username    *string
	Email       *string
	Password    *string
}

// NewCredentialForUpdate crea un payload vacío con UpdatedAt refrescado.
func NewCredentialForUpdate() CredentialForUpdate {
	return CredentialForUpdate{UpdatedAt: time.Now().UTC()}
}

// Fields proyecta sólo los campos presentes, con updated_at primero.
func (fu CredentialForUpdate) Fields() ([]string, []FieldValue) {
	names := []string{"updated_at"}
	values := []FieldValue{TimeField(fu.UpdatedAt)}

	if fu.LastLogin != nil {
		names = append(names, "last_login")
		values = append(values, TimeField(*fu.LastLogin))
	}
	if fu.NeedsVerify != nil {
		names = append(names, "needs_verify")
		values = append(values, BoolField(*fu.NeedsVerify))
	}
	if fu.IsBlocked != nil {
		names = append(names, "is_blocked")
		values = append(values, BoolField(*fu.IsBlocked))
	}
	if fu.Username != nil {
		names = append(names, "username")
		values = append(values, TextField(*fu.Username))
	}
	if fu.Email != nil {
		names = append(names, "email")
		values = append(values, TextField(*fu.Email))
	}
	if fu.Password != nil {
		names = append(names, "password")
		values = append(values, TextField(*fu.Password))
	}

	return names, values
}
