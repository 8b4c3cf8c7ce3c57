package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"authsvc/internal/domain"
)

// crudOpTimeout acota cada operación durable, incluida la espera por una
// conexión del pool: con el pool agotado la llamada falla por timeout en vez
// de quedarse colgada.
const crudOpTimeout = 5 * time.Second

// ErrNotFound indica ausencia lógica en un store, nunca una falla de conexión.
var ErrNotFound = errors.New("entity not found")

// Querier es el subconjunto de pgxpool.Pool que usa el motor CRUD.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Los nombres de tabla y de columna se interpolan como identificadores, por
// lo que siempre deben venir de constantes del código, jamás del request.
// Los valores se enlazan como parámetros tipados.

// Create inserta la proyección completa de la entidad y devuelve la fila creada.
func Create[T any](ctx context.Context, db Querier, table string, entity domain.Projectable) (T, error) {
	var zero T

	ctx, cancel := context.WithTimeout(ctx, crudOpTimeout)
	defer cancel()

	names, values := entity.Fields()
	args := make([]any, len(values))
	binds := make([]string, len(values))
	for i, v := range values {
		args[i] = v.Arg()
		binds[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		table,
		strings.Join(names, ", "),
		strings.Join(binds, ", "),
	)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return zero, fmt.Errorf("create %s: %w", table, err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		return zero, fmt.Errorf("create %s: %w", table, err)
	}
	return row, nil
}

// GetOneByID busca una fila por id.
func GetOneByID[T any](ctx context.Context, db Querier, table string, id uuid.UUID) (T, error) {
	return getOne[T](ctx, db, table, "id", domain.IDField(id))
}

// GetOneByField busca una fila por una columna puntual.
func GetOneByField[T any](ctx context.Context, db Querier, table, field string, value domain.FieldValue) (T, error) {
	return getOne[T](ctx, db, table, field, value)
}

func getOne[T any](ctx context.Context, db Querier, table, field string, value domain.FieldValue) (T, error) {
	var zero T

	ctx, cancel := context.WithTimeout(ctx, crudOpTimeout)
	defer cancel()

	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = $1", table, field)

	rows, err := db.Query(ctx, query, value.Arg())
	if err != nil {
		return zero, fmt.Errorf("get %s by %s: %w", table, field, err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, fmt.Errorf("get %s by %s: %w", table, field, ErrNotFound)
		}
		return zero, fmt.Errorf("get %s by %s: %w", table, field, err)
	}
	return row, nil
}

// GetAll devuelve todas las filas de la tabla.
func GetAll[T any](ctx context.Context, db Querier, table string) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, crudOpTimeout)
	defer cancel()

	query := fmt.Sprintf("SELECT * FROM %s", table)

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all %s: %w", table, err)
	}

	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("get all %s: %w", table, err)
	}
	return list, nil
}

// UpdateByID aplica la proyección parcial de la entidad sobre la fila id.
// Cero filas afectadas se reporta como ErrNotFound.
func UpdateByID(ctx context.Context, db Querier, table string, entity domain.Projectable, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, crudOpTimeout)
	defer cancel()

	names, values := entity.Fields()
	args := make([]any, 0, len(values)+1)
	sets := make([]string, len(names))
	for i, name := range names {
		sets[i] = fmt.Sprintf("%s = $%d", name, i+1)
		args = append(args, values[i].Arg())
	}
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d",
		table,
		strings.Join(sets, ", "),
		len(names)+1,
	)

	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update %s: %w", table, ErrNotFound)
	}
	return nil
}

// DeleteByID borra la fila id; cero filas afectadas es ErrNotFound.
func DeleteByID(ctx context.Context, db Querier, table string, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, crudOpTimeout)
	defer cancel()

	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", table)

	tag, err := db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete %s: %w", table, ErrNotFound)
	}
	return nil
}
