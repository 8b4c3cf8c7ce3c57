package domain

import (
	"time"

	"github.com/google/uuid"
)

// fieldKind identifica la variante de un FieldValue.
type fieldKind int

const (
	fieldID fieldKind = iota
	fieldTime
	fieldBool
	fieldText
)

// FieldValue es un valor tipado listo para enlazarse como parámetro SQL.
type FieldValue struct {
	kind fieldKind
	id   uuid.UUID
	ts   *time.Time
	b    bool
	text string
}

func IDField(v uuid.UUID) FieldValue {
	return FieldValue{kind: fieldID, id: v}
}

func TimeField(v time.Time) FieldValue {
	return FieldValue{kind: fieldTime, ts: &v}
}

// NullTimeField acepta nil y se enlaza como NULL.
func NullTimeField(v *time.Time) FieldValue {
	return FieldValue{kind: fieldTime, ts: v}
}

func BoolField(v bool) FieldValue {
	return FieldValue{kind: fieldBool, b: v}
}

func TextField(v string) FieldValue {
	return FieldValue{kind: fieldText, text: v}
}

// Arg devuelve el valor a enlazar en la consulta.
func (v FieldValue) Arg() any {
	switch v.kind {
	case fieldID:
		return v.id
	case fieldTime:
		if v.ts == nil {
			return nil
		}
		return *v.ts
	case fieldBool:
		return v.b
	default:
		return v.text
	}
}

// Projectable expone una entidad como columnas ordenadas con sus valores.
// Ambas listas tienen el mismo largo y el mismo orden; es la única capacidad
// que la capa de persistencia genérica conoce de una entidad.
type Projectable interface {
	Fields() (names []string, values []FieldValue)
}
