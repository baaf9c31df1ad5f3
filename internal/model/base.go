package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Base contains common fields for all persisted documents
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// UUIDArray maps a postgres uuid[] column.
type UUIDArray []uuid.UUID

// Value implements driver.Valuer
func (a UUIDArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	strs := make(pq.StringArray, len(a))
	for i, id := range a {
		strs[i] = id.String()
	}
	return strs.Value()
}

// Scan implements sql.Scanner
func (a *UUIDArray) Scan(src interface{}) error {
	var strs pq.StringArray
	if err := strs.Scan(src); err != nil {
		return err
	}
	if strs == nil {
		*a = nil
		return nil
	}
	out := make(UUIDArray, 0, len(strs))
	for _, s := range strs {
		id, err := uuid.Parse(s)
		if err != nil {
			return fmt.Errorf("invalid uuid %q in array: %w", s, err)
		}
		out = append(out, id)
	}
	*a = out
	return nil
}

// Strings returns the ids in string form.
func (a UUIDArray) Strings() []string {
	out := make([]string, len(a))
	for i, id := range a {
		out[i] = id.String()
	}
	return out
}
