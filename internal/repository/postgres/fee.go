package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jwalitptl/pawcare-api/internal/model"
	"github.com/jwalitptl/pawcare-api/internal/repository"
	"github.com/jwalitptl/pawcare-api/pkg/errors"
)

const feeColumns = `id, title, fee, created_at, updated_at`

type feeRepository struct {
	BaseRepository
}

func NewFeeRepository(base BaseRepository) repository.FeeRepository {
	return &feeRepository{base}
}

// feeTable returns the table behind catalog; catalogs double as table names.
func feeTable(catalog model.FeeCatalog) (string, error) {
	if !catalog.Valid() {
		return "", fmt.Errorf("unknown fee catalog %q", catalog)
	}
	return string(catalog), nil
}

func (r *feeRepository) FindByTitle(ctx context.Context, catalog model.FeeCatalog, title string) (*model.Fee, error) {
	table, err := feeTable(catalog)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE title = $1 LIMIT 1`, feeColumns, table)

	var fee model.Fee
	if err := r.db.GetContext(ctx, &fee, query, title); err != nil {
		return nil, fmt.Errorf("failed to find fee %q: %w", title, notFound(err, "fee"))
	}
	return &fee, nil
}

func (r *feeRepository) Get(ctx context.Context, catalog model.FeeCatalog, id uuid.UUID) (*model.Fee, error) {
	table, err := feeTable(catalog)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, feeColumns, table)

	var fee model.Fee
	if err := r.db.GetContext(ctx, &fee, query, id); err != nil {
		return nil, fmt.Errorf("failed to get fee: %w", notFound(err, "fee"))
	}
	return &fee, nil
}

// List returns the catalog ordered by title; a non-empty title filters exactly.
func (r *feeRepository) List(ctx context.Context, catalog model.FeeCatalog, title string) ([]*model.Fee, error) {
	table, err := feeTable(catalog)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s`, feeColumns, table)
	args := []interface{}{}
	if title != "" {
		query += ` WHERE title = $1`
		args = append(args, title)
	}
	query += ` ORDER BY title ASC`

	var fees []*model.Fee
	if err := r.db.SelectContext(ctx, &fees, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list fees: %w", err)
	}
	return fees, nil
}

func (r *feeRepository) ListByIDs(ctx context.Context, catalog model.FeeCatalog, ids []uuid.UUID) ([]*model.Fee, error) {
	if len(ids) == 0 {
		return []*model.Fee{}, nil
	}
	return selectFeesByIDs(ctx, r.db, catalog, ids)
}

func selectFeesByIDs(ctx context.Context, q sqlx.QueryerContext, catalog model.FeeCatalog, ids []uuid.UUID) ([]*model.Fee, error) {
	table, err := feeTable(catalog)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ANY($1)`, feeColumns, table)

	var fees []*model.Fee
	if err := sqlx.SelectContext(ctx, q, &fees, query, pq.Array(model.UUIDArray(ids).Strings())); err != nil {
		return nil, fmt.Errorf("failed to select fees by id: %w", err)
	}
	return fees, nil
}

func (r *feeRepository) Update(ctx context.Context, catalog model.FeeCatalog, fee *model.Fee) error {
	table, err := feeTable(catalog)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE %s SET title = $1, fee = $2, updated_at = $3 WHERE id = $4`, table)
	fee.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, fee.Title, fee.Fee, fee.UpdatedAt, fee.ID)
	if err != nil {
		return fmt.Errorf("failed to update fee: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("fee", nil)
	}
	return nil
}
