package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/pawcare-api/internal/model"
	"github.com/jwalitptl/pawcare-api/internal/repository"
)

type transactionRepository struct {
	BaseRepository
}

func NewTransactionRepository(base BaseRepository) repository.TransactionRepository {
	return &transactionRepository{base}
}

func (r *transactionRepository) Create(ctx context.Context, txn *model.ServiceTransaction) error {
	query := `
		INSERT INTO service_transactions (
			id, staff_id, customer_id, pet_id, service_id, booking_id,
			date, feedback, payment, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	now := time.Now()
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	if txn.Date.IsZero() {
		txn.Date = now
	}
	txn.CreatedAt = now
	txn.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		txn.ID,
		txn.StaffID,
		txn.CustomerID,
		txn.PetID,
		txn.ServiceID,
		txn.BookingID,
		txn.Date,
		txn.Feedback,
		txn.Payment,
		txn.CreatedAt,
		txn.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create service transaction: %w", err)
	}
	return nil
}

type transactionRow struct {
	ID            uuid.UUID       `db:"id"`
	Date          time.Time       `db:"date"`
	Feedback      string          `db:"feedback"`
	Payment       float64         `db:"payment"`
	StaffID       uuid.UUID       `db:"staff_id"`
	CustomerID    uuid.UUID       `db:"customer_id"`
	PetID         uuid.UUID       `db:"pet_id"`
	ServiceID     uuid.NullUUID   `db:"service_id"`
	StaffName     sql.NullString  `db:"staff_full_name"`
	CustomerName  sql.NullString  `db:"customer_full_name"`
	CustomerEmail sql.NullString  `db:"customer_contact_email"`
	PetName       sql.NullString  `db:"pet_name"`
	PetBreed      sql.NullString  `db:"pet_breed"`
	ServiceTitle  sql.NullString  `db:"service_title"`
	ServiceFee    sql.NullFloat64 `db:"service_fee"`
}

func (row *transactionRow) toView() *model.ServiceTransactionView {
	view := &model.ServiceTransactionView{
		ID:       row.ID,
		Date:     row.Date,
		Feedback: row.Feedback,
		Payment:  row.Payment,
	}
	if row.StaffName.Valid {
		view.Staff = &model.Profile{UserID: row.StaffID, FullName: row.StaffName.String}
	}
	if row.CustomerName.Valid {
		view.Customer = &model.Profile{
			UserID:       row.CustomerID,
			FullName:     row.CustomerName.String,
			ContactEmail: row.CustomerEmail.String,
		}
	}
	if row.PetName.Valid {
		view.Pet = &model.Pet{
			Base:   model.Base{ID: row.PetID},
			UserID: row.CustomerID,
			Name:   row.PetName.String,
			Breed:  row.PetBreed.String,
		}
	}
	if row.ServiceID.Valid && row.ServiceTitle.Valid {
		view.Service = &model.Fee{
			Base:  model.Base{ID: row.ServiceID.UUID},
			Title: row.ServiceTitle.String,
			Fee:   row.ServiceFee.Float64,
		}
	}
	return view
}

func (r *transactionRepository) List(ctx context.Context) ([]*model.ServiceTransactionView, error) {
	query := `
		SELECT t.id, t.date, t.feedback, t.payment, t.staff_id, t.customer_id, t.pet_id, t.service_id,
			   sp.full_name AS staff_full_name,
			   cp.full_name AS customer_full_name, cp.contact_email AS customer_contact_email,
			   p.name AS pet_name, p.breed AS pet_breed,
			   f.title AS service_title, f.fee AS service_fee
		FROM service_transactions t
		LEFT JOIN profiles sp ON sp.user_id = t.staff_id
		LEFT JOIN profiles cp ON cp.user_id = t.customer_id
		LEFT JOIN pets p ON p.id = t.pet_id
		LEFT JOIN service_fees f ON f.id = t.service_id
		ORDER BY t.date DESC
	`
	var rows []*transactionRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list service transactions: %w", err)
	}

	views := make([]*model.ServiceTransactionView, 0, len(rows))
	for _, row := range rows {
		views = append(views, row.toView())
	}
	return views, nil
}
