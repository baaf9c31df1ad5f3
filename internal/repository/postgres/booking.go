package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/pawcare-api/internal/model"
	"github.com/jwalitptl/pawcare-api/internal/repository"
	"github.com/jwalitptl/pawcare-api/pkg/errors"
)

const bookingColumns = `id, user_id, staff_id, branch_id, pet_id, application_id,
	application_type, extra_services, status, extension, payable,
	created_at, updated_at`

type bookingRepository struct {
	BaseRepository
}

func NewBookingRepository(base BaseRepository) repository.BookingRepository {
	return &bookingRepository{base}
}

func (r *bookingRepository) CreateWithApplication(ctx context.Context, app *model.Application, booking *model.Booking) error {
	if err := app.Validate(); err != nil {
		return errors.BadRequest("invalid application", err)
	}

	now := time.Now()
	appBase := app.Base()
	if appBase.ID == uuid.Nil {
		appBase.ID = uuid.New()
	}
	appBase.CreatedAt = now
	appBase.UpdatedAt = now

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.ApplicationID = appBase.ID
	booking.ApplicationType = app.Type
	booking.CreatedAt = now
	booking.UpdatedAt = now

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := insertApplication(ctx, tx, app); err != nil {
			return err
		}

		query := `
			INSERT INTO bookings (
				id, user_id, staff_id, branch_id, pet_id, application_id,
				application_type, extra_services, status, extension, payable,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`
		_, err := tx.ExecContext(ctx, query,
			booking.ID,
			booking.UserID,
			booking.StaffID,
			booking.BranchID,
			booking.PetID,
			booking.ApplicationID,
			booking.ApplicationType,
			booking.ExtraServices,
			booking.Status,
			booking.Extension,
			booking.Payable,
			booking.CreatedAt,
			booking.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
}

func insertApplication(ctx context.Context, tx *sqlx.Tx, app *model.Application) error {
	var err error
	switch app.Type {
	case model.ApplicationTypeGrooming:
		a := app.Grooming
		_, err = tx.ExecContext(ctx, `
			INSERT INTO grooming_applications (
				id, service_name, other_information, schedule_id, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6)
		`, a.ID, a.ServiceName, a.OtherInformation, a.ScheduleID, a.CreatedAt, a.UpdatedAt)
	case model.ApplicationTypeBoarding:
		a := app.Boarding
		_, err = tx.ExecContext(ctx, `
			INSERT INTO boarding_applications (
				id, service_name, schedule, days_of_stay, cage_id, branch_id, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, a.ID, a.ServiceName, a.Schedule, a.DaysOfStay, a.CageID, a.BranchID, a.CreatedAt, a.UpdatedAt)
	case model.ApplicationTypeTransit:
		a := app.Transit
		_, err = tx.ExecContext(ctx, `
			INSERT INTO transit_applications (id, schedule, created_at, updated_at)
			VALUES ($1, $2, $3, $4)
		`, a.ID, a.Schedule, a.CreatedAt, a.UpdatedAt)
	default:
		return fmt.Errorf("unknown application type %q", app.Type)
	}
	if err != nil {
		return fmt.Errorf("failed to create %s application: %w", app.Type, err)
	}
	return nil
}

func (r *bookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking model.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", notFound(err, "booking"))
	}
	return &booking, nil
}

func (r *bookingRepository) UpdateStatusByApplication(ctx context.Context, applicationID uuid.UUID, status model.BookingStatus, staffID uuid.UUID) (*model.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $1, staff_id = $2, updated_at = $3
		WHERE application_id = $4
		RETURNING ` + bookingColumns

	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, query, status, staffID, time.Now(), applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", notFound(err, "booking"))
	}
	return &booking, nil
}

func (r *bookingRepository) UpdateExtension(ctx context.Context, id uuid.UUID, extension int, payable float64) error {
	query := `
		UPDATE bookings
		SET extension = $1, payable = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, extension, payable, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update booking extension: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("booking", nil)
	}
	return nil
}

// bookingRow is one booking joined with owner, pet, branch and staff.
type bookingRow struct {
	model.Booking
	ProfileID      uuid.NullUUID  `db:"profile_id"`
	ProfileName    sql.NullString `db:"profile_full_name"`
	ProfileEmail   sql.NullString `db:"profile_contact_email"`
	ProfileNumber  sql.NullString `db:"profile_contact_number"`
	ProfileAddress sql.NullString `db:"profile_address"`
	PetName        sql.NullString `db:"pet_name"`
	PetBreed       sql.NullString `db:"pet_breed"`
	PetGender      sql.NullString `db:"pet_gender"`
	PetAge         sql.NullInt64  `db:"pet_age"`
	BranchName     sql.NullString `db:"branch_name"`
	BranchAddress  sql.NullString `db:"branch_address"`
	BranchMobileNo sql.NullString `db:"branch_mobile_no"`
	StaffProfileID uuid.NullUUID  `db:"staff_profile_id"`
	StaffName      sql.NullString `db:"staff_full_name"`
	StaffEmail     sql.NullString `db:"staff_contact_email"`
}

func (row *bookingRow) toView() *model.BookingView {
	view := &model.BookingView{Booking: row.Booking}
	if row.ProfileID.Valid {
		view.Profile = &model.Profile{
			Base:          model.Base{ID: row.ProfileID.UUID},
			UserID:        row.UserID,
			FullName:      row.ProfileName.String,
			ContactEmail:  row.ProfileEmail.String,
			ContactNumber: row.ProfileNumber.String,
			Address:       row.ProfileAddress.String,
		}
	}
	if row.PetName.Valid {
		view.Pet = &model.Pet{
			Base:   model.Base{ID: row.PetID},
			UserID: row.UserID,
			Name:   row.PetName.String,
			Breed:  row.PetBreed.String,
			Gender: row.PetGender.String,
			Age:    int(row.PetAge.Int64),
		}
	}
	if row.BranchName.Valid {
		view.Branch = &model.Branch{
			Base:     model.Base{ID: row.BranchID},
			Name:     row.BranchName.String,
			Address:  row.BranchAddress.String,
			MobileNo: row.BranchMobileNo.String,
		}
	}
	if row.StaffProfileID.Valid && row.StaffID != nil {
		view.Staff = &model.Profile{
			Base:         model.Base{ID: row.StaffProfileID.UUID},
			UserID:       *row.StaffID,
			FullName:     row.StaffName.String,
			ContactEmail: row.StaffEmail.String,
		}
	}
	return view
}

func (r *bookingRepository) List(ctx context.Context, filters *model.BookingFilters) ([]*model.BookingView, error) {
	query := `
		SELECT b.id, b.user_id, b.staff_id, b.branch_id, b.pet_id, b.application_id,
			   b.application_type, b.extra_services, b.status, b.extension, b.payable,
			   b.created_at, b.updated_at,
			   p.id AS profile_id, p.full_name AS profile_full_name,
			   p.contact_email AS profile_contact_email,
			   p.contact_number AS profile_contact_number, p.address AS profile_address,
			   pt.name AS pet_name, pt.breed AS pet_breed, pt.gender AS pet_gender, pt.age AS pet_age,
			   br.name AS branch_name, br.address AS branch_address, br.mobile_no AS branch_mobile_no,
			   sp.id AS staff_profile_id, sp.full_name AS staff_full_name,
			   sp.contact_email AS staff_contact_email
		FROM bookings b
		LEFT JOIN profiles p ON p.user_id = b.user_id
		LEFT JOIN pets pt ON pt.id = b.pet_id
		LEFT JOIN branches br ON br.id = b.branch_id
		LEFT JOIN profiles sp ON sp.user_id = b.staff_id
		WHERE 1 = 1
	`
	args := []interface{}{}
	argCount := 1

	if filters != nil && filters.Status != "" {
		query += fmt.Sprintf(" AND b.status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}

	if filters != nil && filters.UserID != uuid.Nil {
		query += fmt.Sprintf(" AND b.user_id = $%d", argCount)
		args = append(args, filters.UserID)
		argCount++
	}

	if filters != nil && filters.NewestFirst {
		query += " ORDER BY b.created_at DESC"
	} else {
		query += " ORDER BY b.created_at ASC"
	}

	var rows []*bookingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	views := make([]*model.BookingView, 0, len(rows))
	var extraIDs []uuid.UUID
	for _, row := range rows {
		views = append(views, row.toView())
		extraIDs = append(extraIDs, row.ExtraServices...)
	}

	if len(extraIDs) == 0 {
		return views, nil
	}

	fees, err := selectFeesByIDs(ctx, r.db, model.FeeCatalogGrooming, extraIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load extra services: %w", err)
	}
	byID := make(map[uuid.UUID]*model.Fee, len(fees))
	for _, f := range fees {
		byID[f.ID] = f
	}
	for _, view := range views {
		for _, id := range view.ExtraServices {
			if f, ok := byID[id]; ok {
				view.ExtraServiceFees = append(view.ExtraServiceFees, f)
			}
		}
	}

	return views, nil
}
