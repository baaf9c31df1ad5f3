package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/pawcare-api/internal/model"
	"github.com/jwalitptl/pawcare-api/internal/repository"
)

type applicationRepository struct {
	BaseRepository
}

func NewApplicationRepository(base BaseRepository) repository.ApplicationRepository {
	return &applicationRepository{base}
}

type groomingRow struct {
	model.GroomingApplication
	ScheduleTitle sql.NullString `db:"schedule_title"`
}

func (r *applicationRepository) GetGrooming(ctx context.Context, id uuid.UUID) (*model.GroomingApplicationView, error) {
	query := `
		SELECT g.id, g.service_name, g.other_information, g.schedule_id,
			   g.created_at, g.updated_at, s.title AS schedule_title
		FROM grooming_applications g
		LEFT JOIN schedules s ON s.id = g.schedule_id
		WHERE g.id = $1
	`
	var row groomingRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, fmt.Errorf("failed to get grooming application: %w", notFound(err, "grooming application"))
	}

	view := &model.GroomingApplicationView{GroomingApplication: row.GroomingApplication}
	if row.ScheduleTitle.Valid {
		view.Schedule = &model.Schedule{
			Base:  model.Base{ID: row.ScheduleID},
			Title: row.ScheduleTitle.String,
		}
	}
	return view, nil
}

type boardingRow struct {
	model.BoardingApplication
	CageTitle sql.NullString  `db:"cage_title"`
	CagePrice sql.NullFloat64 `db:"cage_price"`
}

func (r *applicationRepository) GetBoarding(ctx context.Context, id uuid.UUID) (*model.BoardingApplicationView, error) {
	query := `
		SELECT b.id, b.service_name, b.schedule, b.days_of_stay, b.cage_id, b.branch_id,
			   b.created_at, b.updated_at, c.title AS cage_title, c.price AS cage_price
		FROM boarding_applications b
		LEFT JOIN cages c ON c.id = b.cage_id
		WHERE b.id = $1
	`
	var row boardingRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, fmt.Errorf("failed to get boarding application: %w", notFound(err, "boarding application"))
	}

	view := &model.BoardingApplicationView{BoardingApplication: row.BoardingApplication}
	if row.CageTitle.Valid {
		view.Cage = &model.Cage{
			Base:  model.Base{ID: row.CageID},
			Title: row.CageTitle.String,
			Price: row.CagePrice.Float64,
		}
	}
	return view, nil
}

func (r *applicationRepository) GetTransit(ctx context.Context, id uuid.UUID) (*model.TransitApplication, error) {
	query := `
		SELECT id, schedule, created_at, updated_at
		FROM transit_applications
		WHERE id = $1
	`
	var app model.TransitApplication
	if err := r.db.GetContext(ctx, &app, query, id); err != nil {
		return nil, fmt.Errorf("failed to get transit application: %w", notFound(err, "transit application"))
	}
	return &app, nil
}
