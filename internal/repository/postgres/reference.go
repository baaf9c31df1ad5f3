package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/pawcare-api/internal/model"
	"github.com/jwalitptl/pawcare-api/internal/repository"
)

type scheduleRepository struct {
	BaseRepository
}

func NewScheduleRepository(base BaseRepository) repository.ScheduleRepository {
	return &scheduleRepository{base}
}

func (r *scheduleRepository) Get(ctx context.Context, id uuid.UUID) (*model.Schedule, error) {
	query := `SELECT id, title, created_at, updated_at FROM schedules WHERE id = $1`

	var schedule model.Schedule
	if err := r.db.GetContext(ctx, &schedule, query, id); err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", notFound(err, "schedule"))
	}
	return &schedule, nil
}

type cageRepository struct {
	BaseRepository
}

func NewCageRepository(base BaseRepository) repository.CageRepository {
	return &cageRepository{base}
}

func (r *cageRepository) Get(ctx context.Context, id uuid.UUID) (*model.Cage, error) {
	query := `SELECT id, title, price, created_at, updated_at FROM cages WHERE id = $1`

	var cage model.Cage
	if err := r.db.GetContext(ctx, &cage, query, id); err != nil {
		return nil, fmt.Errorf("failed to get cage: %w", notFound(err, "cage"))
	}
	return &cage, nil
}

type petRepository struct {
	BaseRepository
}

func NewPetRepository(base BaseRepository) repository.PetRepository {
	return &petRepository{base}
}

// FindByUser returns the oldest pet registered to userID.
func (r *petRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*model.Pet, error) {
	query := `
		SELECT id, user_id, name, age, gender, breed, created_at, updated_at
		FROM pets
		WHERE user_id = $1
		ORDER BY created_at ASC
		LIMIT 1
	`
	var pet model.Pet
	if err := r.db.GetContext(ctx, &pet, query, userID); err != nil {
		return nil, fmt.Errorf("failed to find pet: %w", notFound(err, "pet"))
	}
	return &pet, nil
}

func (r *petRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*model.Pet, error) {
	query := `
		SELECT id, user_id, name, age, gender, breed, created_at, updated_at
		FROM pets
		WHERE id = $1 AND user_id = $2
	`
	var pet model.Pet
	if err := r.db.GetContext(ctx, &pet, query, id, userID); err != nil {
		return nil, fmt.Errorf("failed to find pet: %w", notFound(err, "pet"))
	}
	return &pet, nil
}

type branchRepository struct {
	BaseRepository
}

func NewBranchRepository(base BaseRepository) repository.BranchRepository {
	return &branchRepository{base}
}

func (r *branchRepository) List(ctx context.Context) ([]*model.Branch, error) {
	query := `
		SELECT id, name, address, mobile_no, is_active, created_at, updated_at
		FROM branches
		ORDER BY name ASC
	`
	var branches []*model.Branch
	if err := r.db.SelectContext(ctx, &branches, query); err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return branches, nil
}
