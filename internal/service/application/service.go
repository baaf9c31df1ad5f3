package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/pawcare-api/internal/model"
	"github.com/jwalitptl/pawcare-api/internal/repository"
	"github.com/jwalitptl/pawcare-api/internal/service/activity"
	"github.com/jwalitptl/pawcare-api/internal/service/fee"
	"github.com/jwalitptl/pawcare-api/pkg/logger"
)

type Service struct {
	bookings     repository.BookingRepository
	applications repository.ApplicationRepository
	schedules    repository.ScheduleRepository
	cages        repository.CageRepository
	pets         repository.PetRepository
	aggregator   *fee.Aggregator
	notifier     activity.Notifier
	logger       *logger.Logger
}

type Dependencies struct {
	Bookings     repository.BookingRepository
	Applications repository.ApplicationRepository
	Schedules    repository.ScheduleRepository
	Cages        repository.CageRepository
	Pets         repository.PetRepository
}

func NewService(deps Dependencies, aggregator *fee.Aggregator, notifier activity.Notifier, logger *logger.Logger) *Service {
	return &Service{
		bookings:     deps.Bookings,
		applications: deps.Applications,
		schedules:    deps.Schedules,
		cages:        deps.Cages,
		pets:         deps.Pets,
		aggregator:   aggregator,
		notifier:     notifier,
		logger:       logger,
	}
}

// CreateGroomingApplication books a grooming session for actor.
// The schedule and the actor's pet must exist before anything is written.
func (s *Service) CreateGroomingApplication(ctx context.Context, actor uuid.UUID, req *model.CreateGroomingRequest) (*model.ApplicationReceipt, error) {
	if _, err := s.schedules.Get(ctx, req.Schedule); err != nil {
		return nil, fmt.Errorf("failed to resolve schedule: %w", err)
	}

	petID, err := s.resolvePet(ctx, actor, req.Pet)
	if err != nil {
		return nil, err
	}

	payable, err := s.aggregator.Payable(ctx, model.ApplicationTypeGrooming, req.Services)
	if err != nil {
		return nil, fmt.Errorf("failed to compute payable: %w", err)
	}

	app := model.NewGroomingApplication(&model.GroomingApplication{
		ServiceName:      req.ServiceName,
		OtherInformation: req.OtherInformation,
		ScheduleID:       req.Schedule,
	})
	booking := newPendingBooking(actor, req.Branch, petID, payable)
	if len(req.Services) > 0 {
		booking.ExtraServices = model.UUIDArray(req.Services)
	}

	return s.create(ctx, actor, app, booking, model.ActivityGroomingCreated)
}

// CreateBoardingApplication books a boarding stay in a cage for actor.
func (s *Service) CreateBoardingApplication(ctx context.Context, actor uuid.UUID, req *model.CreateBoardingRequest) (*model.ApplicationReceipt, error) {
	if _, err := s.cages.Get(ctx, req.Cage); err != nil {
		return nil, fmt.Errorf("failed to resolve cage: %w", err)
	}

	petID, err := s.resolvePet(ctx, actor, req.Pet)
	if err != nil {
		return nil, err
	}

	payable, err := s.aggregator.Payable(ctx, model.ApplicationTypeBoarding, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to compute payable: %w", err)
	}

	app := model.NewBoardingApplication(&model.BoardingApplication{
		ServiceName: req.ServiceName,
		Schedule:    req.Schedule,
		DaysOfStay:  req.DaysOfStay,
		CageID:      req.Cage,
		BranchID:    req.Branch,
	})
	booking := newPendingBooking(actor, req.Branch, petID, payable)

	return s.create(ctx, actor, app, booking, model.ActivityBoardingCreated)
}

// CreateTransitApplication books a home service pickup for actor.
func (s *Service) CreateTransitApplication(ctx context.Context, actor uuid.UUID, req *model.CreateTransitRequest) (*model.ApplicationReceipt, error) {
	petID, err := s.resolvePet(ctx, actor, req.Pet)
	if err != nil {
		return nil, err
	}

	payable, err := s.aggregator.Payable(ctx, model.ApplicationTypeTransit, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to compute payable: %w", err)
	}

	app := model.NewTransitApplication(&model.TransitApplication{Schedule: req.Schedule})
	booking := newPendingBooking(actor, req.Branch, petID, payable)

	return s.create(ctx, actor, app, booking, model.ActivityTransitCreated)
}

// resolvePet returns the pet to book. A requested pet must belong to actor;
// otherwise actor's first registered pet is booked. Either miss is NotFound.
func (s *Service) resolvePet(ctx context.Context, actor, requested uuid.UUID) (uuid.UUID, error) {
	var (
		pet *model.Pet
		err error
	)
	if requested != uuid.Nil {
		pet, err = s.pets.FindOwned(ctx, requested, actor)
	} else {
		pet, err = s.pets.FindByUser(ctx, actor)
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to resolve pet: %w", err)
	}
	return pet.ID, nil
}

func newPendingBooking(actor, branch, pet uuid.UUID, payable float64) *model.Booking {
	return &model.Booking{
		UserID:        actor,
		BranchID:      branch,
		PetID:         pet,
		Status:        model.BookingStatusPending,
		ExtraServices: model.UUIDArray{},
		Payable:       payable,
	}
}

func (s *Service) create(ctx context.Context, actor uuid.UUID, app *model.Application, booking *model.Booking, activityType string) (*model.ApplicationReceipt, error) {
	if err := s.bookings.CreateWithApplication(ctx, app, booking); err != nil {
		return nil, fmt.Errorf("failed to create %s booking: %w", app.Type, err)
	}

	s.logger.Info("Booking created",
		"booking_id", booking.ID.String(),
		"application_type", string(app.Type),
		"payable", booking.Payable)

	s.notifier.Notify(ctx, activity.Event(actor, activityType))

	return &model.ApplicationReceipt{
		ReferenceNo: booking.ID,
		Date:        booking.CreatedAt,
	}, nil
}

func (s *Service) GetGroomingApplication(ctx context.Context, id uuid.UUID) (*model.GroomingApplicationView, error) {
	app, err := s.applications.GetGrooming(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get grooming application: %w", err)
	}
	return app, nil
}

func (s *Service) GetBoardingApplication(ctx context.Context, id uuid.UUID) (*model.BoardingApplicationView, error) {
	app, err := s.applications.GetBoarding(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get boarding application: %w", err)
	}
	return app, nil
}

func (s *Service) GetTransitApplication(ctx context.Context, id uuid.UUID) (*model.TransitApplication, error) {
	app, err := s.applications.GetTransit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get transit application: %w", err)
	}
	return app, nil
}
