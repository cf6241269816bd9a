package facilities

import (
	"context"
	"log"
	"time"

	"github.com/avetrov/facilityhub/internal/domain"
	"github.com/avetrov/facilityhub/internal/repository"
	"github.com/avetrov/facilityhub/internal/service/booking"
)

type FacilityUseCase interface {
	List(ctx context.Context) ([]domain.Facility, error)
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
	ScheduleMaintenance(ctx context.Context, input ScheduleMaintenanceInput) (*MaintenanceResult, error)
	ListMaintenance(ctx context.Context, facilityID int64) ([]domain.MaintenanceWindow, error)
	RemoveMaintenance(ctx context.Context, windowID int64) error
}

type Cache interface {
	GetFacilities(ctx context.Context) ([]domain.Facility, error)
	SetFacilities(ctx context.Context, facilities []domain.Facility) error
}

type ScheduleMaintenanceInput struct {
	FacilityID  int64     `json:"facility_id"`
	StartsOn    time.Time `json:"starts_on"`
	EndsOn      time.Time `json:"ends_on"`
	Description string    `json:"description"`
}

// MaintenanceResult reports the created window along with the bookings the
// blackout displaced.
type MaintenanceResult struct {
	Window    *domain.MaintenanceWindow
	Cancelled []domain.Booking
}

type FacilityService struct {
	facilities repository.FacilityRepository
	bookings   repository.BookingRepository
	lifecycle  booking.BookingUseCase
	cache      Cache
}

func NewFacilityService(facilities repository.FacilityRepository, bookings repository.BookingRepository, lifecycle booking.BookingUseCase, cache Cache) *FacilityService {
	return &FacilityService{facilities: facilities, bookings: bookings, lifecycle: lifecycle, cache: cache}
}

func (s *FacilityService) List(ctx context.Context) ([]domain.Facility, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFacilities(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	facilities, err := s.facilities.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFacilities(ctx, facilities)
	}
	return facilities, nil
}

func (s *FacilityService) GetByID(ctx context.Context, id int64) (*domain.Facility, error) {
	return s.facilities.GetByID(ctx, id)
}

// ScheduleMaintenance creates the blackout window and then cancels every
// active booking that falls inside it, refunding and notifying each one
// through the regular lifecycle.
func (s *FacilityService) ScheduleMaintenance(ctx context.Context, input ScheduleMaintenanceInput) (*MaintenanceResult, error) {
	if _, err := s.facilities.GetByID(ctx, input.FacilityID); err != nil {
		return nil, err
	}

	window := &domain.MaintenanceWindow{
		FacilityID:  input.FacilityID,
		StartsOn:    input.StartsOn,
		EndsOn:      input.EndsOn,
		Description: input.Description,
	}
	if err := s.facilities.CreateWindow(ctx, window); err != nil {
		return nil, err
	}

	affected, err := s.bookings.ListActiveInRange(ctx, input.FacilityID, input.StartsOn, input.EndsOn)
	if err != nil {
		return nil, err
	}

	result := &MaintenanceResult{Window: window}
	for _, b := range affected {
		cancelled, err := s.lifecycle.CancelBooking(ctx, b.Reference, domain.ActorSystem)
		if err != nil {
			log.Printf("WARNING: failed to cancel booking %s for maintenance: %v", b.Reference, err)
			continue
		}
		result.Cancelled = append(result.Cancelled, *cancelled)
	}
	return result, nil
}

func (s *FacilityService) ListMaintenance(ctx context.Context, facilityID int64) ([]domain.MaintenanceWindow, error) {
	return s.facilities.ListWindows(ctx, facilityID)
}

func (s *FacilityService) RemoveMaintenance(ctx context.Context, windowID int64) error {
	return s.facilities.DeleteWindow(ctx, windowID)
}

var _ FacilityUseCase = (*FacilityService)(nil)
