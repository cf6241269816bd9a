package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/avetrov/facilityhub/internal/domain"
	"github.com/avetrov/facilityhub/internal/email"
	"github.com/avetrov/facilityhub/internal/kafka"
	"github.com/avetrov/facilityhub/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, reference string) (*domain.Booking, error)
	ApproveBooking(ctx context.Context, reference string, actor domain.Actor) (*domain.Booking, error)
	RejectBooking(ctx context.Context, reference string) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, reference string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, reference string, actor domain.Actor) (*domain.Booking, error)
}

type Cache interface {
	AcquireSlotHold(ctx context.Context, facilityID int64, date time.Time, slot string, ttl time.Duration) (bool, error)
	ReleaseSlotHold(ctx context.Context, facilityID int64, date time.Time, slot string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	accounts           repository.AccountRepository
	facilities         repository.FacilityRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	closingHour        int
	slotHoldTTL        time.Duration
	now                func() time.Time
}

type CreateBookingInput struct {
	FacilityID  int64     `json:"facility_id"`
	AccountID   int64     `json:"account_id"`
	Date        time.Time `json:"date"`
	TimeSlot    string    `json:"time_slot"`
	Credits     string    `json:"credits"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithClock overrides the evaluation clock; tests pin it.
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	accounts repository.AccountRepository,
	facilities repository.FacilityRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	closingHour int,
	slotHoldTTL time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		accounts:     accounts,
		facilities:   facilities,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		closingHour:  closingHour,
		slotHoldTTL:  slotHoldTTL,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking runs the admission checks and, when all of them pass,
// deducts the credits and persists the booking, refunding the deduction
// if the insert fails. A failed admission leaves every balance and
// booking untouched.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	account, err := s.accounts.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	ev := &evalContext{input: input, account: account, now: s.now()}
	for _, check := range admissionChecks {
		if err := check(ctx, s, ev); err != nil {
			return nil, err
		}
	}

	held := false
	if s.cache != nil {
		ok, err := s.cache.AcquireSlotHold(ctx, input.FacilityID, input.Date, input.TimeSlot, s.slotHoldTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.NewValidationError(slotTakenMessage(input.TimeSlot))
		}
		held = true
	}

	booking := &domain.Booking{
		Reference:   uuid.NewString(),
		FacilityID:  input.FacilityID,
		AccountID:   input.AccountID,
		BookedOn:    domain.DateOnly(input.Date),
		TimeSlot:    input.TimeSlot,
		Credits:     ev.credits,
		Title:       input.Title,
		Description: input.Description,
	}

	// The authoritative gate. The chain's probe read a snapshot; only this
	// conditional deduction decides against the true current balance.
	deducted, err := s.accounts.CheckAndDeduct(ctx, input.AccountID, ev.credits)
	if err != nil {
		if held {
			_ = s.cache.ReleaseSlotHold(ctx, input.FacilityID, input.Date, input.TimeSlot)
		}
		return nil, err
	}
	if !deducted {
		// Race loss: a concurrent deduction got there after the probe
		// passed. Indistinguishable from a plain probe failure for the
		// caller.
		if held {
			_ = s.cache.ReleaseSlotHold(ctx, input.FacilityID, input.Date, input.TimeSlot)
		}
		return nil, domain.NewValidationError(insufficientCreditMessage(account.CreditBalance, ev.credits))
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		// The deduction already happened; a failed insert must not leave
		// it standing.
		if refundErr := s.accounts.Refund(ctx, input.AccountID, ev.credits); refundErr != nil {
			log.Printf("WARNING: failed to refund %s to account %d after aborted admission: %v", ev.credits, input.AccountID, refundErr)
		}
		if held {
			_ = s.cache.ReleaseSlotHold(ctx, input.FacilityID, input.Date, input.TimeSlot)
		}
		if errors.Is(err, domain.ErrSlotTaken) {
			return nil, domain.NewValidationError(slotTakenMessage(input.TimeSlot))
		}
		return nil, err
	}

	s.publish(ctx, "booking_requested", booking, email.TagPending, account.Email)
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, reference string) (*domain.Booking, error) {
	return s.bookings.GetByReference(ctx, reference)
}

func (s *BookingService) ApproveBooking(ctx context.Context, reference string, actor domain.Actor) (*domain.Booking, error) {
	current, err := s.bookings.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.BookingStatusPending {
		return nil, domain.NewValidationError("only a pending booking can be approved")
	}

	updated, err := s.bookings.UpdateStatus(ctx, reference, domain.BookingStatusApproved, domain.BookingStatusPending)
	if errors.Is(err, domain.ErrStatusConflict) {
		return nil, domain.NewValidationError("only a pending booking can be approved")
	}
	if err != nil {
		return nil, err
	}

	tag := email.TagSystemApproved
	if actor == domain.ActorAdmin {
		tag = email.TagAdminApproved
	}
	s.publish(ctx, "booking_approved", updated, tag, s.accountEmail(ctx, updated.AccountID))
	return updated, nil
}

// RejectBooking moves a pending booking to REJECTED and refunds the credit
// deducted at admission, exactly once. The store performs the transition
// and the refund atomically; a concurrent transition loses the
// conditional write and refunds nothing.
func (s *BookingService) RejectBooking(ctx context.Context, reference string) (*domain.Booking, error) {
	current, err := s.bookings.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.BookingStatusPending {
		return nil, domain.NewValidationError("only a pending booking can be rejected")
	}

	updated, err := s.bookings.CloseWithRefund(ctx, reference, domain.BookingStatusRejected, domain.BookingStatusPending)
	if errors.Is(err, domain.ErrStatusConflict) {
		return nil, domain.NewValidationError("only a pending booking can be rejected")
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_rejected", updated, email.TagRejected, s.accountEmail(ctx, updated.AccountID))
	return updated, nil
}

func (s *BookingService) ConfirmBooking(ctx context.Context, reference string) (*domain.Booking, error) {
	current, err := s.bookings.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.BookingStatusApproved {
		return nil, domain.NewValidationError("only an approved booking can be confirmed")
	}

	updated, err := s.bookings.UpdateStatus(ctx, reference, domain.BookingStatusConfirmed, domain.BookingStatusApproved)
	if errors.Is(err, domain.ErrStatusConflict) {
		return nil, domain.NewValidationError("only an approved booking can be confirmed")
	}
	if err != nil {
		return nil, err
	}

	// Confirmation consumes the credit; no refund and no email, only the
	// status event.
	s.publish(ctx, "booking_confirmed", updated, "", s.accountEmail(ctx, updated.AccountID))
	return updated, nil
}

// CancelBooking moves an active booking to CANCELLED and refunds the
// deducted credit. Cancelling an already cancelled or rejected booking is
// a no-op returning the current record, so the refund can never happen
// twice.
func (s *BookingService) CancelBooking(ctx context.Context, reference string, actor domain.Actor) (*domain.Booking, error) {
	current, err := s.bookings.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if current.Status == domain.BookingStatusCancelled || current.Status == domain.BookingStatusRejected {
		return current, nil
	}
	if current.Status == domain.BookingStatusConfirmed {
		return nil, domain.NewValidationError("a confirmed booking can no longer be cancelled")
	}

	updated, err := s.bookings.CloseWithRefund(ctx, reference, domain.BookingStatusCancelled,
		domain.BookingStatusPending, domain.BookingStatusApproved)
	if errors.Is(err, domain.ErrStatusConflict) {
		// The booking moved under us; re-read to keep the no-op
		// contract for already-terminal states.
		current, err = s.bookings.GetByReference(ctx, reference)
		if err != nil {
			return nil, err
		}
		if current.Status == domain.BookingStatusCancelled || current.Status == domain.BookingStatusRejected {
			return current, nil
		}
		return nil, domain.NewValidationError("a confirmed booking can no longer be cancelled")
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_cancelled", updated, email.TagCancelled, s.accountEmail(ctx, updated.AccountID))
	return updated, nil
}

func (s *BookingService) accountEmail(ctx context.Context, accountID int64) string {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return ""
	}
	return account.Email
}

// publish emits the status-change event. Delivery failure is a warning,
// never a reason to fail the transition that already committed.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking, tag email.Tag, address string) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:       eventType,
		Reference:  booking.Reference,
		FacilityID: booking.FacilityID,
		AccountID:  booking.AccountID,
		Email:      address,
		BookedOn:   booking.BookedOn,
		TimeSlot:   booking.TimeSlot,
		Credits:    booking.Credits.String(),
		Status:     string(booking.Status),
		Tag:        string(tag),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.Reference, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %s: %v", eventType, booking.Reference, err)
		return
	}
	if s.notificationsTopic != "" && tag != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.Reference, event); err != nil {
			log.Printf("WARNING: failed to publish notification for booking %s: %v", booking.Reference, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
