package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avetrov/facilityhub/internal/domain"
	"github.com/shopspring/decimal"
)

// evalContext carries one request through the admission checks. Values a
// check resolves (the facility, the parsed credit amount) are threaded to
// later checks through this struct; it lives for a single evaluation and
// is never shared across requests.
type evalContext struct {
	input   CreateBookingInput
	account *domain.Account
	now     time.Time

	facility *domain.Facility
	credits  decimal.Decimal
	start    time.Time
}

type checkFunc func(ctx context.Context, s *BookingService, ev *evalContext) error

// admissionChecks run in order and stop at the first failure. Cheap,
// pure-input checks go first; checks that touch the store go last. All of
// them are reads: the deduction itself happens only at commit time.
var admissionChecks = []checkFunc{
	checkStartNotPast,
	checkTitle,
	checkClosingTime,
	checkFacilityExists,
	checkMaintenance,
	checkCreditSufficiency,
	checkSlotAvailable,
}

func checkStartNotPast(_ context.Context, _ *BookingService, ev *evalContext) error {
	start, err := domain.SlotStart(ev.input.Date, ev.input.TimeSlot)
	if err != nil {
		return domain.NewValidationError(err.Error())
	}
	ev.start = start
	if start.Before(ev.now) {
		return domain.NewValidationError("cannot book a time slot in the past")
	}
	return nil
}

func checkTitle(_ context.Context, _ *BookingService, ev *evalContext) error {
	if strings.TrimSpace(ev.input.Title) == "" {
		return domain.NewValidationError("a booking title is required")
	}
	return nil
}

// checkClosingTime parses the requested credit amount; it doubles as the
// booking duration in minutes, so the end of the booking must still be
// inside opening hours.
func checkClosingTime(_ context.Context, s *BookingService, ev *evalContext) error {
	credits, err := decimal.NewFromString(strings.TrimSpace(ev.input.Credits))
	if err != nil || credits.LessThanOrEqual(decimal.Zero) {
		return domain.NewValidationError(fmt.Sprintf("invalid credit amount %q", ev.input.Credits))
	}
	ev.credits = credits

	closing := time.Date(ev.start.Year(), ev.start.Month(), ev.start.Day(), s.closingHour, 0, 0, 0, ev.start.Location())
	end := ev.start.Add(time.Duration(credits.InexactFloat64() * float64(time.Minute)))
	if end.After(closing) {
		return domain.NewValidationError(fmt.Sprintf("booking cannot extend beyond %s closing time", closing.Format("3:04 PM")))
	}
	return nil
}

func checkFacilityExists(ctx context.Context, s *BookingService, ev *evalContext) error {
	facility, err := s.facilities.GetByID(ctx, ev.input.FacilityID)
	if err != nil {
		return err
	}
	ev.facility = facility
	return nil
}

func checkMaintenance(ctx context.Context, s *BookingService, ev *evalContext) error {
	blocked, err := s.facilities.UnderMaintenance(ctx, ev.facility.ID, ev.input.Date)
	if err != nil {
		return err
	}
	if blocked {
		return domain.NewValidationError(fmt.Sprintf("%s is under maintenance on the requested date", ev.facility.Name))
	}
	return nil
}

// checkCreditSufficiency is a read-only probe against the resolved account
// snapshot. The authoritative gate is the conditional deduction at commit
// time; this probe exists so a request that would fail anyway does not
// reach the slot check.
func checkCreditSufficiency(_ context.Context, _ *BookingService, ev *evalContext) error {
	if ev.account.CreditBalance.LessThan(ev.credits) {
		return domain.NewValidationError(insufficientCreditMessage(ev.account.CreditBalance, ev.credits))
	}
	return nil
}

func checkSlotAvailable(ctx context.Context, s *BookingService, ev *evalContext) error {
	taken, err := s.bookings.SlotTaken(ctx, ev.facility.ID, ev.input.Date, ev.input.TimeSlot)
	if err != nil {
		return err
	}
	if taken {
		return domain.NewValidationError(slotTakenMessage(ev.input.TimeSlot))
	}
	return nil
}

func insufficientCreditMessage(balance, requested decimal.Decimal) string {
	return fmt.Sprintf("insufficient credit: balance %s, requested %s", balance.String(), requested.String())
}

func slotTakenMessage(slot string) string {
	return fmt.Sprintf("time slot %s is already booked for this facility", slot)
}
