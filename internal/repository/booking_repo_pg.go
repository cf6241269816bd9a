package repository

import (
	"context"
	"errors"
	"time"

	"github.com/avetrov/facilityhub/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `id, reference, facility_id, account_id, booked_on, time_slot, credits, status, title, description, created_at, updated_at`

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, reference string, status domain.BookingStatus, expected ...domain.BookingStatus) (*domain.Booking, error)
	CloseWithRefund(ctx context.Context, reference string, status domain.BookingStatus, expected ...domain.BookingStatus) (*domain.Booking, error)
	SlotTaken(ctx context.Context, facilityID int64, date time.Time, slot string) (bool, error)
	ListActiveInRange(ctx context.Context, facilityID int64, from, to time.Time) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// Create persists an admitted booking as PENDING. The partial unique
// index on (facility_id, booked_on, time_slot) over active statuses makes
// this insert the serialization point for slot conflicts.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	booking.Status = domain.BookingStatusPending
	if err := r.db.QueryRow(ctx, `INSERT INTO bookings (reference, facility_id, account_id, booked_on, time_slot, credits, status, title, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		booking.Reference, booking.FacilityID, booking.AccountID, booking.BookedOn, booking.TimeSlot, booking.Credits, booking.Status, booking.Title, booking.Description).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrSlotTaken
		}
		return err
	}
	return nil
}

func (r *PGBookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE reference=$1`, reference)
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	return b, err
}

// UpdateStatus transitions a booking only while its status is still one
// of the expected ones. The conditional write is the serialization point
// for concurrent transitions: a loser matches no row and gets
// ErrStatusConflict instead of overwriting the winner.
func (r *PGBookingRepository) UpdateStatus(ctx context.Context, reference string, status domain.BookingStatus, expected ...domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE reference=$2 AND status = ANY($3) RETURNING `+bookingColumns,
		status, reference, statusStrings(expected))
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.missedTransition(ctx, reference)
	}
	return b, err
}

// CloseWithRefund moves a booking to a terminal non-consuming status and
// returns its credits to the account in the same transaction, so the
// transition and its refund commit or roll back together.
func (r *PGBookingRepository) CloseWithRefund(ctx context.Context, reference string, status domain.BookingStatus, expected ...domain.BookingStatus) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE reference=$2 AND status = ANY($3) RETURNING `+bookingColumns,
		status, reference, statusStrings(expected))
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.missedTransition(ctx, reference)
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE accounts SET credit_balance = credit_balance + $1 WHERE id = $2`, b.Credits, b.AccountID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// missedTransition classifies an empty conditional update: the booking
// either never existed or was transitioned concurrently.
func (r *PGBookingRepository) missedTransition(ctx context.Context, reference string) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE reference=$1)`, reference).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return domain.ErrStatusConflict
	}
	return domain.ErrBookingNotFound
}

// SlotTaken answers the availability check of the validation chain. Slot
// equality is exact string match; all labels are drawn from the same fixed
// partition of the day.
func (r *PGBookingRepository) SlotTaken(ctx context.Context, facilityID int64, date time.Time, slot string) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE facility_id=$1 AND booked_on=$2 AND time_slot=$3 AND status = ANY($4)
	)`, facilityID, domain.DateOnly(date), slot, statusStrings(domain.ActiveStatuses)).Scan(&taken)
	return taken, err
}

// ListActiveInRange returns the active bookings falling inside a closed
// date interval, for the maintenance-scheduling workflow.
func (r *PGBookingRepository) ListActiveInRange(ctx context.Context, facilityID int64, from, to time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE facility_id=$1 AND booked_on BETWEEN $2 AND $3 AND status = ANY($4)
		ORDER BY booked_on, time_slot`, facilityID, domain.DateOnly(from), domain.DateOnly(to), statusStrings(domain.ActiveStatuses))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.Reference, &b.FacilityID, &b.AccountID, &b.BookedOn, &b.TimeSlot, &b.Credits, &b.Status, &b.Title, &b.Description, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

var _ BookingRepository = (*PGBookingRepository)(nil)
