package repository

import (
	"context"
	"errors"
	"time"

	"github.com/avetrov/facilityhub/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FacilityRepository interface {
	List(ctx context.Context) ([]domain.Facility, error)
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
	UnderMaintenance(ctx context.Context, facilityID int64, date time.Time) (bool, error)
	CreateWindow(ctx context.Context, window *domain.MaintenanceWindow) error
	DeleteWindow(ctx context.Context, id int64) error
	ListWindows(ctx context.Context, facilityID int64) ([]domain.MaintenanceWindow, error)
}

type PGFacilityRepository struct {
	db *pgxpool.Pool
}

func NewFacilityRepository(db *pgxpool.Pool) FacilityRepository {
	return &PGFacilityRepository{db: db}
}

func (r *PGFacilityRepository) List(ctx context.Context) ([]domain.Facility, error) {
	rows, err := r.db.Query(ctx, `SELECT id, type, name, location, capacity, created_at, updated_at FROM facilities ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	facilities := make([]domain.Facility, 0)
	for rows.Next() {
		var f domain.Facility
		if err := rows.Scan(&f.ID, &f.Type, &f.Name, &f.Location, &f.Capacity, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		facilities = append(facilities, f)
	}
	return facilities, rows.Err()
}

func (r *PGFacilityRepository) GetByID(ctx context.Context, id int64) (*domain.Facility, error) {
	row := r.db.QueryRow(ctx, `SELECT id, type, name, location, capacity, created_at, updated_at FROM facilities WHERE id=$1`, id)
	var f domain.Facility
	if err := row.Scan(&f.ID, &f.Type, &f.Name, &f.Location, &f.Capacity, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFacilityNotFound
		}
		return nil, err
	}
	return &f, nil
}

// UnderMaintenance reports whether date falls inside any maintenance
// window for the facility, both ends inclusive.
func (r *PGFacilityRepository) UnderMaintenance(ctx context.Context, facilityID int64, date time.Time) (bool, error) {
	var blocked bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (
		SELECT 1 FROM maintenance_windows
		WHERE facility_id=$1 AND $2 BETWEEN starts_on AND ends_on
	)`, facilityID, domain.DateOnly(date)).Scan(&blocked)
	return blocked, err
}

func (r *PGFacilityRepository) CreateWindow(ctx context.Context, window *domain.MaintenanceWindow) error {
	if window.EndsOn.Before(window.StartsOn) {
		return domain.ErrInvalidWindow
	}
	return r.db.QueryRow(ctx, `INSERT INTO maintenance_windows (facility_id, starts_on, ends_on, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		window.FacilityID, domain.DateOnly(window.StartsOn), domain.DateOnly(window.EndsOn), window.Description).
		Scan(&window.ID, &window.CreatedAt)
}

func (r *PGFacilityRepository) DeleteWindow(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM maintenance_windows WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("maintenance window not found")
	}
	return nil
}

func (r *PGFacilityRepository) ListWindows(ctx context.Context, facilityID int64) ([]domain.MaintenanceWindow, error) {
	rows, err := r.db.Query(ctx, `SELECT id, facility_id, starts_on, ends_on, description, created_at FROM maintenance_windows WHERE facility_id=$1 ORDER BY starts_on`, facilityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	windows := make([]domain.MaintenanceWindow, 0)
	for rows.Next() {
		var w domain.MaintenanceWindow
		if err := rows.Scan(&w.ID, &w.FacilityID, &w.StartsOn, &w.EndsOn, &w.Description, &w.CreatedAt); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

var _ FacilityRepository = (*PGFacilityRepository)(nil)
