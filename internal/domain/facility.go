package domain

import "time"

type Facility struct {
	ID        int64
	Type      string
	Name      string
	Location  string
	Capacity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MaintenanceWindow is a closed date interval during which the facility
// accepts no new bookings. StartsOn and EndsOn are calendar dates, both
// inclusive.
type MaintenanceWindow struct {
	ID          int64
	FacilityID  int64
	StartsOn    time.Time
	EndsOn      time.Time
	Description string
	CreatedAt   time.Time
}
