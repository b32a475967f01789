package domain

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for check-in and check-out dates.
const DateLayout = "2006-01-02"

type EquipmentStatus string

const (
	StatusCheckedIn  EquipmentStatus = "checked_in"
	StatusCheckedOut EquipmentStatus = "checked_out"
)

// EquipmentRecord is one rental in the equipment log.
// CheckedOutAt and Cost stay nil until the record is checked out.
type EquipmentRecord struct {
	ID            int64           `json:"id"`
	EquipmentName string          `json:"equipment_name"`
	RenterNumber  string          `json:"renter_number"`
	Rate          float64         `json:"rate"`
	Status        EquipmentStatus `json:"status"`
	CheckedInAt   string          `json:"checked_in_at"`
	CheckedOutAt  *string         `json:"checked_out_at"`
	Cost          *float64        `json:"cost"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (r *EquipmentRecord) IsCheckedIn() bool {
	return r.Status == StatusCheckedIn
}

// Filter selects equipment records by field equality. Zero values mean "any".
type Filter struct {
	ID     int64
	Status EquipmentStatus
	Limit  int
}

// CheckOutPatch is the single mutation a record receives in its lifetime.
type CheckOutPatch struct {
	CheckedOutAt string
	Cost         float64
}

// ExportColumns is the column order of the exported log.
var ExportColumns = []string{
	"id",
	"equipment_name",
	"renter_number",
	"rate",
	"status",
	"checked_in_at",
	"checked_out_at",
	"cost",
	"created_at",
}

// CalendarDate formats t as a date in loc.
func CalendarDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// ParseCalendarDate accepts a plain date or a full RFC 3339 timestamp (some stores
// hand dates back as timestamps) and returns the date at midnight in loc.
func ParseCalendarDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
		}
		s = s[:len(DateLayout)]
	}
	return time.ParseInLocation(DateLayout, s, loc)
}

// FormatID renders a record id the way selections carry it.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
