package events

import "time"

const AttendanceSessionTopic = "workforce.attendance.session.v1"

const (
	EventAttendanceCheckedIn  = "attendance.checked_in"
	EventAttendanceCheckedOut = "attendance.checked_out"
)

type AttendanceCheckedInEvent struct {
	EventType   string    `json:"event_type"`
	SessionID   string    `json:"session_id"`
	UserID      string    `json:"user_id"`
	IsLate      bool      `json:"is_late"`
	Location    string    `json:"location,omitempty"`
	CheckInTime time.Time `json:"check_in_time"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type AttendanceCheckedOutEvent struct {
	EventType    string    `json:"event_type"`
	SessionID    string    `json:"session_id"`
	UserID       string    `json:"user_id"`
	HoursWorked  float64   `json:"hours_worked"`
	CheckOutTime time.Time `json:"check_out_time"`
	OccurredAt   time.Time `json:"occurred_at"`
}
