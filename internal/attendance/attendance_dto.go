package attendance

import (
	"fmt"
	"time"
)

type CheckOutRequest struct {
	WorkReport string `json:"work_report" binding:"required"`
}

type ConsentRequest struct {
	Decision string `json:"decision" binding:"required,oneof=allowed denied"`
}

type SessionResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	UserName        string  `json:"user_name"`
	UserDesignation string  `json:"user_designation,omitempty"`
	Date            string  `json:"date"`
	CheckInTime     string  `json:"check_in_time"`
	CheckOutTime    *string `json:"check_out_time,omitempty"`
	HoursWorked     float64 `json:"hours_worked"`
	WorkReport      string  `json:"work_report,omitempty"`
	IsActive        bool    `json:"is_active"`
	IsLate          bool    `json:"is_late"`
	Location        *string `json:"location,omitempty"`
}

type StatusResponse struct {
	State        string  `json:"state"`
	SessionID    string  `json:"session_id,omitempty"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	ElapsedHours float64 `json:"elapsed_hours"`
	Elapsed      string  `json:"elapsed,omitempty"`
}

// FormatElapsed renders decimal hours as "1h 0m 0s".
func FormatElapsed(hours float64) string {
	h := int(hours)
	m := int((hours - float64(h)) * 60)
	s := int(((hours-float64(h))*60 - float64(m)) * 60)
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}

func mapToResponse(s AttendanceSession) SessionResponse {
	resp := SessionResponse{
		ID:              s.ID.String(),
		UserID:          s.UserID.String(),
		UserName:        s.UserName,
		UserDesignation: s.UserDesignation,
		Date:            s.Date.Format("2006-01-02"),
		CheckInTime:     s.CheckInTime.Format(time.RFC3339),
		HoursWorked:     s.HoursWorked,
		WorkReport:      s.WorkReport,
		IsActive:        s.IsActive,
		IsLate:          s.IsLate,
		Location:        s.Location,
	}
	if s.CheckOutTime != nil {
		v := s.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &v
	}
	return resp
}
