package controllers

import (
	"strings"
	"time"

	"skillsharehub/internal/domain"
)

// datetimeLayouts are accepted for the combined datetime field, tried in order.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

const dateLayout = "2006-01-02"

var timeLayouts = []string{"15:04:05", "15:04"}

// EventRequest is the request body for POST /events and PUT /events/{eventID}.
// The schedule is given either as datetime or as separate date and time; datetime wins when both are sent.
type EventRequest struct {
	Title       string   `json:"title" validate:"required,max=100"`
	Datetime    string   `json:"datetime,omitempty" example:"2026-03-14T18:30:00Z"`
	Date        string   `json:"date,omitempty" example:"2026-03-14"`
	Time        string   `json:"time,omitempty" example:"18:30"`
	Cost        string   `json:"cost" validate:"required,max=50"`
	Location    string   `json:"location" validate:"required,max=100"`
	Address     string   `json:"address" validate:"required,max=100"`
	Description string   `json:"description" validate:"required"`
	Hostname    string   `json:"hostname" validate:"required,max=100"`
	TopicIDs    []string `json:"topic_ids,omitempty" validate:"omitempty,dive,uuid"`
}

// Validate implements Validator for the schedule fields, which struct tags cannot express.
func (e EventRequest) Validate() []string {
	if _, problem := e.scheduledAt(); problem != "" {
		return []string{problem}
	}
	return nil
}

// scheduledAt resolves the request's schedule. A non-empty problem means the fields were unusable.
func (e EventRequest) scheduledAt() (time.Time, string) {
	if dt := strings.TrimSpace(e.Datetime); dt != "" {
		t, ok := parseDatetime(dt)
		if !ok {
			return time.Time{}, "datetime must be RFC3339 or YYYY-MM-DD HH:MM"
		}
		return t, ""
	}
	d, tm := strings.TrimSpace(e.Date), strings.TrimSpace(e.Time)
	switch {
	case d == "" && tm == "":
		return time.Time{}, "datetime is required"
	case d == "":
		return time.Time{}, "date is required"
	case tm == "":
		return time.Time{}, "time is required"
	}
	day, err := time.Parse(dateLayout, d)
	if err != nil {
		return time.Time{}, "date must be YYYY-MM-DD"
	}
	for _, layout := range timeLayouts {
		clock, err := time.Parse(layout, tm)
		if err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC), ""
		}
	}
	return time.Time{}, "time must be HH:MM or HH:MM:SS"
}

// parseDatetime accepts the layouts in datetimeLayouts. Values without an offset are UTC.
func parseDatetime(s string) (time.Time, bool) {
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// toInput converts a validated request into service input.
func (e EventRequest) toInput() domain.EventInput {
	at, _ := e.scheduledAt()
	return domain.EventInput{
		Title:       strings.TrimSpace(e.Title),
		ScheduledAt: at,
		Cost:        strings.TrimSpace(e.Cost),
		Location:    strings.TrimSpace(e.Location),
		Address:     strings.TrimSpace(e.Address),
		Description: strings.TrimSpace(e.Description),
		Hostname:    strings.TrimSpace(e.Hostname),
		TopicIDs:    e.TopicIDs,
	}
}

// RegisterHostRequest is the optional request body for POST /events/{eventID}/hosts.
type RegisterHostRequest struct {
	Name string `json:"name,omitempty" validate:"max=100"`
}

// SetEventTopicsRequest is the request body for PUT /events/{eventID}/topics. An empty list clears the topics.
type SetEventTopicsRequest struct {
	TopicIDs []string `json:"topic_ids" validate:"omitempty,dive,uuid"`
}
