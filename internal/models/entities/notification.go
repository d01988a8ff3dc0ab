package entities

import "time"

// Notification is a locally stored flight alert.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	FlightID  *string   `json:"flight_id,omitempty"`
}

// NotificationSettings controls how delivered notifications are presented.
type NotificationSettings struct {
	ShowAlert bool `json:"show_alert"`
	PlaySound bool `json:"play_sound"`
	SetBadge  bool `json:"set_badge"`
}
