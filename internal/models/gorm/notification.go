package gorm

import (
	"time"

	"flightwatch/internal/models/entities"
)

// Notification persists one flight update notice
type Notification struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	Title     string    `gorm:"column:title;type:text;not null"`
	Message   string    `gorm:"column:message;type:text;not null"`
	Timestamp time.Time `gorm:"column:sent_at;not null;index"`
	IsRead    bool      `gorm:"column:is_read;not null;default:false"`
	FlightID  *string   `gorm:"column:flight_id;type:varchar(16);index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

func (n Notification) ToEntity() entities.Notification {
	return entities.Notification{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Timestamp: n.Timestamp,
		Read:      n.IsRead,
		FlightID:  n.FlightID,
	}
}

func NotificationFromEntity(n entities.Notification) Notification {
	return Notification{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Timestamp: n.Timestamp,
		IsRead:    n.Read,
		FlightID:  n.FlightID,
	}
}
