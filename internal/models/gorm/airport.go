package gorm

import (
	"time"

	"flightwatch/internal/models/entities"
)

// Airport is the reference row behind airport lookups
type Airport struct {
	Code      string    `gorm:"column:code;primaryKey;type:varchar(4)"`
	Name      string    `gorm:"column:name;type:text;not null"`
	City      string    `gorm:"column:city;type:varchar(100)"`
	Country   string    `gorm:"column:country;type:varchar(100)"`
	Latitude  float64   `gorm:"column:latitude;type:numeric(10,6);not null"`
	Longitude float64   `gorm:"column:longitude;type:numeric(10,6);not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Airport) TableName() string {
	return "airports"
}

func (a Airport) ToEntity() entities.Airport {
	return entities.Airport{
		Code:      a.Code,
		Name:      a.Name,
		City:      a.City,
		Country:   a.Country,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
	}
}

func AirportFromEntity(a entities.Airport) Airport {
	return Airport{
		Code:      a.Code,
		Name:      a.Name,
		City:      a.City,
		Country:   a.Country,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
	}
}
