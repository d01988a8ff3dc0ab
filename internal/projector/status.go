package projector

import "flightwatch/internal/models/entities"

// StatusCategory is the display style bucket for a flight status.
type StatusCategory string

const (
	StatusCategorySuccess StatusCategory = "success"
	StatusCategoryInfo    StatusCategory = "info"
	StatusCategoryWarning StatusCategory = "warning"
	StatusCategoryError   StatusCategory = "error"
	StatusCategoryNeutral StatusCategory = "neutral"
)

// ClassifyStatus maps a status to its display category. Unknown values fall
// back to neutral, the same as SCHEDULED.
func ClassifyStatus(status entities.FlightStatus) StatusCategory {
	switch status {
	case entities.FlightStatusActive:
		return StatusCategorySuccess
	case entities.FlightStatusLanded:
		return StatusCategoryInfo
	case entities.FlightStatusDelayed:
		return StatusCategoryWarning
	case entities.FlightStatusCancelled, entities.FlightStatusDiverted:
		return StatusCategoryError
	default:
		return StatusCategoryNeutral
	}
}
