package providers

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"flightwatch/internal/models/entities"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Catalog is the demo data set behind MockProvider
type Catalog struct {
	Airports      []entities.Airport `yaml:"airports"`
	Airlines      map[string]string  `yaml:"airlines"`
	DefaultFlight FlightTemplate     `yaml:"default_flight"`
	Flights       []FlightTemplate   `yaml:"flights"`
	Connections   []string           `yaml:"connections"`
	AirportBoard  []FlightTemplate   `yaml:"airport_board"`
	Position      BasePosition       `yaml:"position"`
}

// FlightTemplate describes a flight relative to the moment it is served
type FlightTemplate struct {
	Number    string `yaml:"number"`
	Departure string `yaml:"departure"`
	Arrival   string `yaml:"arrival"`
	DepartsIn string `yaml:"departs_in"`
	Duration  string `yaml:"duration"`
	Status    string `yaml:"status"`
	Gate      string `yaml:"gate"`
	Terminal  string `yaml:"terminal"`
	Aircraft  string `yaml:"aircraft"`
}

// BasePosition is the centre of simulated telemetry
type BasePosition struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Altitude  float64 `yaml:"altitude"`
	Speed     float64 `yaml:"speed"`
	Heading   float64 `yaml:"heading"`
}

// DefaultCatalog parses the embedded demo catalog
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// ParseCatalog decodes and validates a YAML catalog
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	templates := append([]FlightTemplate{c.DefaultFlight}, c.Flights...)
	templates = append(templates, c.AirportBoard...)
	for _, t := range templates {
		if _, err := time.ParseDuration(t.DepartsIn); err != nil {
			return nil, fmt.Errorf("flight %q: invalid departs_in: %w", t.Number, err)
		}
		if _, err := time.ParseDuration(t.Duration); err != nil {
			return nil, fmt.Errorf("flight %q: invalid duration: %w", t.Number, err)
		}
	}
	return &c, nil
}

// AirportByCode returns the catalog airport for code
func (c *Catalog) AirportByCode(code string) (entities.Airport, bool) {
	for _, a := range c.Airports {
		if a.Code == code {
			return a, true
		}
	}
	return entities.Airport{}, false
}

// AirlineFor resolves the airline name from a flight number's two-letter prefix
func (c *Catalog) AirlineFor(flightNumber string) (string, bool) {
	if len(flightNumber) < 2 {
		return "", false
	}
	name, ok := c.Airlines[flightNumber[:2]]
	return name, ok
}

// Build materialises a template into a flight relative to now. "*" in the
// departure or arrival slot is replaced with airportCode.
func (t FlightTemplate) Build(number, airline, airportCode string, now time.Time) entities.Flight {
	departsIn, _ := time.ParseDuration(t.DepartsIn)
	duration, _ := time.ParseDuration(t.Duration)

	dep := now.Add(departsIn).UTC().Truncate(time.Second)
	flight := entities.Flight{
		FlightNumber:     number,
		Airline:          airline,
		DepartureAirport: substitute(t.Departure, airportCode),
		ArrivalAirport:   substitute(t.Arrival, airportCode),
		DepartureTime:    dep,
		ArrivalTime:      dep.Add(duration),
		Status:           entities.FlightStatus(t.Status),
		Gate:             optionalString(t.Gate),
		Terminal:         optionalString(t.Terminal),
		Aircraft:         optionalString(t.Aircraft),
	}
	return flight
}

func substitute(code, airportCode string) string {
	if code == "*" {
		return airportCode
	}
	return code
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
