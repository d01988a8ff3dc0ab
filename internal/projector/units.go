package projector

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatAltitude renders feet with digit grouping, e.g. "35,000 ft".
func FormatAltitude(feet float64) string {
	return printer.Sprintf("%d ft", int(math.Round(feet)))
}

// FormatSpeed renders ground speed in knots, e.g. "550 kts".
func FormatSpeed(knots float64) string {
	return printer.Sprintf("%d kts", int(math.Round(knots)))
}

// FormatHeading renders a heading normalised to [0, 360), e.g. "270°".
func FormatHeading(degrees float64) string {
	h := math.Mod(math.Round(degrees), 360)
	if h < 0 {
		h += 360
	}
	return printer.Sprintf("%d°", int(h))
}
