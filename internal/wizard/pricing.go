package wizard

import (
	"math"
	"strings"

	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/entity"
)

// Rates is the pricing rule table. One fixed currency; not user-selectable.
type Rates struct {
	Currency            string
	TaxRatePercent      float64
	AirportFee          float64
	MeetAndGreetFee     float64
	ChildSeatFee        float64
	ExtraStopFee        float64
	HourlyFallbackHours int
	AirportKeywords     []string
}

// DefaultRates returns the Barcelona rule table.
func DefaultRates() Rates {
	return Rates{
		Currency:            "EUR",
		TaxRatePercent:      21,
		AirportFee:          15,
		MeetAndGreetFee:     20,
		ChildSeatFee:        10,
		ExtraStopFee:        10,
		HourlyFallbackHours: 3,
		AirportKeywords:     []string{"airport", "aeropuerto", "aeroport", "el prat", "bcn", "terminal"},
	}
}

// Price maps a draft plus a resolved distance to a breakdown. Pure; the same
// rule table runs on every quote and again server-side before payment, and
// both must agree to the cent.
//
// With no vehicle selected the breakdown is all zeros: callers treat a zero
// total as "not yet priceable", never as a free booking.
func Price(d entity.BookingDraft, distanceKm float64, r Rates) entity.PriceBreakdown {
	if d.SelectedVehicle == nil {
		return entity.PriceBreakdown{Currency: r.Currency}
	}
	v := d.SelectedVehicle

	base := round2(v.BasePrice)

	var distanceCharge, timeCharge float64
	if d.ServiceType == entity.ServiceHourly {
		hours := d.HourlyDuration
		if hours <= 0 {
			// Early-step quotes can price before a duration is chosen; an
			// unset duration falls back to a fixed number of hours.
			hours = r.HourlyFallbackHours
		}
		timeCharge = round2(v.PricePerHour * float64(hours))
	} else if distanceKm > 0 {
		distanceCharge = round2(distanceKm * v.PricePerKm)
	}

	var airportFee float64
	if isAirport(d.Pickup, r.AirportKeywords) || isAirport(d.Dropoff, r.AirportKeywords) {
		airportFee = round2(r.AirportFee)
	}

	var meetAndGreet float64
	if d.Extras.MeetAndGreet {
		meetAndGreet = round2(r.MeetAndGreetFee)
	}

	childSeats := round2(float64(d.Passengers.ChildSeats) * r.ChildSeatFee)
	extraStops := round2(float64(len(d.Extras.AdditionalStops)) * r.ExtraStopFee)

	// Components are rounded to cents; tax and total stay exact so the
	// subtotal/total identities hold bit-for-bit on client and server. Cent
	// rounding for the charge amount happens at the payment boundary.
	subtotal := round2(base + distanceCharge + timeCharge + extraStops + meetAndGreet + childSeats + airportFee)
	tax := subtotal * r.TaxRatePercent / 100
	total := subtotal + tax

	return entity.PriceBreakdown{
		BasePrice:          base,
		DistanceCharge:     distanceCharge,
		TimeCharge:         timeCharge,
		ExtraStopsCharge:   extraStops,
		MeetAndGreetCharge: meetAndGreet,
		ChildSeatsCharge:   childSeats,
		AirportFee:         airportFee,
		Subtotal:           subtotal,
		Tax:                tax,
		Total:              total,
		Currency:           r.Currency,
	}
}

// isAirport checks the structured type first, then falls back to keyword
// matching on the free-text address. The keyword match is heuristic and
// locale-specific (Barcelona wording); it over-matches on purpose.
func isAirport(loc entity.Location, keywords []string) bool {
	if loc.Type == entity.LocationAirport {
		return true
	}
	addr := strings.ToLower(loc.Address)
	if addr == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(addr, kw) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
