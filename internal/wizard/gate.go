package wizard

import (
	"strings"
	"time"

	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/entity"
)

// Wizard steps, strictly linear.
const (
	StepRideDetails = 0
	StepVehicle     = 1
	StepContact     = 2
	StepSummary     = 3
)

const timestampLayout = "2006-01-02 15:04"

// CanAdvance reports whether the wizard may move forward from the given
// step. Backward navigation and explicit jumps are never gated; only forward
// auto-advance goes through here.
func CanAdvance(step int, d entity.BookingDraft) bool {
	switch step {
	case StepRideDetails:
		return rideDetailsComplete(d)
	case StepVehicle:
		return d.SelectedVehicle != nil
	case StepContact:
		c := d.PassengerDetails
		return strings.TrimSpace(c.FirstName) != "" &&
			strings.TrimSpace(c.LastName) != "" &&
			strings.TrimSpace(c.Email) != "" &&
			strings.TrimSpace(c.Phone) != ""
	case StepSummary:
		return true
	default:
		return false
	}
}

func rideDetailsComplete(d entity.BookingDraft) bool {
	if strings.TrimSpace(d.Pickup.Address) == "" {
		return false
	}
	if d.DateTime.Date == "" || d.DateTime.Time == "" {
		return false
	}

	if d.ServiceType == entity.ServiceHourly {
		return d.HourlyDuration >= 2
	}

	// Distance trips need a geocoded pickup and dropoff, not free text.
	if strings.TrimSpace(d.Dropoff.Address) == "" {
		return false
	}
	if d.Pickup.PlaceID == "" || d.Dropoff.PlaceID == "" {
		return false
	}

	if d.TransferType == entity.TransferReturn {
		if d.DateTime.ReturnDate == "" || d.DateTime.ReturnTime == "" {
			return false
		}
		dep, err := parseTimestamp(d.DateTime.Date, d.DateTime.Time)
		if err != nil {
			return false
		}
		ret, err := parseTimestamp(d.DateTime.ReturnDate, d.DateTime.ReturnTime)
		if err != nil {
			return false
		}
		// Return must be strictly after pickup.
		return ret.After(dep)
	}

	return true
}

func parseTimestamp(date, clock string) (time.Time, error) {
	return time.Parse(timestampLayout, date+" "+clock)
}
