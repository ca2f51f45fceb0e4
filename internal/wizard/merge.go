package wizard

import (
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/entity"
)

// Merge combines the current draft with a partial patch. Nested composites
// merge field by field; a patch that only sets dateTime.time must not erase
// dateTime.date. Top-level scalars overwrite when present. Pure and
// idempotent: applying the same patch twice gives the same draft.
//
// Dropoff merges against the Location zero value when the current dropoff is
// absent, so a patch carrying only dropoff.placeId still yields a dropoff
// with an address field (empty, but present).
func Merge(cur entity.BookingDraft, patch entity.DraftPatch) entity.BookingDraft {
	out := cur

	if patch.ServiceType != nil {
		out.ServiceType = *patch.ServiceType
	}
	if patch.TransferType != nil {
		out.TransferType = *patch.TransferType
	}
	if patch.Pickup != nil {
		out.Pickup = mergeLocation(cur.Pickup, patch.Pickup)
	}
	if patch.Dropoff != nil {
		out.Dropoff = mergeLocation(cur.Dropoff, patch.Dropoff)
	}
	if patch.DistanceKm != nil {
		out.DistanceKm = *patch.DistanceKm
	}
	if patch.DurationMin != nil {
		out.DurationMin = *patch.DurationMin
	}
	if patch.DateTime != nil {
		out.DateTime = mergeDateTime(cur.DateTime, patch.DateTime)
	}
	if patch.Passengers != nil {
		out.Passengers = mergePassengers(cur.Passengers, patch.Passengers)
	}
	if patch.SelectedVehicle != nil {
		v := *patch.SelectedVehicle
		out.SelectedVehicle = &v
	}
	if patch.PassengerDetails != nil {
		out.PassengerDetails = mergeContact(cur.PassengerDetails, patch.PassengerDetails)
	}
	if patch.PaymentMethod != nil {
		out.PaymentMethod = *patch.PaymentMethod
	}
	if patch.Extras != nil {
		out.Extras = mergeExtras(cur.Extras, patch.Extras)
	}
	if patch.Pricing != nil {
		p := *patch.Pricing
		out.Pricing = &p
	}
	if patch.HourlyDuration != nil {
		out.HourlyDuration = *patch.HourlyDuration
	}

	return out
}

func mergeLocation(cur entity.Location, p *entity.LocationPatch) entity.Location {
	out := cur
	if p.Address != nil {
		out.Address = *p.Address
	}
	if p.PlaceID != nil {
		out.PlaceID = *p.PlaceID
	}
	if p.Lat != nil {
		out.Lat = *p.Lat
	}
	if p.Lng != nil {
		out.Lng = *p.Lng
	}
	if p.Type != nil {
		out.Type = *p.Type
	}
	if p.City != nil {
		out.City = *p.City
	}
	if p.Country != nil {
		out.Country = *p.Country
	}
	return out
}

func mergeDateTime(cur entity.TripDateTime, p *entity.DateTimePatch) entity.TripDateTime {
	out := cur
	if p.Date != nil {
		out.Date = *p.Date
	}
	if p.Time != nil {
		out.Time = *p.Time
	}
	if p.ReturnDate != nil {
		out.ReturnDate = *p.ReturnDate
	}
	if p.ReturnTime != nil {
		out.ReturnTime = *p.ReturnTime
	}
	return out
}

func mergePassengers(cur entity.PassengerInfo, p *entity.PassengersPatch) entity.PassengerInfo {
	out := cur
	if p.Count != nil {
		out.Count = *p.Count
	}
	if p.Luggage != nil {
		out.Luggage = *p.Luggage
	}
	if p.ChildSeats != nil {
		out.ChildSeats = *p.ChildSeats
	}
	return out
}

func mergeContact(cur entity.ContactInfo, p *entity.ContactPatch) entity.ContactInfo {
	out := cur
	if p.FirstName != nil {
		out.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		out.LastName = *p.LastName
	}
	if p.Email != nil {
		out.Email = *p.Email
	}
	if p.Phone != nil {
		out.Phone = *p.Phone
	}
	if p.FlightNumber != nil {
		out.FlightNumber = *p.FlightNumber
	}
	if p.Notes != nil {
		out.Notes = *p.Notes
	}
	return out
}

func mergeExtras(cur entity.Extras, p *entity.ExtrasPatch) entity.Extras {
	out := cur
	if p.MeetAndGreet != nil {
		out.MeetAndGreet = *p.MeetAndGreet
	}
	if p.WaitingTime != nil {
		out.WaitingTime = *p.WaitingTime
	}
	if p.AdditionalStops != nil {
		stops := make([]entity.Stop, len(*p.AdditionalStops))
		copy(stops, *p.AdditionalStops)
		out.AdditionalStops = stops
	}
	return out
}
