package entity

// Patch types for partial draft updates. A nil pointer means "not provided,
// keep the current value"; a pointer to the zero value is an explicit clear.
// The nested composites (pickup, dropoff, dateTime, passengers,
// passengerDetails, extras) merge field by field so a patch touching one
// field never drops its siblings.

type LocationPatch struct {
	Address *string       `json:"address,omitempty"`
	PlaceID *string       `json:"placeId,omitempty"`
	Lat     *float64      `json:"lat,omitempty"`
	Lng     *float64      `json:"lng,omitempty"`
	Type    *LocationKind `json:"type,omitempty"`
	City    *string       `json:"city,omitempty"`
	Country *string       `json:"country,omitempty"`
}

type DateTimePatch struct {
	Date       *string `json:"date,omitempty"`
	Time       *string `json:"time,omitempty"`
	ReturnDate *string `json:"returnDate,omitempty"`
	ReturnTime *string `json:"returnTime,omitempty"`
}

type PassengersPatch struct {
	Count      *int `json:"count,omitempty"`
	Luggage    *int `json:"luggage,omitempty"`
	ChildSeats *int `json:"childSeats,omitempty"`
}

type ContactPatch struct {
	FirstName    *string `json:"firstName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	FlightNumber *string `json:"flightNumber,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

type ExtrasPatch struct {
	MeetAndGreet *bool `json:"meetAndGreet,omitempty"`
	WaitingTime  *int  `json:"waitingTime,omitempty"`
	// AdditionalStops replaces the whole list when present.
	AdditionalStops *[]Stop `json:"additionalStops,omitempty"`
}

// DraftPatch is a partial BookingDraft. Top-level scalars overwrite when
// present; SelectedVehicle and Pricing replace wholesale when present.
type DraftPatch struct {
	ServiceType      *ServiceType     `json:"serviceType,omitempty"`
	TransferType     *TransferType    `json:"transferType,omitempty"`
	Pickup           *LocationPatch   `json:"pickup,omitempty"`
	Dropoff          *LocationPatch   `json:"dropoff,omitempty"`
	DistanceKm       *float64         `json:"distance,omitempty"`
	DurationMin      *float64         `json:"duration,omitempty"`
	DateTime         *DateTimePatch   `json:"dateTime,omitempty"`
	Passengers       *PassengersPatch `json:"passengers,omitempty"`
	SelectedVehicle  *Vehicle         `json:"selectedVehicle,omitempty"`
	PassengerDetails *ContactPatch    `json:"passengerDetails,omitempty"`
	PaymentMethod    *string          `json:"paymentMethod,omitempty"`
	Extras           *ExtrasPatch     `json:"extras,omitempty"`
	Pricing          *PriceBreakdown  `json:"pricing,omitempty"`
	HourlyDuration   *int             `json:"hourlyDuration,omitempty"`
}
