package entity

type ServiceType string

const (
	ServiceDistance ServiceType = "distance"
	ServiceHourly   ServiceType = "hourly"
)

type TransferType string

const (
	TransferOneWay TransferType = "oneWay"
	TransferReturn TransferType = "return"
)

type LocationKind string

const (
	LocationAirport LocationKind = "airport"
	LocationHotel   LocationKind = "hotel"
	LocationCruise  LocationKind = "cruise"
	LocationAddress LocationKind = "address"
	LocationPOI     LocationKind = "poi"
)

// Location identifies a trip endpoint. Identity is PlaceID when present,
// otherwise the free-text Address.
type Location struct {
	Address string       `json:"address"`
	PlaceID string       `json:"placeId,omitempty"`
	Lat     float64      `json:"lat,omitempty"`
	Lng     float64      `json:"lng,omitempty"`
	Type    LocationKind `json:"type,omitempty"`
	City    string       `json:"city,omitempty"`
	Country string       `json:"country,omitempty"`
}

// TripDateTime holds pickup date/time plus the return pair, which is only
// populated for return transfers. Date is ISO (2006-01-02), Time is HH:MM.
type TripDateTime struct {
	Date       string `json:"date"`
	Time       string `json:"time"`
	ReturnDate string `json:"returnDate,omitempty"`
	ReturnTime string `json:"returnTime,omitempty"`
}

type PassengerInfo struct {
	Count      int `json:"count"`
	Luggage    int `json:"luggage"`
	ChildSeats int `json:"childSeats"`
}

type ContactInfo struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	FlightNumber string `json:"flightNumber,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

type Stop struct {
	Address  string `json:"address"`
	PlaceID  string `json:"placeId,omitempty"`
	Duration int    `json:"duration"` // minutes
}

type Extras struct {
	MeetAndGreet    bool   `json:"meetAndGreet"`
	WaitingTime     int    `json:"waitingTime"` // minutes
	AdditionalStops []Stop `json:"additionalStops,omitempty"`
}

type PriceBreakdown struct {
	BasePrice          float64 `json:"basePrice"`
	DistanceCharge     float64 `json:"distanceCharge"`
	TimeCharge         float64 `json:"timeCharge"`
	ExtraStopsCharge   float64 `json:"extraStopsCharge"`
	MeetAndGreetCharge float64 `json:"meetAndGreetCharge"`
	ChildSeatsCharge   float64 `json:"childSeatsCharge"`
	AirportFee         float64 `json:"airportFee"`
	Subtotal           float64 `json:"subtotal"`
	Tax                float64 `json:"tax"`
	Total              float64 `json:"total"`
	Currency           string  `json:"currency"`
}

// BookingDraft is the canonical wizard state. An empty ServiceType means the
// visitor has not picked a service yet; HourlyDuration 0 means unset.
//
// Invariants:
//   - Dropoff is meaningful only for distance service; blank for hourly.
//   - TransferType is meaningful only for distance service.
//   - HourlyDuration is set only for hourly; DistanceKm/DurationMin only for distance.
//   - ReturnDate/ReturnTime are populated only when TransferType is return.
type BookingDraft struct {
	ServiceType      ServiceType     `json:"serviceType,omitempty"`
	TransferType     TransferType    `json:"transferType,omitempty"`
	Pickup           Location        `json:"pickup"`
	Dropoff          Location        `json:"dropoff"`
	DistanceKm       float64         `json:"distance,omitempty"`
	DurationMin      float64         `json:"duration,omitempty"`
	DateTime         TripDateTime    `json:"dateTime"`
	Passengers       PassengerInfo   `json:"passengers"`
	SelectedVehicle  *Vehicle        `json:"selectedVehicle,omitempty"`
	PassengerDetails ContactInfo     `json:"passengerDetails"`
	PaymentMethod    string          `json:"paymentMethod,omitempty"` // "cash" | "card"
	Extras           Extras          `json:"extras"`
	Pricing          *PriceBreakdown `json:"pricing,omitempty"`
	HourlyDuration   int             `json:"hourlyDuration,omitempty"` // hours, 2-24
}

// NewBookingDraft returns the empty draft a wizard session starts from.
func NewBookingDraft() BookingDraft {
	return BookingDraft{
		Passengers: PassengerInfo{Count: 1},
	}
}
