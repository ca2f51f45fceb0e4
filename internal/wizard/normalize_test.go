package wizard

import (
	"errors"
	"reflect"
	"testing"

	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/entity"
)

func TestNormalizeVersionedReturnTrip(t *testing.T) {
	payload := []byte(`{
		"version": "2",
		"serviceType": "distance",
		"transferType": "return",
		"pickup": {"address": "BCN Airport", "placeId": "p1", "type": "airport"},
		"dropoff": {"address": "Hotel X", "placeId": "p2"},
		"pickupDateTime": {"date": "2025-07-01", "time": "09:00"},
		"returnDateTime": {"date": "2025-07-03", "time": "18:00"}
	}`)

	prev := entity.NewBookingDraft()
	patch, err := Normalize(prev, payload)
	if err != nil {
		t.Fatalf("normalize error: %v", err)
	}

	out := Merge(prev, patch)
	if out.ServiceType != entity.ServiceDistance {
		t.Fatalf("service type: got %q", out.ServiceType)
	}
	if out.TransferType != entity.TransferReturn {
		t.Fatalf("transfer type: got %q", out.TransferType)
	}
	if out.DateTime.Date != "2025-07-01" || out.DateTime.Time != "09:00" {
		t.Fatalf("pickup date/time: got %+v", out.DateTime)
	}
	if out.DateTime.ReturnDate != "2025-07-03" || out.DateTime.ReturnTime != "18:00" {
		t.Fatalf("return date/time: got %+v", out.DateTime)
	}
	if out.Pickup.Type != entity.LocationAirport || out.Dropoff.PlaceID != "p2" {
		t.Fatalf("locations not carried: %+v / %+v", out.Pickup, out.Dropoff)
	}
}

func TestNormalizeVersionedUnknownServiceTypeMapsToDistance(t *testing.T) {
	patch, err := Normalize(entity.NewBookingDraft(), []byte(`{"version":"2","serviceType":"transfer"}`))
	if err != nil {
		t.Fatalf("normalize error: %v", err)
	}
	if patch.ServiceType == nil || *patch.ServiceType != entity.ServiceDistance {
		t.Fatalf("expected distance, got %v", patch.ServiceType)
	}
}

func TestNormalizeLegacyServiceTypeFallbackChain(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		prev    entity.ServiceType
		want    entity.ServiceType
	}{
		{"explicit field wins", `{"serviceType":"hourly","mode":"distance"}`, entity.ServiceDistance, entity.ServiceHourly},
		{"mode hint", `{"mode":"hourly"}`, entity.ServiceDistance, entity.ServiceHourly},
		{"previous state", `{}`, entity.ServiceHourly, entity.ServiceHourly},
		{"default distance", `{}`, "", entity.ServiceDistance},
		{"garbage ignored", `{"serviceType":"teleport"}`, "", entity.ServiceDistance},
	}

	for _, tc := range cases {
		prev := entity.NewBookingDraft()
		prev.ServiceType = tc.prev
		patch, err := Normalize(prev, []byte(tc.payload))
		if err != nil {
			t.Fatalf("%s: normalize error: %v", tc.name, err)
		}
		if *patch.ServiceType != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, *patch.ServiceType, tc.want)
		}
	}
}

func TestNormalizeHourlyBlanksDropoffAndDistance(t *testing.T) {
	prev := entity.NewBookingDraft()
	prev.ServiceType = entity.ServiceDistance
	prev.Dropoff = entity.Location{Address: "Hotel X", PlaceID: "p2"}
	prev.DistanceKm = 20
	prev.DurationMin = 30

	patch, err := Normalize(prev, []byte(`{"version":"2","serviceType":"hourly","hourlyDuration":4}`))
	if err != nil {
		t.Fatalf("normalize error: %v", err)
	}

	out := Merge(prev, patch)
	if out.ServiceType != entity.ServiceHourly {
		t.Fatalf("service type: got %q", out.ServiceType)
	}
	if out.Dropoff.Address != "" || out.Dropoff.PlaceID != "" {
		t.Fatalf("dropoff not blanked: %+v", out.Dropoff)
	}
	if out.DistanceKm != 0 || out.DurationMin != 0 {
		t.Fatalf("distance/duration not cleared: %v / %v", out.DistanceKm, out.DurationMin)
	}
	if out.HourlyDuration != 4 {
		t.Fatalf("hourly duration: got %d", out.HourlyDuration)
	}
	if out.TransferType != entity.TransferOneWay {
		t.Fatalf("hourly must force oneWay, got %q", out.TransferType)
	}
}

func TestNormalizeHourlyDurationRules(t *testing.T) {
	prev := entity.NewBookingDraft()
	prev.ServiceType = entity.ServiceHourly
	prev.HourlyDuration = 6

	// Non-positive duration is ignored, previous value stands.
	patch, err := Normalize(prev, []byte(`{"version":"2","serviceType":"hourly","hourlyDuration":0}`))
	if err != nil {
		t.Fatalf("normalize error: %v", err)
	}
	out := Merge(prev, patch)
	if out.HourlyDuration != 6 {
		t.Fatalf("previous duration not preserved: got %d", out.HourlyDuration)
	}

	// Switching to distance clears it entirely.
	patch, err = Normalize(prev, []byte(`{"version":"2","serviceType":"distance"}`))
	if err != nil {
		t.Fatalf("normalize error: %v", err)
	}
	out = Merge(prev, patch)
	if out.HourlyDuration != 0 {
		t.Fatalf("hourly duration not cleared on distance: got %d", out.HourlyDuration)
	}
}

func TestNormalizeSwitchToOneWayClearsReturnFields(t *testing.T) {
	prev := entity.NewBookingDraft()
	prev.ServiceType = entity.ServiceDistance
	prev.TransferType = entity.TransferReturn
	prev.DateTime = entity.TripDateTime{
		Date: "2025-07-01", Time: "09:00",
		ReturnDate: "2025-07-03", ReturnTime: "18:00",
	}

	patch, err := Normalize(prev, []byte(`{"transferType":"oneWay"}`))
	if err != nil {
		t.Fatalf("normalize error: %v", err)
	}

	out := Merge(prev, patch)
	if out.TransferType != entity.TransferOneWay {
		t.Fatalf("transfer type: got %q", out.TransferType)
	}
	if out.DateTime.ReturnDate != "" || out.DateTime.ReturnTime != "" {
		t.Fatalf("return fields not cleared: %+v", out.DateTime)
	}
	if out.DateTime.Date != "2025-07-01" || out.DateTime.Time != "09:00" {
		t.Fatalf("pickup date/time lost: %+v", out.DateTime)
	}
}

func TestNormalizeLegacyReturnFieldsInsideDateTime(t *testing.T) {
	prev := entity.NewBookingDraft()
	payload := []byte(`{
		"serviceType": "distance",
		"transferType": "return",
		"dateTime": {"date":"2025-08-10","time":"08:30","returnDate":"2025-08-12","returnTime":"20:00"}
	}`)

	patch, err := Normalize(prev, payload)
	if err != nil {
		t.Fatalf("normalize error: %v", err)
	}
	out := Merge(prev, patch)
	if out.DateTime.ReturnDate != "2025-08-12" || out.DateTime.ReturnTime != "20:00" {
		t.Fatalf("legacy return fields not resolved: %+v", out.DateTime)
	}
}

func TestNormalizePassengerSubsetMerge(t *testing.T) {
	prev := entity.NewBookingDraft()
	prev.Passengers = entity.PassengerInfo{Count: 3, Luggage: 2, ChildSeats: 1}

	patch, err := Normalize(prev, []byte(`{"passengers":{"count":4}}`))
	if err != nil {
		t.Fatalf("normalize error: %v", err)
	}
	out := Merge(prev, patch)
	if out.Passengers.Count != 4 || out.Passengers.Luggage != 2 || out.Passengers.ChildSeats != 1 {
		t.Fatalf("passenger subset merge wrong: %+v", out.Passengers)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	prev := entity.NewBookingDraft()
	prev.ServiceType = entity.ServiceHourly
	prev.HourlyDuration = 5
	payload := []byte(`{"version":"2","serviceType":"distance","pickup":{"address":"Placa Catalunya"}}`)

	first, err := Normalize(prev, payload)
	if err != nil {
		t.Fatalf("normalize error: %v", err)
	}
	second, err := Normalize(prev, payload)
	if err != nil {
		t.Fatalf("normalize error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("normalize not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestNormalizeEmitsOnlyDerivedFields(t *testing.T) {
	prev := entity.NewBookingDraft()
	prev.SelectedVehicle = &entity.Vehicle{ID: "business-sedan"}
	prev.PaymentMethod = "card"
	prev.PassengerDetails = entity.ContactInfo{FirstName: "Ada"}

	patch, err := Normalize(prev, []byte(`{"version":"2","serviceType":"distance"}`))
	if err != nil {
		t.Fatalf("normalize error: %v", err)
	}
	if patch.SelectedVehicle != nil || patch.PaymentMethod != nil || patch.PassengerDetails != nil || patch.Pricing != nil {
		t.Fatalf("patch carries fields it did not derive: %+v", patch)
	}
}

func TestNormalizeMalformedPayload(t *testing.T) {
	_, err := Normalize(entity.NewBookingDraft(), []byte(`{"serviceType": `))
	if err == nil {
		t.Fatalf("expected error for malformed payload")
	}
	var parseErr *DraftParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected DraftParseError, got %T: %v", err, err)
	}
}

func TestNormalizeIgnoresUnknownFields(t *testing.T) {
	_, err := Normalize(entity.NewBookingDraft(), []byte(`{"utm_source":"landing","foo":{"bar":1}}`))
	if err != nil {
		t.Fatalf("unknown fields must not error: %v", err)
	}
}
