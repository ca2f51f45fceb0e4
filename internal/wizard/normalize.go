package wizard

import (
	"encoding/json"

	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/entity"
)

// DraftParseError wraps a malformed external draft payload. Callers must
// leave the draft source intact on this error so the visitor can retry.
type DraftParseError struct {
	Err error
}

func (e *DraftParseError) Error() string {
	return "parse draft payload: " + e.Err.Error()
}

func (e *DraftParseError) Unwrap() error {
	return e.Err
}

// externalLocation mirrors the location shape both draft formats carry.
// Pointer fields record JSON presence; provided fields shallow-merge over
// the previous location.
type externalLocation struct {
	Address *string              `json:"address"`
	PlaceID *string              `json:"placeId"`
	Lat     *float64             `json:"lat"`
	Lng     *float64             `json:"lng"`
	Type    *entity.LocationKind `json:"type"`
	City    *string              `json:"city"`
	Country *string              `json:"country"`
}

type externalDateTime struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// externalDraft covers both known draft shapes.
//
// The versioned shape (hero search widget) carries a version tag, an explicit
// serviceType, and nests pickup/return date-times under pickupDateTime /
// returnDateTime. The legacy shape resembles a partial draft: no version tag,
// return fields nested inside dateTime, and an optional mode hint used when
// serviceType is absent. Unknown fields are ignored.
type externalDraft struct {
	Version      string            `json:"version"`
	ServiceType  string            `json:"serviceType"`
	Mode         string            `json:"mode"`
	TransferType string            `json:"transferType"`
	Pickup       *externalLocation `json:"pickup"`
	Dropoff      *externalLocation `json:"dropoff"`

	// versioned shape
	PickupDateTime *externalDateTime `json:"pickupDateTime"`
	ReturnDateTime *externalDateTime `json:"returnDateTime"`

	// legacy shape
	DateTime *struct {
		Date       *string `json:"date"`
		Time       *string `json:"time"`
		ReturnDate *string `json:"returnDate"`
		ReturnTime *string `json:"returnTime"`
	} `json:"dateTime"`

	Passengers     *entity.PassengersPatch `json:"passengers"`
	HourlyDuration *float64                `json:"hourlyDuration"`
}

// Normalize reconciles an external draft payload against the previous draft
// state and produces a patch for Merge. The patch contains only fields
// derived here; nothing unrelated from the previous state leaks in, so the
// reducer never merges a previous-state field twice.
func Normalize(prev entity.BookingDraft, payload []byte) (entity.DraftPatch, error) {
	var ext externalDraft
	if err := json.Unmarshal(payload, &ext); err != nil {
		return entity.DraftPatch{}, &DraftParseError{Err: err}
	}

	versioned := ext.Version != ""

	svc := resolveServiceType(prev, ext, versioned)
	transfer := resolveTransferType(prev, ext, svc)

	patch := entity.DraftPatch{
		ServiceType:  &svc,
		TransferType: &transfer,
	}

	if ext.Pickup != nil {
		patch.Pickup = locationPatch(ext.Pickup)
	}

	// Dropoff only exists for distance trips; an hourly draft forces it blank
	// so a stale dropoff never survives a service-type switch.
	if svc == entity.ServiceDistance {
		if ext.Dropoff != nil {
			patch.Dropoff = locationPatch(ext.Dropoff)
		}
	} else {
		patch.Dropoff = blankLocationPatch()
	}

	patch.DateTime = resolveDateTime(ext, versioned, svc, transfer)

	if ext.Passengers != nil {
		patch.Passengers = ext.Passengers
	}

	// HourlyDuration: accepted only as a positive number, otherwise the
	// previous value stands. Cleared entirely for distance trips, as are the
	// resolved distance/duration for hourly trips.
	if svc == entity.ServiceHourly {
		if ext.HourlyDuration != nil && *ext.HourlyDuration > 0 {
			hours := int(*ext.HourlyDuration)
			patch.HourlyDuration = &hours
		}
		zero := 0.0
		patch.DistanceKm = &zero
		patch.DurationMin = &zero
	} else {
		zero := 0
		patch.HourlyDuration = &zero
	}

	return patch, nil
}

func resolveServiceType(prev entity.BookingDraft, ext externalDraft, versioned bool) entity.ServiceType {
	if versioned {
		if ext.ServiceType == string(entity.ServiceHourly) {
			return entity.ServiceHourly
		}
		return entity.ServiceDistance
	}

	// Legacy fallback chain: explicit field, mode hint, previous state,
	// distance.
	switch ext.ServiceType {
	case string(entity.ServiceDistance):
		return entity.ServiceDistance
	case string(entity.ServiceHourly):
		return entity.ServiceHourly
	}
	switch ext.Mode {
	case string(entity.ServiceDistance):
		return entity.ServiceDistance
	case string(entity.ServiceHourly):
		return entity.ServiceHourly
	}
	if prev.ServiceType == entity.ServiceHourly {
		return entity.ServiceHourly
	}
	return entity.ServiceDistance
}

func resolveTransferType(prev entity.BookingDraft, ext externalDraft, svc entity.ServiceType) entity.TransferType {
	if svc != entity.ServiceDistance {
		return entity.TransferOneWay
	}
	switch ext.TransferType {
	case string(entity.TransferOneWay):
		return entity.TransferOneWay
	case string(entity.TransferReturn):
		return entity.TransferReturn
	}
	switch prev.TransferType {
	case entity.TransferOneWay, entity.TransferReturn:
		return prev.TransferType
	}
	return entity.TransferOneWay
}

func resolveDateTime(ext externalDraft, versioned bool, svc entity.ServiceType, transfer entity.TransferType) *entity.DateTimePatch {
	dt := &entity.DateTimePatch{}

	if versioned {
		if ext.PickupDateTime != nil {
			if ext.PickupDateTime.Date != "" {
				dt.Date = strPtr(ext.PickupDateTime.Date)
			}
			if ext.PickupDateTime.Time != "" {
				dt.Time = strPtr(ext.PickupDateTime.Time)
			}
		}
	} else if ext.DateTime != nil {
		dt.Date = ext.DateTime.Date
		dt.Time = ext.DateTime.Time
	}

	// Return fields survive only on a distance round trip; anything else
	// clears them explicitly so they never carry over stale.
	if svc == entity.ServiceDistance && transfer == entity.TransferReturn {
		if versioned {
			if ext.ReturnDateTime != nil {
				if ext.ReturnDateTime.Date != "" {
					dt.ReturnDate = strPtr(ext.ReturnDateTime.Date)
				}
				if ext.ReturnDateTime.Time != "" {
					dt.ReturnTime = strPtr(ext.ReturnDateTime.Time)
				}
			}
		} else if ext.DateTime != nil {
			dt.ReturnDate = ext.DateTime.ReturnDate
			dt.ReturnTime = ext.DateTime.ReturnTime
		}
	} else {
		dt.ReturnDate = strPtr("")
		dt.ReturnTime = strPtr("")
	}

	return dt
}

func locationPatch(ext *externalLocation) *entity.LocationPatch {
	return &entity.LocationPatch{
		Address: ext.Address,
		PlaceID: ext.PlaceID,
		Lat:     ext.Lat,
		Lng:     ext.Lng,
		Type:    ext.Type,
		City:    ext.City,
		Country: ext.Country,
	}
}

// blankLocationPatch clears every location field.
func blankLocationPatch() *entity.LocationPatch {
	var kind entity.LocationKind
	zero := 0.0
	return &entity.LocationPatch{
		Address: strPtr(""),
		PlaceID: strPtr(""),
		Lat:     &zero,
		Lng:     &zero,
		Type:    &kind,
		City:    strPtr(""),
		Country: strPtr(""),
	}
}

func strPtr(s string) *string {
	return &s
}
