package entity

type VehicleCapacity struct {
	Passengers int `json:"passengers"`
	Luggage    int `json:"luggage"`
}

// Vehicle is read-only catalog data. Selected by the visitor, never mutated.
type Vehicle struct {
	ID           string          `json:"id" db:"id"`
	Category     string          `json:"category" db:"category"`
	Name         string          `json:"name" db:"name"`
	Capacity     VehicleCapacity `json:"capacity"`
	BasePrice    float64         `json:"basePrice" db:"base_price"`
	PricePerKm   float64         `json:"pricePerKm" db:"price_per_km"`
	PricePerHour float64         `json:"pricePerHour" db:"price_per_hour"`
	Features     []string        `json:"features"`
	IsActive     bool            `json:"isActive" db:"is_active"`
}
