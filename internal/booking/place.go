package booking

// AddressComponent mirrors one entry of a place's address breakdown as the
// maps provider emits it.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types,omitempty"`
}

// Place is the snapshot of a selected pickup place that the cache persists.
// The typed shape is the narrowing contract: whatever extra fields a caller's
// place object carries (provider IDs, photos, ratings) never survive
// serialization.
type Place struct {
	Name              string             `json:"name"`
	Lat               float64            `json:"lat"`
	Lng               float64            `json:"lng"`
	AddressComponents []AddressComponent `json:"addressComponents"`
}
