package models

// Listing is one extracted search-result card. Fields the markup lacks, or
// whose text failed to parse, stay nil (pointer fields) or empty (strings).
// A Listing is built once per card and never mutated afterwards.
type Listing struct {
	Link     string
	Address  string
	Location string

	Price        *int
	Size         *float64
	Rooms        *float64
	Floor        *int
	MonthlyFee   *int
	PricePerArea *int

	HasElevator bool
	HasBalcony  bool

	// Sold-variant fields.
	EndPrice       *int
	ListingPrice   *int
	PriceChangePct *int
	SaleDate       string
}
