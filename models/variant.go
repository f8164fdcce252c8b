package models

import (
	"fmt"
	"strconv"
)

// Variant is the configuration value that distinguishes the two pipeline
// modes: which fields are mandatory, which columns the CSV carries and in
// what order, and where the run reads from and writes to by default.
type Variant struct {
	Name       string
	SearchURL  string
	OutputPath string
	Columns    []string

	// MissingFields returns the names of required fields absent from l.
	// An empty result means the listing is kept.
	MissingFields func(l *Listing) []string

	// Row renders l in column order; absent fields become empty cells.
	Row func(l *Listing) []string
}

// ForSale scrapes active listings. The latitude/longitude columns are
// reserved in the output format and never populated by the search-page scrape.
var ForSale = Variant{
	Name:       "forsale",
	SearchURL:  "https://www.hemnet.se/bostader?item_types%5B%5D=bostadsratt&location_ids%5B%5D=18031",
	OutputPath: "hemnet_listings.csv",
	Columns: []string{
		"link", "exact_address", "price", "size", "rooms", "floor",
		"monthly_fee", "price_per_sqm", "location", "has_elevator",
		"has_balcony", "latitude", "longitude",
	},
	MissingFields: func(l *Listing) []string {
		var missing []string
		if l.Address == "" {
			missing = append(missing, "exact_address")
		}
		if l.Price == nil {
			missing = append(missing, "price")
		}
		return missing
	},
	Row: func(l *Listing) []string {
		return []string{
			l.Link, l.Address, cellInt(l.Price), cellFloat(l.Size),
			cellFloat(l.Rooms), cellInt(l.Floor), cellInt(l.MonthlyFee),
			cellInt(l.PricePerArea), l.Location, cellBool(l.HasElevator),
			cellBool(l.HasBalcony), "", "",
		}
	},
}

// Sold scrapes completed sales, including the selling-price block and the
// asking price derived from it.
var Sold = Variant{
	Name:       "sold",
	SearchURL:  "https://www.hemnet.se/salda/bostader?location_ids%5B%5D=18031",
	OutputPath: "hemnet_sold_listings.csv",
	Columns: []string{
		"link", "exact_address", "size", "rooms", "monthly_fee", "location",
		"has_elevator", "has_balcony", "listing_price", "end_price",
		"price_change_percentage", "price_per_sqm", "date",
	},
	MissingFields: func(l *Listing) []string {
		var missing []string
		if l.Address == "" {
			missing = append(missing, "exact_address")
		}
		if l.EndPrice == nil {
			missing = append(missing, "end_price")
		}
		if l.ListingPrice == nil {
			missing = append(missing, "listing_price")
		}
		return missing
	},
	Row: func(l *Listing) []string {
		return []string{
			l.Link, l.Address, cellFloat(l.Size), cellFloat(l.Rooms),
			cellInt(l.MonthlyFee), l.Location, cellBool(l.HasElevator),
			cellBool(l.HasBalcony), cellInt(l.ListingPrice),
			cellInt(l.EndPrice), cellInt(l.PriceChangePct),
			cellInt(l.PricePerArea), l.SaleDate,
		}
	},
}

// VariantByName resolves a mode string from configuration.
func VariantByName(name string) (Variant, error) {
	switch name {
	case ForSale.Name:
		return ForSale, nil
	case Sold.Name:
		return Sold, nil
	}
	return Variant{}, fmt.Errorf("unknown scrape mode %q (want %q or %q)",
		name, ForSale.Name, Sold.Name)
}

func cellInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func cellFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func cellBool(v bool) string {
	return strconv.FormatBool(v)
}
