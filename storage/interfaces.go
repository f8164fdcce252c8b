package storage

import "hemnet-scraper/models"

// ListingWriter is the interface any output backend must satisfy.
type ListingWriter interface {
	Write(variant models.Variant, listings []*models.Listing) error
}
