package services

import (
	"fmt"
	"sort"
	"strings"

	"hemnet-scraper/models"
	"hemnet-scraper/utils"
)

// MarketReport holds the computed statistics over one run's kept listings.
// Price figures use the asking price for active listings and the end price
// for sold ones.
type MarketReport struct {
	TotalListings int

	AveragePrice int
	MinPrice     int
	MaxPrice     int

	AveragePricePerArea int
	AverageSize         float64

	WithElevator int
	WithBalcony  int

	ListingsByLocation map[string]int
}

// SummaryService computes and prints the post-run market report.
type SummaryService struct {
	logger *utils.Logger
}

func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger}
}

// Generate computes the report for the given listings.
func (s *SummaryService) Generate(listings []*models.Listing) *MarketReport {
	report := &MarketReport{
		ListingsByLocation: make(map[string]int),
	}
	if len(listings) == 0 {
		return report
	}

	report.TotalListings = len(listings)

	var (
		priceCount, priceTotal     int
		perAreaCount, perAreaTotal int
		sizeCount                  int
		sizeTotal                  float64
	)

	for _, l := range listings {
		if p := effectivePrice(l); p != nil {
			if priceCount == 0 || *p < report.MinPrice {
				report.MinPrice = *p
			}
			if *p > report.MaxPrice {
				report.MaxPrice = *p
			}
			priceTotal += *p
			priceCount++
		}
		if l.PricePerArea != nil {
			perAreaTotal += *l.PricePerArea
			perAreaCount++
		}
		if l.Size != nil {
			sizeTotal += *l.Size
			sizeCount++
		}
		if l.HasElevator {
			report.WithElevator++
		}
		if l.HasBalcony {
			report.WithBalcony++
		}
		if l.Location != "" {
			report.ListingsByLocation[l.Location]++
		}
	}

	if priceCount > 0 {
		report.AveragePrice = priceTotal / priceCount
	}
	if perAreaCount > 0 {
		report.AveragePricePerArea = perAreaTotal / perAreaCount
	}
	if sizeCount > 0 {
		report.AverageSize = sizeTotal / float64(sizeCount)
	}

	return report
}

// Print renders the report to stdout.
func (s *SummaryService) Print(r *MarketReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  HEMNET SCRAPE SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Listings collected : \033[1m%d\033[0m\n", r.TotalListings)
	fmt.Printf("  With elevator      : \033[1m%d\033[0m\n", r.WithElevator)
	fmt.Printf("  With balcony       : \033[1m%d\033[0m\n", r.WithBalcony)
	fmt.Println()

	fmt.Printf("\033[1;33m  Prices (kr)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.AveragePrice > 0 {
		fmt.Printf("  Average : \033[1;32m%d\033[0m\n", r.AveragePrice)
		fmt.Printf("  Minimum : \033[1;32m%d\033[0m\n", r.MinPrice)
		fmt.Printf("  Maximum : \033[1;32m%d\033[0m\n", r.MaxPrice)
	} else {
		fmt.Printf("  No price data available\n")
	}
	if r.AveragePricePerArea > 0 {
		fmt.Printf("  Average per m² : \033[1;32m%d\033[0m\n", r.AveragePricePerArea)
	}
	if r.AverageSize > 0 {
		fmt.Printf("  Average size   : \033[1;32m%.1f m²\033[0m\n", r.AverageSize)
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Listings by Location\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.ListingsByLocation) == 0 {
		fmt.Printf("  No location data\n")
	} else {
		type locCount struct {
			loc   string
			count int
		}
		var locs []locCount
		for loc, cnt := range r.ListingsByLocation {
			locs = append(locs, locCount{loc, cnt})
		}
		sort.Slice(locs, func(i, j int) bool {
			if locs[i].count != locs[j].count {
				return locs[i].count > locs[j].count
			}
			return locs[i].loc < locs[j].loc
		})
		for _, lc := range locs {
			fmt.Printf("  %-34s (%d)\n", lc.loc, lc.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

// effectivePrice picks the variant's price field: asking price for active
// listings, end price for sold ones.
func effectivePrice(l *models.Listing) *int {
	if l.Price != nil {
		return l.Price
	}
	return l.EndPrice
}
