package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goodsign/monday"

	"hemnet-scraper/utils"
)

var (
	// nonDigitRegexp strips everything but digits from price-like text
	nonDigitRegexp = regexp.MustCompile(`[^\d]`)
	// digitRunRegexp captures the first run of digits in floor text
	digitRunRegexp = regexp.MustCompile(`\d+`)
)

// soldDatePrefix marks sale-date labels on sold cards ("Såld 12 mars 2023").
const soldDatePrefix = "Såld "

// Sanitizer converts raw card text fragments into typed field values.
// Every method is total: unparseable input degrades to nil (or the floor
// default) with a logged warning, never an error.
type Sanitizer struct {
	logger *utils.Logger
}

// NewSanitizer creates a Sanitizer with the given logger.
func NewSanitizer(logger *utils.Logger) *Sanitizer {
	return &Sanitizer{logger: logger}
}

// Price parses integer currency amounts by keeping only the digits, so
// Swedish thousand separators and embedded currency symbols fall away.
// "3 500 000 kr" → 3500000.
func (s *Sanitizer) Price(raw string) *int {
	if raw == "" {
		return nil
	}
	digits := nonDigitRegexp.ReplaceAllString(raw, "")
	n, err := strconv.Atoi(digits)
	if err != nil {
		s.logger.Warn("[sanitize] could not parse price from %q", raw)
		return nil
	}
	return &n
}

// Fee parses monthly fees; same digit-only rule as Price.
func (s *Sanitizer) Fee(raw string) *int {
	return s.Price(raw)
}

// PricePerArea parses price-per-m² values; same digit-only rule as Price.
func (s *Sanitizer) PricePerArea(raw string) *int {
	return s.Price(raw)
}

// Size parses areas like "45,5 m²": first whitespace-delimited token with the
// decimal comma normalized to a period.
func (s *Sanitizer) Size(raw string) *float64 {
	return s.decimal("size", raw)
}

// Rooms parses room counts like "3,5 rum".
func (s *Sanitizer) Rooms(raw string) *float64 {
	return s.decimal("rooms", raw)
}

func (s *Sanitizer) decimal(field, raw string) *float64 {
	if raw == "" {
		return nil
	}
	tokens := strings.Fields(strings.ReplaceAll(raw, ",", "."))
	if len(tokens) == 0 {
		return nil
	}
	f, err := strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		s.logger.Warn("[sanitize] could not parse %s from %q", field, raw)
		return nil
	}
	return &f
}

// Floor extracts the first run of digits from floor text ("Plan 4 av 6" → 4).
// Cards without floor digits default to floor 1 rather than nil.
func (s *Sanitizer) Floor(raw string) *int {
	floor := 1
	if match := digitRunRegexp.FindString(raw); match != "" {
		n, err := strconv.Atoi(match)
		if err == nil {
			floor = n
		}
	}
	return &floor
}

// Address keeps the street part of a title, dropping everything after the
// first comma. "Storgatan 1, Stockholm" → "Storgatan 1".
func (s *Sanitizer) Address(raw string) string {
	before, _, _ := strings.Cut(raw, ",")
	return strings.TrimSpace(before)
}

// SaleDate parses a sold label like "Såld 12 mars 2023" (Swedish month names,
// day-first) and reformats it as an ISO 8601 date. Unparseable input yields "".
func (s *Sanitizer) SaleDate(raw string) string {
	if raw == "" {
		return ""
	}
	text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), soldDatePrefix))
	t, err := monday.ParseInLocation("2 January 2006", text, time.UTC, monday.LocaleSvSE)
	if err != nil {
		s.logger.Warn("[sanitize] could not parse sale date from %q", raw)
		return ""
	}
	return t.Format("2006-01-02")
}

// Percentage parses price-change text like "+10 %". The digit-only rule
// discards a leading minus sign, so negative changes come back as positive
// magnitudes; see DESIGN.md for why this source behaviour is kept.
func (s *Sanitizer) Percentage(raw string) *int {
	if raw == "" {
		return nil
	}
	digits := nonDigitRegexp.ReplaceAllString(raw, "")
	n, err := strconv.Atoi(digits)
	if err != nil {
		s.logger.Warn("[sanitize] could not parse price change from %q", raw)
		return nil
	}
	return &n
}

// DeriveListingPrice reconstructs the original asking price from the final
// sale price and the recorded change percentage:
// listing = round(end / (1 + pct/100)).
func DeriveListingPrice(endPrice, pct *int) *int {
	if endPrice == nil || pct == nil {
		return nil
	}
	derived := int(math.Round(float64(*endPrice) / (1 + float64(*pct)/100)))
	return &derived
}
