package hemnet

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"hemnet-scraper/config"
	"hemnet-scraper/models"
	"hemnet-scraper/services"
	"hemnet-scraper/utils"
)

// siteBase resolves relative card links.
const siteBase = "https://www.hemnet.se"

// Scraper walks Hemnet search-result pages for one variant and collects
// listings until the result set is exhausted, the page ceiling is reached,
// or a fetch fails.
type Scraper struct {
	cfg      *config.Config
	variant  models.Variant
	logger   *utils.Logger
	sanitize *services.Sanitizer
	client   *http.Client

	searchURL string
	base      *url.URL
}

// Result is what one scrape run produced. Listings keep page order, and card
// order within each page.
type Result struct {
	Listings []*models.Listing
	Skipped  int
	Pages    int
}

// New creates a ready-to-use Scraper. An empty searchURL falls back to the
// variant's default query.
func New(cfg *config.Config, variant models.Variant, logger *utils.Logger) *Scraper {
	searchURL := cfg.SearchURL
	if searchURL == "" {
		searchURL = variant.SearchURL
	}
	base, _ := url.Parse(siteBase)

	return &Scraper{
		cfg:      cfg,
		variant:  variant,
		logger:   logger,
		sanitize: services.NewSanitizer(logger),
		client: &http.Client{
			Timeout: time.Duration(cfg.HTTPTimeoutMs) * time.Millisecond,
		},
		searchURL: searchURL,
		base:      base,
	}
}

// Scrape drives pagination from page 1 until a page yields no cards, the
// configured ceiling is hit, or a fetch/parse error occurs. Errors end the
// run but keep everything collected on earlier pages: partial output is an
// accepted outcome, so Scrape reports counts instead of returning an error.
func (s *Scraper) Scrape() *Result {
	s.logger.Info("[hemnet] Starting %s scrape — max %d pages", s.variant.Name, s.cfg.MaxPages)

	res := &Result{}
	for page := 1; page <= s.cfg.MaxPages; page++ {
		doc, err := s.fetchPage(page)
		if err != nil {
			s.logger.Error("[hemnet] Page %d failed: %v — keeping %d listings collected so far",
				page, err, len(res.Listings))
			break
		}

		cards := doc.Find(cardSelector)
		if cards.Length() == 0 {
			s.logger.Info("[hemnet] No listing cards on page %d — reached last page", page)
			break
		}

		cards.Each(func(_ int, card *goquery.Selection) {
			listing := s.extractCard(card)
			if missing := s.variant.MissingFields(listing); len(missing) > 0 {
				res.Skipped++
				s.logger.Warn("[hemnet] Skipping listing, missing: %s", strings.Join(missing, ", "))
				return
			}
			res.Listings = append(res.Listings, listing)
		})

		res.Pages++
		s.logger.Info("[hemnet] Scraped page %d — %d collected, %d skipped so far",
			page, len(res.Listings), res.Skipped)

		if page < s.cfg.MaxPages {
			time.Sleep(time.Duration(s.cfg.PageDelayMs) * time.Millisecond)
		}
	}

	s.logger.Info("[hemnet] Scrape complete — %d listings collected, %d skipped, %d pages",
		len(res.Listings), res.Skipped, res.Pages)
	return res
}

// fetchPage issues one GET for the given result page and parses the body.
func (s *Scraper) fetchPage(page int) (*goquery.Document, error) {
	u, err := url.Parse(s.searchURL)
	if err != nil {
		return nil, fmt.Errorf("parse search url: %w", err)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get page %d: unexpected status %s", page, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page %d: %w", page, err)
	}
	return doc, nil
}
