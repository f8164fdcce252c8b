package hemnet

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"hemnet-scraper/models"
	"hemnet-scraper/services"
)

// Selectors are a contract with Hemnet's current markup: cards are anchors
// tagged hcl-card, sub-fields hang off generated utility classes. Any site
// redesign breaks these silently.
const (
	cardSelector     = "a.hcl-card"
	titleSelector    = "h2.hcl-card__title"
	locationSelector = "div.Location_address___eOo4"
	featureSelector  = "span.Label_hclLabelFeature__1_H8e"

	primaryAttrSelector   = "span.ForSaleAttributes_primaryAttributes__tqSRJ"
	secondaryAttrSelector = "span.ForSaleAttributes_secondaryAttributes__ko6y2"

	soldAttrSelector       = "p.Text_hclText__V01MM.Text_hclTextMedium__5uIGY"
	soldFeeSelector        = "span.Text_hclText__V01MM"
	soldPriceBlockSelector = "div.SellingPriceAttributes_contentWrapper__VaxX9"
	soldPriceSelector      = "span.Text_hclText__V01MM.Text_hclTextMedium__5uIGY"
	soldPerAreaSelector    = "p.Text_hclText__V01MM"
	soldDateSelector       = "span.Label_hclLabel__nITs3.Label_hclLabelSoldAt__gw0aX.Label_hclLabelState__nKlGX"
)

// Feature labels are matched by exact text.
const (
	elevatorLabel = "Hiss"
	balconyLabel  = "Balkong"
)

// extractCard turns one listing card into a candidate Listing. Fields the
// card lacks stay absent; the caller decides whether the result is kept.
func (s *Scraper) extractCard(card *goquery.Selection) *models.Listing {
	listing := &models.Listing{
		Link:     s.cardLink(card),
		Address:  s.sanitize.Address(firstText(card, titleSelector)),
		Location: firstText(card, locationSelector),
	}

	card.Find(featureSelector).Each(func(_ int, label *goquery.Selection) {
		switch strings.TrimSpace(label.Text()) {
		case elevatorLabel:
			listing.HasElevator = true
		case balconyLabel:
			listing.HasBalcony = true
		}
	})

	if s.variant.Name == models.Sold.Name {
		s.extractSoldAttributes(card, listing)
	} else {
		s.extractForSaleAttributes(card, listing)
	}

	return listing
}

// extractForSaleAttributes reads the attribute spans of an active listing.
// The spans carry no semantic markers, so assignment is positional: the
// primary row is price, size, rooms, floor; the secondary row is monthly
// fee, price per m². Anything past the fourth span is ignored.
func (s *Scraper) extractForSaleAttributes(card *goquery.Selection, listing *models.Listing) {
	primary := textsOf(card, primaryAttrSelector)
	if len(primary) > 0 {
		listing.Price = s.sanitize.Price(attrAt(primary, 0))
		listing.Size = s.sanitize.Size(attrAt(primary, 1))
		listing.Rooms = s.sanitize.Rooms(attrAt(primary, 2))
		listing.Floor = s.sanitize.Floor(attrAt(primary, 3))
	}

	secondary := textsOf(card, secondaryAttrSelector)
	if len(secondary) > 0 {
		listing.MonthlyFee = s.sanitize.Fee(attrAt(secondary, 0))
		listing.PricePerArea = s.sanitize.PricePerArea(attrAt(secondary, 1))
	}
}

// extractSoldAttributes reads a sold card: size/rooms from the first two
// medium-text paragraphs, the fee span, the selling-price block (end price,
// change percentage, price per m²) and the sale-date label. The asking price
// is derived from end price and percentage when both parsed.
func (s *Scraper) extractSoldAttributes(card *goquery.Selection, listing *models.Listing) {
	attrs := textsOf(card, soldAttrSelector)
	if len(attrs) >= 2 {
		listing.Size = s.sanitize.Size(attrs[0])
		listing.Rooms = s.sanitize.Rooms(attrs[1])
	}

	listing.MonthlyFee = s.sanitize.Fee(firstText(card, soldFeeSelector))

	block := card.Find(soldPriceBlockSelector).First()
	if block.Length() > 0 {
		prices := textsOf(block, soldPriceSelector)
		listing.EndPrice = s.sanitize.Price(attrAt(prices, 0))
		listing.PriceChangePct = s.sanitize.Percentage(attrAt(prices, 1))
		listing.ListingPrice = services.DeriveListingPrice(listing.EndPrice, listing.PriceChangePct)
		listing.PricePerArea = s.sanitize.PricePerArea(firstText(block, soldPerAreaSelector))
	}

	listing.SaleDate = s.sanitize.SaleDate(firstText(card, soldDateSelector))
}

// cardLink resolves the card's href against the site base.
func (s *Scraper) cardLink(card *goquery.Selection) string {
	href, ok := card.Attr("href")
	if !ok || href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return s.base.ResolveReference(ref).String()
}

// firstText returns the trimmed text of the first match, or "".
func firstText(sel *goquery.Selection, selector string) string {
	node := sel.Find(selector).First()
	if node.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(node.Text())
}

// textsOf returns the trimmed text of every match, in document order.
func textsOf(sel *goquery.Selection, selector string) []string {
	return sel.Find(selector).Map(func(_ int, node *goquery.Selection) string {
		return strings.TrimSpace(node.Text())
	})
}

// attrAt indexes a positional attribute list, "" past the end.
func attrAt(texts []string, i int) string {
	if i >= len(texts) {
		return ""
	}
	return texts[i]
}
