package hemnet

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"hemnet-scraper/config"
	"hemnet-scraper/models"
	"hemnet-scraper/utils"
)

const forSaleCardHTML = `
<a class="hcl-card" href="/bostad/lagenhet-12345">
  <h2 class="hcl-card__title">Storgatan 1, Stockholm</h2>
  <div class="Location_address___eOo4">Vasastan, Stockholm</div>
  <span class="ForSaleAttributes_primaryAttributes__tqSRJ">3 500 000 kr</span>
  <span class="ForSaleAttributes_primaryAttributes__tqSRJ">45,5 m²</span>
  <span class="ForSaleAttributes_primaryAttributes__tqSRJ">2 rum</span>
  <span class="ForSaleAttributes_primaryAttributes__tqSRJ">Plan 3 av 5</span>
  <span class="ForSaleAttributes_secondaryAttributes__ko6y2">3 200 kr/mån</span>
  <span class="ForSaleAttributes_secondaryAttributes__ko6y2">76 923 kr/m²</span>
  <span class="Label_hclLabelFeature__1_H8e">Hiss</span>
  <span class="Label_hclLabelFeature__1_H8e">Balkong</span>
</a>`

const soldCardHTML = `
<a class="hcl-card" href="/salda/lagenhet-67890">
  <h2 class="hcl-card__title">Kungsgatan 2, Göteborg</h2>
  <div class="Location_address___eOo4">Centrum, Göteborg</div>
  <p class="Text_hclText__V01MM Text_hclTextMedium__5uIGY">72,5 m²</p>
  <p class="Text_hclText__V01MM Text_hclTextMedium__5uIGY">3 rum</p>
  <span class="Text_hclText__V01MM">4 100 kr/mån</span>
  <div class="SellingPriceAttributes_contentWrapper__VaxX9">
    <span class="Text_hclText__V01MM Text_hclTextMedium__5uIGY">Slutpris 4 400 000 kr</span>
    <span class="Text_hclText__V01MM Text_hclTextMedium__5uIGY">+10 %</span>
    <p class="Text_hclText__V01MM">60 690 kr/m²</p>
  </div>
  <span class="Label_hclLabel__nITs3 Label_hclLabelSoldAt__gw0aX Label_hclLabelState__nKlGX">Såld 12 mars 2023</span>
  <span class="Label_hclLabelFeature__1_H8e">Balkong</span>
</a>`

func newExtractScraper(t *testing.T, variant models.Variant) *Scraper {
	t.Helper()
	cfg := &config.Config{MaxPages: 1, HTTPTimeoutMs: 1000, UserAgent: "test-agent"}
	return New(cfg, variant, utils.NewLogger())
}

func cardFromHTML(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	card := doc.Find(cardSelector).First()
	if card.Length() == 0 {
		t.Fatal("fixture contains no listing card")
	}
	return card
}

func TestExtractForSaleCard(t *testing.T) {
	s := newExtractScraper(t, models.ForSale)
	l := s.extractCard(cardFromHTML(t, forSaleCardHTML))

	if l.Link != "https://www.hemnet.se/bostad/lagenhet-12345" {
		t.Errorf("Link: got %q", l.Link)
	}
	if l.Address != "Storgatan 1" {
		t.Errorf("Address: got %q, want %q", l.Address, "Storgatan 1")
	}
	if l.Location != "Vasastan, Stockholm" {
		t.Errorf("Location: got %q", l.Location)
	}
	if l.Price == nil || *l.Price != 3500000 {
		t.Errorf("Price: got %v, want 3500000", l.Price)
	}
	if l.Size == nil || *l.Size != 45.5 {
		t.Errorf("Size: got %v, want 45.5", l.Size)
	}
	if l.Rooms == nil || *l.Rooms != 2 {
		t.Errorf("Rooms: got %v, want 2", l.Rooms)
	}
	if l.Floor == nil || *l.Floor != 3 {
		t.Errorf("Floor: got %v, want 3", l.Floor)
	}
	if l.MonthlyFee == nil || *l.MonthlyFee != 3200 {
		t.Errorf("MonthlyFee: got %v, want 3200", l.MonthlyFee)
	}
	if l.PricePerArea == nil || *l.PricePerArea != 76923 {
		t.Errorf("PricePerArea: got %v, want 76923", l.PricePerArea)
	}
	if !l.HasElevator || !l.HasBalcony {
		t.Errorf("features: elevator=%v balcony=%v, want both true", l.HasElevator, l.HasBalcony)
	}
}

func TestExtractForSaleCardWithoutAttributes(t *testing.T) {
	s := newExtractScraper(t, models.ForSale)
	l := s.extractCard(cardFromHTML(t, `
<a class="hcl-card" href="/bostad/lagenhet-1">
  <h2 class="hcl-card__title">Tomma gatan 9</h2>
</a>`))

	if l.Address != "Tomma gatan 9" {
		t.Errorf("Address: got %q", l.Address)
	}
	if l.Price != nil || l.Size != nil || l.Rooms != nil || l.Floor != nil {
		t.Error("expected all attribute fields absent when no attribute spans exist")
	}
	if l.HasElevator || l.HasBalcony {
		t.Error("expected feature flags false without feature labels")
	}
}

func TestExtractForSaleFloorDefaultsWhenMissing(t *testing.T) {
	s := newExtractScraper(t, models.ForSale)
	l := s.extractCard(cardFromHTML(t, `
<a class="hcl-card" href="/bostad/lagenhet-2">
  <h2 class="hcl-card__title">Planlösa vägen 4</h2>
  <span class="ForSaleAttributes_primaryAttributes__tqSRJ">2 000 000 kr</span>
  <span class="ForSaleAttributes_primaryAttributes__tqSRJ">30 m²</span>
</a>`))

	// Fourth positional span is absent — floor takes the default.
	if l.Floor == nil || *l.Floor != 1 {
		t.Errorf("Floor: got %v, want default 1", l.Floor)
	}
}

func TestExtractSoldCard(t *testing.T) {
	s := newExtractScraper(t, models.Sold)
	l := s.extractCard(cardFromHTML(t, soldCardHTML))

	if l.Link != "https://www.hemnet.se/salda/lagenhet-67890" {
		t.Errorf("Link: got %q", l.Link)
	}
	if l.Address != "Kungsgatan 2" {
		t.Errorf("Address: got %q, want %q", l.Address, "Kungsgatan 2")
	}
	if l.Size == nil || *l.Size != 72.5 {
		t.Errorf("Size: got %v, want 72.5", l.Size)
	}
	if l.Rooms == nil || *l.Rooms != 3 {
		t.Errorf("Rooms: got %v, want 3", l.Rooms)
	}
	if l.MonthlyFee == nil || *l.MonthlyFee != 4100 {
		t.Errorf("MonthlyFee: got %v, want 4100", l.MonthlyFee)
	}
	if l.EndPrice == nil || *l.EndPrice != 4400000 {
		t.Errorf("EndPrice: got %v, want 4400000", l.EndPrice)
	}
	if l.PriceChangePct == nil || *l.PriceChangePct != 10 {
		t.Errorf("PriceChangePct: got %v, want 10", l.PriceChangePct)
	}
	if l.ListingPrice == nil || *l.ListingPrice != 4000000 {
		t.Errorf("ListingPrice: got %v, want 4000000", l.ListingPrice)
	}
	if l.PricePerArea == nil || *l.PricePerArea != 60690 {
		t.Errorf("PricePerArea: got %v, want 60690", l.PricePerArea)
	}
	if l.SaleDate != "2023-03-12" {
		t.Errorf("SaleDate: got %q, want %q", l.SaleDate, "2023-03-12")
	}
	if l.HasElevator {
		t.Error("HasElevator: got true, want false")
	}
	if !l.HasBalcony {
		t.Error("HasBalcony: got false, want true")
	}
}

func TestExtractSoldCardWithoutPriceBlock(t *testing.T) {
	s := newExtractScraper(t, models.Sold)
	l := s.extractCard(cardFromHTML(t, `
<a class="hcl-card" href="/salda/lagenhet-3">
  <h2 class="hcl-card__title">Okänd gata 7, Malmö</h2>
</a>`))

	if l.EndPrice != nil || l.PriceChangePct != nil || l.ListingPrice != nil {
		t.Error("expected selling-price fields absent without the price block")
	}
	if missing := models.Sold.MissingFields(l); len(missing) != 2 {
		t.Errorf("MissingFields: got %v, want end_price and listing_price", missing)
	}
}
