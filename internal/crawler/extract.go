package crawler

import (
	"context"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"fitment-crawler/pkg/models"
)

// Extractor turns a product detail page into a ProductRecord.
type Extractor struct {
	fetcher     Fetcher
	sel         Selectors
	placeholder string
	strictLists bool
}

// ExtractorOption customizes an Extractor.
type ExtractorOption func(*Extractor)

// WithStrictLists makes the list heuristic reject items with more than four
// tokens instead of keeping the first four.
func WithStrictLists() ExtractorOption {
	return func(e *Extractor) { e.strictLists = true }
}

func NewExtractor(fetcher Fetcher, sel Selectors, pricePlaceholder string, opts ...ExtractorOption) *Extractor {
	e := &Extractor{fetcher: fetcher, sel: sel, placeholder: pricePlaceholder}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Process fetches pageURL and extracts its record. It returns (nil, nil) when
// the page has no product name and a *FetchError when the fetch fails.
func (e *Extractor) Process(ctx context.Context, pageURL string) (*models.ProductRecord, error) {
	doc, err := fetchDocument(ctx, e.fetcher, pageURL)
	if err != nil {
		return nil, err
	}
	return e.Parse(doc, pageURL), nil
}

// Extract parses an HTML stream. Useful when the page is already in hand.
func (e *Extractor) Extract(r io.Reader, pageURL string) (*models.ProductRecord, error) {
	doc, err := parseDocument(r, pageURL)
	if err != nil {
		return nil, err
	}
	return e.Parse(doc, pageURL), nil
}

// Parse extracts a record from an already parsed page, or nil when no
// product name is found.
func (e *Extractor) Parse(doc *goquery.Document, pageURL string) *models.ProductRecord {
	name, ok := firstText(doc, e.sel.Name)
	if !ok {
		return nil
	}

	price, ok := firstText(doc, e.sel.Price)
	if !ok {
		price = e.placeholder
	}

	fitments := tableFitments(doc, e.sel)
	if len(fitments) == 0 {
		fitments = listFitments(doc, e.sel, e.strictLists)
	}

	return &models.ProductRecord{
		ProductName: name,
		Price:       price,
		URL:         pageURL,
		Fitments:    fitments,
	}
}

// tableFitments reads every row but the first of each fitment table.
// Header and data cells both count.
func tableFitments(doc *goquery.Document, sel Selectors) []models.FitmentEntry {
	fitments := []models.FitmentEntry{}
	doc.Find(group(sel.FitmentTables)).Each(func(_ int, table *goquery.Selection) {
		table.Find(sel.TableRows).Each(func(i int, row *goquery.Selection) {
			if i == 0 {
				return
			}
			cells := row.Find(sel.TableCells).Map(func(_ int, c *goquery.Selection) string {
				return strings.TrimSpace(c.Text())
			})
			if entry, ok := models.NewFitmentEntry(cells); ok {
				fitments = append(fitments, entry)
			}
		})
	})
	return fitments
}

// listFitments splits each list item on whitespace and maps the first four
// tokens to maker, model, engine and year range. Fields containing spaces
// are misread; strict mode drops items with extra tokens instead.
func listFitments(doc *goquery.Document, sel Selectors, strict bool) []models.FitmentEntry {
	fitments := []models.FitmentEntry{}
	doc.Find(group(sel.FitmentLists)).Each(func(_ int, list *goquery.Selection) {
		list.Find(sel.ListItems).Each(func(_ int, item *goquery.Selection) {
			tokens := strings.Fields(item.Text())
			if strict && len(tokens) != 4 {
				return
			}
			if entry, ok := models.NewFitmentEntry(tokens); ok {
				fitments = append(fitments, entry)
			}
		})
	})
	return fitments
}
