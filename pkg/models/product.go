package models

// FitmentEntry is one vehicle configuration a part is compatible with.
// Fields are positional and may be empty.
type FitmentEntry struct {
	Maker     string `json:"maker"`
	Model     string `json:"model"`
	Engine    string `json:"engine"`
	YearRange string `json:"year_range"`
}

// ProductRecord is the data extracted from one product detail page.
type ProductRecord struct {
	ProductName string         `json:"product_name"`
	Price       string         `json:"price"`
	URL         string         `json:"url"`
	Fitments    []FitmentEntry `json:"fitments"`
}

// NewFitmentEntry builds an entry from the first four fields, in
// maker/model/engine/year_range order. ok is false when fewer than four are given.
func NewFitmentEntry(fields []string) (FitmentEntry, bool) {
	if len(fields) < 4 {
		return FitmentEntry{}, false
	}
	return FitmentEntry{
		Maker:     fields[0],
		Model:     fields[1],
		Engine:    fields[2],
		YearRange: fields[3],
	}, true
}
