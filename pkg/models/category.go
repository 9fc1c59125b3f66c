package models

import "strings"

type PartCategory int

const (
	UnknownPart PartCategory = iota
	OilFilter
	AirFilter
	CabinFilter
	BrakePad
	Wiper
	SparkPlug
	Battery
	ATF
	EngineOil
)

type partInfo struct {
	category PartCategory
	name     string
	slug     string
}

// Detection walks this list in order, so a query naming several parts
// resolves to the earliest one.
var partTable = []partInfo{
	{OilFilter, "オイルフィルター", "oil-filter"},
	{AirFilter, "エアフィルター", "air-filter"},
	{CabinFilter, "キャビンフィルター", "cabin-filter"},
	{BrakePad, "ブレーキパッド", "brake-pad"},
	{Wiper, "ワイパー", "wiper"},
	{SparkPlug, "プラグ", "spark-plug"},
	{Battery, "バッテリー", "battery"},
	{ATF, "ATF", "atf"},
	{EngineOil, "エンジンオイル", "engine-oil"},
}

func (c PartCategory) String() string {
	for _, p := range partTable {
		if p.category == c {
			return p.name
		}
	}
	return "None"
}

// Slug is the category path segment used by the store, empty for UnknownPart.
func (c PartCategory) Slug() string {
	for _, p := range partTable {
		if p.category == c {
			return p.slug
		}
	}
	return ""
}

// CategoryPath returns the listing path for c, or "/" for UnknownPart.
func (c PartCategory) CategoryPath() string {
	if slug := c.Slug(); slug != "" {
		return "/product-category/" + slug + "/"
	}
	return "/"
}

// DetectCategory returns the first category whose Japanese name occurs in q.
func DetectCategory(q string) PartCategory {
	for _, p := range partTable {
		if strings.Contains(q, p.name) {
			return p.category
		}
	}
	return UnknownPart
}

// ParsePartCategory accepts a slug ("oil-filter") or any text DetectCategory understands.
func ParsePartCategory(s string) PartCategory {
	s = strings.TrimSpace(s)
	for _, p := range partTable {
		if strings.EqualFold(s, p.slug) {
			return p.category
		}
	}
	return DetectCategory(s)
}
