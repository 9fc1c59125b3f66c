package crawler

import (
	"fmt"
	"os"
	"strings"

	"github.com/andybalholm/cascadia"
	"gopkg.in/yaml.v2"
)

// Selectors holds every CSS selector the crawler relies on. The defaults are
// unverified against the live store; override them with a YAML file.
type Selectors struct {
	// ProductLinks are applied together, matches kept in document order.
	ProductLinks []string `yaml:"product_links"`
	// FallbackLinks are used only when ProductLinks match nothing.
	FallbackLinks []string `yaml:"fallback_links"`

	// Name and Price are tried one at a time, in order.
	Name  []string `yaml:"name"`
	Price []string `yaml:"price"`

	FitmentTables []string `yaml:"fitment_tables"`
	TableRows     string   `yaml:"table_rows"`
	TableCells    string   `yaml:"table_cells"`

	FitmentLists []string `yaml:"fitment_lists"`
	ListItems    string   `yaml:"list_items"`
}

func DefaultSelectors() Selectors {
	return Selectors{
		ProductLinks:  []string{".product-item a", ".product-title a", ".woocommerce-loop-product__link"},
		FallbackLinks: []string{"a[href*='pid=']", "a[href*='product']"},
		Name:          []string{"h1", ".product-title", ".entry-title"},
		Price:         []string{".price", ".woocommerce-Price-amount", ".product-price"},
		FitmentTables: []string{"table", ".fitment-table", ".compatibility-table"},
		TableRows:     "tr",
		TableCells:    "td, th",
		FitmentLists:  []string{".fitment-list", ".compatibility-list", "ul.fitment"},
		ListItems:     "li",
	}
}

// LoadSelectors reads a YAML file on top of the defaults. Keys absent from the
// file keep their default value. An empty path returns the defaults.
func LoadSelectors(path string) (Selectors, error) {
	sel := DefaultSelectors()
	if path == "" {
		return sel, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Selectors{}, fmt.Errorf("read selectors: %w", err)
	}
	if err := yaml.UnmarshalStrict(raw, &sel); err != nil {
		return Selectors{}, fmt.Errorf("parse selectors %s: %w", path, err)
	}
	if err := sel.Validate(); err != nil {
		return Selectors{}, fmt.Errorf("selectors %s: %w", path, err)
	}
	return sel, nil
}

// Validate compiles every selector so typos fail at startup rather than
// silently matching nothing.
func (s Selectors) Validate() error {
	sets := map[string][]string{
		"product_links":  s.ProductLinks,
		"fallback_links": s.FallbackLinks,
		"name":           s.Name,
		"price":          s.Price,
		"fitment_tables": s.FitmentTables,
		"table_rows":     {s.TableRows},
		"table_cells":    {s.TableCells},
		"fitment_lists":  s.FitmentLists,
		"list_items":     {s.ListItems},
	}
	for key, set := range sets {
		if len(set) == 0 {
			return fmt.Errorf("%s: no selectors", key)
		}
		for _, css := range set {
			if strings.TrimSpace(css) == "" {
				return fmt.Errorf("%s: empty selector", key)
			}
			if _, err := cascadia.ParseGroup(css); err != nil {
				return fmt.Errorf("%s: %q: %w", key, css, err)
			}
		}
	}
	return nil
}

func group(selectors []string) string {
	return strings.Join(selectors, ", ")
}
