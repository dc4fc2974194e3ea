package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

// LoadFile reads catalog tables from a YAML file. Empty sections are filled
// from DefaultTables so a file can override just the products, for example.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes YAML catalog tables and validates them.
func Parse(raw []byte) (*Catalog, error) {
	var t Tables
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	defaults := DefaultTables()
	if len(t.InitiativeTypes) == 0 {
		t.InitiativeTypes = defaults.InitiativeTypes
	}
	if len(t.Verticals) == 0 {
		t.Verticals = defaults.Verticals
	}
	if len(t.Responsibles) == 0 {
		t.Responsibles = defaults.Responsibles
	}
	if len(t.Levels) == 0 {
		t.Levels = defaults.Levels
	}
	if len(t.Products) == 0 {
		t.Products = defaults.Products
	}

	if err := Validate(t); err != nil {
		return nil, err
	}
	return New(t), nil
}

// Marshal renders tables as YAML in the same shape Parse reads.
func Marshal(t Tables) ([]byte, error) {
	return yaml.Marshal(t)
}

// Validate checks that every record has its identifying fields, that type
// codes carry a digit and that products only reference declared verticals.
// Vertical codes shared by two products are not an error; see Catalog.Conflicts.
func Validate(t Tables) error {
	var problems []string

	digits := make(map[string]string)
	for _, it := range t.InitiativeTypes {
		d, ok := TypeDigit(it.Code)
		if !ok {
			problems = append(problems, fmt.Sprintf("initiative type %q has no A_<digit>. prefix", it.Code))
			continue
		}
		if prev, dup := digits[d]; dup {
			problems = append(problems, fmt.Sprintf("initiative types %s and %s share digit %s", prev, it.Code, d))
		}
		digits[d] = it.Code
		if strings.TrimSpace(it.Label) == "" {
			problems = append(problems, fmt.Sprintf("initiative type %s has no label", it.Code))
		}
	}

	verticals := make(map[string]bool)
	for _, v := range t.Verticals {
		if strings.TrimSpace(v.Code) == "" {
			problems = append(problems, "vertical with empty code")
			continue
		}
		verticals[v.Code] = true
	}

	for _, r := range t.Responsibles {
		if strings.TrimSpace(r.Code) == "" {
			problems = append(problems, "responsible with empty code")
		}
	}

	for _, l := range t.Levels {
		if strings.TrimSpace(l.Key) == "" || strings.TrimSpace(l.Label) == "" {
			problems = append(problems, fmt.Sprintf("level %q needs key and label", l.Key))
		}
	}

	for _, p := range t.Products {
		if strings.TrimSpace(p.ID) == "" {
			problems = append(problems, "product with empty id")
			continue
		}
		for _, code := range p.Verticals {
			if !verticals[code] {
				problems = append(problems, fmt.Sprintf("product %s references unknown vertical %s", p.ID, code))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(problems, "; "))
	}
	return nil
}
