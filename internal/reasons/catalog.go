package reasons

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Other is offered in every list and needs a free-text note.
const Other = "other"

//go:embed catalog.yaml
var defaultCatalog []byte

type Entry struct {
	Code  string `yaml:"code" json:"code"`
	Label string `yaml:"label" json:"label"`
}

// List is one closed vocabulary.
type List []Entry

func (l List) Allows(code string) bool {
	if code == Other {
		return true
	}
	for _, e := range l {
		if e.Code == code {
			return true
		}
	}
	return false
}

// WithOther is the list as shown to users, "other" last.
func (l List) WithOther() List {
	out := make(List, 0, len(l)+1)
	out = append(out, l...)
	return append(out, Entry{Code: Other, Label: "Outro"})
}

type Catalog struct {
	Cancellation List `yaml:"cancellation" json:"cancellation"`
	Rejection    List `yaml:"rejection" json:"rejection"`
	Incident     List `yaml:"incident" json:"incident"`
}

// Default is the catalog shipped with the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads path, or the built-in catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reasons file: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse reasons: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	lists := map[string]List{
		"cancellation": c.Cancellation,
		"rejection":    c.Rejection,
		"incident":     c.Incident,
	}
	for name, list := range lists {
		if len(list) == 0 {
			return fmt.Errorf("reasons: %s list is empty", name)
		}
		seen := make(map[string]bool, len(list))
		for _, e := range list {
			code := strings.TrimSpace(e.Code)
			switch {
			case code == "":
				return fmt.Errorf("reasons: %s has an entry without code", name)
			case code == Other:
				return fmt.Errorf("reasons: %s must not list %q explicitly", name, Other)
			case seen[code]:
				return fmt.Errorf("reasons: %s repeats %q", name, code)
			}
			seen[code] = true
		}
	}
	return nil
}
