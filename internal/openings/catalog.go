package openings

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed catalog.json
var catalogJSON []byte

//go:embed catalog_schema.json
var catalogSchemaJSON []byte

// Catalog is an immutable set of opening lines keyed by ID.
type Catalog struct {
	byID  map[string]Opening
	order []string // IDs in catalog order
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog, parsing and validating it on first
// use.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(catalogJSON)
	})
	return defaultCatalog, defaultErr
}

// Parse validates raw catalog JSON against the embedded schema and builds a
// Catalog from it.
func Parse(raw []byte) (*Catalog, error) {
	if err := validateCatalog(raw); err != nil {
		return nil, err
	}

	var doc struct {
		Openings []Opening `json:"openings"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{byID: make(map[string]Opening, len(doc.Openings))}
	for _, o := range doc.Openings {
		if _, dup := c.byID[o.ID]; dup {
			return nil, fmt.Errorf("parse catalog: duplicate opening id %q", o.ID)
		}
		c.byID[o.ID] = o
		c.order = append(c.order, o.ID)
	}
	return c, nil
}

// validateCatalog checks raw JSON against the catalog schema.
func validateCatalog(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("catalog is not valid JSON: %w", err)
	}

	var schemaDoc any
	if err := json.Unmarshal(catalogSchemaJSON, &schemaDoc); err != nil {
		return fmt.Errorf("parse catalog schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	const schemaURL = "schema://openings-catalog.json"
	if err := c.AddResource(schemaURL, schemaDoc); err != nil {
		return fmt.Errorf("add schema resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("catalog schema validation failed: %w", err)
	}
	return nil
}

// Get returns the opening with the given ID.
func (c *Catalog) Get(id string) (Opening, error) {
	o, ok := c.byID[id]
	if !ok {
		return Opening{}, fmt.Errorf("unknown opening %q", id)
	}
	return o, nil
}

// All returns every opening in catalog order.
func (c *Catalog) All() []Opening {
	result := make([]Opening, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.byID[id])
	}
	return result
}

// Len returns the number of openings in the catalog.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Untracked returns openings the learner has no review state for yet,
// easiest first, ties broken by ID.
func (c *Catalog) Untracked(tracked map[string]bool) []Opening {
	var result []Opening
	for _, id := range c.order {
		if !tracked[id] {
			result = append(result, c.byID[id])
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Difficulty != result[j].Difficulty {
			return result[i].Difficulty < result[j].Difficulty
		}
		return result[i].ID < result[j].ID
	})
	return result
}
