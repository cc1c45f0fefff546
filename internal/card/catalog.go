package card

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/catalog.json
var catalogSchema []byte

const catalogSchemaURL = "https://draftsim.local/schemas/catalog.json"

// Catalog is the read-only card list shared by every component. It is safe
// to share by reference.
type Catalog struct {
	cards  []Card
	fronts []Card
	byID   map[string]int
	backs  map[string]int
}

// NewCatalog builds a catalog from already-decoded records. A front face and a
// back face may share an id; two faces of the same side may not.
func NewCatalog(cards []Card) (*Catalog, error) {
	c := &Catalog{
		cards: make([]Card, len(cards)),
		byID:  make(map[string]int, len(cards)),
		backs: make(map[string]int),
	}
	copy(c.cards, cards)
	for i, card := range c.cards {
		index := c.byID
		if card.IsBackFace {
			index = c.backs
		}
		if _, dup := index[card.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %q", card.ID)
		}
		index[card.ID] = i
		if !card.IsBackFace {
			c.fronts = append(c.fronts, card)
		}
	}
	return c, nil
}

// Load reads a JSON catalog, validating it against the embedded schema
// before decoding.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	if err := validate(data); err != nil {
		return nil, err
	}
	var cards []Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return NewCatalog(cards)
}

// LoadFile reads a JSON catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func validate(data []byte) error {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(catalogSchemaURL, bytes.NewReader(catalogSchema)); err != nil {
		return fmt.Errorf("failed to add catalog schema: %w", err)
	}
	schema, err := compiler.Compile(catalogSchemaURL)
	if err != nil {
		return fmt.Errorf("failed to compile catalog schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("catalog failed validation: %w", err)
	}
	return nil
}

// All returns every face in catalog order.
func (c *Catalog) All() []Card { return c.cards }

// FrontFaces returns the draftable cards in catalog order.
func (c *Catalog) FrontFaces() []Card { return c.fronts }

// Len returns the number of front faces.
func (c *Catalog) Len() int { return len(c.fronts) }

// ByID returns the front face with the given id.
func (c *Catalog) ByID(id string) (Card, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Card{}, false
	}
	return c.cards[i], true
}

// BackFace returns the back face paired with a double-faced card.
func (c *Catalog) BackFace(front Card) (Card, bool) {
	if !front.HasBackFace {
		return Card{}, false
	}
	i, ok := c.backs[front.ID]
	if !ok {
		return Card{}, false
	}
	return c.cards[i], true
}
