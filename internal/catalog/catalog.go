package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultYAML []byte

var ErrInvalidCatalog = errors.New("invalid catalog")

type ShowerShape struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	NameTR      string  `yaml:"name_tr"`
	Icon        string  `yaml:"icon"`
	MinWidth    float64 `yaml:"min_width"`
	MaxWidth    float64 `yaml:"max_width"`
	Description string  `yaml:"description"`
}

type GlassType struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	NameTR          string   `yaml:"name_tr"`
	Thickness       []int    `yaml:"thickness"`
	Description     string   `yaml:"description"`
	Properties      []string `yaml:"properties"`
	PriceMultiplier float64  `yaml:"price_multiplier"`
}

// Premium reports the price tier shown as a badge next to the glass type.
func (g GlassType) Premium() bool {
	return g.PriceMultiplier > 1.2
}

func (g GlassType) AllowsThickness(mm int) bool {
	for _, t := range g.Thickness {
		if t == mm {
			return true
		}
	}
	return false
}

type ProfileColor struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	NameTR  string `yaml:"name_tr"`
	Hex     string `yaml:"hex"`
	Coating string `yaml:"coating"`
	Popular bool   `yaml:"popular"`
}

type HygieneCoating struct {
	ID                string   `yaml:"id"`
	Name              string   `yaml:"name"`
	Technology        string   `yaml:"technology"`
	Description       string   `yaml:"description"`
	Benefits          []string `yaml:"benefits"`
	CleaningFrequency string   `yaml:"cleaning_frequency"`
	Lifespan          string   `yaml:"lifespan"`
}

type Category struct {
	ID          string `yaml:"id"`
	Slug        string `yaml:"slug"`
	Href        string `yaml:"href"`
	Name        string `yaml:"name"`
	ShortName   string `yaml:"short_name"`
	Icon        string `yaml:"icon"`
	Description string `yaml:"description"`
}

type Bound struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Default float64 `yaml:"default"`
}

func (b Bound) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

type Dimensions struct {
	Width  Bound `yaml:"width"`
	Height Bound `yaml:"height"`
}

// Catalog is immutable once loaded. Accessors hand out copies.
type Catalog struct {
	dims       Dimensions
	shapes     []ShowerShape
	glass      []GlassType
	colors     []ProfileColor
	coatings   []HygieneCoating
	categories []Category
}

type document struct {
	Dimensions    Dimensions       `yaml:"dimensions"`
	Shapes        []ShowerShape    `yaml:"shapes"`
	GlassTypes    []GlassType      `yaml:"glass_types"`
	ProfileColors []ProfileColor   `yaml:"profile_colors"`
	Coatings      []HygieneCoating `yaml:"coatings"`
	Categories    []Category       `yaml:"categories"`
}

func Default() (*Catalog, error) {
	return Parse(defaultYAML)
}

func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidCatalog, err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	return &Catalog{
		dims:       doc.Dimensions,
		shapes:     doc.Shapes,
		glass:      doc.GlassTypes,
		colors:     doc.ProfileColors,
		coatings:   doc.Coatings,
		categories: doc.Categories,
	}, nil
}

func (c *Catalog) Dimensions() Dimensions { return c.dims }

func (c *Catalog) Shapes() []ShowerShape {
	return append([]ShowerShape(nil), c.shapes...)
}

func (c *Catalog) GlassTypes() []GlassType {
	out := make([]GlassType, 0, len(c.glass))
	for _, g := range c.glass {
		out = append(out, cloneGlass(g))
	}
	return out
}

func (c *Catalog) ProfileColors() []ProfileColor {
	return append([]ProfileColor(nil), c.colors...)
}

func (c *Catalog) Coatings() []HygieneCoating {
	out := make([]HygieneCoating, 0, len(c.coatings))
	for _, h := range c.coatings {
		h.Benefits = append([]string(nil), h.Benefits...)
		out = append(out, h)
	}
	return out
}

func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

func (c *Catalog) Shape(id string) (ShowerShape, bool) {
	for _, s := range c.shapes {
		if s.ID == id {
			return s, true
		}
	}
	return ShowerShape{}, false
}

func (c *Catalog) Glass(id string) (GlassType, bool) {
	for _, g := range c.glass {
		if g.ID == id {
			return cloneGlass(g), true
		}
	}
	return GlassType{}, false
}

func (c *Catalog) Color(id string) (ProfileColor, bool) {
	for _, p := range c.colors {
		if p.ID == id {
			return p, true
		}
	}
	return ProfileColor{}, false
}

func (c *Catalog) Coating(id string) (HygieneCoating, bool) {
	for _, h := range c.coatings {
		if h.ID == id {
			h.Benefits = append([]string(nil), h.Benefits...)
			return h, true
		}
	}
	return HygieneCoating{}, false
}

func (c *Catalog) CategoryByID(id string) (Category, bool) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

func cloneGlass(g GlassType) GlassType {
	g.Thickness = append([]int(nil), g.Thickness...)
	g.Properties = append([]string(nil), g.Properties...)
	return g
}
