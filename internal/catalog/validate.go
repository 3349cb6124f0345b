package catalog

import (
	"fmt"
	"strings"
)

func validate(doc document) error {
	if err := checkBound("width", doc.Dimensions.Width); err != nil {
		return err
	}
	if err := checkBound("height", doc.Dimensions.Height); err != nil {
		return err
	}

	if len(doc.Shapes) == 0 {
		return fmt.Errorf("%w: no shapes", ErrInvalidCatalog)
	}
	if len(doc.GlassTypes) == 0 {
		return fmt.Errorf("%w: no glass types", ErrInvalidCatalog)
	}
	if len(doc.ProfileColors) == 0 {
		return fmt.Errorf("%w: no profile colors", ErrInvalidCatalog)
	}

	ids := make([]string, 0, len(doc.Shapes))
	for _, s := range doc.Shapes {
		if s.MinWidth > s.MaxWidth {
			return fmt.Errorf("%w: shape %q: min width %v > max width %v", ErrInvalidCatalog, s.ID, s.MinWidth, s.MaxWidth)
		}
		ids = append(ids, s.ID)
	}
	if err := checkIDs("shape", ids); err != nil {
		return err
	}

	ids = ids[:0]
	for _, g := range doc.GlassTypes {
		if len(g.Thickness) == 0 {
			return fmt.Errorf("%w: glass %q has no thickness values", ErrInvalidCatalog, g.ID)
		}
		for _, t := range g.Thickness {
			if t <= 0 {
				return fmt.Errorf("%w: glass %q: thickness %d", ErrInvalidCatalog, g.ID, t)
			}
		}
		ids = append(ids, g.ID)
	}
	if err := checkIDs("glass", ids); err != nil {
		return err
	}

	ids = ids[:0]
	for _, p := range doc.ProfileColors {
		ids = append(ids, p.ID)
	}
	if err := checkIDs("color", ids); err != nil {
		return err
	}

	ids = ids[:0]
	for _, h := range doc.Coatings {
		ids = append(ids, h.ID)
	}
	if err := checkIDs("coating", ids); err != nil {
		return err
	}

	ids = ids[:0]
	for _, c := range doc.Categories {
		ids = append(ids, c.ID)
	}
	return checkIDs("category", ids)
}

func checkIDs(kind string, ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: %s with empty id", ErrInvalidCatalog, kind)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate %s id %q", ErrInvalidCatalog, kind, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func checkBound(name string, b Bound) error {
	if b.Min > b.Max || b.Default < b.Min || b.Default > b.Max {
		return fmt.Errorf("%w: %s bound %v..%v default %v", ErrInvalidCatalog, name, b.Min, b.Max, b.Default)
	}
	return nil
}
