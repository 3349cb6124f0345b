package configurator

import (
	"math"
	"strconv"
	"strings"

	"akcayapi-web/internal/catalog"
)

type ActionKind int

const (
	ActionSelect ActionKind = iota + 1
	ActionSelectThickness
	ActionSetNumber
	ActionAdvance
	ActionRetreat
	ActionReset
)

type Action struct {
	Kind      ActionKind
	Step      Step
	ID        string
	Thickness int
	Field     Field
	Raw       string
}

func Select(step Step, id string) Action {
	return Action{Kind: ActionSelect, Step: step, ID: id}
}

func PickThickness(mm int) Action {
	return Action{Kind: ActionSelectThickness, Thickness: mm}
}

func SetNumber(field Field, raw string) Action {
	return Action{Kind: ActionSetNumber, Field: field, Raw: raw}
}

// Reduce applies one user action. It never fails: actions that do not
// apply to the current state leave it unchanged.
func Reduce(cat *catalog.Catalog, st State, a Action) State {
	switch a.Kind {
	case ActionSelect:
		return SelectOption(cat, st, a.Step, a.ID)
	case ActionSelectThickness:
		return SelectThickness(cat, st, a.Thickness)
	case ActionSetNumber:
		return SetNumericField(st, a.Field, a.Raw)
	case ActionAdvance:
		return Advance(st)
	case ActionRetreat:
		return Retreat(st)
	case ActionReset:
		return New(cat)
	default:
		return st
	}
}

func SelectOption(cat *catalog.Catalog, st State, step Step, id string) State {
	id = strings.TrimSpace(id)

	switch step {
	case StepShape:
		if _, ok := cat.Shape(id); ok {
			st.Shape = id
		}
	case StepGlass:
		if g, ok := cat.Glass(id); ok {
			st.GlassType = id
			st.Thickness = g.Thickness[0]
		}
	case StepColor:
		if _, ok := cat.Color(id); ok {
			st.Color = id
		}
	case StepCoating:
		if id == "" {
			st.Coating = ""
			return st
		}
		if _, ok := cat.Coating(id); ok {
			st.Coating = id
		}
	}
	return st
}

func SelectThickness(cat *catalog.Catalog, st State, mm int) State {
	g, ok := cat.Glass(st.GlassType)
	if !ok || !g.AllowsThickness(mm) {
		return st
	}
	st.Thickness = mm
	return st
}

// SetNumericField stores the parsed value as entered. The catalog bounds are
// input hints only and are not enforced here.
func SetNumericField(st State, field Field, raw string) State {
	v, ok := ParseNumber(raw)
	if !ok {
		return st
	}

	switch field {
	case FieldWidth:
		st.Width = v
	case FieldHeight:
		st.Height = v
	}
	return st
}

func ParseNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	raw = strings.ReplaceAll(raw, ",", ".")

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// InRange reports whether the dimensions sit inside the catalog hints.
func InRange(cat *catalog.Catalog, st State) (width, height bool) {
	dims := cat.Dimensions()
	return dims.Width.Contains(st.Width), dims.Height.Contains(st.Height)
}
