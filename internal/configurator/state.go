package configurator

import "akcayapi-web/internal/catalog"

type Step int

const (
	StepShape   Step = 1
	StepGlass   Step = 2
	StepColor   Step = 3
	StepCoating Step = 4

	FirstStep  = StepShape
	LastStep   = StepCoating
	TotalSteps = int(LastStep)
)

func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

func (s Step) String() string {
	switch s {
	case StepShape:
		return "shape"
	case StepGlass:
		return "glass"
	case StepColor:
		return "color"
	case StepCoating:
		return "coating"
	default:
		return "unknown"
	}
}

// Title is the heading shown above each step.
func (s Step) Title() string {
	switch s {
	case StepShape:
		return "1. Duşakabin Formu Seçin"
	case StepGlass:
		return "2. Cam Tipi Seçin"
	case StepColor:
		return "3. Profil Rengi Seçin"
	case StepCoating:
		return "4. Hijyen Kaplama (Opsiyonel)"
	default:
		return ""
	}
}

type Field int

const (
	FieldWidth Field = iota + 1
	FieldHeight
)

func (f Field) String() string {
	switch f {
	case FieldWidth:
		return "width"
	case FieldHeight:
		return "height"
	default:
		return "unknown"
	}
}

// State is one configurator session. Empty IDs and a zero Thickness mean
// "unselected".
type State struct {
	Step Step

	Shape     string
	GlassType string
	Thickness int
	Color     string
	Coating   string

	Width  float64
	Height float64
}

func New(cat *catalog.Catalog) State {
	dims := cat.Dimensions()
	return State{
		Step:   FirstStep,
		Width:  dims.Width.Default,
		Height: dims.Height.Default,
	}
}

func CanAdvance(st State, step Step) bool {
	switch step {
	case StepShape:
		return st.Shape != ""
	case StepGlass:
		return st.GlassType != ""
	case StepColor:
		return st.Color != ""
	default:
		return false
	}
}

func Advance(st State) State {
	st.Step = clampStep(st.Step)
	if !CanAdvance(st, st.Step) {
		return st
	}
	st.Step = clampStep(st.Step + 1)
	return st
}

func Retreat(st State) State {
	st.Step = clampStep(st.Step - 1)
	return st
}

// Progress is the completion percentage shown in the progress bar.
func Progress(st State) int {
	return int(clampStep(st.Step)) * 100 / TotalSteps
}

func clampStep(s Step) Step {
	if s < FirstStep {
		return FirstStep
	}
	if s > LastStep {
		return LastStep
	}
	return s
}
