package dashboard

import "github.com/ettle/strcase"

// Widget payload kinds; templates dispatch on these.
const (
	KindControls   = "controls"
	KindActions    = "actions"
	KindStatCards  = "stat_cards"
	KindChart      = "chart"
	KindTable      = "table"
	KindList       = "list"
	KindAlert      = "alert"
	KindGuidelines = "guidelines"
	KindEvents     = "events"
	KindComparison = "comparison"
	KindStress     = "stress"
	KindProgress   = "progress"
	KindConfig     = "config"
)

// StatCard is a headline number with optional caption, trend and badge.
type StatCard struct {
	Label      string    `json:"label"`
	Value      string    `json:"value"`
	ValueClass string    `json:"value_class,omitempty"`
	Caption    string    `json:"caption,omitempty"`
	Trend      Trend     `json:"trend,omitempty"`
	Badge      string    `json:"badge,omitempty"`
	Treatment  Treatment `json:"treatment"`
}

// Column is a table header.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Align string `json:"align,omitempty"`
}

// Cell is a table cell. Only one of Badge or Progress is usually set.
type Cell struct {
	Text     string    `json:"text"`
	Class    string    `json:"class,omitempty"`
	Icon     string    `json:"icon,omitempty"`
	Badge    string    `json:"badge,omitempty"`
	Progress *Progress `json:"progress,omitempty"`
}

// Row is a table row.
type Row struct {
	Cells []Cell `json:"cells"`
}

// Table is a generic data table.
type Table struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Progress is a progress bar; Value is clamped to 0..100 for drawing.
type Progress struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
	Class string  `json:"class,omitempty"`
}

// NewProgress builds a progress bar from a percentage.
func NewProgress(pct float64, label, class string) *Progress {
	switch {
	case pct < 0:
		pct = 0
	case pct > 100:
		pct = 100
	}
	return &Progress{Value: pct, Label: label, Class: class}
}

// ListItem is an entry in a simple list panel.
type ListItem struct {
	Title      string    `json:"title"`
	Subtitle   string    `json:"subtitle,omitempty"`
	Meta       string    `json:"meta,omitempty"`
	Badge      string    `json:"badge,omitempty"`
	BadgeClass string    `json:"badge_class,omitempty"`
	Icon       string    `json:"icon,omitempty"`
	Progress   *Progress `json:"progress,omitempty"`
}

// ControlKind enumerates interactive control types.
type ControlKind string

const (
	ControlSelect ControlKind = "select"
	ControlSlider ControlKind = "slider"
	ControlFile   ControlKind = "file"
	ControlButton ControlKind = "button"
)

// Control is an interactive element. Inert controls render but perform no action.
type Control struct {
	Kind    ControlKind   `json:"kind"`
	Name    string        `json:"name"`
	Label   string        `json:"label"`
	Value   string        `json:"value,omitempty"`
	Display string        `json:"display,omitempty"`
	Options []ChoiceEntry `json:"options,omitempty"`
	Min     int           `json:"min,omitempty"`
	Max     int           `json:"max,omitempty"`
	Step    int           `json:"step,omitempty"`
	Accept  string        `json:"accept,omitempty"`
	Inert   bool          `json:"inert,omitempty"`
}

// ChoiceEntry is a select option with its selection state.
type ChoiceEntry struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// InertButtons renders placeholder buttons that trigger nothing.
func InertButtons(labels []string) []Control {
	out := make([]Control, 0, len(labels))
	for _, label := range labels {
		out = append(out, Control{Kind: ControlButton, Name: strcase.ToKebab(label), Label: label, Inert: true})
	}
	return out
}
