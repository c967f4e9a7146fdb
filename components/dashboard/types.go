package dashboard

// ProviderRegistry stores widget definitions/providers discoverable via hooks or manifests.
type ProviderRegistry interface {
	RegisterDefinition(def WidgetDefinition) error
	RegisterProvider(code string, provider Provider) error
	Definition(code string) (WidgetDefinition, bool)
	Provider(code string) (Provider, bool)
	Definitions() []WidgetDefinition
}

// WidgetDefinition describes a widget and the schema of its placement config.
type WidgetDefinition struct {
	Code        string         `json:"code" yaml:"code"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Schema      map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
	Category    string         `json:"category,omitempty" yaml:"category,omitempty"`
}

// WidgetInstance is a widget placed on a persona dashboard.
type WidgetInstance struct {
	ID            string         `json:"id"`
	DefinitionID  string         `json:"definition"`
	Persona       Persona        `json:"persona"`
	Position      int            `json:"position"`
	Span          int            `json:"span"`
	Configuration map[string]any `json:"config,omitempty"`
}

// Layout is the ordered widget list for one persona dashboard.
type Layout struct {
	Persona Persona          `json:"persona"`
	Widgets []WidgetInstance `json:"widgets"`
}

// Header is the shell header: product title plus the persona picker.
type Header struct {
	Title    string         `json:"title"`
	Subtitle string         `json:"subtitle"`
	Current  PersonaInfo    `json:"current"`
	Options  []PersonaEntry `json:"options"`
}

// PersonaEntry is a persona picker option.
type PersonaEntry struct {
	PersonaInfo
	Selected bool   `json:"selected"`
	Href     string `json:"href,omitempty"`
}

// RenderedWidget is a widget instance with its provider payload attached.
type RenderedWidget struct {
	WidgetInstance
	Name  string     `json:"name"`
	Kind  string     `json:"kind"`
	Data  WidgetData `json:"data,omitempty"`
	Error string     `json:"error,omitempty"`
}

// Page is everything needed to draw one persona dashboard.
type Page struct {
	RenderID string           `json:"render_id"`
	Header   Header           `json:"header"`
	State    ViewState        `json:"state"`
	Theme    Theme            `json:"theme"`
	Widgets  []RenderedWidget `json:"widgets"`
}
