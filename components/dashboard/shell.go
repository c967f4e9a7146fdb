package dashboard

// Shell is the persona switcher around the dashboards. It holds only
// immutable configuration; the selection lives in ViewState.
type Shell struct {
	product  Product
	layouts  map[Persona]Layout
	basePath string
}

// NewShell builds a shell from the product header and the layout manifest.
func NewShell(product Product, manifest *LayoutManifest, basePath string) *Shell {
	layouts := map[Persona]Layout{}
	if manifest != nil {
		layouts = manifest.Layouts()
	}
	if basePath == "" {
		basePath = "/"
	}
	return &Shell{product: product, layouts: layouts, basePath: basePath}
}

// Select returns a copy of state with the persona replaced.
func (s *Shell) Select(state ViewState, p Persona) ViewState {
	return state.WithPersona(p)
}

// DashboardFor maps a persona to its layout. Unmapped personas get the
// layout of the first persona.
func (s *Shell) DashboardFor(p Persona) Layout {
	if layout, ok := s.layouts[p]; ok {
		return layout
	}
	return s.layouts[DefaultPersona()]
}

// Header builds the shell header for the current state.
func (s *Shell) Header(state ViewState) Header {
	current := state.Persona.Info()
	options := make([]PersonaEntry, 0, len(personaOrder))
	for _, info := range PersonaCatalog() {
		options = append(options, PersonaEntry{
			PersonaInfo: info,
			Selected:    info.ID == current.ID,
			Href:        s.Select(state, info.ID).Href(s.basePath),
		})
	}
	return Header{
		Title:    s.product.Title,
		Subtitle: s.product.Subtitle,
		Current:  current,
		Options:  options,
	}
}
