// Package theme maintains the active color palette and persists the user's
// choice across sessions. Three palettes exist: the two built-ins and one
// user-editable custom palette.
package theme

import (
	"encoding/json"
	"sync"

	"github.com/sefyapp/sefy/internal/logger"
	"github.com/sefyapp/sefy/internal/store"
)

// Name identifies one of the known palettes.
type Name string

const (
	Light  Name = "light"
	Dark   Name = "dark"
	Custom Name = "custom"
)

// Role is a semantic color slot every palette fills.
type Role string

const (
	RoleBackground Role = "background"
	RoleText       Role = "text"
	RolePrimary    Role = "primary"
	RoleSecondary  Role = "secondary"
	RoleCard       Role = "card"
)

// Roles lists every semantic role in render order.
var Roles = []Role{RoleBackground, RoleText, RolePrimary, RoleSecondary, RoleCard}

// Palette maps the semantic roles to concrete colors.
type Palette struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Card       string `json:"card"`
}

// Color returns the value for a semantic role.
func (p Palette) Color(role Role) string {
	switch role {
	case RoleBackground:
		return p.Background
	case RoleText:
		return p.Text
	case RolePrimary:
		return p.Primary
	case RoleSecondary:
		return p.Secondary
	case RoleCard:
		return p.Card
	default:
		return ""
	}
}

func (p *Palette) set(role Role, value string) {
	switch role {
	case RoleBackground:
		p.Background = value
	case RoleText:
		p.Text = value
	case RolePrimary:
		p.Primary = value
	case RoleSecondary:
		p.Secondary = value
	case RoleCard:
		p.Card = value
	}
}

// Built-in palettes.
var (
	LightPalette = Palette{
		Background: "#FFFFFF",
		Text:       "#000000",
		Primary:    "#1486FF",
		Secondary:  "#34C759",
		Card:       "#F2F2F2",
	}

	DarkPalette = Palette{
		Background: "#000000",
		Text:       "#FFFFFF",
		Primary:    "#003A73",
		Secondary:  "#30D158",
		Card:       "#282828",
	}

	// DefaultCustom seeds the editable palette and backfills any role the
	// user never set explicitly.
	DefaultCustom = Palette{
		Background: "#FAF3E0",
		Text:       "#333333",
		Primary:    "#FF9500",
		Secondary:  "#FF2D55",
		Card:       "#FFE0B2",
	}
)

// Manager is the theme store: active palette selection, the editable custom
// palette, and write-through persistence. Persistence failures are logged and
// never block the in-memory update.
type Manager struct {
	mu     sync.RWMutex
	store  *store.Store
	log    *logger.Logger
	active Name
	custom Palette
}

// NewManager creates a Manager with built-in defaults. Call Restore before
// first paint to apply persisted state.
func NewManager(st *store.Store, log *logger.Logger) *Manager {
	return &Manager{
		store:  st,
		log:    log,
		active: Light,
		custom: DefaultCustom,
	}
}

// Restore loads the persisted theme name and custom palette. Absent or
// unreadable values fall back to the built-in defaults.
func (m *Manager) Restore() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if name, err := m.store.Get(store.KeyThemeName); err == nil {
		if known(Name(name)) {
			m.active = Name(name)
		}
	}

	raw, err := m.store.Get(store.KeyCustomTheme)
	if err != nil {
		return
	}

	var saved Palette
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		m.log.Error(err, "failed to parse persisted custom palette, using defaults")
		return
	}

	// Any role never explicitly set keeps its built-in default.
	merged := DefaultCustom
	for _, role := range Roles {
		if value := saved.Color(role); value != "" {
			merged.set(role, value)
		}
	}
	m.custom = merged
}

// Select activates a known palette by name and persists the choice. Unknown
// names are ignored.
func (m *Manager) Select(name Name) {
	if !known(name) {
		return
	}

	m.mu.Lock()
	m.active = name
	m.mu.Unlock()

	m.persistName(name)
}

// UpdateCustom merges the given role overrides into the custom palette,
// persists it, and forces the custom palette active. Editing custom colors
// always activates the custom theme.
func (m *Manager) UpdateCustom(overrides map[Role]string) {
	m.mu.Lock()
	for role, value := range overrides {
		if value == "" {
			continue
		}
		m.custom.set(role, value)
	}
	m.active = Custom
	custom := m.custom
	m.mu.Unlock()

	if data, err := json.Marshal(custom); err != nil {
		m.log.Error(err, "failed to encode custom palette")
	} else if err := m.store.Set(store.KeyCustomTheme, string(data)); err != nil {
		m.log.Error(err, "failed to persist custom palette")
	}
	m.persistName(Custom)
}

func (m *Manager) persistName(name Name) {
	if err := m.store.Set(store.KeyThemeName, string(name)); err != nil {
		m.log.Error(err, "failed to persist theme name")
	}
}

// ActiveName returns the name of the active palette.
func (m *Manager) ActiveName() Name {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// Active returns the palette currently in effect.
func (m *Manager) Active() Palette {
	m.mu.RLock()
	defer m.mu.RUnlock()

	switch m.active {
	case Dark:
		return DarkPalette
	case Custom:
		return m.custom
	default:
		return LightPalette
	}
}

// CustomPalette returns the current custom palette regardless of selection.
func (m *Manager) CustomPalette() Palette {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.custom
}

func known(name Name) bool {
	switch name {
	case Light, Dark, Custom:
		return true
	}
	return false
}
