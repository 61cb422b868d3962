// Package model defines the domain records exchanged with the SEFY backend.
// Field names mirror the backend's JSON contract, which is Spanish throughout.
package model

import "github.com/charmbracelet/lipgloss"

// Usuario is a registered worker or administrator. The DNI is the primary
// key and immutable; contact fields are editable from the profile screens.
type Usuario struct {
	DNI       string `json:"dni"`
	Nombre    string `json:"nombre"`
	Apellido  string `json:"apellido"`
	Telefono  string `json:"telefono,omitempty"`
	Email     string `json:"email,omitempty"`
	Direccion string `json:"direccion,omitempty"`
	EsAdmin   bool   `json:"es_admin"`
}

// FullName returns "Nombre Apellido" for display.
func (u Usuario) FullName() string {
	if u.Apellido == "" {
		return u.Nombre
	}
	return u.Nombre + " " + u.Apellido
}

// Obra is a construction site, the primary managed resource.
type Obra struct {
	ID          int        `json:"id_obra"`
	Nombre      string     `json:"nombre_obra"`
	Direccion   string     `json:"direccion"`
	Descripcion string     `json:"descripcion,omitempty"`
	FechaInicio string     `json:"fecha_inicio,omitempty"`
	FechaFin    string     `json:"fecha_fin,omitempty"`
	Estado      ObraEstado `json:"estado"`
}

// ObraEstado is the lifecycle state of an obra, owned by the backend.
type ObraEstado string

const (
	ObraActiva     ObraEstado = "Activa"
	ObraPausada    ObraEstado = "Pausada"
	ObraFinalizada ObraEstado = "Finalizada"
)

// Icon returns the glyph shown next to an obra in lists.
func (e ObraEstado) Icon() string {
	switch e {
	case ObraActiva:
		return "🟢"
	case ObraPausada:
		return "🟡"
	case ObraFinalizada:
		return "⚪"
	default:
		return "⚪"
	}
}

// Color returns the lipgloss color used to render the state.
func (e ObraEstado) Color() lipgloss.Color {
	switch e {
	case ObraActiva:
		return lipgloss.Color("42")
	case ObraPausada:
		return lipgloss.Color("226")
	case ObraFinalizada:
		return lipgloss.Color("244")
	default:
		return lipgloss.Color("240")
	}
}

// Asignacion links a usuario to an obra with a role label.
type Asignacion struct {
	ID          int    `json:"id_asignacion"`
	DNIUsuario  string `json:"dni_usuario"`
	IDObra      int    `json:"id_obra"`
	RolEmpleado string `json:"rol_empleado"`
}

// Asistencia is one attendance record for an asignacion on a given day.
// Entry and exit times are optional and backend-formatted (HH:MM).
type Asistencia struct {
	ID           int              `json:"id_asistencia"`
	IDAsignacion int              `json:"id_asignacion"`
	DNIUsuario   string           `json:"dni_usuario,omitempty"`
	Fecha        string           `json:"fecha"`
	Estado       AsistenciaEstado `json:"estado"`
	HoraEntrada  string           `json:"hora_entrada,omitempty"`
	HoraSalida   string           `json:"hora_salida,omitempty"`
}

// AsistenciaEstado is the attendance mark for a day.
type AsistenciaEstado string

const (
	AsistenciaPresente    AsistenciaEstado = "Presente"
	AsistenciaAusente     AsistenciaEstado = "Ausente"
	AsistenciaJustificado AsistenciaEstado = "Justificado"
)

// Icon returns the glyph shown next to an attendance record.
func (e AsistenciaEstado) Icon() string {
	switch e {
	case AsistenciaPresente:
		return "✓"
	case AsistenciaAusente:
		return "✗"
	case AsistenciaJustificado:
		return "~"
	default:
		return "?"
	}
}

// Color returns the lipgloss color used to render the mark.
func (e AsistenciaEstado) Color() lipgloss.Color {
	switch e {
	case AsistenciaPresente:
		return lipgloss.Color("42")
	case AsistenciaAusente:
		return lipgloss.Color("196")
	case AsistenciaJustificado:
		return lipgloss.Color("226")
	default:
		return lipgloss.Color("240")
	}
}
