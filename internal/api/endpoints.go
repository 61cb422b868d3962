package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sefyapp/sefy/internal/model"
)

type loginRequest struct {
	DNI    string `json:"dni"`
	Nombre string `json:"nombre"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, dni, nombre string) (string, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/login", loginRequest{DNI: dni, Nombre: nombre}, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", &APIError{Category: CategoryInvalid, Err: fmt.Errorf("login response carried no token")}
	}
	return resp.AccessToken, nil
}

// Me fetches the profile of the authenticated user.
func (c *Client) Me(ctx context.Context) (*model.Usuario, error) {
	var u model.Usuario
	if err := c.do(ctx, http.MethodGet, "/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// MyObras lists the obras assigned to the authenticated user.
func (c *Client) MyObras(ctx context.Context) ([]model.Obra, error) {
	var obras []model.Obra
	if err := c.do(ctx, http.MethodGet, "/me/obras", nil, &obras); err != nil {
		return nil, err
	}
	return obras, nil
}

// Usuarios

// ListUsuarios returns every registered usuario.
func (c *Client) ListUsuarios(ctx context.Context) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	if err := c.do(ctx, http.MethodGet, "/usuarios/", nil, &usuarios); err != nil {
		return nil, err
	}
	return usuarios, nil
}

// GetUsuario returns the usuario with the given DNI.
func (c *Client) GetUsuario(ctx context.Context, dni string) (*model.Usuario, error) {
	var u model.Usuario
	if err := c.do(ctx, http.MethodGet, "/usuarios/"+dni, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUsuario registers a new usuario. Also used by the public registration
// screen, which runs without credentials.
func (c *Client) CreateUsuario(ctx context.Context, u model.Usuario) (*model.Usuario, error) {
	var created model.Usuario
	if err := c.do(ctx, http.MethodPost, "/usuarios/", u, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateUsuario replaces the usuario identified by dni.
func (c *Client) UpdateUsuario(ctx context.Context, dni string, u model.Usuario) (*model.Usuario, error) {
	var updated model.Usuario
	if err := c.do(ctx, http.MethodPut, "/usuarios/"+dni, u, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteUsuario removes the usuario identified by dni.
func (c *Client) DeleteUsuario(ctx context.Context, dni string) error {
	return c.do(ctx, http.MethodDelete, "/usuarios/"+dni, nil, nil)
}

// Obras

// ListObras returns every obra.
func (c *Client) ListObras(ctx context.Context) ([]model.Obra, error) {
	var obras []model.Obra
	if err := c.do(ctx, http.MethodGet, "/obras/", nil, &obras); err != nil {
		return nil, err
	}
	return obras, nil
}

// GetObra returns one obra by id.
func (c *Client) GetObra(ctx context.Context, id int) (*model.Obra, error) {
	var o model.Obra
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/obras/%d", id), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateObra registers a new obra.
func (c *Client) CreateObra(ctx context.Context, o model.Obra) (*model.Obra, error) {
	var created model.Obra
	if err := c.do(ctx, http.MethodPost, "/obras/", o, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateObra replaces the obra identified by id.
func (c *Client) UpdateObra(ctx context.Context, id int, o model.Obra) (*model.Obra, error) {
	var updated model.Obra
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/obras/%d", id), o, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteObra removes the obra identified by id.
func (c *Client) DeleteObra(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/obras/%d", id), nil, nil)
}

// Asignaciones

// ListAsignaciones returns every asignacion.
func (c *Client) ListAsignaciones(ctx context.Context) ([]model.Asignacion, error) {
	var asignaciones []model.Asignacion
	if err := c.do(ctx, http.MethodGet, "/asignaciones/", nil, &asignaciones); err != nil {
		return nil, err
	}
	return asignaciones, nil
}

// GetAsignacion returns one asignacion by id.
func (c *Client) GetAsignacion(ctx context.Context, id int) (*model.Asignacion, error) {
	var a model.Asignacion
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/asignaciones/%d", id), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

type createAsignacionRequest struct {
	DNIUsuario  string `json:"dni_usuario"`
	IDObra      int    `json:"id_obra"`
	RolEmpleado string `json:"rol_empleado"`
}

// CreateAsignacion links a usuario to an obra with a role label.
func (c *Client) CreateAsignacion(ctx context.Context, dni string, idObra int, rol string) (*model.Asignacion, error) {
	req := createAsignacionRequest{DNIUsuario: dni, IDObra: idObra, RolEmpleado: rol}
	var created model.Asignacion
	if err := c.do(ctx, http.MethodPost, "/asignaciones/", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Asistencias

// ListAsistencias returns every attendance record.
func (c *Client) ListAsistencias(ctx context.Context) ([]model.Asistencia, error) {
	var asistencias []model.Asistencia
	if err := c.do(ctx, http.MethodGet, "/asistencias/", nil, &asistencias); err != nil {
		return nil, err
	}
	return asistencias, nil
}

type tomarAsistenciaRequest struct {
	DNIUsuario   string                 `json:"dni_usuario"`
	IDAsignacion int                    `json:"id_asignacion"`
	Estado       model.AsistenciaEstado `json:"estado"`
}

// TomarAsistencia marks attendance for an asignacion today.
func (c *Client) TomarAsistencia(ctx context.Context, dni string, idAsignacion int, estado model.AsistenciaEstado) error {
	req := tomarAsistenciaRequest{DNIUsuario: dni, IDAsignacion: idAsignacion, Estado: estado}
	return c.do(ctx, http.MethodPost, "/asistencias/tomar", req, nil)
}

type updateAsistenciaRequest struct {
	Fecha       string                 `json:"fecha"`
	Estado      model.AsistenciaEstado `json:"estado"`
	HoraEntrada *string                `json:"hora_entrada"`
	HoraSalida  *string                `json:"hora_salida"`
}

// UpdateAsistencia edits the state and times of an attendance record. Empty
// times are sent as null, matching the backend contract.
func (c *Client) UpdateAsistencia(ctx context.Context, a model.Asistencia) error {
	req := updateAsistenciaRequest{Fecha: a.Fecha, Estado: a.Estado}
	if a.HoraEntrada != "" {
		req.HoraEntrada = &a.HoraEntrada
	}
	if a.HoraSalida != "" {
		req.HoraSalida = &a.HoraSalida
	}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/asistencias/%d", a.ID), req, nil)
}

// DeleteAsistencia removes an attendance record.
func (c *Client) DeleteAsistencia(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/asistencias/%d", id), nil, nil)
}
