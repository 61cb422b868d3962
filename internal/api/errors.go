package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Category identifies the kind of failure an API call produced. Screens render
// their messages from the category instead of re-deriving it per call site.
type Category string

const (
	// CategoryTimeout means the request deadline elapsed before a response.
	CategoryTimeout Category = "timeout"
	// CategoryNoResponse means no HTTP response was received at all.
	CategoryNoResponse Category = "no_response"
	// CategoryStatus means the backend answered with a 4xx/5xx status.
	CategoryStatus Category = "status"
	// CategoryInvalid covers everything else, e.g. a malformed response body.
	CategoryInvalid Category = "invalid"
)

// APIError is the single error type surfaced by the gateway.
type APIError struct {
	Category Category
	Status   int
	Detail   string
	Err      error
}

func (e *APIError) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.Category == CategoryStatus:
		if e.Detail != "" {
			return fmt.Sprintf("api: status %d: %s", e.Status, e.Detail)
		}
		return fmt.Sprintf("api: status %d", e.Status)
	case e.Err != nil:
		return fmt.Sprintf("api: %s: %v", e.Category, e.Err)
	default:
		return fmt.Sprintf("api: %s", e.Category)
	}
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Classify converts a transport-level error into an APIError. Status-coded
// responses are classified by the gateway itself, not here.
func Classify(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &APIError{Category: CategoryTimeout, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &APIError{Category: CategoryTimeout, Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &APIError{Category: CategoryNoResponse, Err: err}
	}

	return &APIError{Category: CategoryInvalid, Err: err}
}

// UserMessage returns the user-facing message for the failure. Server-supplied
// detail wins over the canned text whenever present.
func (e *APIError) UserMessage() string {
	if e == nil {
		return ""
	}

	switch e.Category {
	case CategoryTimeout:
		return "El servidor no respondió a tiempo. Revisá tu conexión o intentá más tarde."
	case CategoryNoResponse:
		return "No pudimos conectarnos al servidor. Verificá tu Internet o que el servidor esté en línea."
	case CategoryStatus:
		if e.Detail != "" {
			return e.Detail
		}
		return statusMessage(e.Status)
	default:
		return "Ocurrió un error inesperado. Intentá nuevamente."
	}
}

func statusMessage(status int) string {
	switch {
	case status == 400:
		return "Solicitud inválida."
	case status == 401:
		return "No autorizado. Iniciá sesión nuevamente."
	case status == 403:
		return "Acceso denegado. No tenés permisos para continuar."
	case status == 404:
		return "Recurso no encontrado."
	case status == 409:
		return "Conflicto con datos existentes."
	case status == 422:
		return "Los datos enviados no son válidos."
	case status == 429:
		return "Demasiadas solicitudes. Probá nuevamente en unos minutos."
	case status >= 500:
		return "Tuvimos un problema del lado del servidor. Intentá más tarde."
	default:
		return "Ocurrió un error. Intentá nuevamente."
	}
}
