package api

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyNilIsNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Classify(nil))
}

func TestClassifyDeadlineExceeded(t *testing.T) {
	t.Parallel()

	apiErr := Classify(context.DeadlineExceeded)
	assert.Equal(t, CategoryTimeout, apiErr.Category)
}

func TestClassifyUnknownError(t *testing.T) {
	t.Parallel()

	apiErr := Classify(errors.New("boom"))
	assert.Equal(t, CategoryInvalid, apiErr.Category)
}

func TestUserMessagePerStatus(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		400: "Solicitud inválida.",
		401: "No autorizado. Iniciá sesión nuevamente.",
		403: "Acceso denegado. No tenés permisos para continuar.",
		404: "Recurso no encontrado.",
		409: "Conflicto con datos existentes.",
		422: "Los datos enviados no son válidos.",
		429: "Demasiadas solicitudes. Probá nuevamente en unos minutos.",
		500: "Tuvimos un problema del lado del servidor. Intentá más tarde.",
		503: "Tuvimos un problema del lado del servidor. Intentá más tarde.",
	}

	for status, want := range cases {
		apiErr := &APIError{Category: CategoryStatus, Status: status}
		assert.Equal(t, want, apiErr.UserMessage(), "status %d", status)
	}
}

func TestUserMessagePrefersDetail(t *testing.T) {
	t.Parallel()

	apiErr := &APIError{Category: CategoryStatus, Status: 403, Detail: "Solo administradores."}
	assert.Equal(t, "Solo administradores.", apiErr.UserMessage())
}
