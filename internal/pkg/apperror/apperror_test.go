package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  *AppError
		want int
	}{
		{"validation", Validation("bad input"), http.StatusBadRequest},
		{"authorization", Authorization("not yours"), http.StatusForbidden},
		{"not found", NotFound("missing"), http.StatusNotFound},
		{"conflict", Conflict("already refunded"), http.StatusConflict},
		{"external", External("gateway down", errors.New("timeout")), http.StatusBadGateway},
		{"manual intervention", ManualIntervention("needs operator", nil), http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.HTTPStatus())
		})
	}
}

func TestFromUnwrapsThroughWrapping(t *testing.T) {
	inner := NotFound("purchase not found")
	wrapped := fmt.Errorf("processing refund: %w", inner)

	got := From(wrapped)
	assert.NotNil(t, got)
	assert.Equal(t, KindNotFound, got.Kind)

	assert.Nil(t, From(errors.New("plain")))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := External("payment gateway unreachable", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")
}
