package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPErrorAdapter_StatusCodes(t *testing.T) {
	a := NewHTTPErrorAdapter(nil)
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{ValidationError("x").Build(), http.StatusBadRequest},
		{NotFoundError("x").Build(), http.StatusNotFound},
		{NLPError("x").Build(), http.StatusBadGateway},
		{ParseError("x").Build(), http.StatusUnprocessableEntity},
		{RuntimeError("x").Build(), http.StatusServiceUnavailable},
		{stderrors.New("x"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		require.Equal(t, c.want, a.StatusCodeFor(c.err))
	}
}

func TestHTTPErrorAdapter_WriteErrorResponse(t *testing.T) {
	a := NewHTTPErrorAdapter(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze/text", nil)

	err := ValidationError("text too short").WithContext("detail", "minimum is 10 characters").Build()
	a.WriteErrorResponse(rec, req, err)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body HTTPErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.False(t, body.Success)
	require.Equal(t, "text too short", body.Error)
	require.Equal(t, "minimum is 10 characters", body.Detail)
	require.Equal(t, "validation", body.Code)
}
