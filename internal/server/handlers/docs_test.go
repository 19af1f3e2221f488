package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocsHandler(t *testing.T) {
	for _, name := range []string{DocsNLP, DocsWrapped} {
		h, err := DocsHandler(name, nil)
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		require.Contains(t, rec.Body.String(), "<title>plenar "+name+" API</title>")
		require.Contains(t, rec.Body.String(), "<table>")
	}

	_, err := DocsHandler("missing", nil)
	require.Error(t, err)
}
