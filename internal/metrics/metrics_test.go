package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentHandlerLabelsByRouteTemplate(t *testing.T) {
	r := mux.NewRouter()
	r.Use(InstrumentHandler)
	r.HandleFunc("/admin/notes/{id:[0-9]+}/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/admin/notes/{id:[0-9]+}/", "204"))

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/notes/"+id+"/", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/admin/notes/{id:[0-9]+}/", "204"))
	assert.Equal(t, before+3, after)
}

func TestRecordNoteCreated(t *testing.T) {
	before := testutil.ToFloat64(notesCreated)
	RecordNoteCreated()
	assert.Equal(t, before+1, testutil.ToFloat64(notesCreated))
}

func TestHandlerExposesCollectors(t *testing.T) {
	RecordNoteCreated()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "webapp_notes_created_total"))
}
