package status

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"packtv/internal/kpi"
)

func TestHealthz(t *testing.T) {
	s := New(":0", zap.NewNop())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestKPIBeforeFirstSnapshot(t *testing.T) {
	s := New(":0", zap.NewNop())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/kpi.json", nil))
	assert.Equal(t, 503, rec.Code)
}

func TestKPIServesLatestSnapshot(t *testing.T) {
	s := New(":0", zap.NewNop())
	v := 42.5
	s.SetSnapshot(&kpi.Snapshot{
		Totals:    &kpi.ShiftTotals{DateShiftKey: "2026-08-19-1", Shift: "1", BinsPerHour: &v},
		FetchedAt: time.Now(),
	})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/kpi.json", nil))
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var snap kpi.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.NotNil(t, snap.Totals)
	assert.Equal(t, "2026-08-19-1", snap.Totals.DateShiftKey)
	require.NotNil(t, snap.Totals.BinsPerHour)
	assert.Equal(t, 42.5, *snap.Totals.BinsPerHour)
}
