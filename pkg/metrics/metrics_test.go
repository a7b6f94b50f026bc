package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager(WithRegistry(prometheus.NewRegistry()), WithNamespace("test"))
}

func TestManager_Ranking(t *testing.T) {
	m := newTestManager()
	m.RecordPlayersRanked("Femme", 4)
	m.RecordPlayersRanked("Femme", 2)
	m.RecordPlayersRanked("Homme", 7)
	m.RecordRankingError()

	assert.Equal(t, 6.0, testutil.ToFloat64(m.playersRanked.WithLabelValues("Femme")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.playersRanked.WithLabelValues("Homme")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rankingErrors))
}

func TestManager_Draw(t *testing.T) {
	m := newTestManager()

	m.RecordInfeasibleDraw(1, 0)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.drawsInfeasible))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.drawShortfall.WithLabelValues("women")))

	m.RecordDraw(map[string]int{"mixte": 8, "masculine": 4})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.drawsCompleted))
	assert.Equal(t, 8.0, testutil.ToFloat64(m.playersDrawn.WithLabelValues("mixte")))
	// a successful draw clears the shortfall
	assert.Equal(t, 0, testutil.CollectAndCount(m.drawShortfall))
}

func TestManager_Handler(t *testing.T) {
	m := newTestManager()
	m.RecordHTTPRequest("/healthz", http.MethodGet, "200", 0.01)
	m.RecordTeamFetched()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `test_http_requests_total{method="GET",route="/healthz",status_code="200"} 1`)
	assert.Contains(t, rec.Body.String(), "test_results_teams_fetched_total 1")
}

func TestManager_Nil(t *testing.T) {
	var m *Manager
	assert.NotPanics(t, func() {
		m.RecordPlayersRanked("Femme", 1)
		m.RecordRankingError()
		m.RecordDraw(map[string]int{"mixte": 1})
		m.RecordInfeasibleDraw(1, 1)
		m.RecordTeamFetched()
		m.RecordFetchError()
		m.RecordHTTPRequest("/", http.MethodGet, "200", 1)
	})
}

func TestNewManager_DefaultRegistry(t *testing.T) {
	m := NewManager()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
