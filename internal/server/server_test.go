package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/periodica-labs/periodica/internal/compare"
	"github.com/periodica-labs/periodica/internal/query"
	"github.com/periodica-labs/periodica/internal/store"
	"github.com/periodica-labs/periodica/internal/testutil"
	"github.com/periodica-labs/periodica/pkg/chem"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	root := testutil.WriteCorpus(t)
	s, err := store.Open(context.Background(), root, testutil.NewTestLogger(t))
	require.NoError(t, err)
	eng := query.New(s, testutil.NewTestLogger(t))
	return NewServer(Config{Engine: eng, Logger: testutil.NewTestLogger(t)})
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := get(t, h, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, rec))
}

func TestElementEndpoint(t *testing.T) {
	h := newTestServer(t).Routes()

	for _, ident := range []string{"Fe", "26", "iron"} {
		rec := get(t, h, "/api/elements/"+ident)
		require.Equal(t, http.StatusOK, rec.Code, "identifier %q", ident)
		elem := decode[chem.Element](t, rec)
		assert.Equal(t, 26, elem.AtomicNumber)
		assert.Equal(t, "Fe", elem.Symbol)
	}

	rec := get(t, h, "/api/elements/Unobtanium")
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Contains(t, body["error"], "no record matches")
}

func TestElementsListFilterSort(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := get(t, h, "/api/elements")
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[[]chem.Element](t, rec)
	assert.Len(t, all, 11)

	rec = get(t, h, "/api/elements?where=category:eq:transition_metal")
	require.Equal(t, http.StatusOK, rec.Code)
	metals := decode[[]chem.Element](t, rec)
	require.Len(t, metals, 4)
	assert.Equal(t, "Fe", metals[0].Symbol)

	rec = get(t, h, "/api/elements?where=category:eq:transition_metal&where=radioactive:eq:true")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]chem.Element](t, rec), 1) // Tc

	rec = get(t, h, "/api/elements?sort=atomic_mass&desc=true")
	require.Equal(t, http.StatusOK, rec.Code)
	byMass := decode[[]chem.Element](t, rec)
	require.Len(t, byMass, 11)
	assert.Equal(t, "U", byMass[0].Symbol)

	rec = get(t, h, "/api/elements?sort=atomic_mass&desc")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "U", decode[[]chem.Element](t, rec)[0].Symbol, "bare desc flag")

	rec = get(t, h, "/api/elements?where=category:eq:no_such_category")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]chem.Element](t, rec))
	assert.Equal(t, "[]\n", rec.Body.String(), "no match encodes as an empty array, not null")

	for _, target := range []string{
		"/api/elements?where=melting_point:gt:warm",
		"/api/elements?where=nonsense",
		"/api/elements?sort=flavor",
		"/api/elements?sort=atomic_mass&desc=maybe",
	} {
		rec = get(t, h, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestElementReactionsEndpoint(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := get(t, h, "/api/elements/Fe/reactions")
	require.Equal(t, http.StatusOK, rec.Code)
	reactions := decode[[]chem.Reaction](t, rec)
	require.Len(t, reactions, 2)
	assert.Equal(t, "Fe-environmental-001", reactions[0].ID)

	rec = get(t, h, "/api/elements/Fe/reactions?category=industrial")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]chem.Reaction](t, rec), 1)

	rec = get(t, h, "/api/elements/He/reactions")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String(), "element with no reactions")

	rec = get(t, h, "/api/elements/Unobtanium/reactions")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, h, "/api/elements/Fe/reactions?category=fictional")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReactionsEndpoint(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := get(t, h, "/api/reactions")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]chem.Reaction](t, rec), 8)

	rec = get(t, h, "/api/reactions?category=industrial")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]chem.Reaction](t, rec), 3)

	rec = get(t, h, "/api/reactions/H-industrial-001")
	require.Equal(t, http.StatusOK, rec.Code)
	haber := decode[chem.Reaction](t, rec)
	assert.True(t, haber.Reversible)
	require.NotNil(t, haber.Thermodynamics.DeltaHKJ)
	assert.InDelta(t, -92.4, *haber.Thermodynamics.DeltaHKJ, 1e-9)

	rec = get(t, h, "/api/reactions/Xx-industrial-999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompareEndpoint(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := get(t, h, "/api/compare?ids=H,He")
	require.Equal(t, http.StatusOK, rec.Code)
	cmp := decode[compare.Comparison](t, rec)
	assert.Equal(t, []string{"H", "He"}, cmp.Symbols)
	assert.NotEmpty(t, cmp.Rows)

	rec = get(t, h, "/api/compare?ids=H,%20He") // whitespace around identifiers
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, h, "/api/compare")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, h, "/api/compare?ids=H")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, h, "/api/compare?ids=H,He,Li,C,N,O")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, h, "/api/compare?ids=H,Unobtanium")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := get(t, h, "/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[query.CorpusStats](t, rec)
	assert.Equal(t, 11, stats.Elements)
	assert.Equal(t, 8, stats.Reactions)
	assert.Equal(t, 4, stats.ByCategory["transition_metal"])
	assert.NotEmpty(t, stats.Coverage)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv := newTestServer(t)
	srv.port = 0 // let the listener pick a free port

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
