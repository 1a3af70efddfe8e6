package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FilipeMCruz/playlist-maker/maker"
	"github.com/FilipeMCruz/playlist-maker/maker/partition"
	"github.com/FilipeMCruz/playlist-maker/maker/playlist"
	"github.com/FilipeMCruz/playlist-maker/maker/track"
)

var library = []track.Track{
	{Path: "/music/a.mp3", Title: "Nice For What", Artist: "Drake", Year: "2018"},
	{Path: "/music/b.mp3", Title: "Alright", Artist: "Kendrick Lamar", Year: "2015"},
	{Path: "/music/c.mp3", Title: "God's Plan", Artist: "Drake", Year: "2018"},
}

func newTestServer(t *testing.T, source TrackSource) *Server {
	t.Helper()
	engine := &maker.Engine{
		Driver: partition.Driver{
			Divisions: 2,
			Workers:   2,
			Split:     partition.SplitBalanced,
			Logger:    zerolog.Nop(),
		},
		Playlists: playlist.Table{
			playlist.New("gym", []string{"/music/a.mp3", "/music/b.mp3"}),
		},
		Logger: zerolog.Nop(),
	}
	if source == nil {
		source = TrackSourceFunc(func(context.Context) ([]track.Track, error) {
			return library, nil
		})
	}
	return New(engine, source, zerolog.Nop())
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func postQuery(t *testing.T, s *Server, q string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(queryRequest{Query: q})
	require.NoError(t, err)
	return do(t, s, http.MethodPost, "/api/query", string(body))
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(t, nil), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Run-Id"))
}

func TestQueryPlay(t *testing.T) {
	w := postQuery(t, newTestServer(t, nil), `Play(Artist("Drake"))`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got playResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "play", got.Mode)
	assert.Equal(t, 2, got.Count)
	assert.ElementsMatch(t, []string{"/music/a.mp3", "/music/c.mp3"}, got.Paths)
}

func TestQueryIndex(t *testing.T) {
	w := postQuery(t, newTestServer(t, nil), `Index(InPlaylist("gym") & AfterYear("2016"))`)
	require.Equal(t, http.StatusOK, w.Code)

	var got indexResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "index", got.Mode)
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, []track.Track{library[0]}, got.Tracks)
}

func TestQueryEmptyResult(t *testing.T) {
	s := newTestServer(t, nil)

	cases := []string{
		`Play(InPlaylist("missing"))`,
		`Play(Mood("calm"))`,
		`Play(Artist("Nobody"))`,
	}
	for _, q := range cases {
		w := postQuery(t, s, q)
		require.Equal(t, http.StatusOK, w.Code, q)
		assert.JSONEq(t, `{"mode":"play","count":0,"paths":[]}`, w.Body.String(), q)
	}

	w := postQuery(t, s, `Index(Artist("Nobody"))`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"mode":"index","count":0,"tracks":[]}`, w.Body.String())
}

func TestQueryBadRequest(t *testing.T) {
	s := newTestServer(t, nil)

	cases := map[string]string{
		"parse error":   `{"query": "Play(Artist(\"Drake\")"}`,
		"unknown mode":  `{"query": "Shuffle(Artist(\"Drake\"))"}`,
		"missing query": `{}`,
		"invalid body":  `not json`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/api/query", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var got map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.NotEmpty(t, got["error"])
		})
	}
}

func TestQuerySourceFailure(t *testing.T) {
	s := newTestServer(t, TrackSourceFunc(func(context.Context) ([]track.Track, error) {
		return nil, errors.New("database is locked")
	}))

	w := postQuery(t, s, `Play(Artist("Drake"))`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCheck(t *testing.T) {
	s := newTestServer(t, nil)

	q := url.Values{"q": {`Play(Mood("calm") | InPlaylist("gym") | !InPlaylist("party"))`}}
	w := do(t, s, http.MethodGet, "/api/check?"+q.Encode(), "")
	require.Equal(t, http.StatusOK, w.Code)

	var got checkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "play", got.Mode)
	require.Len(t, got.Problems, 2)
	assert.Equal(t, `InPlaylist("party")`, got.Problems[1].Token)
	assert.NotEmpty(t, got.Problems[0].Reason)

	q = url.Values{"q": {`Play(Artist("Drake"))`}}
	w = do(t, s, http.MethodGet, "/api/check?"+q.Encode(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"problems":[]`)

	w = do(t, s, http.MethodGet, "/api/check", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	q = url.Values{"q": {`Play(`}}
	w = do(t, s, http.MethodGet, "/api/check?"+q.Encode(), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaylists(t *testing.T) {
	w := do(t, newTestServer(t, nil), http.MethodGet, "/api/playlists", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"name":"gym","size":2}]`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	do(t, s, http.MethodGet, "/healthz", "")

	w := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "playlist_maker_http_requests_total")
	assert.Contains(t, w.Body.String(), `path="/healthz"`)
}
