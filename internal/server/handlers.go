package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/FilipeMCruz/playlist-maker/maker"
	"github.com/FilipeMCruz/playlist-maker/maker/eval"
	"github.com/FilipeMCruz/playlist-maker/maker/query"
	"github.com/FilipeMCruz/playlist-maker/maker/track"
)

// maxQueryBody bounds the size of a query request.
const maxQueryBody = 64 << 10

type queryRequest struct {
	Query string `json:"query"`
}

type playResponse struct {
	Mode  string   `json:"mode"`
	Count int      `json:"count"`
	Paths []string `json:"paths"`
}

type indexResponse struct {
	Mode   string        `json:"mode"`
	Count  int           `json:"count"`
	Tracks []track.Track `json:"tracks"`
}

type checkResponse struct {
	Query    string         `json:"query"`
	Mode     string         `json:"mode"`
	Problems []eval.Problem `json:"problems"`
}

type playlistInfo struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log := requestLog(r)
		log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func writeJSONError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, map[string]string{"error": message})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

// requestEngine copies the engine with the request logger attached.
func (s *Server) requestEngine(r *http.Request) *maker.Engine {
	e := *s.engine
	e.Logger = requestLog(r)
	e.Driver.Logger = e.Logger
	return &e
}

func (s *Server) query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxQueryBody)).Decode(&req); err != nil {
		writeJSONError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeJSONError(w, r, http.StatusBadRequest, "missing query")
		return
	}

	tracks, err := s.source.Tracks(r.Context())
	if err != nil {
		log := requestLog(r)
		log.Error().Err(err).Msg("failed to load tracks")
		writeJSONError(w, r, http.StatusInternalServerError, "failed to load tracks")
		return
	}

	res, err := s.requestEngine(r).Run(r.Context(), req.Query, tracks)
	if err != nil {
		if maker.IsKind(err, maker.ErrQueryParse) {
			writeJSONError(w, r, http.StatusBadRequest, parseMessage(err))
			return
		}
		writeJSONError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	if res.Mode() == query.Play {
		writeJSON(w, r, http.StatusOK, playResponse{
			Mode:  res.Mode().String(),
			Count: len(res.Tracks),
			Paths: res.Paths(),
		})
		return
	}
	tracksOut := res.Tracks
	if tracksOut == nil {
		tracksOut = []track.Track{}
	}
	writeJSON(w, r, http.StatusOK, indexResponse{
		Mode:   res.Mode().String(),
		Count:  len(tracksOut),
		Tracks: tracksOut,
	})
}

func (s *Server) check(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("q")
	if text == "" {
		writeJSONError(w, r, http.StatusBadRequest, "missing q parameter")
		return
	}
	q, problems, err := s.engine.Check(text)
	if err != nil {
		writeJSONError(w, r, http.StatusBadRequest, parseMessage(err))
		return
	}
	if problems == nil {
		problems = []eval.Problem{}
	}
	writeJSON(w, r, http.StatusOK, checkResponse{
		Query:    q.String(),
		Mode:     q.Mode.String(),
		Problems: problems,
	})
}

func (s *Server) playlists(w http.ResponseWriter, r *http.Request) {
	out := make([]playlistInfo, 0, len(s.engine.Playlists))
	for _, p := range s.engine.Playlists {
		out = append(out, playlistInfo{Name: p.Name, Size: p.Len()})
	}
	writeJSON(w, r, http.StatusOK, out)
}

// parseMessage reports the position and reason of a parse failure.
func parseMessage(err error) string {
	var pe *query.ParseError
	if errors.As(err, &pe) {
		return pe.Error()
	}
	return err.Error()
}
