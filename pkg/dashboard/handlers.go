package dashboard

import (
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/asbg75/interclubs/pkg/core/model"
	"github.com/asbg75/interclubs/pkg/core/results"
)

var indexTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"percent": formatPercent,
}).Parse(indexHTML))

type indexPage struct {
	ClubName string
	Sections []results.Section
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	rows, err := s.results.GetResults(r.Context())
	if err != nil {
		s.logger.Error("Failed to load results", zap.Error(err))
		http.Error(w, "failed to load results", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := indexPage{ClubName: s.clubName, Sections: results.Sections(rows)}
	if err := indexTemplate.Execute(w, page); err != nil {
		s.logger.Error("Failed to render index", zap.Error(err))
	}
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	rows, err := s.results.GetResults(r.Context())
	if err != nil {
		s.logger.Error("Failed to load results", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load results"})
		return
	}
	sections := results.Sections(rows)
	if sections == nil {
		sections = []results.Section{}
	}
	writeJSON(w, http.StatusOK, sections)
}

func (s *Server) handleCompetitionResults(w http.ResponseWriter, r *http.Request) {
	competition, err := results.LookupCompetition(chi.URLParam(r, "competition"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	rows, err := s.results.GetResults(r.Context())
	if err != nil {
		s.logger.Error("Failed to load results", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load results"})
		return
	}

	writeJSON(w, http.StatusOK, results.Section{
		Key:       competition.Key,
		Title:     competition.Title,
		Summaries: results.Aggregate(results.Filter(rows, competition.Name)),
	})
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	genre := chi.URLParam(r, "genre")
	if s.rankings == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no rankings available"})
		return
	}

	players, err := s.rankings.LoadRankings(genre)
	if errors.Is(err, fs.ErrNotExist) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no rankings for " + genre})
		return
	}
	if err != nil {
		s.logger.Error("Failed to load rankings", zap.String("genre", genre), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load rankings"})
		return
	}
	if players == nil {
		players = []model.RankedPlayer{}
	}
	writeJSON(w, http.StatusOK, players)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
