package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/periodica-labs/periodica/internal/compare"
	"github.com/periodica-labs/periodica/internal/query"
	"github.com/periodica-labs/periodica/pkg/chem"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleElements lists elements, optionally narrowed by repeated
// ?where=field:op:value predicates and ordered by ?sort=field&desc.
func (s *Server) handleElements(w http.ResponseWriter, r *http.Request) {
	preds, err := parsePredicates(r.URL.Query()["where"])
	if err != nil {
		writeError(w, err)
		return
	}

	elements, err := s.engine.Filter(preds)
	if err != nil {
		writeError(w, err)
		return
	}

	if field := r.URL.Query().Get("sort"); field != "" {
		desc, err := descFlag(r)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := query.Sort(elements, field, desc); err != nil {
			writeError(w, err)
			return
		}
	}

	if elements == nil {
		elements = []chem.Element{}
	}
	writeJSON(w, http.StatusOK, elements)
}

func (s *Server) handleElement(w http.ResponseWriter, r *http.Request) {
	elem, err := s.engine.FindByIdentifier(chi.URLParam(r, "ident"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, elem)
}

func (s *Server) handleElementReactions(w http.ResponseWriter, r *http.Request) {
	filter := query.ReactionFilter{
		Category: r.URL.Query().Get("category"),
		Type:     r.URL.Query().Get("type"),
	}
	reactions, err := s.engine.ReactionsFor(chi.URLParam(r, "ident"), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if reactions == nil {
		reactions = []chem.Reaction{}
	}
	writeJSON(w, http.StatusOK, reactions)
}

func (s *Server) handleReactions(w http.ResponseWriter, r *http.Request) {
	filter := query.ReactionFilter{
		Category: r.URL.Query().Get("category"),
		Type:     r.URL.Query().Get("type"),
	}
	reactions, err := s.engine.Reactions(filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if reactions == nil {
		reactions = []chem.Reaction{}
	}
	writeJSON(w, http.StatusOK, reactions)
}

func (s *Server) handleReaction(w http.ResponseWriter, r *http.Request) {
	reaction, err := s.engine.Reaction(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reaction)
}

// handleCompare builds a comparison table for ?ids=H,He,... identifiers.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("ids")
	if raw == "" {
		writeError(w, &chem.InvalidQueryError{Part: "ids", Reason: "query parameter is required"})
		return
	}

	var identifiers []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			identifiers = append(identifiers, part)
		}
	}

	result, err := compare.Compare(s.engine, identifiers)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Stats())
}

func parsePredicates(raw []string) ([]query.Predicate, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	preds := make([]query.Predicate, 0, len(raw))
	for _, s := range raw {
		p, err := query.ParsePredicate(s)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return preds, nil
}

// descFlag reads ?desc. A bare ?desc counts as true.
func descFlag(r *http.Request) (bool, error) {
	if !r.URL.Query().Has("desc") {
		return false, nil
	}
	raw := r.URL.Query().Get("desc")
	if raw == "" {
		return true, nil
	}
	desc, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &chem.InvalidQueryError{Part: raw, Reason: "desc wants a boolean"}
	}
	return desc, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case chem.IsNotFound(err):
		status = http.StatusNotFound
	case chem.IsInvalidQuery(err):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
