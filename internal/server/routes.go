package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rlhub/datacat/internal/catalog"
)

// previewUnavailable is the generic user-facing failure for previews.
const previewUnavailable = "Examples are currently unavailable."

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// datasetSummary is the list-view shape of a dataset.
type datasetSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Homepage    string   `json:"homepage,omitempty"`
	Variants    []string `json:"variants"`
}

func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := s.store.List(r.Context())
	if err != nil {
		log.Printf("listing datasets: %v", err)
		writeError(w, http.StatusInternalServerError, "listing datasets failed")
		return
	}

	summaries := make([]datasetSummary, len(datasets))
	for i := range datasets {
		d := &datasets[i]
		names := make([]string, len(d.Variants))
		for j := range d.Variants {
			names[j] = d.Variants[j].Name
		}
		summaries[i] = datasetSummary{
			Name:        d.Name,
			Description: d.Description,
			Homepage:    d.Homepage,
			Variants:    names,
		}
	}
	writeJSON(w, http.StatusOK, summaries)
}

// lookupDataset fetches a dataset or writes a 404.
func (s *Server) lookupDataset(w http.ResponseWriter, r *http.Request) *catalog.Dataset {
	name := chi.URLParam(r, "dataset")
	d, err := s.store.Get(r.Context(), name)
	if err != nil {
		log.Printf("getting dataset %s: %v", name, err)
		writeError(w, http.StatusInternalServerError, "getting dataset failed")
		return nil
	}
	if d == nil {
		writeError(w, http.StatusNotFound, "dataset not found")
		return nil
	}
	return d
}

func (s *Server) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	d := s.lookupDataset(w, r)
	if d == nil {
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// lookupVariant fetches a variant or writes a 404.
func (s *Server) lookupVariant(w http.ResponseWriter, r *http.Request) (*catalog.Dataset, *catalog.Variant) {
	d := s.lookupDataset(w, r)
	if d == nil {
		return nil, nil
	}
	v := d.Variant(chi.URLParam(r, "variant"))
	if v == nil {
		writeError(w, http.StatusNotFound, "variant not found")
		return nil, nil
	}
	return d, v
}

func (s *Server) handleGetVariant(w http.ResponseWriter, r *http.Request) {
	_, v := s.lookupVariant(w, r)
	if v == nil {
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	_, v := s.lookupVariant(w, r)
	if v == nil {
		return
	}
	writeJSON(w, http.StatusOK, v.Features)
}

// handlePreview proxies the pre-rendered example table for a variant.
// Any upstream failure maps to 502 with the one generic message.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	_, v := s.lookupVariant(w, r)
	if v == nil {
		return
	}

	dataset := chi.URLParam(r, "dataset")
	fragment, err := s.fetcher.Fragment(r.Context(), dataset, v.Name)
	if err != nil {
		log.Printf("preview %s/%s: %v", dataset, v.Name, err)
		writeError(w, http.StatusBadGateway, previewUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(fragment))
}

// searchRequest is the JSON body of POST /api/search.
type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	limit := req.Limit
	if limit <= 0 || limit > 20 {
		limit = 8
	}

	results, err := s.index.Search(r.Context(), query, limit)
	if err != nil {
		log.Printf("search %q: %v", query, err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}
