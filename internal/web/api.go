package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/malabomap/internal/atlas"
	"github.com/ziadkadry99/malabomap/internal/boot"
)

// CountrySummary is one row of /api/countries.
type CountrySummary struct {
	Code     string         `json:"code"`
	Name     string         `json:"name"`
	Category atlas.Category `json:"category"`
	Tags     []string       `json:"tags"`
}

// CountryDetail is the body of /api/countries/{code}.
type CountryDetail struct {
	Code     string         `json:"code"`
	Category atlas.Category `json:"category"`
	atlas.Country
}

// CountsResponse is the body of /api/counts.
type CountsResponse struct {
	Tags   []string               `json:"tags"`
	Counts map[atlas.Category]int `json:"counts"`
}

// Summaries lists every country ordered by name.
func Summaries(ds *atlas.Dataset) []CountrySummary {
	codes := ds.CodesByName()
	out := make([]CountrySummary, 0, len(codes))
	for _, code := range codes {
		c := ds.Countries[code]
		tags := c.Tags
		if tags == nil {
			tags = []string{}
		}
		out = append(out, CountrySummary{
			Code:     code,
			Name:     c.Name,
			Category: atlas.DetermineCategory(c),
			Tags:     tags,
		})
	}
	return out
}

// current answers 503 when startup failed and reports whether res is usable.
func (h *Handler) current(w http.ResponseWriter) (*boot.Result, bool) {
	res, err := h.state.Current()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, boot.ErrorTitle)
		return nil, false
	}
	return res, true
}

func (h *Handler) handleCountries(w http.ResponseWriter, r *http.Request) {
	res, ok := h.current(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, Summaries(res.Dataset))
}

func (h *Handler) handleCountry(w http.ResponseWriter, r *http.Request) {
	res, ok := h.current(w)
	if !ok {
		return
	}
	code := strings.ToUpper(chi.URLParam(r, "code"))
	c, found := res.Dataset.Country(code)
	if !found {
		writeError(w, http.StatusNotFound, "unknown country "+code)
		return
	}
	writeJSON(w, http.StatusOK, CountryDetail{
		Code:     code,
		Category: atlas.DetermineCategory(c),
		Country:  c,
	})
}

func (h *Handler) handleCounts(w http.ResponseWriter, r *http.Request) {
	res, ok := h.current(w)
	if !ok {
		return
	}
	tags := atlas.NewTagSet()
	ids := []string{}
	if raw := r.URL.Query().Get("tags"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if _, known := res.Dataset.Metadata.Tags[id]; !known {
				writeError(w, http.StatusBadRequest, "unknown tag "+id)
				return
			}
			if !tags.Has(id) {
				tags.Add(id)
				ids = append(ids, id)
			}
		}
	}
	writeJSON(w, http.StatusOK, CountsResponse{
		Tags:   ids,
		Counts: res.Dataset.CategoryCounts(tags),
	})
}

func (h *Handler) handleParticles(w http.ResponseWriter, r *http.Request) {
	res, ok := h.current(w)
	if !ok {
		return
	}
	if res.Particles == nil {
		writeError(w, http.StatusNotFound, "no particles config")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(res.Particles)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
