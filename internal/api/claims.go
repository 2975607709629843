package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/slugkit/pkg/registry"
	"github.com/dmitrymomot/slugkit/pkg/slug"
	"github.com/dmitrymomot/slugkit/pkg/title"
)

type claimRequest struct {
	Title  string `json:"title"`
	Owner  string `json:"owner"`
	Format string `json:"format"`
	// TTL is a Go duration string such as "15m". Empty means permanent.
	TTL string `json:"ttl"`
}

func (a *api) createClaim(w http.ResponseWriter, r *http.Request) error {
	var req claimRequest
	if err := a.decodeJSON(w, r, &req); err != nil {
		return err
	}

	format, err := title.ParseFormat(req.Format)
	if err != nil {
		return err
	}
	var ttl time.Duration
	if req.TTL != "" {
		if ttl, err = time.ParseDuration(req.TTL); err != nil || ttl < 0 {
			return &httpError{
				Code:    http.StatusBadRequest,
				Message: fmt.Sprintf("invalid ttl %q", req.TTL),
				Err:     errBadRequest,
			}
		}
	}

	text, err := title.Extract(req.Title, format)
	if err != nil {
		return err
	}

	c, err := a.reg.Claim(r.Context(), registry.Request{Title: text, Owner: req.Owner, TTL: ttl})
	if a.opts.metrics != nil {
		a.opts.metrics.Claim(resultLabel(err))
	}
	if err != nil {
		return err
	}

	w.Header().Set("Location", "/v1/claims/"+c.Slug.String())
	writeJSON(w, http.StatusCreated, c)
	return nil
}

func (a *api) getClaim(w http.ResponseWriter, r *http.Request) error {
	s, err := a.slugParam(r)
	if err != nil {
		return err
	}

	c, err := a.reg.Lookup(r.Context(), s)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, c)
	return nil
}

func (a *api) deleteClaim(w http.ResponseWriter, r *http.Request) error {
	s, err := a.slugParam(r)
	if err != nil {
		return err
	}

	if err := a.reg.Release(r.Context(), s, r.URL.Query().Get("owner")); err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// slugParam reads {slug}. Text that is not a valid slug cannot name a claim,
// so it is reported as not found.
func (a *api) slugParam(r *http.Request) (slug.Slug, error) {
	s, err := a.reg.Parse(chi.URLParam(r, "slug"))
	if err != nil {
		return slug.Slug{}, &httpError{
			Code:    http.StatusNotFound,
			Message: registry.ErrNotFound.Error(),
			Err:     errors.Join(registry.ErrNotFound, err),
		}
	}
	return s, nil
}
