package api

import (
	"fmt"
	"net/http"

	"github.com/dmitrymomot/slugkit/pkg/slug"
)

// optionsRequest overrides DefaultOptions field by field.
type optionsRequest struct {
	Separator        *string `json:"separator"`
	Filter           string  `json:"filter"`
	LowerCase        *bool   `json:"lower_case"`
	StripApostrophes *bool   `json:"strip_apostrophes"`
}

func (o *optionsRequest) build() (slug.Options, error) {
	opts := slug.DefaultOptions()
	if o == nil {
		return opts, nil
	}

	filter, err := slug.NamedFilter(o.Filter)
	if err != nil {
		return slug.Options{}, err
	}
	opts.Filter = filter
	if o.Separator != nil {
		opts.Separator = *o.Separator
	}
	if o.LowerCase != nil {
		opts.LowerCase = *o.LowerCase
	}
	if o.StripApostrophes != nil {
		opts.StripApostrophes = *o.StripApostrophes
	}

	if err := opts.Validate(); err != nil {
		return slug.Options{}, err
	}
	return opts, nil
}

type textRequest struct {
	Options *optionsRequest `json:"options"`
	Text    string          `json:"text"`
}

type truncateRequest struct {
	Options   *optionsRequest `json:"options"`
	Slug      string          `json:"slug"`
	MaxLength int             `json:"max_length"`
}

type makeRequest struct {
	Separator  *string           `json:"separator"`
	Lowercase  *bool             `json:"lowercase"`
	Replace    map[string]string `json:"replace"`
	Text       string            `json:"text"`
	StripChars string            `json:"strip_chars"`
	Reserved   []string          `json:"reserved"`
	MaxLength  int               `json:"max_length"`
	MinLength  int               `json:"min_length"`
	Suffix     int               `json:"suffix"`
}

// maxMakeLength bounds max_length and min_length on make requests.
const maxMakeLength = 1024

func (m makeRequest) validate() error {
	var msg string
	switch {
	case m.Suffix < 0 || m.Suffix > slug.MaxSuffixLength:
		msg = fmt.Sprintf("suffix must be between 0 and %d", slug.MaxSuffixLength)
	case m.MaxLength < 0 || m.MaxLength > maxMakeLength:
		msg = fmt.Sprintf("max_length must be between 0 and %d", maxMakeLength)
	case m.MinLength < 0 || m.MinLength > maxMakeLength:
		msg = fmt.Sprintf("min_length must be between 0 and %d", maxMakeLength)
	default:
		return nil
	}
	return &httpError{Code: http.StatusBadRequest, Message: msg, Err: errBadRequest}
}

type slugResponse struct {
	Slug string `json:"slug"`
}

func (a *api) generate(w http.ResponseWriter, r *http.Request) error {
	return a.fromText(w, r, "generate", slug.GenerateWithOptions)
}

func (a *api) parse(w http.ResponseWriter, r *http.Request) error {
	return a.fromText(w, r, "parse", slug.ParseWithOptions)
}

func (a *api) fromText(w http.ResponseWriter, r *http.Request, op string, fn func(slug.Options, string) (slug.Slug, error)) error {
	var req textRequest
	if err := a.decodeJSON(w, r, &req); err != nil {
		return err
	}
	opts, err := req.Options.build()
	if err != nil {
		return err
	}

	s, err := fn(opts, req.Text)
	a.countOperation(op, err)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, slugResponse{Slug: s.String()})
	return nil
}

func (a *api) truncate(w http.ResponseWriter, r *http.Request) error {
	var req truncateRequest
	if err := a.decodeJSON(w, r, &req); err != nil {
		return err
	}
	opts, err := req.Options.build()
	if err != nil {
		return err
	}

	s, err := slug.ParseWithOptions(opts, req.Slug)
	if err == nil {
		s, err = slug.TruncateWithOptions(opts, req.MaxLength, s)
	}
	a.countOperation("truncate", err)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, slugResponse{Slug: s.String()})
	return nil
}

func (a *api) makeSlug(w http.ResponseWriter, r *http.Request) error {
	var req makeRequest
	if err := a.decodeJSON(w, r, &req); err != nil {
		return err
	}
	if err := req.validate(); err != nil {
		return err
	}

	opts := []slug.Option{
		slug.MaxLength(req.MaxLength),
		slug.MinLength(req.MinLength),
		slug.WithSuffix(req.Suffix),
		slug.StripChars(req.StripChars),
		slug.ReservedSlugs(req.Reserved...),
	}
	if req.Separator != nil {
		opts = append(opts, slug.Separator(*req.Separator))
	}
	if req.Lowercase != nil {
		opts = append(opts, slug.Lowercase(*req.Lowercase))
	}
	if len(req.Replace) > 0 {
		opts = append(opts, slug.CustomReplace(req.Replace))
	}

	out := slug.Make(req.Text, opts...)
	var err error
	if out == "" {
		err = slug.ErrUngeneratable
	}
	a.countOperation("make", err)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, slugResponse{Slug: out})
	return nil
}

func (a *api) countOperation(op string, err error) {
	if a.opts.metrics != nil {
		a.opts.metrics.Operation(op, resultLabel(err))
	}
}
