package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
)

const maxBody = 1 << 20 // 1 MB

// Request wraps *http.Request with binding helpers.
type Request struct {
	raw *http.Request
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// ── Binding ──────────────────────────────────────────────────────────────────

// Bind decodes the request body into v.
// Supports JSON and application/x-www-form-urlencoded.
// Form fields map through the struct's json tags.
func (req *Request) Bind(v any) error {
	if strings.Contains(req.ContentType(), "application/json") {
		return req.bindJSON(v)
	}
	if err := req.raw.ParseForm(); err != nil {
		return err
	}
	return bindForm(req.raw.PostForm, v)
}

func (req *Request) bindJSON(v any) error {
	defer req.raw.Body.Close()
	body, err := io.ReadAll(io.LimitReader(req.raw.Body, maxBody))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return errors.New("empty request body")
	}
	return json.Unmarshal(body, v)
}

// bindForm maps form values onto a struct through a JSON round-trip. The
// literals "true" and "false" become booleans for bool fields so checkbox
// posts bind; string fields keep them verbatim.
func bindForm(values map[string][]string, v any) error {
	bools := boolFields(v)
	m := make(map[string]any, len(values))
	for k, vals := range values {
		switch {
		case len(vals) != 1:
			m[k] = vals
		case bools[k] && (vals[0] == "true" || vals[0] == "false"):
			m[k] = vals[0] == "true"
		default:
			m[k] = vals[0]
		}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// boolFields returns the json names of the bool and *bool fields of the
// struct v points to.
func boolFields(v any) map[string]bool {
	out := make(map[string]bool)
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() != reflect.Bool {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" {
			name = f.Name
		}
		out[name] = true
	}
	return out
}

// ── Input helpers ────────────────────────────────────────────────────────────

// RouteParam returns a URL route parameter (chi).
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}
