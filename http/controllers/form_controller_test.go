package controllers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greatxrider/interactive-form-project/catalog"
	"github.com/greatxrider/interactive-form-project/form"
	"github.com/greatxrider/interactive-form-project/http/controllers"
	"github.com/greatxrider/interactive-form-project/http/validation"
	"github.com/greatxrider/interactive-form-project/logging"
	"github.com/greatxrider/interactive-form-project/routes"
	"github.com/greatxrider/interactive-form-project/routing"
	"github.com/greatxrider/interactive-form-project/session"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newServer(t *testing.T) *routing.Router {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	reg := validation.NewRegistry()
	opts := cat.Options()
	logger := logging.New("text", "error", io.Discard)

	r := routing.New(logger)
	routes.API(r, &controllers.FormController{
		Registry: reg,
		Catalog:  cat,
		Sessions: session.NewStore(func() (*form.Controller, error) {
			return form.NewController(reg, opts)
		}, 0),
		Logger: logger,
	})
	return r
}

func call(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func callForm(t *testing.T, h http.Handler, method, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&out), rr.Body.String())
	return out
}

type envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
}

func newForm(t *testing.T, h http.Handler) string {
	t.Helper()
	rr := call(t, h, http.MethodPost, "/api/v1/forms", "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[envelope[struct {
		ID   string    `json:"id"`
		View form.View `json:"view"`
	}]](t, rr)
	require.NotEmpty(t, created.Data.ID)
	assert.Equal(t, "Total: $0", created.Data.View.TotalLabel)
	return created.Data.ID
}

// ── stateless endpoints ──────────────────────────────────────────────────────

func TestCatalog(t *testing.T) {
	rr := call(t, newServer(t), http.MethodGet, "/api/v1/catalog", "")
	require.Equal(t, http.StatusOK, rr.Code)
	got := decode[envelope[catalog.Catalog]](t, rr)
	assert.Len(t, got.Data.Activities, 7)
}

func TestValidate(t *testing.T) {
	h := newServer(t)

	rr := call(t, h, http.MethodPost, "/api/v1/validate/email", `{"value":"a@b"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	res := decode[envelope[validation.Result]](t, rr).Data
	assert.False(t, res.Valid)
	assert.Equal(t, "Email address must be formatted correctly.", res.Message)

	rr = call(t, h, http.MethodPost, "/api/v1/validate/zip", `{"value":"12345"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decode[envelope[validation.Result]](t, rr).Data.Valid)

	rr = call(t, h, http.MethodPost, "/api/v1/validate/title", `{"value":"x"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = call(t, h, http.MethodPost, "/api/v1/validate/zip", `{`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCheckSnapshot(t *testing.T) {
	h := newServer(t)

	rr := call(t, h, http.MethodPost, "/api/v1/submit",
		`{"fields":{"name":"Alice","email":"alice@example.com"},"payment":"paypal"}`)
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = call(t, h, http.MethodPost, "/api/v1/submit",
		`{"fields":{"name":"alice","email":"alice@example.com"},"payment":"credit-card"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	body := decode[struct {
		Allowed bool                `json:"allowed"`
		Errors  map[string][]string `json:"errors"`
	}](t, rr)
	assert.False(t, body.Allowed)
	assert.Len(t, body.Errors, 4)

	rr = call(t, h, http.MethodPost, "/api/v1/submit", `{"payment":"cash"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// ── form sessions ────────────────────────────────────────────────────────────

func TestForm_FieldUpdates(t *testing.T) {
	h := newServer(t)
	id := newForm(t, h)

	rr := call(t, h, http.MethodPut, "/api/v1/forms/"+id+"/fields/name", `{"value":"A"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	res := decode[envelope[validation.Result]](t, rr).Data
	assert.Equal(t, "Your name must have at least two characters.", res.Message)

	rr = call(t, h, http.MethodPut, "/api/v1/forms/"+id+"/fields/title", `{"value":"A"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestForm_Selectors(t *testing.T) {
	h := newServer(t)
	id := newForm(t, h)
	base := "/api/v1/forms/" + id

	rr := call(t, h, http.MethodPut, base+"/job-role", `{"value":"other"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	view := decode[envelope[form.View]](t, rr).Data
	assert.False(t, view.OtherJobRole.Hidden)

	rr = call(t, h, http.MethodPut, base+"/other-job-role", `{"value":"Astronaut"}`)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = call(t, h, http.MethodPut, base+"/design", `{"value":"heart js"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	view = decode[envelope[form.View]](t, rr).Data
	assert.False(t, view.Color.Disabled)
	for _, o := range view.Color.Options {
		assert.Equal(t, o.Theme != "heart js", o.Hidden, o.Value)
		assert.Equal(t, o.Value == "tomato", o.Selected, o.Value)
	}

	rr = call(t, h, http.MethodPut, base+"/color", `{"value":"gold"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = call(t, h, http.MethodPut, base+"/payment", `{"value":"bitcoin"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	view = decode[envelope[form.View]](t, rr).Data
	for _, s := range view.Sections {
		assert.Equal(t, s.Method != form.Bitcoin, s.Hidden, s.Method)
	}

	rr = call(t, h, http.MethodPut, base+"/payment", `{"value":"cash"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestForm_Activities(t *testing.T) {
	h := newServer(t)
	id := newForm(t, h)
	base := "/api/v1/forms/" + id + "/activities/"

	type toggled struct {
		Changes []form.Change `json:"changes"`
		View    form.View     `json:"view"`
	}

	rr := call(t, h, http.MethodPut, base+"js-frameworks", `{"checked":true}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	out := decode[envelope[toggled]](t, rr).Data
	assert.Equal(t, []form.Change{{ID: "node", Disabled: true}}, out.Changes)
	assert.Equal(t, "Total: $100", out.View.TotalLabel)

	rr = call(t, h, http.MethodPut, base+"node", `{"checked":true}`)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = call(t, h, http.MethodPut, base+"nope", `{"checked":true}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = call(t, h, http.MethodPut, base+"node", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = call(t, h, http.MethodPut, base+"all", `{"checked":true}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 300, decode[envelope[toggled]](t, rr).Data.View.Total)

	rr = call(t, h, http.MethodDelete, "/api/v1/forms/"+id+"/activities", "")
	require.Equal(t, http.StatusOK, rr.Code)
	out = decode[envelope[toggled]](t, rr).Data
	assert.Equal(t, 0, out.View.Total)
	for _, a := range out.View.Activities {
		assert.False(t, a.Disabled, a.ID)
	}
}

func TestForm_Submit(t *testing.T) {
	h := newServer(t)
	id := newForm(t, h)
	base := "/api/v1/forms/" + id

	rr := call(t, h, http.MethodPost, base+"/submit", "")
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	body := decode[struct {
		Errors map[string][]string `json:"errors"`
	}](t, rr)
	assert.Len(t, body.Errors, 5)

	for field, value := range map[string]string{"name": "Alice", "email": "alice@example.com"} {
		rr = call(t, h, http.MethodPut, base+"/fields/"+field, `{"value":"`+value+`"}`)
		require.Equal(t, http.StatusOK, rr.Code)
	}
	rr = call(t, h, http.MethodPut, base+"/payment", `{"value":"paypal"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = call(t, h, http.MethodPost, base+"/submit", "")
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.True(t, decode[envelope[form.Submission]](t, rr).Data.Allowed)
}

func TestForm_Lifecycle(t *testing.T) {
	h := newServer(t)
	id := newForm(t, h)

	assert.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/api/v1/forms/"+id, "").Code)
	assert.Equal(t, http.StatusNoContent, call(t, h, http.MethodDelete, "/api/v1/forms/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, call(t, h, http.MethodGet, "/api/v1/forms/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, call(t, h, http.MethodDelete, "/api/v1/forms/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, call(t, h, http.MethodGet, "/api/v1/forms/not-a-uuid", "").Code)
}

func TestForm_FormEncodedBooleanLikeValue(t *testing.T) {
	h := newServer(t)
	id := newForm(t, h)

	rr := callForm(t, h, http.MethodPut, "/api/v1/forms/"+id+"/job-role", url.Values{"value": {"other"}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = callForm(t, h, http.MethodPut, "/api/v1/forms/"+id+"/other-job-role", url.Values{"value": {"true"}})
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = callForm(t, h, http.MethodPut, "/api/v1/forms/"+id+"/activities/npm", url.Values{"checked": {"true"}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "Total: $100", decode[envelope[struct {
		View form.View `json:"view"`
	}]](t, rr).Data.View.TotalLabel)
}

// ── server errors ────────────────────────────────────────────────────────────

func brokenServer(debug bool) *routing.Router {
	logger := logging.New("text", "error", io.Discard)
	r := routing.New(logger)
	routes.API(r, &controllers.FormController{
		Registry: validation.NewRegistry(),
		Sessions: session.NewStore(func() (*form.Controller, error) {
			return nil, errors.New("catalog unavailable")
		}, 0),
		Logger: logger,
		Debug:  debug,
	})
	return r
}

func TestForm_ServerErrorDetail(t *testing.T) {
	rr := call(t, brokenServer(false), http.MethodPost, "/api/v1/forms", "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Server Error.", decode[envelope[any]](t, rr).Message)

	rr = call(t, brokenServer(true), http.MethodPost, "/api/v1/forms", "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, decode[envelope[any]](t, rr).Message, "catalog unavailable")
}
