package controllers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gofrs/uuid/v5"

	"github.com/greatxrider/interactive-form-project/catalog"
	"github.com/greatxrider/interactive-form-project/form"
	gohttp "github.com/greatxrider/interactive-form-project/http"
	"github.com/greatxrider/interactive-form-project/http/validation"
	"github.com/greatxrider/interactive-form-project/routing"
	"github.com/greatxrider/interactive-form-project/session"
)

type sessionKey struct{}

type valueBody struct {
	Value string `json:"value"`
}

type toggleBody struct {
	Checked *bool `json:"checked"`
}

type createdForm struct {
	ID   string    `json:"id"`
	View form.View `json:"view"`
}

type toggled struct {
	Changes []form.Change `json:"changes"`
	View    form.View     `json:"view"`
}

// FormController serves the registration form API.
type FormController struct {
	Controller

	Registry *validation.Registry
	Catalog  *catalog.Catalog
	Sessions *session.Store
	Logger   *slog.Logger

	// Debug puts the underlying error into 500 responses.
	Debug bool
}

// Session resolves the {id} route parameter of the /forms/{id} routes and
// stores the session id on the request context.
func (c *FormController) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := routing.Param(r, "id")
		id, err := uuid.FromString(raw)
		if err != nil {
			c.fail(c.Response(w), fmt.Errorf("%w: %q", session.ErrNotFound, raw))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, id)))
	})
}

// ShowCatalog handles GET /catalog.
func (c *FormController) ShowCatalog(w http.ResponseWriter, r *http.Request) {
	c.Response(w).Success(c.Catalog)
}

// Validate handles POST /validate/{field}: one field, no session.
func (c *FormController) Validate(w http.ResponseWriter, r *http.Request) {
	req, res := c.Request(r), c.Response(w)

	var body valueBody
	if err := req.Bind(&body); err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}
	id, err := validation.ParseFieldID(req.RouteParam("field"))
	if err != nil {
		c.fail(res, err)
		return
	}
	result, err := c.Registry.Validate(id, body.Value)
	if err != nil {
		c.fail(res, err)
		return
	}
	res.Success(result)
}

// Check handles POST /submit: the submission gate over a posted snapshot.
func (c *FormController) Check(w http.ResponseWriter, r *http.Request) {
	req, res := c.Request(r), c.Response(w)

	var snap form.Snapshot
	if err := req.Bind(&snap); err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}
	if snap.Payment != "" {
		if _, err := form.ParsePaymentMethod(string(snap.Payment)); err != nil {
			c.fail(res, err)
			return
		}
	}
	c.submission(res, form.Submit(c.Registry, snap))
}

// Store handles POST /forms.
func (c *FormController) Store(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)

	id, err := c.Sessions.Create()
	if err != nil {
		c.fail(res, err)
		return
	}
	var view form.View
	_ = c.Sessions.With(id, func(ctrl *form.Controller) error {
		view = ctrl.View()
		return nil
	})
	c.Logger.Debug("form session created", "session", id)
	res.Created(createdForm{ID: id.String(), View: view})
}

// Show handles GET /forms/{id}.
func (c *FormController) Show(w http.ResponseWriter, r *http.Request) {
	c.withView(w, r, func(*gohttp.Request, *form.Controller) error { return nil })
}

// Destroy handles DELETE /forms/{id}.
func (c *FormController) Destroy(w http.ResponseWriter, r *http.Request) {
	req, res := c.Request(r), c.Response(w)

	id, err := sessionFrom(req)
	if err == nil {
		err = c.Sessions.Delete(id)
	}
	if err != nil {
		c.fail(res, err)
		return
	}
	res.NoContent()
}

// UpdateField handles PUT /forms/{id}/fields/{field}, sent on keystroke and
// on blur.
func (c *FormController) UpdateField(w http.ResponseWriter, r *http.Request) {
	req, res := c.Request(r), c.Response(w)

	var body valueBody
	if err := req.Bind(&body); err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}
	field, err := validation.ParseFieldID(req.RouteParam("field"))
	if err != nil {
		c.fail(res, err)
		return
	}

	var result validation.Result
	err = c.with(req, func(ctrl *form.Controller) error {
		got, err := ctrl.SetField(field, body.Value)
		result = got
		return err
	})
	if err != nil {
		c.fail(res, err)
		return
	}
	res.Success(result)
}

// UpdateJobRole handles PUT /forms/{id}/job-role.
func (c *FormController) UpdateJobRole(w http.ResponseWriter, r *http.Request) {
	c.withValue(w, r, (*form.Controller).SelectJobRole)
}

// UpdateOtherJobRole handles PUT /forms/{id}/other-job-role.
func (c *FormController) UpdateOtherJobRole(w http.ResponseWriter, r *http.Request) {
	c.withValue(w, r, (*form.Controller).SetOtherJobRole)
}

// UpdateDesign handles PUT /forms/{id}/design.
func (c *FormController) UpdateDesign(w http.ResponseWriter, r *http.Request) {
	c.withValue(w, r, (*form.Controller).SelectDesign)
}

// UpdateColor handles PUT /forms/{id}/color.
func (c *FormController) UpdateColor(w http.ResponseWriter, r *http.Request) {
	c.withValue(w, r, (*form.Controller).SelectColor)
}

// UpdatePayment handles PUT /forms/{id}/payment.
func (c *FormController) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	c.withValue(w, r, (*form.Controller).SelectPayment)
}

// ToggleActivity handles PUT /forms/{id}/activities/{activity}.
func (c *FormController) ToggleActivity(w http.ResponseWriter, r *http.Request) {
	req, res := c.Request(r), c.Response(w)

	var body toggleBody
	if err := req.Bind(&body); err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}
	if body.Checked == nil {
		res.Error(http.StatusBadRequest, "checked is required")
		return
	}

	activity := req.RouteParam("activity")
	var out toggled
	err := c.with(req, func(ctrl *form.Controller) error {
		changes, err := ctrl.ToggleActivity(activity, *body.Checked)
		if err != nil {
			return err
		}
		out = toggled{Changes: changes, View: ctrl.View()}
		return nil
	})
	if err != nil {
		c.fail(res, err)
		return
	}
	c.Logger.Debug("activity toggled",
		"activity", activity, "checked", *body.Checked, "total", out.View.Total)
	res.Success(out)
}

// ResetActivities handles DELETE /forms/{id}/activities.
func (c *FormController) ResetActivities(w http.ResponseWriter, r *http.Request) {
	req, res := c.Request(r), c.Response(w)

	var out toggled
	err := c.with(req, func(ctrl *form.Controller) error {
		out = toggled{Changes: ctrl.ResetActivities(), View: ctrl.View()}
		return nil
	})
	if err != nil {
		c.fail(res, err)
		return
	}
	res.Success(out)
}

// Submit handles POST /forms/{id}/submit.
func (c *FormController) Submit(w http.ResponseWriter, r *http.Request) {
	req, res := c.Request(r), c.Response(w)

	var sub form.Submission
	err := c.with(req, func(ctrl *form.Controller) error {
		sub = ctrl.Submit()
		return nil
	})
	if err != nil {
		c.fail(res, err)
		return
	}
	c.submission(res, sub)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (c *FormController) submission(res *gohttp.Response, sub form.Submission) {
	c.Logger.Info("form submitted", "allowed", sub.Allowed, "invalid_fields", len(sub.Errors.Bag))
	if !sub.Allowed {
		res.ValidationError(sub.Errors, map[string]any{
			"allowed": false,
			"results": sub.Results,
		})
		return
	}
	res.Success(sub)
}

func sessionFrom(req *gohttp.Request) (uuid.UUID, error) {
	id, ok := req.Raw().Context().Value(sessionKey{}).(uuid.UUID)
	if !ok {
		return uuid.Nil, session.ErrNotFound
	}
	return id, nil
}

func (c *FormController) with(req *gohttp.Request, fn func(*form.Controller) error) error {
	id, err := sessionFrom(req)
	if err != nil {
		return err
	}
	return c.Sessions.With(id, fn)
}

// withView applies fn to the session and responds with the resulting view.
func (c *FormController) withView(w http.ResponseWriter, r *http.Request, fn func(*gohttp.Request, *form.Controller) error) {
	req, res := c.Request(r), c.Response(w)

	var view form.View
	err := c.with(req, func(ctrl *form.Controller) error {
		if err := fn(req, ctrl); err != nil {
			return err
		}
		view = ctrl.View()
		return nil
	})
	if err != nil {
		c.fail(res, err)
		return
	}
	res.Success(view)
}

// withValue binds {"value": ...} and passes it to a controller setter.
func (c *FormController) withValue(w http.ResponseWriter, r *http.Request, set func(*form.Controller, string) error) {
	var body valueBody
	if err := c.Request(r).Bind(&body); err != nil {
		c.Response(w).Error(http.StatusBadRequest, err.Error())
		return
	}
	c.withView(w, r, func(_ *gohttp.Request, ctrl *form.Controller) error {
		return set(ctrl, body.Value)
	})
}

// fail maps domain errors onto status codes.
func (c *FormController) fail(res *gohttp.Response, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, validation.ErrUnknownField),
		errors.Is(err, form.ErrUnknownActivity):
		res.NotFound(err.Error())
	case errors.Is(err, form.ErrActivityDisabled):
		res.Conflict(err.Error())
	case errors.Is(err, form.ErrUnknownOption),
		errors.Is(err, form.ErrFieldDisabled):
		res.Error(http.StatusBadRequest, err.Error())
	default:
		c.Logger.Error("form request failed", "error", err)
		if c.Debug {
			res.ServerError(err.Error())
			return
		}
		res.ServerError()
	}
}
