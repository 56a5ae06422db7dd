// Package routes registers the JSON API.
package routes

import (
	"github.com/greatxrider/interactive-form-project/http/controllers"
	"github.com/greatxrider/interactive-form-project/routing"
)

// API mounts the form endpoints under /api/v1.
func API(r *routing.Router, forms *controllers.FormController) {
	r.Prefix("/api/v1", func(api *routing.Router) {
		api.Get("/catalog", forms.ShowCatalog)
		api.Post("/validate/{field}", forms.Validate)
		api.Post("/submit", forms.Check)

		api.Prefix("/forms", func(f *routing.Router) {
			f.Post("/", forms.Store)

			f.Group(func(s *routing.Router) {
				s.Middleware(forms.Session)

				s.Get("/{id}", forms.Show)
				s.Delete("/{id}", forms.Destroy)
				s.Post("/{id}/submit", forms.Submit)

				s.Put("/{id}/fields/{field}", forms.UpdateField)
				s.Put("/{id}/job-role", forms.UpdateJobRole)
				s.Put("/{id}/other-job-role", forms.UpdateOtherJobRole)
				s.Put("/{id}/design", forms.UpdateDesign)
				s.Put("/{id}/color", forms.UpdateColor)
				s.Put("/{id}/payment", forms.UpdatePayment)

				s.Put("/{id}/activities/{activity}", forms.ToggleActivity)
				s.Delete("/{id}/activities", forms.ResetActivities)
			})
		})
	})
}
