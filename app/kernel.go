package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/greatxrider/interactive-form-project/catalog"
	"github.com/greatxrider/interactive-form-project/config"
	"github.com/greatxrider/interactive-form-project/form"
	"github.com/greatxrider/interactive-form-project/http/controllers"
	"github.com/greatxrider/interactive-form-project/http/validation"
	"github.com/greatxrider/interactive-form-project/logging"
	"github.com/greatxrider/interactive-form-project/routes"
	"github.com/greatxrider/interactive-form-project/routing"
	"github.com/greatxrider/interactive-form-project/session"
)

const shutdownTimeout = 5 * time.Second

// Application holds the wired services of the registration server.
type Application struct {
	Config   *config.Config
	Logger   *slog.Logger
	Registry *validation.Registry
	Catalog  *catalog.Catalog
	Sessions *session.Store
	Router   *routing.Router
}

// New bootstraps the application from the environment.
//
//	app, err := app.New()
//	err = app.Run(ctx)
func New(envFiles ...string) (*Application, error) {
	cfg := config.Load(envFiles...)
	return NewWithConfig(cfg, logging.SetupLogger(cfg.Log.Format, cfg.Log.Level))
}

// NewWithConfig wires the application from an explicit config and logger.
func NewWithConfig(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	cat, err := catalog.Load(cfg.Form.Catalog)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	registry := validation.NewRegistry()
	opts := cat.Options()
	sessions := session.NewStore(func() (*form.Controller, error) {
		return form.NewController(registry, opts)
	}, cfg.Form.SessionTTL)

	a := &Application{
		Config:   cfg,
		Logger:   logger,
		Registry: registry,
		Catalog:  cat,
		Sessions: sessions,
		Router:   routing.New(logger),
	}
	routes.API(a.Router, &controllers.FormController{
		Registry: registry,
		Catalog:  cat,
		Sessions: sessions,
		Logger:   logger,
		Debug:    a.IsDebug() && !a.IsProduction(),
	})
	return a, nil
}

// Run serves HTTP on APP_PORT until ctx is cancelled, sweeping idle form
// sessions in the background.
func (a *Application) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.Config.App.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go a.sweep(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server started",
			"name", a.Config.App.Name,
			"addr", "http://localhost"+srv.Addr,
			"env", a.Environment(),
			"debug", a.IsDebug(),
			"activities", len(a.Catalog.Activities))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (a *Application) sweep(ctx context.Context) {
	ttl := a.Config.Form.SessionTTL
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.Sessions.Sweep(); n > 0 {
				a.Logger.Debug("expired form sessions removed", "count", n, "live", a.Sessions.Len())
			}
		}
	}
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config.App.Env }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsDebug() bool       { return a.Config.App.Debug }
