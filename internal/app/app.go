// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pricing-service/config"
	"github.com/guttosm/pricing-service/internal/http"
)

// App is the wired service: the router plus the backends that must be
// released on shutdown.
type App struct {
	Router  *gin.Engine
	closers []func(context.Context) error
}

// InitializeApp creates and wires all application dependencies.
// Backends that fail to connect are logged and left out.
func InitializeApp(cfg config.Config) *App {
	// Initialize logger first (needed by other components)
	InitializeLogger(cfg.Log)

	serviceComponents := InitializeServices(cfg)
	dbComponents := InitializeDatabase(cfg.Database)
	idempotencyComponents := InitializeIdempotency(cfg.Idempotency)

	routerComponents := InitializeRouter(serviceComponents, dbComponents, idempotencyComponents, cfg)

	app := &App{
		Router:  http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config),
		closers: []func(context.Context) error{serviceComponents.Close},
	}
	if dbComponents != nil {
		app.closers = append(app.closers, dbComponents.Close)
	}
	app.closers = append(app.closers, idempotencyComponents.Close, routerComponents.Close)

	return app
}

// Close releases backends in reverse order of initialization.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
