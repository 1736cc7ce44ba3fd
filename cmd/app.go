package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	userapp "flexible-project/application/user"
	"flexible-project/config"
	"flexible-project/infrastructure/metrics"
	"flexible-project/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type resource struct {
	name  string
	ping  func(context.Context) error
	close func(context.Context) error
}

// App holds the wired use cases and the storage resources behind them
type App struct {
	config    *config.Config
	Users     *userapp.ApplicationService
	registry  *prometheus.Registry
	metrics   *metrics.Metrics
	resources []resource
}

func (a *App) addResource(name string, ping, close func(context.Context) error) {
	a.resources = append(a.resources, resource{name: name, ping: ping, close: close})
	logger.Debug("Resource acquired", zap.String("resource", name))
}

// Config returns the configuration the app was built from
func (a *App) Config() *config.Config {
	return a.config
}

// Registry holds the storage collectors; it is empty unless metrics are
// enabled. Embedding services gather it or serve MetricsHandler.
func (a *App) Registry() *prometheus.Registry {
	return a.registry
}

// MetricsHandler serves the registry in the Prometheus exposition format
func (a *App) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})
}

// HealthCheck pings every storage resource
func (a *App) HealthCheck(ctx context.Context) error {
	for _, r := range a.resources {
		if err := r.ping(ctx); err != nil {
			return fmt.Errorf("%s unhealthy: %w", r.name, err)
		}
	}
	return nil
}

// Close releases resources in reverse order of acquisition
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.resources) - 1; i >= 0; i-- {
		r := a.resources[i]
		if err := r.close(ctx); err != nil {
			logger.Error("Failed to close resource", zap.String("resource", r.name), zap.Error(err))
			errs = append(errs, fmt.Errorf("close %s: %w", r.name, err))
		}
	}
	a.resources = nil
	_ = logger.Sync()
	return errors.Join(errs...)
}
