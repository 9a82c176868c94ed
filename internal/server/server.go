// Package server wires the REST handlers into a chi router and runs the
// HTTP server.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-control/internal/auth"
	"github.com/ukydev/fleet-control/internal/handlers"
	"github.com/ukydev/fleet-control/internal/metrics"
	"github.com/ukydev/fleet-control/internal/middleware"
	"github.com/ukydev/fleet-control/internal/models"
)

// Handlers are the REST resources mounted under /api.
type Handlers struct {
	Vehicles    *handlers.VehicleHandler
	Fuel        *handlers.FuelHandler
	Maintenance *handlers.MaintenanceHandler
	Technicians *handlers.TechnicianHandler
	Attachments *handlers.AttachmentHandler
	Reports     *handlers.ReportHandler
	Exports     *handlers.ExportHandler
	Profile     *handlers.ProfileHandler
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	RateLimitRPS    float64
	RateLimitBurst  int
	// TrustProxy takes the client address from X-Forwarded-For or X-Real-IP.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxy      bool
	Auth            *auth.Service
	Handlers        Handlers
}

type WebAPI struct {
	router  *chi.Mux
	server  *http.Server
	limiter *middleware.RateLimitMiddleware
	timeout time.Duration
}

func NewWebAPI(cfg Config) *WebAPI {
	limiter := middleware.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	router := NewRouter(cfg, limiter)

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebAPI{
		router:  router,
		limiter: limiter,
		timeout: timeout,
		server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (w *WebAPI) Handler() http.Handler {
	return w.router
}

// NewRouter builds the route table.
func NewRouter(cfg Config, limiter *middleware.RateLimitMiddleware) *chi.Mux {
	h := cfg.Handlers
	am := middleware.NewAuthMiddleware(cfg.Auth)
	can := am.RequirePermission

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Instrument)
	r.Use(limiter.RateLimit)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(am.Authenticate)
		view := r.With(can(models.ActionViewReports))

		view.Get("/me", h.Profile.GetProfile)

		r.Route("/vehicles", func(r chi.Router) {
			manage := r.With(can(models.ActionManageVehicles))
			view := r.With(can(models.ActionViewReports))
			view.Get("/", h.Vehicles.List)
			manage.Post("/", h.Vehicles.Create)
			view.Get("/{id}", h.Vehicles.Get)
			manage.Put("/{id}", h.Vehicles.Update)
			manage.Delete("/{id}", h.Vehicles.Delete)
			manage.Post("/{id}/oil-change", h.Vehicles.RecordOilChange)
			view.Get("/{id}/oil-status", h.Vehicles.OilStatus)
			manage.Post("/{id}/ipva/pay", h.Vehicles.PayIPVA)
			view.Get("/{id}/ipva-status", h.Vehicles.IPVAStatus)
		})

		r.Route("/fuel-entries", func(r chi.Router) {
			manage := r.With(can(models.ActionManageFuel))
			r.With(can(models.ActionViewReports)).Get("/", h.Fuel.List)
			manage.Post("/", h.Fuel.Create)
			manage.Put("/{id}", h.Fuel.Update)
			manage.Delete("/{id}", h.Fuel.Delete)
		})

		r.Route("/maintenance", func(r chi.Router) {
			manage := r.With(can(models.ActionManageMaintenance))
			view := r.With(can(models.ActionViewReports))
			view.Get("/", h.Maintenance.List)
			manage.Post("/", h.Maintenance.Create)
			view.Get("/{id}", h.Maintenance.Get)
			manage.Put("/{id}", h.Maintenance.Update)
			manage.Delete("/{id}", h.Maintenance.Delete)
		})

		r.Route("/cities", func(r chi.Router) {
			manage := r.With(can(models.ActionManageTechnicians))
			r.With(can(models.ActionViewReports)).Get("/", h.Technicians.ListCities)
			manage.Post("/", h.Technicians.CreateCity)
			manage.Put("/{id}", h.Technicians.UpdateCity)
			manage.Delete("/{id}", h.Technicians.DeleteCity)
		})

		r.Route("/technician-entries", func(r chi.Router) {
			manage := r.With(can(models.ActionManageTechnicians))
			r.With(can(models.ActionViewReports)).Get("/", h.Technicians.ListEntries)
			manage.Post("/", h.Technicians.CreateEntry)
			manage.Put("/{id}", h.Technicians.UpdateEntry)
			manage.Delete("/{id}", h.Technicians.DeleteEntry)
		})

		view.Get("/settings/technician", h.Technicians.GetSettings)
		r.With(can(models.ActionManageSettings)).Put("/settings/technician", h.Technicians.UpdateSettings)

		r.Route("/attachments", func(r chi.Router) {
			manage := r.With(can(models.ActionManageAttachments))
			view := r.With(can(models.ActionViewReports))
			view.Get("/", h.Attachments.List)
			manage.Post("/", h.Attachments.Create)
			view.Get("/{id}/download", h.Attachments.Download)
			manage.Delete("/{id}", h.Attachments.Delete)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Use(can(models.ActionViewReports))
			r.Get("/fuel/monthly", h.Reports.FuelMonthly)
			r.Get("/fuel/consumption", h.Reports.FuelConsumption)
			r.Get("/fuel/fleet", h.Reports.FuelFleet)
			r.Get("/ranking", h.Reports.Ranking)
			r.Get("/technicians", h.Reports.Technicians)
			r.Get("/maintenance", h.Reports.Maintenance)
			r.Get("/dashboard", h.Reports.Dashboard)
		})

		r.Route("/exports", func(r chi.Router) {
			r.Use(can(models.ActionViewReports))
			r.Get("/fuel.csv", h.Exports.FuelCSV)
			r.Get("/technicians.csv", h.Exports.TechniciansCSV)
			r.Get("/maintenance.xlsx", h.Exports.MaintenanceXLSX)
			r.Get("/fleet.xlsx", h.Exports.FleetXLSX)
		})
	})

	return r
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully.
func (w *WebAPI) Start(ctx context.Context) error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	stopCleanup := make(chan struct{})
	defer close(stopCleanup)
	go w.limiter.RunCleanup(time.Minute, stopCleanup)

	go func() {
		log.WithField("addr", w.server.Addr).Info("Starting HTTP server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-shutdown:
		log.WithField("signal", sig.String()).Info("Shutdown initiated")
	case <-ctx.Done():
		log.Info("Shutdown initiated")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	if err := w.server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
		return w.server.Close()
	}
	log.Info("Server stopped")
	return nil
}
