package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pricing-service/internal/circuitbreaker"
)

const readinessTimeout = 2 * time.Second

// HealthChecker probes one dependency.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// CheckerFunc adapts a ping function to HealthChecker.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Check(ctx context.Context) error {
	return f(ctx)
}

// StatsFunc reports counters that describe a component without affecting
// readiness.
type StatsFunc func() map[string]int64

// ReadinessResponse is the /readyz body. Checks maps a dependency to "ok"
// or its error, and "<name>_circuit" to the breaker state. Stats holds
// "<name>_<counter>" values from registered StatsFuncs.
type ReadinessResponse struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks"`
	Stats  map[string]int64  `json:"stats,omitempty"`
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	checkers map[string]HealthChecker
	breakers map[string]*circuitbreaker.CircuitBreaker
	stats    map[string]StatsFunc
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers: make(map[string]HealthChecker),
		breakers: make(map[string]*circuitbreaker.CircuitBreaker),
		stats:    make(map[string]StatsFunc),
	}
}

// RegisterChecker adds a dependency pinged by /readyz.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// RegisterCircuitBreaker reports cb on /readyz; an open breaker fails readiness.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	h.breakers[name] = cb
}

// RegisterStats reports fn's counters on /readyz under name.
func (h *HealthHandler) RegisterStats(name string, fn StatsFunc) {
	h.stats[name] = fn
}

func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles GET /healthz.
// @Summary     Liveness probe
// @Description Returns OK if the process is running.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. Dependencies are pinged in parallel under
// a shared deadline.
// @Summary     Readiness probe
// @Description Pings MongoDB and Redis when configured and reports circuit breaker state. An open breaker marks the service degraded.
// @Tags        Health
// @Produce     json
// @Success     200 {object} ReadinessResponse "Service is ready"
// @Failure     503 {object} ReadinessResponse "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	resp := ReadinessResponse{Status: "ok", Checks: make(map[string]string)}
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	report := func(name, result string) {
		mu.Lock()
		defer mu.Unlock()
		resp.Checks[name] = result
		if result != "ok" {
			resp.Status = "degraded"
		}
	}

	for name, checker := range h.checkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := checker.Check(ctx); err != nil {
				report(name, err.Error())
				return
			}
			report(name, "ok")
		}()
	}
	wg.Wait()

	for name, cb := range h.breakers {
		stats := cb.GetStats()
		resp.Checks[name+"_circuit"] = stats.State
		if !stats.IsHealthy {
			resp.Status = "degraded"
		}
	}

	if len(resp.Checks) == 0 {
		resp.Checks["service"] = "ok"
	}

	for name, fn := range h.stats {
		for k, v := range fn() {
			if resp.Stats == nil {
				resp.Stats = make(map[string]int64)
			}
			resp.Stats[name+"_"+k] = v
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
