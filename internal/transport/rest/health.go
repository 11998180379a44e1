package rest

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/frahmantamala/worldsell/internal/paymentprovider"
	"github.com/frahmantamala/worldsell/internal/transport"
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

const dbPingTimeout = 2 * time.Second

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status     HealthStatus   `json:"status"`
	Message    string         `json:"message,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	CheckedAt  time.Time      `json:"checked_at"`
	DurationMs int64          `json:"duration_ms"`
}

type HealthHandler struct {
	*transport.BaseHandler
	catalog paymentprovider.CatalogSource
	db      *sql.DB
}

// NewHealthHandler reports on the catalog and, when db is non-nil, on postgres.
func NewHealthHandler(base *transport.BaseHandler, catalog paymentprovider.CatalogSource, db *sql.DB) *HealthHandler {
	return &HealthHandler{BaseHandler: base, catalog: catalog, db: db}
}

// Ping handles GET /ping
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components := map[string]CheckEntry{
		"catalog": h.checkCatalog(),
	}
	if h.db != nil {
		components["postgres"] = h.checkDB(r.Context())
	}

	resp := HealthResponse{
		Status:     HealthHealthy,
		CheckedAt:  time.Now(),
		Components: components,
	}
	for _, c := range components {
		if c.Status == HealthUnhealthy {
			resp.Status = HealthUnhealthy
		}
	}

	statusCode := http.StatusOK
	if resp.Status == HealthUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}
	h.WriteJSON(w, statusCode, resp)
}

func (h *HealthHandler) checkCatalog() CheckEntry {
	entry := CheckEntry{Status: HealthHealthy, CheckedAt: time.Now()}

	catalog := h.catalog.Current()
	if catalog == nil {
		entry.Status = HealthUnhealthy
		entry.Message = "catalog not loaded"
		return entry
	}

	countries, providers := catalog.Size()
	entry.Details = map[string]any{
		"countries": countries,
		"providers": providers,
		"loaded_at": h.catalog.LoadedAt(),
	}
	return entry
}

func (h *HealthHandler) checkDB(ctx context.Context) CheckEntry {
	ctx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)

	entry := CheckEntry{
		Status:     HealthHealthy,
		CheckedAt:  time.Now(),
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		entry.Status = HealthUnhealthy
		entry.Message = err.Error()
	}
	return entry
}
