package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"skillsharehub/internal/delivery/http/helpers"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthController struct {
	Logger  *slog.Logger
	DB      Pinger
	Timeout time.Duration
}

func NewHealthController(logger *slog.Logger, db Pinger, timeout time.Duration) *HealthController {
	return &HealthController{Logger: logger, DB: db, Timeout: timeout}
}

// Health godoc
// @Summary Liveness and database check
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status: ok"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /healthz [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), c.Timeout)
	defer cancel()
	if err := c.DB.PingContext(ctx); err != nil {
		c.Logger.ErrorContext(r.Context(), "health check failed", "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "database unavailable")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
