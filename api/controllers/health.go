package controllers

import (
	"context"
	"net/http"

	"github.com/quizhubhq/quizhub-backend/api/responses"
	errs "github.com/quizhubhq/quizhub-backend/pkg/errors"
	"github.com/quizhubhq/quizhub-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthController serves liveness and readiness probes.
type HealthController struct {
	db    pinger
	redis pinger
	log   *logger.Logger
}

func NewHealthController(db, redis pinger, log *logger.Logger) *HealthController {
	return &HealthController{db: db, redis: redis, log: log}
}

// Live reports process liveness.
func (c *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready verifies the backing stores are reachable.
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": "ok", "redis": "ok"}
	healthy := true

	if err := c.db.Ping(r.Context()); err != nil {
		checks["database"] = "unreachable"
		healthy = false
	}
	if c.redis != nil {
		if err := c.redis.Ping(r.Context()); err != nil {
			checks["redis"] = "unreachable"
			healthy = false
		}
	}

	if !healthy {
		responses.WriteError(w, r, c.log, errs.New(errs.CodeDependency, "a backing store is unreachable").WithDetails(checks))
		return
	}
	responses.WriteSuccess(w, http.StatusOK, checks)
}
