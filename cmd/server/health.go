package main

import (
	"context"
	"net/http"
	"time"

	"github.com/Simplici0/windowquote/internal/events"
)

type healthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	services := make(map[string]string)
	status := "healthy"

	if err := s.db.PingContext(ctx); err != nil {
		services["database"] = "unhealthy: " + err.Error()
		status = "unhealthy"
	} else {
		services["database"] = "healthy"
	}

	if s.cache == nil {
		services["cache"] = "disabled"
	} else if err := s.cache.Health(ctx); err != nil {
		// the catalog falls back to the database
		services["cache"] = "degraded: " + err.Error()
	} else {
		services["cache"] = "healthy"
	}

	if _, off := s.events.(events.Nop); off {
		services["events"] = "disabled"
	} else {
		services["events"] = "enabled"
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	writeJSONResponse(w, code, healthResponse{Status: status, Services: services})
}
