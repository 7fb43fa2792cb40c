// Package httpapi exposes a read-only debug view of the simulation over
// HTTP, built with github.com/gin-gonic/gin. It never mutates
// internal/state directly; every request is served by calling into a
// single function supplied by the caller, which is expected to serialize
// access to the owned *state.State value the way cmd/sim's run loop
// does.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"halfearth/internal/apperr"
	"halfearth/internal/ids"
	"halfearth/internal/logger"
	"halfearth/internal/state"
)

// Snapshot is a read-only accessor the router calls to obtain a
// consistent view of the engine's current state. Callers that run the
// engine on a dedicated goroutine should implement this by sending a
// request across a channel and waiting for the reply, mirroring the
// one-goroutine-owns-the-value rule the simulation loop itself follows.
type Snapshot func() *state.State

// NewRouter builds a gin.Engine serving the debug API: GET /health,
// GET /state, GET /projects, and GET /regions.
func NewRouter(snapshot Snapshot) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", handleHealth)
	r.GET("/state", handleState(snapshot))
	r.GET("/projects", handleProjects(snapshot))
	r.GET("/projects/:id", handleProject(snapshot))
	r.GET("/regions", handleRegions(snapshot))

	return r
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func handleState(snapshot Snapshot) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := snapshot()
		c.JSON(http.StatusOK, gin.H{
			"year":               s.World.Year,
			"temperature_anomaly": s.World.TemperatureAnomaly,
			"sea_level_rise":     s.World.SeaLevelRise,
			"resources":          s.Resources,
			"feedstocks":         s.Feedstocks,
			"political_capital":  s.PoliticalCapital,
			"research_points":    s.ResearchPoints,
			"gtco2eq":            s.Co2eqGt(),
		})
	}
}

func handleProjects(snapshot Snapshot) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := snapshot()
		c.JSON(http.StatusOK, s.Projects.All())
	}
}

func handleProject(snapshot Snapshot) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := ids.ParseId(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s := snapshot()
		p, ok := s.Projects.Get(id)
		if !ok {
			writeNotFound(c, "project", c.Param("id"))
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func handleRegions(snapshot Snapshot) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := snapshot()
		c.JSON(http.StatusOK, s.Regions.All())
	}
}

func writeNotFound(c *gin.Context, resource, id string) {
	err := &apperr.NotFoundError{Resource: resource, ID: id}
	logger.Get().Warn("httpapi: not found", zap.String("resource", resource), zap.String("id", id))
	c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
}
