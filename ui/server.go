package ui

import (
	"encoding/json"
	"errors"
	"net/http"

	"goregress/app"
	"goregress/domain/core"
	"goregress/domain/regression"
	"goregress/internal"

	"github.com/gin-gonic/gin"
)

// Server exposes the regression pipeline over HTTP.
type Server struct {
	router  *gin.Engine
	service *app.RegressionService
	log     *internal.Logger
}

// NewServer creates a new web server instance
func NewServer(service *app.RegressionService, log *internal.Logger) *Server {
	s := &Server{
		router:  gin.New(),
		service: service,
		log:     log,
	}
	s.router.Use(gin.Recovery())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api/projects/:projectID")
	api.POST("/regressions", s.handleCreateRegression)
	api.GET("/regressions/:regressionID", s.handleGetRegression)
	api.GET("/regressions/:regressionID/report", s.handleGetReport)
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the server on the given address
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCreateRegression(c *gin.Context) {
	projectID := core.ID(c.Param("projectID"))

	var spec app.RequestSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.String(http.StatusBadRequest, "Not passed required parameters")
		return
	}

	result, err := s.service.RunFromSpec(c.Request.Context(), projectID, spec)
	if err != nil {
		if errors.Is(err, core.ErrMissingParameters) {
			c.String(http.StatusBadRequest, "Not passed required parameters")
			return
		}
		if core.IsNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if core.IsDataError(err) || errors.Is(err, core.ErrUnsupportedRegression) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.log.Error("regression run failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "regression failed"})
		return
	}

	rec, err := s.service.SaveResult(c.Request.Context(), projectID, spec, result)
	if err != nil {
		s.log.Error("failed to persist regression result: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store result"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": rec.ID, "result": result})
}

func (s *Server) handleGetRegression(c *gin.Context) {
	projectID := core.ID(c.Param("projectID"))
	id := core.ID(c.Param("regressionID"))

	rec, err := s.service.GetResult(c.Request.Context(), projectID, id)
	if err != nil {
		if core.IsNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		s.log.Error("failed to load regression %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load result"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleGetReport(c *gin.Context) {
	projectID := core.ID(c.Param("projectID"))
	id := core.ID(c.Param("regressionID"))

	rec, err := s.service.GetResult(c.Request.Context(), projectID, id)
	if err != nil {
		if core.IsNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		s.log.Error("failed to load regression %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load result"})
		return
	}

	var result regression.FinalResult
	if err := json.Unmarshal(rec.Result, &result); err != nil {
		s.log.Error("stored result %s is not decodable: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stored result is corrupt"})
		return
	}

	html := RenderHTML(BuildMarkdown(&result))
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
