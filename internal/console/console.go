// Package console serves the static landing page describing the API.
package console

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

// ConsoleService handles the landing page
type ConsoleService struct {
	Logger *zap.Logger
}

// NewConsoleService creates a new console service
func NewConsoleService(logger *zap.Logger) *ConsoleService {
	return &ConsoleService{
		Logger: logger,
	}
}

// RegisterRoutes wires the console routes
func (s *ConsoleService) RegisterRoutes(router *gin.Engine) {
	router.GET("/", s.Index)
}

// Index serves the embedded landing page
func (s *ConsoleService) Index(c *gin.Context) {
	data, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		s.Logger.Error("Failed to read landing page", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Landing page unavailable"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}
