package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/deppfellow/mongo-starter/internal/server"
	"github.com/labstack/echo/v4"
)

// OpenAPIDocument is the HTML page rendering static/openapi.json.
const OpenAPIDocument = "static/openapi.html"

// OpenAPIHandler serves the API reference UI.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI serves the docs page uncached so edits show up on reload.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := os.ReadFile(OpenAPIDocument)
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(http.StatusOK, page)
}
