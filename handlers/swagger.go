package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>profilehub Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document for the profile API.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "profilehub", "version": "v0.1.0" },
  "paths": {
    "/api": {
      "get": { "summary": "API banner", "responses": { "200": { "description": "welcome message" } } }
    },
    "/api/profiles": {
      "post": {
        "summary": "Create a user profile",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["name","email"],"properties":{"name":{"type":"string"},"email":{"type":"string"},"bio":{"type":"string"},"avatar":{"type":"string"}}}}}},
        "responses": { "200": { "description": "created profile" } }
      },
      "get": {
        "summary": "List profiles (newest first)",
        "parameters": [
          { "name": "skip", "in": "query", "schema": { "type": "integer", "default": 0 } },
          { "name": "limit", "in": "query", "schema": { "type": "integer", "default": 10 } }
        ],
        "responses": { "200": { "description": "page of profiles" } }
      }
    },
    "/api/profiles/{id}": {
      "get": { "summary": "Get a profile", "responses": { "200": { "description": "profile" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a profile", "responses": { "200": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/api/profiles/{id}/content": {
      "post": {
        "summary": "Attach text or file content to a profile",
        "requestBody": { "content": { "multipart/form-data": { "schema": {"type":"object","required":["title","content_type"],"properties":{"title":{"type":"string"},"content_type":{"type":"string"},"text_content":{"type":"string"},"file":{"type":"string","format":"binary"}}}}}},
        "responses": { "200": { "description": "created content item" }, "404": { "description": "profile not found" } }
      }
    },
    "/api/upload": {
      "post": { "summary": "Encode a file without persisting it", "responses": { "200": { "description": "filename, detected type, size, base64 content" } } }
    },
    "/api/status": {
      "post": { "summary": "Record a status check", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["client_name"],"properties":{"client_name":{"type":"string"}}}}}}, "responses": { "200": { "description": "status check" } } },
      "get": { "summary": "List status checks (up to 1000)", "responses": { "200": { "description": "status checks" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
