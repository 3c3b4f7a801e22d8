package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the site service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>hutchins-site - Swagger</title>
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

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "hutchins-site", "version": "v0.1.0" },
  "paths": {
    "/": {
      "get": { "summary": "Render the landing page", "parameters": [{ "name": "preview", "in": "query", "schema": { "type": "string" } }], "responses": { "200": { "description": "HTML page" }, "401": { "description": "invalid preview token" } } }
    },
    "/api/page": {
      "get": { "summary": "Page content as JSON", "responses": { "200": { "description": "section bundles" } } }
    },
    "/api/revalidate": {
      "post": { "summary": "Content webhook: invalidate cached content", "parameters": [{ "name": "x-sanity-webhook-secret", "in": "header", "required": true, "schema": { "type": "string" } }], "responses": { "200": { "description": "revalidated" }, "401": { "description": "invalid secret" }, "500": { "description": "revalidation failed" } } }
    },
    "/api/contact": {
      "post": { "summary": "Submit the contact form", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"},"email":{"type":"string"},"message":{"type":"string"}}}}}}, "responses": { "200": { "description": "accepted" }, "400": { "description": "missing fields or invalid email" }, "429": { "description": "rate limited" }, "500": { "description": "unexpected failure" } } }
    },
    "/api/schema": {
      "get": { "summary": "List content document types", "responses": { "200": { "description": "document types" } } }
    },
    "/api/schema/{type}": {
      "get": { "summary": "Get one document type", "parameters": [{ "name": "type", "in": "path", "required": true, "schema": { "type": "string" } }], "responses": { "200": { "description": "document type" }, "404": { "description": "unknown type" } } }
    },
    "/api/structure": {
      "get": { "summary": "Editing tool content tree", "responses": { "200": { "description": "structure items" } } }
    },
    "/sitemap.xml": { "get": { "summary": "Sitemap", "responses": { "200": { "description": "XML sitemap" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
