package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hutchinsdata/site/internal/schema"
)

// TypeView is a document type as exposed by the schema API.
type TypeView struct {
	schema.DocumentType
	Singleton bool     `json:"singleton"`
	Actions   []string `json:"actions"`
}

type SchemaHandler struct {
	reg *schema.Registry
}

func NewSchemaHandler(reg *schema.Registry) *SchemaHandler {
	return &SchemaHandler{reg: reg}
}

func (h *SchemaHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/api/schema", h.List)
	rg.GET("/api/schema/:type", h.Get)
	rg.GET("/api/structure", h.Structure)
}

func (h *SchemaHandler) view(t schema.DocumentType) TypeView {
	return TypeView{
		DocumentType: t,
		Singleton:    h.reg.IsSingleton(t.Name),
		Actions:      h.reg.DocumentActions(t.Name, schema.AllActions),
	}
}

func (h *SchemaHandler) List(c *gin.Context) {
	all := h.reg.All()
	out := make([]TypeView, 0, len(all))
	for _, t := range all {
		out = append(out, h.view(t))
	}
	c.JSON(http.StatusOK, gin.H{"types": out, "templates": h.reg.Templates(h.reg.Names())})
}

func (h *SchemaHandler) Get(c *gin.Context) {
	t, ok := h.reg.Get(c.Param("type"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown document type"})
		return
	}
	c.JSON(http.StatusOK, h.view(t))
}

// Structure returns the editing tool's content tree.
func (h *SchemaHandler) Structure(c *gin.Context) {
	c.JSON(http.StatusOK, schema.Structure())
}
