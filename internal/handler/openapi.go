package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/docs"
)

// OpenAPIDoc serves the generated OpenAPI document. The document is rendered
// once when the route is registered.
func OpenAPIDoc() gin.HandlerFunc {
	doc := []byte(docs.SwaggerInfo.ReadDoc())
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", doc)
	}
}
