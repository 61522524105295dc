package handler

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static/signature-builder.html
var signatureBuilderPage []byte

func Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", signatureBuilderPage)
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
