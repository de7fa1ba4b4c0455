package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// serviceName is reported by the root and health routes.
const serviceName = "splitledger"

// getHome godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"service": serviceName, "apiBasePath": apiBasePath})
}

func getHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// registerRootRoutes registers the unauthenticated service routes.
func registerRootRoutes(r *gin.Engine) {
	r.GET("/", getHome)
	r.GET("/health", getHealth)
}
