package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/shared/middleware"
	"library-catalog/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorPages(),
	)

	router.SetHTMLTemplate(c.Templates)

	router.GET("/", func(ctx *gin.Context) {
		ctx.Redirect(http.StatusFound, "/authors")
	})
	router.GET("/health", healthCheckHandler(c))

	c.AuthorHandler.RegisterRoutes(router)

	return router
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": err.Error(),
			})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"version":  c.Config.App.Version,
			"database": "ok",
		})
	}
}
