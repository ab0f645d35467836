package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeffbulltech/cosmere-api/internal/shared/response"
	"github.com/jeffbulltech/cosmere-api/pkg/container"
)

func setupHealthRoutes(rg *gin.RouterGroup, app *container.Container) {
	rg.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{
			"status":  "ok",
			"name":    app.Config.App.Name,
			"version": app.Config.App.Version,
		})
	})

	rg.GET("/health/db", func(c *gin.Context) {
		if err := app.DB.HealthCheck(c.Request.Context()); err != nil {
			response.ErrorResponse(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "database is unreachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"database": "ok"})
	})

	rg.GET("/health/detailed", func(c *gin.Context) {
		ctx := c.Request.Context()
		checks := gin.H{}
		healthy := true

		if err := app.DB.HealthCheck(ctx); err != nil {
			checks["database"] = "unreachable"
			healthy = false
		} else {
			checks["database"] = "ok"
		}

		if app.Cache == nil {
			checks["cache"] = "disabled"
		} else if err := app.Cache.Ping(ctx); err != nil {
			checks["cache"] = "unreachable"
		} else {
			checks["cache"] = "ok"
		}

		if app.Engine == nil {
			checks["search"] = "disabled"
		} else if err := app.Engine.Ping(ctx); err != nil {
			checks["search"] = "unreachable"
		} else {
			checks["search"] = "ok"
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, response.Response{
			Success: healthy,
			Data: gin.H{
				"status": checks,
				"name":   app.Config.App.Name,
			},
		})
	})
}
