package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"friendshavestuff-backend/internal/shared/middleware"
	"friendshavestuff-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupItemRoutes(v1, c)
		setupRequestRoutes(v1, c)
		setupCommentRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/session", c.UserHandler.CreateSession)
		auth.GET("/me", middleware.AuthMiddleware(c.JWTManager), c.UserHandler.Me)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("", c.UserHandler.ListUsers)
		users.PUT("/me", c.UserHandler.UpdateProfile)
		users.GET("/:id", c.UserHandler.GetUser)

		users.POST("", middleware.AdminMiddleware(), c.UserHandler.InviteUser)
		users.DELETE("/:id", middleware.AdminMiddleware(), c.UserHandler.RemoveUser)
	}
}

func setupItemRoutes(v1 *gin.RouterGroup, c *container.Container) {
	items := v1.Group("/items")
	{
		// Browsing is open; anything that writes requires a session.
		items.GET("", c.ItemHandler.ListItems)
		items.GET("/categories", c.ItemHandler.ListCategories)
		items.GET("/:id", c.ItemHandler.GetItem)
		items.GET("/:id/comments", c.CommentHandler.ListComments)

		authed := items.Group("")
		authed.Use(middleware.AuthMiddleware(c.JWTManager))
		{
			authed.POST("", c.ItemHandler.CreateItem)
			authed.PUT("/:id", c.ItemHandler.UpdateItem)
			authed.PUT("/:id/blackouts", c.ItemHandler.SetBlackouts)
			authed.POST("/:id/images", c.ItemHandler.UploadImages)
			authed.DELETE("/:id", c.ItemHandler.DeleteItem)

			authed.GET("/:id/requests", c.RequestHandler.GetItemRequests)
			authed.POST("/:id/comments", c.CommentHandler.CreateComment)
		}
	}
}

func setupRequestRoutes(v1 *gin.RouterGroup, c *container.Container) {
	requests := v1.Group("/requests")
	requests.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		requests.POST("", c.RequestHandler.CreateRequest)
		requests.GET("", c.RequestHandler.ListMine)
		requests.GET("/incoming", c.RequestHandler.ListIncoming)
		requests.GET("/:id", c.RequestHandler.GetRequest)
		requests.POST("/:id/approve", c.RequestHandler.Approve)
		requests.POST("/:id/decline", c.RequestHandler.Decline)
		requests.POST("/:id/return", c.RequestHandler.MarkReturned)
	}
}

func setupCommentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	comments := v1.Group("/comments")
	comments.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		comments.DELETE("/:id", c.CommentHandler.DeleteComment)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  gin.H{},
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
			health["status"] = "degraded"
		} else if err := appCtx.Cache.Ping(c.Request.Context()); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		status := 200
		if health["status"] != "ok" {
			status = 503
		}
		c.JSON(status, health)
	}
}
