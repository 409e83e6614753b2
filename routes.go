package main

import (
	"context"
	"net/http"
	"time"

	"crbklasemen/pkg/rules"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerValidators adds the enum tags to gin's binding validator.
func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return rules.Register(v)
}

func setupRoutes(r *gin.Engine) {
	r.GET("/healthz", healthHandler)
	r.GET("/metrics", gin.WrapH(metricsHandler()))
	r.POST("/login", loginHandler)
	r.POST("/refresh", refreshHandler)
	r.POST("/logout", logoutHandler)

	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/me", meHandler)
	authGroup.GET("/periods", periodsHandler)
	authGroup.GET("/dashboard/stats", dashboardStatsHandler)

	authGroup.GET("/klasemen", listKlasemenHandler)
	authGroup.POST("/klasemen", createKlasemenHandler)
	authGroup.GET("/klasemen/export", exportKlasemenHandler)
	authGroup.POST("/klasemen/import", importKlasemenHandler)
	authGroup.PUT("/klasemen/:id", updateKlasemenHandler)
	authGroup.DELETE("/klasemen/:id", deleteKlasemenHandler)

	authGroup.GET("/hadiah", listHadiahHandler)
	authGroup.POST("/hadiah", createHadiahHandler)
	authGroup.PUT("/hadiah/:id", updateHadiahHandler)
	authGroup.PATCH("/hadiah/:id/visibility", toggleHadiahVisibilityHandler)
	authGroup.DELETE("/hadiah/:id", deleteHadiahHandler)

	authGroup.GET("/events", listEventsHandler)
	authGroup.POST("/events", createEventHandler)
	authGroup.PUT("/events/:id", updateEventHandler)
	authGroup.DELETE("/events/:id", deleteEventHandler)
	authGroup.POST("/events/:id/send", sendEventHandler)

	authGroup.GET("/admins", listAdminsHandler)
	authGroup.POST("/admins", createAdminHandler)
	authGroup.PUT("/admins/:id", updateAdminHandler)
	authGroup.DELETE("/admins/:id", deleteAdminHandler)
}

func healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 800*time.Millisecond)
	defer cancel()
	if err := pingDB(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
