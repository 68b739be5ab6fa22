package api

import (
	"database/sql"
	"log"
	stdhttp "net/http"
	"time"

	intconfig "fwd/internal/config"
	h "fwd/internal/http/handlers"
	"fwd/internal/http/middleware"
	"fwd/internal/notify"
	"fwd/internal/repositories"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps carries everything the router wires into handlers. Nothing here is
// global; tests build a Deps around a mock DB and get a full engine.
type Deps struct {
	Env      intconfig.Env
	DB       *sql.DB
	Notifier notify.Notifier
}

func NewRouter(deps Deps) *gin.Engine {
	stepRepo := repositories.StepRepository{DB: deps.DB}
	tripRepo := repositories.TripRepository{DB: deps.DB}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}

	system := h.SystemHandler{DB: deps.DB}
	auth := h.AuthHandler{DB: deps.DB, JWTSecret: []byte(deps.Env.JWTSecret)}
	steps := h.StepHandler{StepRepo: stepRepo, TripRepo: tripRepo}
	trips := h.TripHandler{StepRepo: stepRepo, TripRepo: tripRepo}
	share := h.ShareHandler{StepRepo: stepRepo, TripRepo: tripRepo}
	itinerary := h.ItineraryHandler{StepRepo: stepRepo, TripRepo: tripRepo}
	intake := h.IntakeHandler{
		DB:          deps.DB,
		StepRepo:    stepRepo,
		TripRepo:    tripRepo,
		Notifier:    notifier,
		IntakeToken: deps.Env.IntakeToken,
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.Env.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Intake-Token"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", system.Health)
		api.GET("/db-check", system.DBCheck)

		authGroup := api.Group("/auth")
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/register", auth.Register)

		// Extraction pipeline callback; token check happens in the handler.
		api.POST("/intake/email", intake.Email)

		// Public share view, no auth.
		api.GET("/share/:token", share.Get)

		authed := api.Group("")
		authed.Use(middleware.Auth([]byte(deps.Env.JWTSecret)))
		{
			stepsGroup := authed.Group("/steps")
			stepsGroup.GET("", steps.List)
			stepsGroup.GET("/:id", steps.Get)
			stepsGroup.POST("", steps.Create)
			stepsGroup.PUT("/:id", steps.Update)
			stepsGroup.DELETE("/:id", steps.Delete)
			stepsGroup.POST("/:id/move", steps.Move)

			tripsGroup := authed.Group("/trips")
			tripsGroup.GET("", trips.List)
			tripsGroup.POST("/regroup", trips.Regroup)
			tripsGroup.GET("/:id", trips.Get)
			tripsGroup.DELETE("/:id", trips.Delete)
			tripsGroup.POST("/:id/share-token", trips.RegenerateShareToken)
			tripsGroup.PUT("/:id/public", trips.SetPublic)
			tripsGroup.GET("/:id/itinerary", itinerary.Get)
		}
	}

	return r
}
