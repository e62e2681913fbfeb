package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/kyiku/shapefill/internal/config"
	"github.com/kyiku/shapefill/internal/handler"
	"github.com/kyiku/shapefill/internal/hub"
	appmw "github.com/kyiku/shapefill/internal/middleware"
	"github.com/kyiku/shapefill/internal/placement"
	"github.com/kyiku/shapefill/internal/selection"
	"github.com/kyiku/shapefill/internal/session"
	"github.com/kyiku/shapefill/internal/websocket"
)

func main() {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)

	cfg, err := config.LoadConfig()
	if err != nil {
		e.Logger.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		e.Logger.Fatalf("invalid config: %v", err)
	}

	// Middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			e.Logger.Infof("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(appmw.CORSMiddleware(cfg.AllowedOrigin))

	// Initialize dependencies
	policy, err := selection.ForSet(cfg.ShapeSet)
	if err != nil {
		e.Logger.Fatalf("invalid shape set: %v", err)
	}

	engine := placement.NewEngine(cfg.Canvas(), cfg.Dimensions(), placement.NewRandSampler(cfg.Seed))
	engine.SetRetryLimit(cfg.RetryLimit)

	sessionStore := session.NewSessionStoreWithExpiry(engine, policy, cfg.SessionExpiry)
	renderHub := hub.NewHub()
	sessionStore.SetNotifier(renderHub)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(sessionStore)
	canvasHandler := handler.NewCanvasHandler(sessionStore)
	wsHandler := handler.NewWebSocketHandler(sessionStore, renderHub, websocket.NewUpgrader(cfg.AllowedOrigin))

	// Health check (root level for ALB)
	e.GET("/health", healthHandler.Check)

	// WebSocket endpoint
	e.GET("/ws", wsHandler.Connect)

	// API routes
	api := e.Group("/api")
	api.GET("/health", healthHandler.Check)

	api.POST("/canvas", canvasHandler.Create)
	api.GET("/canvas", canvasHandler.Snapshot)
	api.POST("/canvas/click", canvasHandler.Click, appmw.RateLimitMiddleware(cfg.RateLimit, cfg.RateLimitWindow))
	api.POST("/canvas/reset", canvasHandler.Reset)

	// Session count (debug)
	api.GET("/sessions/status", healthHandler.SessionStatus)

	for _, r := range e.Routes() {
		e.Logger.Infof("route %-6s %s", r.Method, r.Path)
	}

	e.Logger.Infof("canvas %.0fx%.0f, shape set %s, retry limit %d",
		cfg.CanvasWidth, cfg.CanvasHeight, cfg.ShapeSet, cfg.RetryLimit)
	e.Logger.Infof("starting server on :%s", cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
