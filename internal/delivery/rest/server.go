// Package rest exposes the blog services over HTTP with echo.
package rest

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"blog-service/internal/application/interfaces"
	"blog-service/internal/infrastructure"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const idempotencyHeader = "Idempotency-Key"

type Options struct {
	HandlerTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	// ClientLimiter is optional; nil disables per-client limiting.
	ClientLimiter *infrastructure.RateLimiter
}

type Server struct {
	echo    *echo.Echo
	users   interfaces.UserService
	posts   interfaces.PostService
	metrics *Metrics
}

func NewServer(users interfaces.UserService, posts interfaces.PostService, opts Options) *Server {
	if opts.HandlerTimeout <= 0 {
		opts.HandlerTimeout = 5 * time.Second
	}
	if opts.RateLimitRPS <= 0 {
		opts.RateLimitRPS = 100
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 50
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:    e,
		users:   users,
		posts:   posts,
		metrics: newMetrics(),
	}
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger())
	e.Use(globalRateLimit(rate.NewLimiter(rate.Limit(opts.RateLimitRPS), opts.RateLimitBurst)))
	if opts.ClientLimiter != nil {
		e.Use(clientRateLimit(opts.ClientLimiter))
	}
	e.Use(handlerTimeout(opts.HandlerTimeout))
	e.Use(s.trackMetrics)

	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/health", s.health)

	api := s.echo.Group("/api")

	users := api.Group("/users")
	users.POST("", s.createUser)
	users.GET("", s.listUsers)
	users.GET("/:id", s.getUser)
	users.PATCH("/:id", s.updateUser)
	users.DELETE("/:id", s.deleteUser)
	users.GET("/:id/posts", s.listUserPosts)

	posts := api.Group("/posts")
	posts.POST("", s.createPost)
	posts.GET("", s.listPosts)
	posts.GET("/:id", s.getPost)
	posts.PUT("/:id", s.updatePost)
	posts.PATCH("/:id", s.patchPost)
	posts.DELETE("/:id", s.deletePost)

	api.GET("/tags", s.listTags)
}

// Handler returns the router for use with httptest or a custom http.Server.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start serves on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	log.Printf("Blog service listening on %s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) health(c echo.Context) error {
	return sendJSONResponse(c, map[string]interface{}{
		"status":  "ok",
		"metrics": s.metrics.Snapshot(),
	}, http.StatusOK)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id "+strconv.Quote(c.Param("id")))
	}
	return uint(id), nil
}
