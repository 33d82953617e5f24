package httpserver

import (
	"context"
	"errors"
	"time"

	"magazine-crm/internal/domain"
	"magazine-crm/internal/notify"
	authsvc "magazine-crm/internal/service/auth"
	customersvc "magazine-crm/internal/service/customer"
	profilesvc "magazine-crm/internal/service/profile"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type customerService interface {
	Add(ctx context.Context, in customersvc.AddInput) (*domain.Customer, error)
	List(ctx context.Context, nameFilter string) ([]domain.Customer, error)
	Dashboard(ctx context.Context) (customersvc.DashboardStats, error)
	MagazineDashboard(ctx context.Context) (customersvc.MagazineStats, error)
	GraphData(ctx context.Context) ([]customersvc.MonthCount, error)
	Delete(ctx context.Context, id int) (*domain.Customer, error)
	Edit(ctx context.Context, id int, in customersvc.EditInput) (*domain.Customer, error)
	Renew(ctx context.Context, id int) (*domain.Customer, error)
}

type profileService interface {
	Get(ctx context.Context) (*domain.Profile, error)
	Update(ctx context.Context, in profilesvc.UpdateInput) (*domain.Profile, error)
}

type authService interface {
	Login(username, password string) (*authsvc.LoginAction, error)
	ChangePassword(current, next string) error
}

type notificationFeed interface {
	List(ctx context.Context) ([]domain.Notification, error)
}

// ListenerHub registers push-channel connections.
type ListenerHub interface {
	Connect(l notify.Listener) string
	Disconnect(id string)
	Close()
}

// ReadinessChecker backs the readiness endpoint.
type ReadinessChecker interface {
	Ping(ctx context.Context) error
}

// Deps groups the services the router needs.
type Deps struct {
	CustomerSvc    customerService
	ProfileSvc     profileService
	AuthSvc        authService
	Notifications  notificationFeed
	Hub            ListenerHub
	Store          ReadinessChecker
	CORSOrigins    []string
	WSWriteTimeout time.Duration
}

func (d Deps) validate() error {
	switch {
	case d.CustomerSvc == nil:
		return errors.New("customer service is required")
	case d.ProfileSvc == nil:
		return errors.New("profile service is required")
	case d.AuthSvc == nil:
		return errors.New("auth service is required")
	case d.Notifications == nil:
		return errors.New("notification feed is required")
	case d.Hub == nil:
		return errors.New("listener hub is required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger zerolog.Logger, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if deps.WSWriteTimeout <= 0 {
		deps.WSWriteTimeout = 10 * time.Second
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery(), corsMiddleware(deps.CORSOrigins))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Store))
	router.GET("/ws", pushChannelHandler(deps.Hub, logger, deps.WSWriteTimeout))

	api := router.Group("/api")

	customers := api.Group("/customer")
	customers.POST("/add-customer", addCustomerHandler(deps.CustomerSvc, logger))
	customers.GET("/get-customer", listCustomersHandler(deps.CustomerSvc, logger))
	customers.GET("/customer-dashboard", customerDashboardHandler(deps.CustomerSvc, logger))
	customers.GET("/magazine-dashboard", magazineDashboardHandler(deps.CustomerSvc, logger))
	customers.GET("/magazine-graph-data", graphDataHandler(deps.CustomerSvc, logger))
	customers.DELETE("/delete-customer/:id", deleteCustomerHandler(deps.CustomerSvc, logger))
	customers.PUT("/edit-customer/:id", editCustomerHandler(deps.CustomerSvc, logger))
	customers.PUT("/renew-magazine/:id", renewMagazineHandler(deps.CustomerSvc, logger))

	profile := api.Group("/profile")
	profile.GET("/get-profile", getProfileHandler(deps.ProfileSvc, logger))
	profile.PUT("/update-profile", updateProfileHandler(deps.ProfileSvc, logger))

	api.GET("/notifications/get-notifications", listNotificationsHandler(deps.Notifications, logger))

	auth := api.Group("/auth")
	auth.POST("/login", loginHandler(deps.AuthSvc, logger))
	auth.PUT("/change-password", changePasswordHandler(deps.AuthSvc, logger))

	return router, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := logger.Info()
		if status >= 500 {
			ev = logger.Error()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client", c.ClientIP()).
			Msg("request")
	}
}
