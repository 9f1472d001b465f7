// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-vendo/vending-machine/internal/domain"
	"github.com/go-vendo/vending-machine/internal/middleware"
	"github.com/go-vendo/vending-machine/internal/productdelivery"
	"github.com/go-vendo/vending-machine/internal/productrepo"
	"github.com/go-vendo/vending-machine/internal/productservice"
	"github.com/go-vendo/vending-machine/internal/sessiondelivery"
	"github.com/go-vendo/vending-machine/internal/sessionrepo"
	"github.com/go-vendo/vending-machine/internal/sessionservice"
	"github.com/go-vendo/vending-machine/internal/userdelivery"
	"github.com/go-vendo/vending-machine/internal/userrepo"
	"github.com/go-vendo/vending-machine/internal/userservice"
	"github.com/go-vendo/vending-machine/internal/walletdelivery"
	"github.com/go-vendo/vending-machine/internal/walletrepo"
	"github.com/go-vendo/vending-machine/internal/walletservice"
	"github.com/go-vendo/vending-machine/pkg/coinpkg"
	"github.com/go-vendo/vending-machine/pkg/configpkg"
	"github.com/go-vendo/vending-machine/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	productRepo := productrepo.NewRepoPGS(conn)
	walletRepo := walletrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	userService := userservice.New(userRepo)
	productService := productservice.New(productRepo)
	walletService := walletservice.New(walletRepo)
	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)

	if err != nil {
		return nil, errors.New("cannot initialize session service")
	}

	userHandler := userdelivery.NewHandler(userService, sessionService)
	productHandler := productdelivery.NewHandler(productService)
	walletHandler := walletdelivery.NewHandler(walletService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", userHandler.Create)
	engine.POST("/users/login", userHandler.Login)
	engine.POST("/sessions", sessionHandler.RenewAccessToken)

	engine.GET("/products", productHandler.List)
	engine.GET("/products/:id", productHandler.Get)

	sellerRoutes := engine.Group("/products").
		Use(middleware.AuthMiddleware(sessionService.TokenMaker)).
		Use(middleware.RequireRole(domain.RoleSeller))

	sellerRoutes.POST("", productHandler.Create)
	sellerRoutes.PUT("/:id", productHandler.Update)
	sellerRoutes.DELETE("/:id", productHandler.Delete)

	buyerRoutes := engine.Group("/wallet").
		Use(middleware.AuthMiddleware(sessionService.TokenMaker)).
		Use(middleware.RequireRole(domain.RoleBuyer))

	buyerRoutes.POST("/deposit", walletHandler.Deposit)
	buyerRoutes.POST("/buy", walletHandler.Buy)
	buyerRoutes.POST("/reset", walletHandler.Reset)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("denomination", coinpkg.ValidDenomination); err != nil {
			return nil, errors.New("cannot register denomination validator")
		}

		if err := v.RegisterValidation("price", coinpkg.ValidPrice); err != nil {
			return nil, errors.New("cannot register price validator")
		}

		if err := v.RegisterValidation("role", userdelivery.ValidRole); err != nil {
			return nil, errors.New("cannot register role validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
