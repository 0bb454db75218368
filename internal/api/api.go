package api

import (
	"context"

	"github.com/envirobot/envirobot/internal/api/controller"
	"github.com/envirobot/envirobot/internal/pkg/logger"
	"github.com/envirobot/envirobot/internal/service/chat"
	"github.com/envirobot/envirobot/internal/service/etl"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type APIService struct {
	router      *echo.Echo
	chatService *chat.Service
	etlService  *etl.Service
}

func (svc *APIService) Serve(addr string) {
	logger.Fatal(context.Background(), svc.router.Start(addr))
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(chatService *chat.Service, etlService *etl.Service) (*APIService, error) {
	svc := &APIService{
		router:      echo.New(),
		chatService: chatService,
		etlService:  etlService,
	}
	svc.router.HideBanner = true

	svc.router.Validator = NewValidator()
	svc.router.Use(middleware.Logger())
	svc.router.Use(svc.RequestIDMiddleware)
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST},
		AllowHeaders: []string{"Content-Type"},
	}))

	cntrl := controller.NewController(svc.chatService, svc.etlService)

	svc.router.GET("/", cntrl.Home)

	api := svc.router.Group("/api/v1")

	chatGroup := api.Group("/chat")
	chatGroup.POST("", cntrl.Chat)

	provinces := api.Group("/provinces")
	provinces.GET("/list", cntrl.ListProvinces)

	etlGroup := api.Group("/etl")
	etlGroup.POST("/backfill", cntrl.Backfill)

	return svc, nil
}
