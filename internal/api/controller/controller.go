package controller

import (
	"github.com/envirobot/envirobot/internal/service/chat"
	"github.com/envirobot/envirobot/internal/service/etl"
)

type Controller struct {
	chatService *chat.Service
	etlService  *etl.Service
}

func NewController(chatService *chat.Service, etlService *etl.Service) *Controller {
	return &Controller{chatService: chatService, etlService: etlService}
}
