package controller

import (
	"time"

	"portfolio-chatbot-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	now func() time.Time
}

func NewHealthController() IHealthController {
	return &healthController{now: time.Now}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: c.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}
