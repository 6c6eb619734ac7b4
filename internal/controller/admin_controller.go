package controller

import (
	"portfolio-chatbot-be/internal/dto"
	"portfolio-chatbot-be/internal/pkg/serverutils"
	"portfolio-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
	IngestAsync(ctx *fiber.Ctx) error
}

type adminController struct {
	ingestService service.IIngestService
	adminApiKey   string
}

func NewAdminController(ingestService service.IIngestService, adminApiKey string) IAdminController {
	return &adminController{
		ingestService: ingestService,
		adminApiKey:   adminApiKey,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Use(serverutils.AdminKeyMiddleware(c.adminApiKey))
	h.Post("/ingest", c.Ingest)
	h.Post("/ingest/async", c.IngestAsync)
}

func parseRecords(ctx *fiber.Ctx) ([]dto.ContentRecordDTO, error) {
	var records []dto.ContentRecordDTO
	if err := ctx.BodyParser(&records); err != nil {
		return nil, serverutils.NewValidationError("body must be an array of content records")
	}
	return records, nil
}

func (c *adminController) Ingest(ctx *fiber.Ctx) error {
	records, err := parseRecords(ctx)
	if err != nil {
		return err
	}

	res, err := c.ingestService.Ingest(ctx.UserContext(), records)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *adminController) IngestAsync(ctx *fiber.Ctx) error {
	records, err := parseRecords(ctx)
	if err != nil {
		return err
	}

	res, err := c.ingestService.IngestAsync(ctx.UserContext(), records)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(res)
}
