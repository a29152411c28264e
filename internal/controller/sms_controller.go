package controller

import (
	"sms-assistant-be/internal/dto"
	"sms-assistant-be/internal/pkg/serverutils"
	"sms-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISmsController interface {
	RegisterRoutes(r fiber.Router)
	Inbound(ctx *fiber.Ctx) error
}

type smsController struct {
	assistantService service.IAssistantService
}

func NewSmsController(assistantService service.IAssistantService) ISmsController {
	return &smsController{
		assistantService: assistantService,
	}
}

func (c *smsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sms/v1")
	h.Post("inbound", c.Inbound)
}

func (c *smsController) Inbound(ctx *fiber.Ctx) error {
	var req dto.InboundSmsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.assistantService.HandleInbound(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success handle inbound sms", res))
}
