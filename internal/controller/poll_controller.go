package controller

import (
	"sms-assistant-be/internal/dto"
	"sms-assistant-be/internal/pkg/serverutils"
	"sms-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPollController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
}

type pollController struct {
	pollService service.IPollService
}

func NewPollController(pollService service.IPollService) IPollController {
	return &pollController{
		pollService: pollService,
	}
}

func (c *pollController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/poll/v1")
	h.Post("", c.Create)
}

func (c *pollController) Create(ctx *fiber.Ctx) error {
	var req dto.CreatePollRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.pollService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create poll", res))
}
