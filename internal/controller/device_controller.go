package controller

import (
	"course-platform-be/internal/dto"
	"course-platform-be/internal/pkg/serverutils"
	"course-platform-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDeviceController interface {
	RegisterRoutes(r fiber.Router)
	RegisterDevice(ctx *fiber.Ctx) error
}

type deviceController struct {
	service service.IDeviceService
}

func NewDeviceController(service service.IDeviceService) IDeviceController {
	return &deviceController{service: service}
}

func (c *deviceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/devices", serverutils.JwtMiddleware)
	h.Post("/register", c.RegisterDevice)
}

func (c *deviceController) RegisterDevice(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.RegisterDeviceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.RegisterDevice(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Device registered", res))
}
