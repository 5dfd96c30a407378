package controller

import (
	"course-platform-be/internal/dto"
	"course-platform-be/internal/pkg/serverutils"
	"course-platform-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRefundController interface {
	RegisterRoutes(r fiber.Router)
	RequestRefund(ctx *fiber.Ctx) error
	GetMyRefunds(ctx *fiber.Ctx) error
}

type refundController struct {
	service service.IRefundService
}

func NewRefundController(service service.IRefundService) IRefundController {
	return &refundController{service: service}
}

func (c *refundController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/refunds", serverutils.JwtMiddleware)
	h.Post("/", c.RequestRefund)
	h.Get("/me", c.GetMyRefunds)
}

func (c *refundController) RequestRefund(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateRefundRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.RequestRefund(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Refund requested", res))
}

func (c *refundController) GetMyRefunds(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetMyRefunds(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Refund requests", res))
}
