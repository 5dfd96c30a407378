package controller

import (
	"course-platform-be/internal/dto"
	"course-platform-be/internal/pkg/serverutils"
	"course-platform-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICouponController interface {
	RegisterRoutes(r fiber.Router)
	ValidateCoupon(ctx *fiber.Ctx) error
}

type couponController struct {
	service service.ICouponService
}

func NewCouponController(service service.ICouponService) ICouponController {
	return &couponController{service: service}
}

func (c *couponController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/coupons")
	h.Post("/validate", serverutils.JwtMiddleware, c.ValidateCoupon)
}

func (c *couponController) ValidateCoupon(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.ValidateCouponRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.ValidateCoupon(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Coupon is valid", res))
}
