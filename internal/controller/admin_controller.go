package controller

import (
	"course-platform-be/internal/dto"
	"course-platform-be/internal/pkg/apperror"
	"course-platform-be/internal/pkg/serverutils"
	"course-platform-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
}

type adminController struct {
	service service.IAdminService
}

func NewAdminController(service service.IAdminService) IAdminController {
	return &adminController{service: service}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin", serverutils.JwtMiddleware, serverutils.AdminOnly)

	h.Get("/refunds", c.ListRefunds)
	h.Post("/refunds/:id/approve", c.ApproveRefund)
	h.Post("/refunds/:id/reject", c.RejectRefund)

	h.Get("/bank-transfers", c.ListBankTransfers)
	h.Post("/bank-transfers/:id/approve", c.ApproveBankTransfer)
	h.Post("/bank-transfers/:id/reject", c.RejectBankTransfer)

	h.Get("/coupons", c.ListCoupons)
	h.Post("/coupons", c.CreateCoupon)
	h.Patch("/coupons/:id", c.UpdateCoupon)
	h.Delete("/coupons/:id", c.DeactivateCoupon)

	h.Get("/tax-invoices", c.ListTaxInvoices)
	h.Post("/tax-invoices/:id/issue", c.IssueTaxInvoice)
}

func paginationQuery(ctx *fiber.Ctx) (int, int) {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func idParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.Validation("invalid id")
	}
	return id, nil
}

func (c *adminController) ListRefunds(ctx *fiber.Ctx) error {
	page, limit := paginationQuery(ctx)
	res, err := c.service.ListRefunds(ctx.Context(), page, limit, ctx.Query("status"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Refund requests", res))
}

func (c *adminController) ApproveRefund(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.ApproveRefund(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Refund approved", res))
}

func (c *adminController) RejectRefund(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}

	var req dto.AdminRejectRefundRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.RejectRefund(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Refund rejected", res))
}

func (c *adminController) ListBankTransfers(ctx *fiber.Ctx) error {
	page, limit := paginationQuery(ctx)
	res, err := c.service.ListBankTransfers(ctx.Context(), page, limit, ctx.Query("status"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Bank transfers", res))
}

func (c *adminController) ApproveBankTransfer(ctx *fiber.Ctx) error {
	adminId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	if err := c.service.ApproveBankTransfer(ctx.Context(), id, adminId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Bank transfer approved", nil))
}

func (c *adminController) RejectBankTransfer(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	if err := c.service.RejectBankTransfer(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Bank transfer rejected", nil))
}

func (c *adminController) ListCoupons(ctx *fiber.Ctx) error {
	page, limit := paginationQuery(ctx)
	res, err := c.service.ListCoupons(ctx.Context(), page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Coupons", res))
}

func (c *adminController) CreateCoupon(ctx *fiber.Ctx) error {
	var req dto.AdminCreateCouponRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.CreateCoupon(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Coupon created", res))
}

func (c *adminController) UpdateCoupon(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}

	var req dto.AdminUpdateCouponRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.UpdateCoupon(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Coupon updated", res))
}

func (c *adminController) DeactivateCoupon(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	if err := c.service.DeactivateCoupon(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Coupon deactivated", nil))
}

func (c *adminController) ListTaxInvoices(ctx *fiber.Ctx) error {
	page, limit := paginationQuery(ctx)
	res, err := c.service.ListTaxInvoices(ctx.Context(), page, limit, ctx.Query("status"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Tax invoices", res))
}

func (c *adminController) IssueTaxInvoice(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.IssueTaxInvoice(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Tax invoice issued", res))
}
