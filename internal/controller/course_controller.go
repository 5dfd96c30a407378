package controller

import (
	"course-platform-be/internal/pkg/serverutils"
	"course-platform-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICourseController interface {
	RegisterRoutes(r fiber.Router)
	GetCourses(ctx *fiber.Ctx) error
	GetCourse(ctx *fiber.Ctx) error
}

type courseController struct {
	service service.ICourseService
}

func NewCourseController(service service.ICourseService) ICourseController {
	return &courseController{service: service}
}

func (c *courseController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/courses")
	h.Get("/", c.GetCourses)
	h.Get("/:id", c.GetCourse)
}

func (c *courseController) GetCourses(ctx *fiber.Ctx) error {
	res, err := c.service.GetCourses(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Courses fetched", res))
}

func (c *courseController) GetCourse(ctx *fiber.Ctx) error {
	courseId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid course id"))
	}

	res, err := c.service.GetCourse(ctx.Context(), courseId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Course fetched", res))
}
