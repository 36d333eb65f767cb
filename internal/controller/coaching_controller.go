// FILE: internal/controller/coaching_controller.go
package controller

import (
	"student-coach-be/internal/dto"
	"student-coach-be/internal/pkg/serverutils"
	"student-coach-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICoachingController interface {
	RegisterRoutes(r fiber.Router)
	GetCoachingData(ctx *fiber.Ctx) error
}

type coachingController struct {
	service service.ICoachingService
}

func NewCoachingController(service service.ICoachingService) ICoachingController {
	return &coachingController{service: service}
}

func (c *coachingController) RegisterRoutes(r fiber.Router) {
	r.Post("/coaching_data", c.GetCoachingData)
}

func (c *coachingController) GetCoachingData(ctx *fiber.Ctx) error {
	var req dto.CoachingDataRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.GetCoachingData(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Coaching data", res))
}
