// FILE: internal/controller/chat_controller.go
package controller

import (
	"student-coach-be/internal/dto"
	"student-coach-be/internal/pkg/serverutils"
	"student-coach-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	ChatTurn(ctx *fiber.Ctx) error
	ChatHistory(ctx *fiber.Ctx) error
	UpdateChatLike(ctx *fiber.Ctx) error
	ClearOldChats(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat_turn", c.ChatTurn)
	r.Post("/chat_history", c.ChatHistory)
	r.Post("/update_chat_like", c.UpdateChatLike)
	r.Post("/clear_old_chats", c.ClearOldChats)
}

func (c *chatController) ChatTurn(ctx *fiber.Ctx) error {
	var req dto.ChatTurnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendTurn(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat turn", res))
}

func (c *chatController) ChatHistory(ctx *fiber.Ctx) error {
	var req dto.ChatHistoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.History(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat history", res))
}

func (c *chatController) UpdateChatLike(ctx *fiber.Ctx) error {
	var req dto.UpdateChatLikeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.UpdateLike(ctx.Context(), &req); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat like updated", fiber.Map{"message_id": req.MessageID}))
}

func (c *chatController) ClearOldChats(ctx *fiber.Ctx) error {
	var req dto.ClearOldChatsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ClearOldChats(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Old chats cleared", res))
}
