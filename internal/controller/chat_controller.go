package controller

import (
	"dataweaver-be/internal/dto"
	"dataweaver-be/internal/pkg/serverutils"
	"dataweaver-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	DataChat(ctx *fiber.Ctx) error
	AssistantChat(ctx *fiber.Ctx) error
	SetModel(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("/data", c.DataChat)
	h.Post("/assistant", c.AssistantChat)
	h.Put("/model", c.SetModel)
}

func (c *chatController) DataChat(ctx *fiber.Ctx) error {
	var req dto.DataChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.DataChat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success data chat", res))
}

func (c *chatController) AssistantChat(ctx *fiber.Ctx) error {
	var req dto.AssistantChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.AssistantChat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success assistant chat", res))
}

func (c *chatController) SetModel(ctx *fiber.Ctx) error {
	var req dto.SetModelRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SetModel(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success set model", res))
}
