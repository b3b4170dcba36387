package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"smartbiz-be/internal/dto"
	"smartbiz-be/internal/pkg/serverutils"
	"smartbiz-be/internal/service"
)

type IMemoryController interface {
	RegisterRoutes(r fiber.Router)
	GetContext(ctx *fiber.Ctx) error
	SaveContext(ctx *fiber.Ctx) error
	GetConversations(ctx *fiber.Ctx) error
	ClearSession(ctx *fiber.Ctx) error
	ClearAllConversations(ctx *fiber.Ctx) error
	GetPreferences(ctx *fiber.Ctx) error
	UpdatePreferences(ctx *fiber.Ctx) error
	GetSummary(ctx *fiber.Ctx) error
	Cleanup(ctx *fiber.Ctx) error
}

type memoryController struct {
	memoryService service.IMemoryService
}

func NewMemoryController(memoryService service.IMemoryService) IMemoryController {
	return &memoryController{
		memoryService: memoryService,
	}
}

func (c *memoryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/memory/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("context", c.GetContext)
	h.Get("context/:type", c.GetContext)
	h.Post("context", c.SaveContext)
	h.Get("conversations", c.GetConversations)
	h.Delete("conversations/session/:sessionId", c.ClearSession)
	h.Delete("conversations/all", c.ClearAllConversations)
	h.Get("preferences", c.GetPreferences)
	h.Put("preferences", c.UpdatePreferences)
	h.Get("summary", c.GetSummary)
	h.Post("cleanup", c.Cleanup)
}

func (c *memoryController) GetContext(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.memoryService.GetContextFacts(ctx.Context(), userId, ctx.Params("type"), ctx.Query("key"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list context facts", res))
}

func (c *memoryController) SaveContext(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SaveContextFactRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.memoryService.SaveContextFact(ctx.Context(), userId, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success save context fact", struct{}{}))
}

func (c *memoryController) GetConversations(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.ConversationHistoryRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.memoryService.GetConversations(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list conversations", res))
}

func (c *memoryController) ClearSession(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	deleted, err := c.memoryService.ClearSession(ctx.Context(), userId, ctx.Params("sessionId"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success clear session", &dto.ClearContextResponse{
		DeletedTurns: deleted,
	}))
}

// ClearAllConversations drops every conversation turn of the user. Business
// context and preferences are durable and have no bulk-clear.
func (c *memoryController) ClearAllConversations(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	deleted, err := c.memoryService.ClearAllTurns(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success clear conversations", &dto.ClearContextResponse{
		DeletedTurns: deleted,
	}))
}

// Cleanup runs the expiry sweep on demand, same as the background janitor.
func (c *memoryController) Cleanup(ctx *fiber.Ctx) error {
	deleted, err := c.memoryService.SweepExpired(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success clean up expired context", fiber.Map{
		"deleted_facts": deleted,
	}))
}

func (c *memoryController) GetPreferences(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.memoryService.GetPreferences(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show preferences", res))
}

func (c *memoryController) UpdatePreferences(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.UpdatePreferencesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.memoryService.UpdatePreferences(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update preferences", res))
}

func (c *memoryController) GetSummary(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.memoryService.GetSummary(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show memory summary", res))
}
