package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"smartbiz-be/internal/dto"
	"smartbiz-be/internal/pkg/serverutils"
	"smartbiz-be/internal/service"
)

type IGstController interface {
	RegisterRoutes(r fiber.Router)
	Verify(ctx *fiber.Ctx) error
	PrepareFiling(ctx *fiber.Ctx) error
	ListFilings(ctx *fiber.Ctx) error
	MarkFiled(ctx *fiber.Ctx) error
	ComplianceStatus(ctx *fiber.Ctx) error
}

type gstController struct {
	gstService service.IGstService
}

func NewGstController(gstService service.IGstService) IGstController {
	return &gstController{
		gstService: gstService,
	}
}

func (c *gstController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/gst/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("verify/:gstin", c.Verify)
	h.Get("filings", c.ListFilings)
	h.Post("filings", c.PrepareFiling)
	h.Patch("filings/:id/file", c.MarkFiled)
	h.Get("compliance", c.ComplianceStatus)
}

func (c *gstController) Verify(ctx *fiber.Ctx) error {
	res, err := c.gstService.VerifyGstin(ctx.Context(), ctx.Params("gstin"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success verify gstin", res))
}

func (c *gstController) PrepareFiling(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.PrepareFilingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.gstService.PrepareFiling(ctx.Context(), userId, &req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Success prepare filing", res))
}

func (c *gstController) ListFilings(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.gstService.ListFilings(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list filings", res))
}

func (c *gstController) MarkFiled(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filing id")
	}

	res, err := c.gstService.MarkFiled(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success mark filing as filed", res))
}

func (c *gstController) ComplianceStatus(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.gstService.ComplianceStatus(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show compliance status", res))
}
