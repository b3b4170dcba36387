package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"smartbiz-be/internal/pkg/serverutils"
	"smartbiz-be/internal/service"
)

type IDashboardController interface {
	RegisterRoutes(r fiber.Router)
	Summary(ctx *fiber.Ctx) error
	RevenueChart(ctx *fiber.Ctx) error
}

type dashboardController struct {
	dashboardService service.IDashboardService
}

func NewDashboardController(dashboardService service.IDashboardService) IDashboardController {
	return &dashboardController{
		dashboardService: dashboardService,
	}
}

func (c *dashboardController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dashboard/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Summary)
	h.Get("chart", c.RevenueChart)
}

func (c *dashboardController) Summary(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	month := ctx.Query("month")

	var err error
	var res interface{}
	if month != "" {
		res, err = c.dashboardService.SummaryForMonth(ctx.Context(), userId, month)
	} else {
		res, err = c.dashboardService.Summary(ctx.Context(), userId)
	}
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show dashboard", res))
}

func (c *dashboardController) RevenueChart(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.dashboardService.RevenueChart(ctx.Context(), userId, ctx.Query("month"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show revenue chart", res))
}
