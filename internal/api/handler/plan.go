package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hxlane/rental_go_server/internal/model"
	"github.com/hxlane/rental_go_server/internal/model/dto"
	"github.com/hxlane/rental_go_server/internal/pkg/channel"
	"github.com/hxlane/rental_go_server/internal/pkg/response"
	"github.com/hxlane/rental_go_server/internal/service"
)

type PlanHandler struct {
	planService *service.PlanService
}

func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{
		planService: planService,
	}
}

// ListPublic 对外展示启用中的套餐
// GET /api/v1/plans
func (h *PlanHandler) ListPublic(c *gin.Context) {
	plans, err := h.planService.ListPublic()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, plans)
}

// ListAll 管理端：全部套餐
// GET /api/v1/admin/plans
func (h *PlanHandler) ListAll(c *gin.Context) {
	plans, err := h.planService.ListAll()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, plans)
}

// Create 管理端新建套餐
// POST /api/v1/admin/plans
func (h *PlanHandler) Create(c *gin.Context) {
	var req dto.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	plan := planFromRequest(&req)
	if err := h.planService.Create(plan); err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNameTaken):
			response.DuplicateError(c, err.Error())
		case errors.Is(err, service.ErrDefaultMustBeFree):
			response.PlanError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "套餐创建成功", plan)
}

// Update 管理端更新套餐
// PUT /api/v1/admin/plans/:id
func (h *PlanHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的套餐 ID")
		return
	}

	var req dto.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	existing, err := h.planService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			response.NotFoundError(c, err.Error())
		} else {
			response.ServerError(c, "")
		}
		return
	}

	plan := planFromRequest(&req)
	plan.ID = existing.ID
	plan.CreatedAt = existing.CreatedAt
	if err := h.planService.Update(plan); err != nil {
		if errors.Is(err, service.ErrDefaultMustBeFree) {
			response.PlanError(c, err.Error())
		} else {
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "套餐已更新", plan)
}

// Delete 管理端删除套餐
// DELETE /api/v1/admin/plans/:id
func (h *PlanHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的套餐 ID")
		return
	}

	if err := h.planService.Delete(id); err != nil {
		if errors.Is(err, service.ErrPlanReferenced) {
			response.PlanError(c, err.Error())
		} else {
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "套餐已删除", nil)
}

func planFromRequest(req *dto.PlanRequest) *model.Plan {
	plan := &model.Plan{
		Name:              req.Name,
		Description:       req.Description,
		AllowedProperties: req.AllowedProperties,
		AllowedUnits:      req.AllowedUnits,
		DurationDays:      req.DurationDays,
		IsDefault:         req.IsDefault,
		IsActive:          true,
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	channels := make([]channel.Channel, 0, len(req.EnableNotifications))
	for _, name := range req.EnableNotifications {
		ch := channel.Channel(name)
		if channel.Valid(ch) {
			channels = append(channels, ch)
		}
	}
	plan.SetChannels(channels)

	return plan
}
