package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hxlane/rental_go_server/internal/api/middleware"
	"github.com/hxlane/rental_go_server/internal/model/dto"
	"github.com/hxlane/rental_go_server/internal/pkg/response"
	"github.com/hxlane/rental_go_server/internal/service"
)

// PaymentHandler 管理端付款审核
type PaymentHandler struct {
	payService *service.PaymentReviewService
}

func NewPaymentHandler(payService *service.PaymentReviewService) *PaymentHandler {
	return &PaymentHandler{
		payService: payService,
	}
}

// ListPending 待审核付款列表
// GET /api/v1/admin/payments
func (h *PaymentHandler) ListPending(c *gin.Context) {
	payments, err := h.payService.ListPending()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, payments)
}

// Approve 审核通过
// POST /api/v1/admin/payments/:id/approve
func (h *PaymentHandler) Approve(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的付款 ID")
		return
	}

	if err := h.payService.Approve(c.Request.Context(), adminID, id); err != nil {
		h.reviewError(c, err)
		return
	}

	response.SuccessWithMessage(c, "付款已通过，订阅已生效", nil)
}

// Reject 审核驳回
// POST /api/v1/admin/payments/:id/reject
func (h *PaymentHandler) Reject(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的付款 ID")
		return
	}

	var req dto.ReviewPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.payService.Reject(c.Request.Context(), adminID, id, req.Reason); err != nil {
		h.reviewError(c, err)
		return
	}

	response.SuccessWithMessage(c, "付款已驳回", nil)
}

func (h *PaymentHandler) reviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPaymentNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrPaymentNotReview):
		response.DuplicateError(c, err.Error())
	case errors.Is(err, service.ErrSubNotFound):
		response.NotFoundError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
