package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hxlane/rental_go_server/internal/model"
	"github.com/hxlane/rental_go_server/internal/repository"
)

var (
	ErrPaymentNotFound  = errors.New("付款记录不存在")
	ErrPaymentNotReview = errors.New("该付款记录不在待审核状态")
)

// Notifier 业务服务抛通知事件用的最小接口，由 notify.Emitter 实现
type Notifier interface {
	Raise(ctx context.Context, userID int64, subject, message string)
}

// PaymentReviewService 管理端审核订阅付款。
// 审核结论落库后抛通知事件；通知投递失败与否不影响审核事务
type PaymentReviewService struct {
	payRepo  *repository.SubscriptionPaymentRepository
	subSvc   *SubscriptionService
	notifier Notifier
}

func NewPaymentReviewService(
	payRepo *repository.SubscriptionPaymentRepository,
	subSvc *SubscriptionService,
	notifier Notifier,
) *PaymentReviewService {
	return &PaymentReviewService{
		payRepo:  payRepo,
		subSvc:   subSvc,
		notifier: notifier,
	}
}

// Submit 房东为待审订阅提交付款凭据
func (s *PaymentReviewService) Submit(userID, subscriptionID int64, amount float64, method, reference string) (*model.SubscriptionPayment, error) {
	sub, err := s.subSvc.Get(subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID || sub.Status != model.SubscriptionPending {
		return nil, ErrSubNotFound
	}

	payment := &model.SubscriptionPayment{
		SubscriptionID: subscriptionID,
		UserID:         userID,
		Amount:         amount,
		Method:         method,
		Reference:      reference,
		Status:         model.PaymentPending,
	}
	if err := s.payRepo.Create(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// ListPending 管理端待审核付款列表
func (s *PaymentReviewService) ListPending() ([]model.SubscriptionPayment, error) {
	return s.payRepo.ListPending()
}

// Approve 审核通过：激活订阅（顶掉旧付费订阅）并通知房东
func (s *PaymentReviewService) Approve(ctx context.Context, adminID, paymentID int64) error {
	payment, err := s.loadReviewable(paymentID)
	if err != nil {
		return err
	}

	sub, err := s.subSvc.Get(payment.SubscriptionID)
	if err != nil {
		return err
	}

	if err := s.subSvc.Activate(sub, time.Now()); err != nil {
		return err
	}

	now := time.Now()
	payment.Status = model.PaymentApproved
	payment.ReviewedBy = &adminID
	payment.ReviewedAt = &now
	if err := s.payRepo.Update(payment); err != nil {
		return err
	}

	s.notifier.Raise(ctx, payment.UserID,
		"Subscription Payment Approved",
		fmt.Sprintf("Your payment of %.2f for subscription #%d has been approved. Your plan is now active.", payment.Amount, sub.ID))

	return nil
}

// Reject 审核驳回：订阅置为取消并通知房东
func (s *PaymentReviewService) Reject(ctx context.Context, adminID, paymentID int64, reason string) error {
	payment, err := s.loadReviewable(paymentID)
	if err != nil {
		return err
	}

	sub, err := s.subSvc.Get(payment.SubscriptionID)
	if err != nil {
		return err
	}
	sub.Status = model.SubscriptionCanceled
	if err := s.subSvc.subRepo.Update(sub); err != nil {
		return err
	}

	now := time.Now()
	payment.Status = model.PaymentRejected
	payment.ReviewedBy = &adminID
	payment.ReviewedAt = &now
	if err := s.payRepo.Update(payment); err != nil {
		return err
	}

	message := fmt.Sprintf("Your payment of %.2f for subscription #%d was rejected.", payment.Amount, sub.ID)
	if reason != "" {
		message += " Reason: " + reason
	}
	s.notifier.Raise(ctx, payment.UserID, "Subscription Payment Rejected", message)

	return nil
}

func (s *PaymentReviewService) loadReviewable(paymentID int64) (*model.SubscriptionPayment, error) {
	payment, err := s.payRepo.GetByID(paymentID)
	if err != nil {
		return nil, ErrPaymentNotFound
	}
	if payment.Status != model.PaymentPending {
		return nil, ErrPaymentNotReview
	}
	return payment, nil
}
