package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hxlane/rental_go_server/internal/model"
	"github.com/hxlane/rental_go_server/internal/repository"
)

var (
	ErrPlanNotSubscribable = errors.New("该套餐不可订阅")
	ErrAlreadySubscribed   = errors.New("已有生效中的付费订阅")
	ErrPendingExists       = errors.New("该套餐已有待审核的订阅申请")
	ErrSubNotFound         = errors.New("订阅不存在")
	ErrSubNotCancelable    = errors.New("只有待审核的订阅可以取消")
)

type SubscriptionService struct {
	subRepo  *repository.SubscriptionRepository
	planRepo *repository.PlanRepository
	planSvc  *PlanService
}

func NewSubscriptionService(
	subRepo *repository.SubscriptionRepository,
	planRepo *repository.PlanRepository,
	planSvc *PlanService,
) *SubscriptionService {
	return &SubscriptionService{
		subRepo:  subRepo,
		planRepo: planRepo,
		planSvc:  planSvc,
	}
}

// Subscribe 发起付费套餐订阅，进入待审核状态，等待付款审核通过后生效
func (s *SubscriptionService) Subscribe(userID, planID int64) (*model.Subscription, error) {
	plan, err := s.planRepo.GetByID(planID)
	if err != nil {
		return nil, ErrPlanNotSubscribable
	}
	if !plan.IsActive || plan.IsDefault {
		return nil, ErrPlanNotSubscribable
	}

	pending, err := s.subRepo.HasPendingForPlan(userID, planID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrPendingExists
	}

	sub := &model.Subscription{
		UserID: userID,
		PlanID: planID,
		Status: model.SubscriptionPending,
	}
	if err := s.subRepo.Create(sub); err != nil {
		return nil, err
	}

	return sub, nil
}

// ListMine 用户自己的订阅历史
func (s *SubscriptionService) ListMine(userID int64) ([]model.Subscription, error) {
	return s.subRepo.ListByUser(userID)
}

// CancelPending 取消本人待审核的订阅；其他状态一律拒绝
func (s *SubscriptionService) CancelPending(userID, subID int64) error {
	affected, err := s.subRepo.DeletePending(subID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSubNotCancelable
	}
	return nil
}

// Activate 使订阅生效：先将该用户其余生效中的付费订阅置为过期，
// 再按套餐时长计算 ends_at（无限期套餐保持为空）
func (s *SubscriptionService) Activate(sub *model.Subscription, now time.Time) error {
	plan, err := s.planRepo.GetByID(sub.PlanID)
	if err != nil {
		return err
	}

	if _, err := s.subRepo.ExpireActivePaid(sub.UserID); err != nil {
		return err
	}

	sub.Status = model.SubscriptionActive
	sub.StartedAt = &now
	sub.EndsAt = nil
	if plan.DurationDays != nil {
		ends := now.Add(time.Duration(*plan.DurationDays) * 24 * time.Hour)
		sub.EndsAt = &ends
	}

	return s.subRepo.Update(sub)
}

// GrantDefaultPlan 给用户挂默认免费套餐的生效订阅（注册、付费到期回退时使用）
func (s *SubscriptionService) GrantDefaultPlan(userID int64) error {
	plan, err := s.planSvc.EnsureDefaultPlan()
	if err != nil {
		return err
	}

	now := time.Now()
	sub := &model.Subscription{
		UserID:    userID,
		PlanID:    plan.ID,
		Status:    model.SubscriptionActive,
		StartedAt: &now,
	}
	return s.subRepo.Create(sub)
}

func (s *SubscriptionService) Get(id int64) (*model.Subscription, error) {
	sub, err := s.subRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubNotFound
	}
	return sub, err
}
