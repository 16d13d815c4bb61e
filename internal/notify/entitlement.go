package notify

import (
	"github.com/hxlane/rental_go_server/internal/model"
	"github.com/hxlane/rental_go_server/internal/pkg/channel"
	"github.com/hxlane/rental_go_server/internal/repository"
)

// Entitlements 依据用户的有效套餐解析其可用通知渠道。
// 任何查询失败都降级为空集合，绝不中断投递流程
type Entitlements struct {
	userRepo *repository.UserRepository
	subRepo  *repository.SubscriptionRepository
	planRepo *repository.PlanRepository
}

func NewEntitlements(
	userRepo *repository.UserRepository,
	subRepo *repository.SubscriptionRepository,
	planRepo *repository.PlanRepository,
) *Entitlements {
	return &Entitlements{
		userRepo: userRepo,
		subRepo:  subRepo,
		planRepo: planRepo,
	}
}

// ResolveChannels 返回用户有效套餐启用的渠道集合。
// 管理员无条件获得全部渠道；租客沿用其房东的套餐（计费归属人）
func (s *Entitlements) ResolveChannels(user *model.User) []channel.Channel {
	if user.Role == model.RoleAdmin {
		return channel.All()
	}

	reference, ok := s.billingOwner(user)
	if !ok {
		return nil
	}

	plan := s.effectivePlan(reference)
	if plan == nil {
		return nil
	}

	return plan.Channels()
}

// billingOwner 套餐归属人：租客取其关联房东，房东取自身
func (s *Entitlements) billingOwner(user *model.User) (int64, bool) {
	if user.Role != model.RoleTenant {
		return user.ID, true
	}

	profile, err := s.userRepo.GetTenantProfile(user.ID)
	if err != nil || profile.LandlordID == nil {
		return 0, false // 租客未关联房东，无任何渠道
	}
	return *profile.LandlordID, true
}

// effectivePlan 归属人生效中的付费套餐，缺失时回退默认免费套餐
func (s *Entitlements) effectivePlan(ownerID int64) *model.Plan {
	sub, err := s.subRepo.GetActivePaidByUser(ownerID)
	if err == nil {
		plan, err := s.planRepo.GetByID(sub.PlanID)
		if err == nil {
			return plan
		}
	}

	plan, err := s.planRepo.GetActiveDefault()
	if err != nil {
		return nil
	}
	return plan
}
