package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hxlane/rental_go_server/internal/model"
	"github.com/hxlane/rental_go_server/internal/pkg/channel"
	"github.com/hxlane/rental_go_server/internal/repository"
)

var (
	ErrPlanNameTaken     = errors.New("同名套餐已存在")
	ErrDefaultMustBeFree = errors.New("只有免费套餐（价格为 0）可设为默认")
	ErrPlanReferenced    = errors.New("套餐已被订阅引用，不能删除")
	ErrPlanNotFound      = errors.New("套餐不存在")
)

type PlanService struct {
	planRepo *repository.PlanRepository
}

func NewPlanService(planRepo *repository.PlanRepository) *PlanService {
	return &PlanService{planRepo: planRepo}
}

// ListPublic 对外展示的启用套餐；系统尚无套餐时自动补建默认免费套餐
func (s *PlanService) ListPublic() ([]model.Plan, error) {
	plans, err := s.planRepo.ListActive()
	if err != nil {
		return nil, err
	}

	if len(plans) == 0 {
		fallback, err := s.EnsureDefaultPlan()
		if err != nil {
			return nil, err
		}
		plans = []model.Plan{*fallback}
	}

	return plans, nil
}

// ListAll 管理端：全部套餐
func (s *PlanService) ListAll() ([]model.Plan, error) {
	return s.planRepo.ListAll()
}

func (s *PlanService) Get(id int64) (*model.Plan, error) {
	plan, err := s.planRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlanNotFound
	}
	return plan, err
}

// Create 新建套餐。默认标记走事务化的"清除其余默认位"保存，保证全局至多一个默认套餐
func (s *PlanService) Create(plan *model.Plan) error {
	exists, err := s.planRepo.ExistsByName(plan.Name)
	if err != nil {
		return err
	}
	if exists {
		return ErrPlanNameTaken
	}

	if plan.IsDefault {
		if plan.Price > 0 {
			return ErrDefaultMustBeFree
		}
		return s.planRepo.SaveAsDefault(plan)
	}

	return s.planRepo.Create(plan)
}

// Update 更新套餐，同样维护默认套餐唯一性
func (s *PlanService) Update(plan *model.Plan) error {
	if plan.IsDefault {
		if plan.Price > 0 {
			return ErrDefaultMustBeFree
		}
		return s.planRepo.SaveAsDefault(plan)
	}

	return s.planRepo.Update(plan)
}

// Delete 删除套餐；被订阅引用过的套餐不允许物理删除
func (s *PlanService) Delete(id int64) error {
	count, err := s.planRepo.CountSubscriptions(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrPlanReferenced
	}

	return s.planRepo.Delete(id)
}

// EnsureDefaultPlan 保证系统存在一个启用的默认免费套餐，缺失时自动创建
func (s *PlanService) EnsureDefaultPlan() (*model.Plan, error) {
	existing, err := s.planRepo.GetActiveDefault()
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	one := 1
	fallback := &model.Plan{
		Name:              "Free Plan",
		Description:       "Auto-generated default free plan.",
		Price:             0,
		AllowedProperties: &one,
		AllowedUnits:      &one,
		IsActive:          true,
	}
	fallback.SetChannels([]channel.Channel{channel.Email})

	if err := s.planRepo.SaveAsDefault(fallback); err != nil {
		return nil, err
	}
	return fallback, nil
}
