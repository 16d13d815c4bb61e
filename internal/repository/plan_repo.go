package repository

import (
	"gorm.io/gorm"

	"github.com/hxlane/rental_go_server/internal/model"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(plan *model.Plan) error {
	return r.db.Create(plan).Error
}

func (r *PlanRepository) GetByID(id int64) (*model.Plan, error) {
	var plan model.Plan
	err := r.db.Where("id = ?", id).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) Update(plan *model.Plan) error {
	return r.db.Save(plan).Error
}

func (r *PlanRepository) Delete(id int64) error {
	return r.db.Delete(&model.Plan{}, id).Error
}

func (r *PlanRepository) ListAll() ([]model.Plan, error) {
	var plans []model.Plan
	err := r.db.Order("id").Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) ListActive() ([]model.Plan, error) {
	var plans []model.Plan
	err := r.db.Where("is_active = ?", true).Order("price").Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Plan{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// GetActiveDefault 获取当前启用的默认免费套餐
func (r *PlanRepository) GetActiveDefault() (*model.Plan, error) {
	var plan model.Plan
	err := r.db.Where("is_default = ? AND is_active = ?", true, true).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// SaveAsDefault 在同一事务内清除其他套餐的默认标记并保存本套餐。
// 全局"至多一个默认套餐"的唯一保障点，调用方须先校验 price == 0
func (r *PlanRepository) SaveAsDefault(plan *model.Plan) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&model.Plan{}).Where("is_default = ?", true)
		if plan.ID != 0 {
			query = query.Where("id != ?", plan.ID)
		}
		if err := query.Update("is_default", false).Error; err != nil {
			return err
		}
		plan.IsDefault = true
		return tx.Save(plan).Error
	})
}

// CountSubscriptions 套餐被订阅引用的数量，用于删除保护
func (r *PlanRepository) CountSubscriptions(planID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("plan_id = ?", planID).Count(&count).Error
	return count, err
}
