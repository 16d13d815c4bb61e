package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/hxlane/rental_go_server/internal/model"
)

type LeaseRepository struct {
	db *gorm.DB
}

func NewLeaseRepository(db *gorm.DB) *LeaseRepository {
	return &LeaseRepository{db: db}
}

func (r *LeaseRepository) Create(lease *model.Lease) error {
	return r.db.Create(lease).Error
}

func (r *LeaseRepository) GetByID(id int64) (*model.Lease, error) {
	var lease model.Lease
	err := r.db.Where("id = ?", id).First(&lease).Error
	if err != nil {
		return nil, err
	}
	return &lease, nil
}

func (r *LeaseRepository) ListActive() ([]model.Lease, error) {
	var leases []model.Lease
	err := r.db.Where("status = ?", model.LeaseActive).Find(&leases).Error
	return leases, err
}

// ListActiveEndingOn 生效租约中 end_date 落在指定自然日内的记录（到期提醒用）
func (r *LeaseRepository) ListActiveEndingOn(day time.Time) ([]model.Lease, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var leases []model.Lease
	err := r.db.
		Where("status = ? AND end_date >= ? AND end_date < ?", model.LeaseActive, dayStart, dayEnd).
		Find(&leases).Error
	return leases, err
}

// ListActiveEndedBefore 生效租约中 end_date 早于指定时刻的记录（过期清理用）
func (r *LeaseRepository) ListActiveEndedBefore(t time.Time) ([]model.Lease, error) {
	var leases []model.Lease
	err := r.db.
		Where("status = ? AND end_date < ?", model.LeaseActive, t).
		Find(&leases).Error
	return leases, err
}

func (r *LeaseRepository) GetUnit(id int64) (*model.Unit, error) {
	var unit model.Unit
	err := r.db.Where("id = ?", id).First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *LeaseRepository) GetProperty(id int64) (*model.Property, error) {
	var property model.Property
	err := r.db.Where("id = ?", id).First(&property).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// MarkExpired 将租约置为过期
func (r *LeaseRepository) MarkExpired(id int64) error {
	return r.db.Model(&model.Lease{}).Where("id = ?", id).
		Update("status", model.LeaseExpired).Error
}

// SetUnitAvailable 租约结束后恢复房源可租状态
func (r *LeaseRepository) SetUnitAvailable(unitID int64, available bool) error {
	return r.db.Model(&model.Unit{}).Where("id = ?", unitID).
		Update("is_available", available).Error
}
