package repository

import (
	"gorm.io/gorm"

	"github.com/hxlane/rental_go_server/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

// SetMessengerPSID 绑定 Messenger 身份
func (r *UserRepository) SetMessengerPSID(id int64, psid string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("messenger_psid", psid).Error
}

// CreateTenantProfile 创建租客档案
func (r *UserRepository) CreateTenantProfile(profile *model.TenantProfile) error {
	return r.db.Create(profile).Error
}

// GetTenantProfile 获取租客档案，不存在时返回 gorm.ErrRecordNotFound
func (r *UserRepository) GetTenantProfile(userID int64) (*model.TenantProfile, error) {
	var profile model.TenantProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateTenantProfile 更新租客档案
func (r *UserRepository) UpdateTenantProfile(profile *model.TenantProfile) error {
	return r.db.Save(profile).Error
}
