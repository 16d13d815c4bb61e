package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/hxlane/rental_go_server/internal/model"
	"github.com/hxlane/rental_go_server/internal/pkg/channel"
)

var fixtureSeq int64

func nextSeq() int64 {
	fixtureSeq++
	return fixtureSeq
}

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	seq := nextSeq()
	user := &model.User{
		FirstName:    "Test",
		LastName:     fmt.Sprintf("User%d", seq),
		Email:        fmt.Sprintf("test_%d_%d@example.com", time.Now().UnixNano(), seq),
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz123456", // bcrypt hash placeholder
		Role:         model.RoleLandlord,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithRole 设置角色
func WithRole(role string) func(*model.User) {
	return func(u *model.User) {
		u.Role = role
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// WithTelegram 绑定 Telegram 身份
func WithTelegram(chatID string) func(*model.User) {
	return func(u *model.User) {
		u.TelegramID = &chatID
	}
}

// WithMessenger 绑定 Messenger 身份
func WithMessenger(psid string) func(*model.User) {
	return func(u *model.User) {
		u.MessengerPSID = &psid
	}
}

// WithoutEmail 清空邮箱地址（渠道缺失场景）
func WithoutEmail() func(*model.User) {
	return func(u *model.User) {
		u.Email = ""
	}
}

// TestTenantProfile 创建租客档案并关联房东
func TestTenantProfile(t *testing.T, db *gorm.DB, tenantID int64, landlordID *int64) *model.TenantProfile {
	t.Helper()

	profile := &model.TenantProfile{
		UserID:     tenantID,
		LandlordID: landlordID,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("Failed to create tenant profile: %v", err)
	}
	return profile
}

// TestPlan 创建测试套餐
func TestPlan(t *testing.T, db *gorm.DB, opts ...func(*model.Plan)) *model.Plan {
	t.Helper()

	plan := &model.Plan{
		Name:     fmt.Sprintf("Plan %d", nextSeq()),
		Price:    100,
		IsActive: true,
	}
	plan.SetChannels([]channel.Channel{channel.Email})

	for _, opt := range opts {
		opt(plan)
	}

	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("Failed to create test plan: %v", err)
	}

	return plan
}

// WithChannels 设置套餐启用的渠道
func WithChannels(channels ...channel.Channel) func(*model.Plan) {
	return func(p *model.Plan) {
		p.SetChannels(channels)
	}
}

// WithRawChannels 直接写入渠道 JSON 字段（测试历史脏数据）
func WithRawChannels(raw string) func(*model.Plan) {
	return func(p *model.Plan) {
		p.EnableNotifications = raw
	}
}

// AsDefaultPlan 标记为默认免费套餐
func AsDefaultPlan() func(*model.Plan) {
	return func(p *model.Plan) {
		p.Price = 0
		p.IsDefault = true
	}
}

// WithPrice 设置价格
func WithPrice(price float64) func(*model.Plan) {
	return func(p *model.Plan) {
		p.Price = price
	}
}

// WithDuration 设置套餐时长（天）
func WithDuration(days int) func(*model.Plan) {
	return func(p *model.Plan) {
		p.DurationDays = &days
	}
}

// TestSubscription 创建测试订阅
func TestSubscription(t *testing.T, db *gorm.DB, userID, planID int64, opts ...func(*model.Subscription)) *model.Subscription {
	t.Helper()

	now := time.Now()
	sub := &model.Subscription{
		UserID:    userID,
		PlanID:    planID,
		Status:    model.SubscriptionActive,
		StartedAt: &now,
	}

	for _, opt := range opts {
		opt(sub)
	}

	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("Failed to create test subscription: %v", err)
	}

	return sub
}

// WithStatus 设置订阅状态
func WithStatus(status string) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.Status = status
	}
}

// WithEndsAt 设置订阅到期时间
func WithEndsAt(endsAt time.Time) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.EndsAt = &endsAt
	}
}

// TestProperty 创建测试物业
func TestProperty(t *testing.T, db *gorm.DB, ownerID int64) *model.Property {
	t.Helper()

	property := &model.Property{
		OwnerID: ownerID,
		Name:    fmt.Sprintf("Property %d", nextSeq()),
	}
	if err := db.Create(property).Error; err != nil {
		t.Fatalf("Failed to create test property: %v", err)
	}
	return property
}

// TestUnit 创建测试房源单元
func TestUnit(t *testing.T, db *gorm.DB, propertyID int64) *model.Unit {
	t.Helper()

	unit := &model.Unit{
		PropertyID:  propertyID,
		Name:        fmt.Sprintf("Unit %d", nextSeq()),
		RentAmount:  500,
		IsAvailable: false,
	}
	if err := db.Create(unit).Error; err != nil {
		t.Fatalf("Failed to create test unit: %v", err)
	}
	return unit
}

// TestLease 创建测试租约
func TestLease(t *testing.T, db *gorm.DB, unitID, tenantID int64, opts ...func(*model.Lease)) *model.Lease {
	t.Helper()

	lease := &model.Lease{
		UnitID:    unitID,
		TenantID:  tenantID,
		StartDate: time.Now().AddDate(0, -6, 0),
		EndDate:   time.Now().AddDate(0, 6, 0),
		Status:    model.LeaseActive,
	}

	for _, opt := range opts {
		opt(lease)
	}

	if err := db.Create(lease).Error; err != nil {
		t.Fatalf("Failed to create test lease: %v", err)
	}

	return lease
}

// WithLeaseDates 设置租约起止日期
func WithLeaseDates(start, end time.Time) func(*model.Lease) {
	return func(l *model.Lease) {
		l.StartDate = start
		l.EndDate = end
	}
}

// WithContractTerms 设置合同条款 JSON
func WithContractTerms(terms string) func(*model.Lease) {
	return func(l *model.Lease) {
		l.ContractTerms = terms
	}
}
