package model

import (
	"encoding/json"
	"time"
)

// 租约状态
const (
	LeaseActive     = "active"
	LeaseExpired    = "expired"
	LeaseTerminated = "terminated"
)

type Lease struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	UnitID        int64     `gorm:"not null;index" json:"unit_id"`
	TenantID      int64     `gorm:"not null;index" json:"tenant_id"`
	StartDate     time.Time `gorm:"not null" json:"start_date"`
	EndDate       time.Time `gorm:"not null;index" json:"end_date"`
	Status        string    `gorm:"size:20;default:active;index" json:"status"`
	ContractTerms string    `gorm:"type:text" json:"contract_terms"` // JSON，含 rent_due_day、grace_period_days
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Lease) TableName() string {
	return "leases"
}

// LeaseTerms 合同条款中与租金提醒相关的字段
type LeaseTerms struct {
	RentDueDay      int `json:"rent_due_day"`      // 每月租金到期日（1-31）
	GracePeriodDays int `json:"grace_period_days"` // 宽限期天数
}

// Terms 解析合同条款；非法或缺失数据按零值处理
func (l *Lease) Terms() LeaseTerms {
	var terms LeaseTerms
	if l.ContractTerms == "" {
		return terms
	}
	if err := json.Unmarshal([]byte(l.ContractTerms), &terms); err != nil {
		return LeaseTerms{}
	}
	return terms
}
