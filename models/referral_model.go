package models

import "time"

type Referral struct {
	ID             uint   `gorm:"primary_key"`
	ReferrerID     uint   `gorm:"not null"`
	ReferredUserID uint   `gorm:"not null;unique"`
	Status         string  `gorm:"size:20;not null;default:'pending'"`
	RewardAmount   float64 `gorm:"type:numeric(10,2);default:0.00"`

	Referrer     User `gorm:"foreignkey:ReferrerID"`
	ReferredUser User `gorm:"foreignkey:ReferredUserID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
