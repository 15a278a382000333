package models

import (
	"gorm.io/gorm"
)

// SystemConfig is a single-row table holding promotion-wide settings.
type SystemConfig struct {
	gorm.Model
	PromotionActive       *bool  `json:"promotionActive" gorm:"default:true"`
	MaxReservationsGlobal int    `json:"maxReservationsGlobal" gorm:"default:1000"`
	FromEmail             string `json:"fromEmail"`
	FromName              string `json:"fromName"`
	ReplyToEmail          string `json:"replyToEmail"`
	SupportEmail          string `json:"supportEmail"`
	SupportPhone          string `json:"supportPhone"`
	AllowCancellations    bool   `json:"allowCancellations" gorm:"default:false"`
	UpdatedBy             string `json:"updatedBy"`
}
