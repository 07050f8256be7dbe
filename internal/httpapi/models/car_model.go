package models

import "time"

type CarModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CarBrandID int64     `gorm:"not null;index;uniqueIndex:idx_brand_model_name" json:"car_brand_id"`
	Name       string    `gorm:"not null;uniqueIndex:idx_brand_model_name" json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	CarBrand *CarBrand `gorm:"foreignKey:CarBrandID" json:"car_brand,omitempty"`
}

func (CarModel) TableName() string {
	return "car_models"
}
