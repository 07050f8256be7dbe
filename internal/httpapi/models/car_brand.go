package models

import "time"

type CarBrand struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CarModels []CarModel `gorm:"foreignKey:CarBrandID" json:"car_models,omitempty"`
}

func (CarBrand) TableName() string {
	return "car_brands"
}
