package models

import (
	"time"

	"gorm.io/gorm"
)

type Car struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CarBrandID int64          `gorm:"not null;index" json:"car_brand_id"`
	CarModelID int64          `gorm:"not null;index" json:"car_model_id"`
	Year       *int           `json:"year,omitempty"`
	Color      *string        `json:"color,omitempty"`
	Mileage    *int           `json:"mileage,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	CarBrand *CarBrand `gorm:"foreignKey:CarBrandID" json:"car_brand,omitempty"`
	CarModel *CarModel `gorm:"foreignKey:CarModelID" json:"car_model,omitempty"`
	Users    []User    `gorm:"many2many:user_car;joinForeignKey:CarID;joinReferences:UserID" json:"users,omitempty"`
}

func (Car) TableName() string {
	return "cars"
}
