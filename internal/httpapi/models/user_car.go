package models

import "time"

// UserCar is the join row between users and cars. A row's existence is the
// whole access model: whoever holds a row may view, mutate and share the car.
// The composite primary key keeps a (user, car) pair unique at the schema
// level, so concurrent attach calls for the same pair cannot both succeed.
type UserCar struct {
	UserID    string    `gorm:"primaryKey;type:uuid" json:"user_id"`
	CarID     int64     `gorm:"primaryKey" json:"car_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserCar) TableName() string {
	return "user_car"
}
