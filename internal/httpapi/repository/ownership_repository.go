package repository

import (
	"context"

	"carshare/internal/httpapi/models"

	"gorm.io/gorm"
)

// OwnershipRepository manages the user_car join rows. Everything above it
// works in terms of access, never raw rows.
type OwnershipRepository interface {
	Exists(ctx context.Context, userID string, carID int64) (bool, error)
	Attach(ctx context.Context, userID string, carID int64) error
	Detach(ctx context.Context, userID string, carID int64) error
	UsersForCar(ctx context.Context, carID int64) ([]models.User, error)
	CarsForUser(ctx context.Context, userID string) ([]models.Car, error)
}

type ownershipRepository struct {
	db *gorm.DB
}

func NewOwnershipRepository(db *gorm.DB) OwnershipRepository {
	return &ownershipRepository{db: db}
}

func (r *ownershipRepository) Exists(ctx context.Context, userID string, carID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserCar{}).
		Where("user_id = ? AND car_id = ?", userID, carID).
		Count(&count).Error; err != nil {
		return false, MapError(err)
	}
	return count > 0, nil
}

// Attach inserts the association row. The composite primary key on user_car
// makes the insert fail with ErrDuplicate when the pair already exists, which
// is what keeps two concurrent attaches for the same pair from both winning.
func (r *ownershipRepository) Attach(ctx context.Context, userID string, carID int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&models.UserCar{UserID: userID, CarID: carID}).Error
	})
	return MapError(err)
}

func (r *ownershipRepository) Detach(ctx context.Context, userID string, carID int64) error {
	var rows int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND car_id = ?", userID, carID).Delete(&models.UserCar{})
		rows = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ownershipRepository) UsersForCar(ctx context.Context, carID int64) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN user_car uc ON uc.user_id = users.id").
		Where("uc.car_id = ?", carID).
		Find(&users).Error; err != nil {
		return nil, MapError(err)
	}
	return users, nil
}

func (r *ownershipRepository) CarsForUser(ctx context.Context, userID string) ([]models.Car, error) {
	var cars []models.Car
	if err := r.db.WithContext(ctx).
		Preload("CarBrand").
		Preload("CarModel").
		Joins("JOIN user_car uc ON uc.car_id = cars.id").
		Where("uc.user_id = ?", userID).
		Find(&cars).Error; err != nil {
		return nil, MapError(err)
	}
	return cars, nil
}
