package service

import (
	"context"

	"carshare/internal/httpapi/models"
	"carshare/internal/httpapi/repository"

	"gorm.io/gorm"
)

// CarService is the thin CRUD layer over cars. Creation attaches the creator
// in the same transaction; deletion clears the association rows first so no
// orphaned access survives the car.
type CarService interface {
	ListForUser(ctx context.Context, userID string) ([]models.Car, error)
	Get(ctx context.Context, id int64, preloads ...string) (*models.Car, error)
	Create(ctx context.Context, car *models.Car, ownerID string) error
	Update(ctx context.Context, car *models.Car, updates map[string]any) error
	Delete(ctx context.Context, car *models.Car, force bool) error
}

type carService struct {
	db         *gorm.DB
	cars       *repository.Store[models.Car]
	ownerships repository.OwnershipRepository
}

func NewCarService(db *gorm.DB, cars *repository.Store[models.Car], ownerships repository.OwnershipRepository) CarService {
	return &carService{db: db, cars: cars, ownerships: ownerships}
}

func (s *carService) ListForUser(ctx context.Context, userID string) ([]models.Car, error) {
	return s.ownerships.CarsForUser(ctx, userID)
}

func (s *carService) Get(ctx context.Context, id int64, preloads ...string) (*models.Car, error) {
	return s.cars.GetOne(ctx, id, preloads...)
}

// Create inserts the car and the creator's association row atomically.
func (s *carService) Create(ctx context.Context, car *models.Car, ownerID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(car).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserCar{UserID: ownerID, CarID: car.ID}).Error
	})
	return repository.MapError(err)
}

func (s *carService) Update(ctx context.Context, car *models.Car, updates map[string]any) error {
	return s.cars.UpdateOne(ctx, car, updates)
}

// Delete removes every user association and then the car itself, in one
// transaction. Soft delete by default; force drops the row.
func (s *carService) Delete(ctx context.Context, car *models.Car, force bool) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("car_id = ?", car.ID).Delete(&models.UserCar{}).Error; err != nil {
			return err
		}
		if force {
			tx = tx.Unscoped()
		}
		return tx.Delete(car).Error
	})
	return repository.MapError(err)
}
