package dto

import "carshare/internal/httpapi/models"

// CreateCarRequest used for POST /cars
type CreateCarRequest struct {
	CarBrandID int64   `json:"car_brand_id" binding:"required,gt=0"`
	CarModelID int64   `json:"car_model_id" binding:"required,gt=0"`
	Year       *int    `json:"year,omitempty" binding:"omitempty,gte=1886,lte=2100"`
	Color      *string `json:"color,omitempty" binding:"omitempty,max=50"`
	Mileage    *int    `json:"mileage,omitempty" binding:"omitempty,gte=0"`
}

// UpdateCarRequest used for PUT/PATCH /cars/:id (partial updates allowed)
type UpdateCarRequest struct {
	CarBrandID *int64  `json:"car_brand_id,omitempty" binding:"omitempty,gt=0"`
	CarModelID *int64  `json:"car_model_id,omitempty" binding:"omitempty,gt=0"`
	Year       *int    `json:"year,omitempty" binding:"omitempty,gte=1886,lte=2100"`
	Color      *string `json:"color,omitempty" binding:"omitempty,max=50"`
	Mileage    *int    `json:"mileage,omitempty" binding:"omitempty,gte=0"`
}

// ShareCarRequest used for POST /cars/:id/share
type ShareCarRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// CarUsersData is the payload of GET /cars/:id/users.
type CarUsersData struct {
	Car   models.Car     `json:"car"`
	Users []UserResponse `json:"users"`
}

// SharedWithData echoes the recipient of a successful share.
type SharedWithData struct {
	SharedWith UserResponse `json:"shared_with"`
}

func (r CreateCarRequest) ToModel() models.Car {
	return models.Car{
		CarBrandID: r.CarBrandID,
		CarModelID: r.CarModelID,
		Year:       r.Year,
		Color:      r.Color,
		Mileage:    r.Mileage,
	}
}

// HasData reports whether the update carries at least one field.
func (r UpdateCarRequest) HasData() bool {
	return r.CarBrandID != nil || r.CarModelID != nil || r.Year != nil || r.Color != nil || r.Mileage != nil
}

// Updates builds the column map for a partial update.
func (r UpdateCarRequest) Updates() map[string]any {
	updates := make(map[string]any)
	if r.CarBrandID != nil {
		updates["car_brand_id"] = *r.CarBrandID
	}
	if r.CarModelID != nil {
		updates["car_model_id"] = *r.CarModelID
	}
	if r.Year != nil {
		updates["year"] = *r.Year
	}
	if r.Color != nil {
		updates["color"] = *r.Color
	}
	if r.Mileage != nil {
		updates["mileage"] = *r.Mileage
	}
	return updates
}
