package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateCarRequest_HasData(t *testing.T) {
	assert.False(t, UpdateCarRequest{}.HasData())

	color := "red"
	assert.True(t, UpdateCarRequest{Color: &color}.HasData())

	brand := int64(3)
	assert.True(t, UpdateCarRequest{CarBrandID: &brand}.HasData())
}

func TestUpdateCarRequest_Updates(t *testing.T) {
	year := 2021
	mileage := 0
	req := UpdateCarRequest{Year: &year, Mileage: &mileage}

	updates := req.Updates()

	assert.Equal(t, map[string]any{"year": 2021, "mileage": 0}, updates)
}

func TestUpdateCarRequest_UpdatesEmpty(t *testing.T) {
	assert.Empty(t, UpdateCarRequest{}.Updates())
}

func TestCreateCarRequest_ToModel(t *testing.T) {
	year := 2020
	req := CreateCarRequest{CarBrandID: 1, CarModelID: 2, Year: &year}

	car := req.ToModel()

	assert.Equal(t, int64(1), car.CarBrandID)
	assert.Equal(t, int64(2), car.CarModelID)
	assert.Equal(t, 2020, *car.Year)
	assert.Nil(t, car.Color)
}
