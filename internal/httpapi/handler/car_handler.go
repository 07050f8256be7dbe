package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"carshare/internal/httpapi/dto"
	"carshare/internal/httpapi/middleware"
	"carshare/internal/httpapi/models"
	"carshare/internal/httpapi/repository"
	"carshare/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type CarHandler struct {
	cars      service.CarService
	ownership service.OwnershipService
}

func NewCarHandler(cars service.CarService, ownership service.OwnershipService) *CarHandler {
	return &CarHandler{cars: cars, ownership: ownership}
}

// RegisterRoutes mounts the car endpoints; the whole group requires a
// bearer token. Attach and detach deliberately skip the access check: attach
// is a self-service claim open to any authenticated user, and detach only
// ever touches the caller's own association.
func (h *CarHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)

	rg.POST("/:id/attach", h.Attach)
	rg.DELETE("/:id/detach", h.Detach)
	rg.GET("/:id/users", h.Users)
	rg.POST("/:id/share", h.Share)
}

// lookupCar resolves the :id parameter to a car, writing the failure
// response itself. A missing row is always "not found" before any access
// decision is made.
func (h *CarHandler) lookupCar(c *gin.Context, ctx context.Context, preloads ...string) (*models.Car, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusNotFound, "car not found")
		return nil, false
	}

	car, err := h.cars.Get(ctx, id, preloads...)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "car not found")
		} else {
			respondError(c, http.StatusInternalServerError, "failed to load car")
		}
		return nil, false
	}
	return car, true
}

// requireAccess runs the access predicate for the acting user and writes the
// 403 itself when the user holds no association row for the car.
func (h *CarHandler) requireAccess(c *gin.Context, ctx context.Context, carID int64, userID string) bool {
	ok, err := h.ownership.HasAccess(ctx, carID, userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to check access")
		return false
	}
	if !ok {
		respondError(c, http.StatusForbidden, "access denied: you can only manage your own cars")
		return false
	}
	return true
}

func (h *CarHandler) List(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		respondError(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cars, err := h.cars.ListForUser(ctx, userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list cars")
		return
	}

	respondOK(c, http.StatusOK, "", cars)
}

func (h *CarHandler) Create(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		respondError(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req dto.CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	car := req.ToModel()
	if err := h.cars.Create(ctx, &car, userID); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			c.JSON(http.StatusUnprocessableEntity, dto.ValidationResponse{
				Success: false,
				Message: "validation failed",
				Errors:  map[string]string{"car_brand_id": "brand or model does not exist"},
			})
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to create car")
		return
	}

	created, err := h.cars.Get(ctx, car.ID, "CarBrand", "CarModel")
	if err != nil {
		// Row is in; answer with what we have.
		created = &car
	}

	respondOK(c, http.StatusCreated, "car created successfully", created)
}

func (h *CarHandler) Get(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	car, ok := h.lookupCar(c, ctx, "CarBrand", "CarModel", "Users")
	if !ok {
		return
	}
	if !h.requireAccess(c, ctx, car.ID, userID) {
		return
	}

	respondOK(c, http.StatusOK, "", car)
}

func (h *CarHandler) Update(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req dto.UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	car, ok := h.lookupCar(c, ctx)
	if !ok {
		return
	}
	if !h.requireAccess(c, ctx, car.ID, userID) {
		return
	}

	if !req.HasData() {
		respondError(c, http.StatusBadRequest, "no fields to update")
		return
	}

	if err := h.cars.Update(ctx, car, req.Updates()); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			c.JSON(http.StatusUnprocessableEntity, dto.ValidationResponse{
				Success: false,
				Message: "validation failed",
				Errors:  map[string]string{"car_brand_id": "brand or model does not exist"},
			})
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to update car")
		return
	}

	updated, err := h.cars.Get(ctx, car.ID, "CarBrand", "CarModel")
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load car")
		return
	}

	respondOK(c, http.StatusOK, "car updated successfully", updated)
}

func (h *CarHandler) Delete(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	car, ok := h.lookupCar(c, ctx)
	if !ok {
		return
	}
	if !h.requireAccess(c, ctx, car.ID, userID) {
		return
	}

	force := c.Query("force") == "true"
	if err := h.cars.Delete(ctx, car, force); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete car")
		return
	}

	respondOK(c, http.StatusOK, "car deleted successfully", nil)
}

func (h *CarHandler) Attach(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		respondError(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	car, ok := h.lookupCar(c, ctx)
	if !ok {
		return
	}

	if err := h.ownership.Attach(ctx, car.ID, userID); err != nil {
		if errors.Is(err, service.ErrAlreadyAttached) {
			respondError(c, http.StatusConflict, "car already attached to this user")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to attach car")
		return
	}

	respondOK(c, http.StatusOK, "car attached successfully", nil)
}

func (h *CarHandler) Detach(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		respondError(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	car, ok := h.lookupCar(c, ctx)
	if !ok {
		return
	}

	if err := h.ownership.Detach(ctx, car.ID, userID); err != nil {
		if errors.Is(err, service.ErrNotAttached) {
			respondError(c, http.StatusNotFound, "car is not attached to this user")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to detach car")
		return
	}

	respondOK(c, http.StatusOK, "car detached successfully", nil)
}

func (h *CarHandler) Users(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	car, ok := h.lookupCar(c, ctx, "CarBrand", "CarModel")
	if !ok {
		return
	}
	if !h.requireAccess(c, ctx, car.ID, userID) {
		return
	}

	users, err := h.ownership.CarUsers(ctx, car.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list car users")
		return
	}

	respondOK(c, http.StatusOK, "", dto.CarUsersData{
		Car:   *car,
		Users: dto.FromUsers(users),
	})
}

func (h *CarHandler) Share(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		respondError(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req dto.ShareCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	car, ok := h.lookupCar(c, ctx)
	if !ok {
		return
	}

	recipient, err := h.ownership.Share(ctx, car.ID, userID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoAccess):
			respondError(c, http.StatusForbidden, "access denied: you have no rights over this car")
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusNotFound, "user not found")
		case errors.Is(err, service.ErrAlreadyShared):
			respondError(c, http.StatusConflict, "user already has access to this car")
		default:
			respondError(c, http.StatusInternalServerError, "failed to share car")
		}
		return
	}

	respondOK(c, http.StatusOK, "car shared successfully", dto.SharedWithData{
		SharedWith: dto.FromUser(*recipient),
	})
}
