package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"carshare/internal/httpapi/models"
	"carshare/internal/httpapi/repository"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the read-only brand/model reference data. No auth:
// the catalog is public so registration flows can populate pickers.
type CatalogHandler struct {
	brands    *repository.Store[models.CarBrand]
	carModels *repository.Store[models.CarModel]
}

func NewCatalogHandler(brands *repository.Store[models.CarBrand], carModels *repository.Store[models.CarModel]) *CatalogHandler {
	return &CatalogHandler{brands: brands, carModels: carModels}
}

func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/car-brands", h.Brands)
	rg.GET("/car-models", h.Models)
}

func (h *CatalogHandler) Brands(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	brands, err := h.brands.GetAll(ctx, nil)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list car brands")
		return
	}

	respondOK(c, http.StatusOK, "", brands)
}

// Models lists car models, optionally filtered by ?car_brand_id=.
func (h *CatalogHandler) Models(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var conds map[string]any
	if raw := c.Query("car_brand_id"); raw != "" {
		brandID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid car_brand_id")
			return
		}
		conds = map[string]any{"car_brand_id": brandID}
	}

	carModels, err := h.carModels.GetAll(ctx, conds)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list car models")
		return
	}

	respondOK(c, http.StatusOK, "", carModels)
}
