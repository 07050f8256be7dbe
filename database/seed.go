package database

import (
	"log/slog"

	"carshare/internal/httpapi/models"

	"gorm.io/gorm"
)

var catalogSeed = map[string][]string{
	"Toyota":        {"Camry", "Corolla", "RAV4", "Prius", "Highlander"},
	"Honda":         {"Civic", "Accord", "CR-V", "Pilot", "Odyssey"},
	"BMW":           {"3 Series", "5 Series", "7 Series", "X3", "X5"},
	"Mercedes-Benz": {"C-Class", "E-Class", "S-Class", "GLC", "GLE"},
	"Audi":          {"A3", "A4", "A6", "Q5", "Q7"},
	"Volkswagen":    {"Golf", "Jetta", "Passat", "Tiguan", "ID.4"},
	"Ford":          {"F-150", "Mustang", "Escape", "Explorer", "Bronco"},
	"Nissan":        {"Altima", "Sentra", "Rogue", "Pathfinder", "Leaf"},
	"Hyundai":       {"Elantra", "Sonata", "Tucson", "Santa Fe", "Kona"},
	"Kia":           {"Forte", "Sorento", "Sportage", "Telluride", "Soul"},
}

// SeedCatalog upserts the brand/model reference data. Idempotent, safe to
// run on every boot.
func SeedCatalog(db *gorm.DB, logger *slog.Logger) error {
	for brandName, modelNames := range catalogSeed {
		var brand models.CarBrand
		if err := db.Where(models.CarBrand{Name: brandName}).FirstOrCreate(&brand).Error; err != nil {
			return err
		}

		for _, modelName := range modelNames {
			var carModel models.CarModel
			if err := db.Where(models.CarModel{CarBrandID: brand.ID, Name: modelName}).
				FirstOrCreate(&carModel).Error; err != nil {
				return err
			}
		}
	}

	logger.Info("catalog seed applied", "brands", len(catalogSeed))
	return nil
}
