package seeds

import (
	"gorm.io/gorm"

	catalog "pustaka_backend/internals/seeds/catalog"
)

func RunAllSeeds(db *gorm.DB) {
	catalog.SeedCatalogFromJSON(db, "internals/seeds/catalog/data_catalog.json")
}
