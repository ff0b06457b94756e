package seeders

import (
	"encoding/json"
	"fmt"
	"os"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/lumina/app/models"
	"github.com/shashiranjanraj/lumina/config"
)

func init() {
	Register("products", SeedProducts)
}

// SeedProducts imports the static catalogue file into the products table.
// The file carries explicit ids, and the upsert preserves them: catalogue
// ids must stay dense 1..N across reseeds or every existing cart cookie
// would point at the wrong products.
func SeedProducts(db *gorm.DB) error {
	path := config.CatalogPath()
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalogue %s: %w", path, err)
	}

	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return fmt.Errorf("parse catalogue %s: %w", path, err)
	}

	for i, p := range products {
		if int(p.ID) != i+1 {
			return fmt.Errorf("catalogue ids must be dense 1..N: position %d has id %d", i, p.ID)
		}
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&products).Error
}
