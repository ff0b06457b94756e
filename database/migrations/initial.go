package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/lumina/app/models"
	"github.com/shashiranjanraj/lumina/pkg/migration"
)

func init() {
	migration.Register("20260115000000_create_products_table", createProducts{})
	migration.Register("20260115000001_create_receipts_table", createReceipts{})
}

type createProducts struct{}

func (createProducts) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (createProducts) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Product{})
}

type createReceipts struct{}

func (createReceipts) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Receipt{})
}

func (createReceipts) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Receipt{})
}
