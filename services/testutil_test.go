package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pdvapp/restaurant-pos/models"
	"github.com/pdvapp/restaurant-pos/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)

	// one pooled connection keeps sqlite writes serialized under the
	// concurrent collection tests
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Ingredient{},
		&models.Product{},
		&models.Option{},
		&models.OptionValue{},
		&models.ProductAddon{},
		&models.TableSession{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemOption{},
		&models.OrderItemAddon{},
	))
	return db
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

// seedBurger stores the standard fixture: Burger 20.00 with required
// single-choice Bread (White +0.00 default / Wheat +1.50) and a Bacon
// addon (extra 3.00 over ingredient 1.00, max 2).
func seedBurger(t *testing.T, db *gorm.DB) models.Product {
	t.Helper()

	category := models.Category{Name: "Sandwiches"}
	require.NoError(t, db.Create(&category).Error)

	bacon := models.Ingredient{Name: "Bacon", Unit: "slice", UnitPrice: dec("1.00")}
	require.NoError(t, db.Create(&bacon).Error)

	product := models.Product{
		CategoryID: category.ID,
		Name:       "Burger",
		Price:      dec("20.00"),
	}
	require.NoError(t, db.Create(&product).Error)

	option := models.Option{
		Name:     "Bread",
		Type:     models.OptionTypeSingle,
		Required: true,
		Values: []models.OptionValue{
			{Name: "White", PriceIncrement: dec("0.00"), DefaultOption: true},
			{Name: "Wheat", PriceIncrement: dec("1.50")},
		},
	}
	require.NoError(t, db.Create(&option).Error)
	require.NoError(t, db.Model(&product).Association("Options").Append(&option))

	addon := models.ProductAddon{
		ProductID:    product.ID,
		IngredientID: bacon.ID,
		ExtraPrice:   dec("3.00"),
		MaxQuantity:  intPtr(2),
	}
	require.NoError(t, db.Create(&addon).Error)

	require.NoError(t, db.Preload("Options.Values").Preload("Addons.Ingredient").First(&product, product.ID).Error)
	return product
}

// wheatValueID digs the Wheat option value out of the seeded product.
func wheatValueID(t *testing.T, product models.Product) (optionID, valueID uint) {
	t.Helper()
	for _, o := range product.Options {
		for _, v := range o.Values {
			if v.Name == "Wheat" {
				return o.ID, v.ID
			}
		}
	}
	t.Fatal("wheat value not seeded")
	return 0, 0
}

func burgerSubmission(t *testing.T, product models.Product, table string) CreateOrderInput {
	t.Helper()
	optID, valID := wheatValueID(t, product)
	return CreateOrderInput{
		Table: table,
		Items: []OrderItemInput{{
			ProductID: product.ID,
			Quantity:  2,
			Options:   []OrderOptionInput{{OptionID: optID, OptionValueID: valID}},
			Addons:    []OrderAddonInput{{ProductAddonID: product.Addons[0].ID, Quantity: 2}},
		}},
	}
}
