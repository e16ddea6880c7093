package database

import (
	"math/rand"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/loftmebel/backend/internal/models"
)

// SeedDemoData fills an empty database with demo fixtures for storefront
// development. It is a no-op when products already exist.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	logrus.Info("Seeding demo data...")

	colors := []models.Color{
		{Title: "Graphite", HexCode: "#383633"},
		{Title: "Oak", HexCode: "#C89F73"},
		{Title: "Ivory", HexCode: "#F4EFE6"},
		{Title: "Forest", HexCode: "#2F4A3C"},
	}
	if err := db.Create(&colors).Error; err != nil {
		return err
	}

	sizes := []models.Size{
		{Height: 75, Width: 120, Length: 60},
		{Height: 90, Width: 200, Length: 90},
		{Height: 45, Width: 45, Length: 45},
	}
	if err := db.Create(&sizes).Error; err != nil {
		return err
	}

	roots := []string{"Sofas", "Tables", "Chairs", "Storage"}
	for _, title := range roots {
		root := models.Category{Title: title}
		if err := db.Create(&root).Error; err != nil {
			return err
		}
		for i := 0; i < 2; i++ {
			child := models.Category{
				Title:    title + " " + faker.Word(),
				ParentID: &root.ID,
			}
			if err := db.Create(&child).Error; err != nil {
				return err
			}
			for j := 0; j < 5; j++ {
				product := models.Product{
					Title:       faker.Word() + " " + title,
					Photo:       "/images/products/placeholder.jpg",
					Price:       float64(rand.Intn(90000)+1000) / 100,
					Description: faker.Paragraph(),
					CategoryID:  &child.ID,
					Colors:      []models.Color{colors[rand.Intn(len(colors))]},
					Sizes:       []models.Size{sizes[rand.Intn(len(sizes))]},
				}
				if err := db.Create(&product).Error; err != nil {
					return err
				}

				if rand.Intn(3) == 0 {
					discount := models.Discount{
						ProductID: product.ID,
						Percent:   float64(rand.Intn(40) + 5),
						ExpiresIn: time.Now().AddDate(0, 1, 0),
						IsActive:  true,
					}
					if err := db.Create(&discount).Error; err != nil {
						return err
					}
				}

				for k := 0; k < rand.Intn(4); k++ {
					review := models.Review{
						ProductID: product.ID,
						Rating:    float64(rand.Intn(5) + 1),
						Text:      faker.Sentence(),
					}
					if err := db.Create(&review).Error; err != nil {
						return err
					}
				}
			}
		}
	}

	banners := []models.Banner{
		{Photo: "/images/banners/main.jpg", Heading: "New season", Subheading: "Furniture for every room", Button: "Shop now", URL: "/products/"},
		{Photo: "/images/banners/sale.jpg", Heading: "Sale", Subheading: "Up to 40% off", Button: "See discounts", URL: "/products/discounted/"},
	}
	if err := db.Create(&banners).Error; err != nil {
		return err
	}

	logrus.Info("Demo data seeded")
	return nil
}
