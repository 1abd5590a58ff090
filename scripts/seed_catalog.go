package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"fastfoodbot/internal/database"
	"fastfoodbot/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Заливает каталог из YAML в SQLite. Существующие категории и товары
// обновляются по названию, новые создаются.
type CatalogConfig struct {
	Categories []struct {
		NameUz    string `yaml:"name_uz"`
		NameRu    string `yaml:"name_ru"`
		SortOrder int64  `yaml:"sort_order"`
		Products  []struct {
			NameUz        string `yaml:"name_uz"`
			NameRu        string `yaml:"name_ru"`
			DescriptionUz string `yaml:"description_uz"`
			DescriptionRu string `yaml:"description_ru"`
			Price         int64  `yaml:"price"`
			PhotoURL      string `yaml:"photo_url"`
		} `yaml:"products"`
	} `yaml:"categories"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		catalogPath = flag.String("catalog", "configs/catalog.yaml", "path to catalog.yaml")
		dbPath      = flag.String("db", "./data/fastfood.db", "path to sqlite db")
	)
	flag.Parse()

	data, err := os.ReadFile(*catalogPath)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}
	var cfg CatalogConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}
	if len(cfg.Categories) == 0 {
		return fmt.Errorf("no categories in yaml")
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created := 0
	updated := 0
	for _, c := range cfg.Categories {
		if c.NameUz == "" || c.NameRu == "" {
			continue
		}

		category, err := db.GetCategoryByName(ctx, c.NameUz)
		switch {
		case err == nil:
			category.NameRu = c.NameRu
			category.SortOrder = c.SortOrder
			if err = db.UpdateCategory(ctx, category); err != nil {
				return fmt.Errorf("update category %s: %w", c.NameUz, err)
			}
			updated++
		case errors.Is(err, database.ErrNotFound):
			category = &models.Category{
				NameUz:    c.NameUz,
				NameRu:    c.NameRu,
				IsActive:  true,
				SortOrder: c.SortOrder,
			}
			if err = db.CreateCategory(ctx, category); err != nil {
				return fmt.Errorf("create category %s: %w", c.NameUz, err)
			}
			created++
		default:
			return fmt.Errorf("get category %s: %w", c.NameUz, err)
		}

		for _, p := range c.Products {
			if p.NameUz == "" || p.NameRu == "" {
				continue
			}

			product, err := db.GetProductByName(ctx, p.NameUz)
			switch {
			case err == nil:
				product.CategoryID = category.ID
				product.NameRu = p.NameRu
				product.DescriptionUz = p.DescriptionUz
				product.DescriptionRu = p.DescriptionRu
				product.Price = p.Price
				product.PhotoURL = p.PhotoURL
				if err = db.UpdateProduct(ctx, product); err != nil {
					return fmt.Errorf("update product %s: %w", p.NameUz, err)
				}
				updated++
			case errors.Is(err, database.ErrNotFound):
				product = &models.Product{
					CategoryID:    category.ID,
					NameUz:        p.NameUz,
					NameRu:        p.NameRu,
					DescriptionUz: p.DescriptionUz,
					DescriptionRu: p.DescriptionRu,
					Price:         p.Price,
					PhotoURL:      p.PhotoURL,
					IsAvailable:   true,
				}
				if err = db.CreateProduct(ctx, product); err != nil {
					return fmt.Errorf("create product %s: %w", p.NameUz, err)
				}
				created++
			default:
				return fmt.Errorf("get product %s: %w", p.NameUz, err)
			}
		}
	}

	fmt.Printf("done: created=%d updated=%d\n", created, updated)
	return nil
}
