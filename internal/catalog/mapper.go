package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/angelmondragon/stockdesk/pkg/clock"
	pkgerrors "github.com/angelmondragon/stockdesk/pkg/errors"
	"github.com/angelmondragon/stockdesk/pkg/models"
	"go.uber.org/multierr"
)

// DecodeProduct maps a raw product record embedded in another reply.
// It returns nil when the record is absent.
func DecodeProduct(raw json.RawMessage, c clock.Clock) (*models.Product, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	var rec productRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDecode, err, "decode product")
	}
	p, err := toProduct(rec, c)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func toProduct(rec productRecord, c clock.Clock) (models.Product, error) {
	if rec.ID == nil {
		return models.Product{}, missingID("product")
	}
	p := models.Product{
		ID:                int64(*rec.ID),
		Name:              rec.Name,
		SKU:               rec.SKU,
		ImportPriceMinor:  int64(rec.ImportPrice),
		SellingPriceMinor: int64(rec.SellingPrice),
		Count:             int(rec.Count),
		Images:            toImages(rec.Images),
		CreatedAt:         rec.CreatedAt.Or(c),
		UpdatedAt:         rec.UpdatedAt.Or(c),
	}
	if rec.Description != nil {
		p.Description = *rec.Description
	}
	if rec.Category != nil {
		category, err := toCategory(*rec.Category)
		if err != nil {
			return models.Product{}, fmt.Errorf("product %d: %w", p.ID, err)
		}
		p.Category = &category
	}
	return p, nil
}

func toCategory(rec categoryRecord) (models.Category, error) {
	if rec.ID == nil {
		return models.Category{}, missingID("category")
	}
	category := models.Category{ID: int64(*rec.ID), Name: rec.Name}
	if rec.Description != nil {
		category.Description = *rec.Description
	}
	return category, nil
}

func toImages(recs []imageRecord) []models.ProductImage {
	images := make([]models.ProductImage, 0, len(recs))
	for _, rec := range recs {
		images = append(images, models.ProductImage{
			URL:       rec.URL,
			AltText:   rec.AltText,
			Position:  int(rec.Position),
			IsPrimary: rec.IsPrimary,
		})
	}
	return images
}

func toProducts(recs []productRecord, c clock.Clock) ([]models.Product, error) {
	products := make([]models.Product, 0, len(recs))
	var errs error
	for i, rec := range recs {
		p, err := toProduct(rec, c)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("products[%d]: %w", i, err))
			continue
		}
		products = append(products, p)
	}
	if errs != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDecode, errs, "decode products")
	}
	return products, nil
}

func toCategories(recs []categoryRecord) ([]models.Category, error) {
	categories := make([]models.Category, 0, len(recs))
	var errs error
	for i, rec := range recs {
		category, err := toCategory(rec)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("categories[%d]: %w", i, err))
			continue
		}
		categories = append(categories, category)
	}
	if errs != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDecode, errs, "decode categories")
	}
	return categories, nil
}

func missingID(kind string) error {
	return pkgerrors.New(pkgerrors.CodeDecode, kind+" record has no id")
}
