package models

import (
	"sort"
	"time"
)

// Category groups products in the catalog.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProductImage is one picture attached to a product.
type ProductImage struct {
	URL       string  `json:"url"`
	AltText   *string `json:"altText,omitempty"`
	Position  int     `json:"position"`
	IsPrimary bool    `json:"isPrimary"`
}

// Product is a catalog item. Prices are integer minor units.
type Product struct {
	ID                int64          `json:"id"`
	Name              string         `json:"name"`
	SKU               string         `json:"sku,omitempty"`
	Description       string         `json:"description,omitempty"`
	ImportPriceMinor  int64          `json:"importPrice"`
	SellingPriceMinor int64          `json:"sellingPrice"`
	Count             int            `json:"count"`
	Category          *Category      `json:"category,omitempty"`
	Images            []ProductImage `json:"images"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// PrimaryImageURL returns the display image: the first flagged primary image by position,
// else the first image by position, else "".
func (p Product) PrimaryImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	ordered := make([]ProductImage, len(p.Images))
	copy(ordered, p.Images)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})
	for _, img := range ordered {
		if img.IsPrimary {
			return img.URL
		}
	}
	return ordered[0].URL
}
