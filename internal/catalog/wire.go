package catalog

import "github.com/angelmondragon/stockdesk/pkg/flex"

// Selections shared by every document that returns catalog records.
const (
	CategorySelection = "id name description"
	ImageSelection    = "url altText position isPrimary"
	ProductSelection  = "id name sku description importPrice sellingPrice count createdAt updatedAt " +
		"category { " + CategorySelection + " } images { " + ImageSelection + " }"
	productPageSelection = "totalCount items { " + ProductSelection + " }"
)

type categoryRecord struct {
	ID          *flex.Int `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
}

type imageRecord struct {
	URL       string   `json:"url"`
	AltText   *string  `json:"altText"`
	Position  flex.Int `json:"position"`
	IsPrimary bool     `json:"isPrimary"`
}

type productRecord struct {
	ID           *flex.Int       `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Description  *string         `json:"description"`
	ImportPrice  flex.Money      `json:"importPrice"`
	SellingPrice flex.Money      `json:"sellingPrice"`
	Count        flex.Int        `json:"count"`
	Category     *categoryRecord `json:"category"`
	Images       []imageRecord   `json:"images"`
	CreatedAt    flex.Time       `json:"createdAt"`
	UpdatedAt    flex.Time       `json:"updatedAt"`
}

type productPage struct {
	TotalCount flex.Int        `json:"totalCount"`
	Items      []productRecord `json:"items"`
}
