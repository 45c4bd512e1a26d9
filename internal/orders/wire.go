package orders

import (
	"encoding/json"

	"github.com/angelmondragon/stockdesk/internal/catalog"
	"github.com/angelmondragon/stockdesk/pkg/flex"
)

const (
	itemSelection  = "id productId quantity unitPrice product { " + catalog.ProductSelection + " }"
	orderSelection = "id customerName status totalPrice createdAt updatedAt items { " + itemSelection + " }"
	pageSelection  = "totalCount items { " + orderSelection + " }"
)

type itemRecord struct {
	ID        *flex.Int       `json:"id"`
	ProductID *flex.Int       `json:"productId"`
	Quantity  flex.Int        `json:"quantity"`
	UnitPrice flex.Money      `json:"unitPrice"`
	Product   json.RawMessage `json:"product"`
}

type orderRecord struct {
	ID           *flex.Int    `json:"id"`
	CustomerName string       `json:"customerName"`
	Status       string       `json:"status"`
	TotalPrice   *flex.Money  `json:"totalPrice"`
	Items        []itemRecord `json:"items"`
	CreatedAt    flex.Time    `json:"createdAt"`
	UpdatedAt    flex.Time    `json:"updatedAt"`
}

type orderPage struct {
	TotalCount flex.Int      `json:"totalCount"`
	Items      []orderRecord `json:"items"`
}
