package promotions

import "github.com/angelmondragon/stockdesk/pkg/flex"

const promotionSelection = "id name discountPercent startAt endAt isActive productIds"

type promotionRecord struct {
	ID              *flex.Int  `json:"id"`
	Name            string     `json:"name"`
	DiscountPercent flex.Float `json:"discountPercent"`
	StartAt         *flex.Time `json:"startAt"`
	EndAt           *flex.Time `json:"endAt"`
	IsActive        bool       `json:"isActive"`
	ProductIDs      []flex.Int `json:"productIds"`
}
