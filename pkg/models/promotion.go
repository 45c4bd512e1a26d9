package models

import "time"

// Promotion is a percentage discount over a set of products, optionally bounded in time.
type Promotion struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	DiscountPercent float64    `json:"discountPercent"`
	StartAt         *time.Time `json:"startAt"`
	EndAt           *time.Time `json:"endAt"`
	IsActive        bool       `json:"isActive"`
	ProductIDs      []int64    `json:"productIds"`
}

// ActiveAt reports whether the promotion is flagged active and now falls inside its window.
// An unset bound is open.
func (p Promotion) ActiveAt(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.StartAt != nil && now.Before(*p.StartAt) {
		return false
	}
	if p.EndAt != nil && now.After(*p.EndAt) {
		return false
	}
	return true
}
