package query

import (
	"encoding/json"
	"time"

	"github.com/angelmondragon/stockdesk/pkg/models"
)

// Nullable is a field that can be left unchanged (zero value), cleared (Null) or set (Value).
type Nullable[T any] struct {
	present bool
	value   *T
}

// Null clears the field on the remote.
func Null[T any]() Nullable[T] {
	return Nullable[T]{present: true}
}

// Value sets the field to v.
func Value[T any](v T) Nullable[T] {
	return Nullable[T]{present: true, value: &v}
}

// Omitted reports whether the field is left unchanged.
func (n Nullable[T]) Omitted() bool { return !n.present }

// IsNull reports whether the field is explicitly cleared.
func (n Nullable[T]) IsNull() bool { return n.present && n.value == nil }

// Get returns the value when one is set.
func (n Nullable[T]) Get() (T, bool) {
	if n.value == nil {
		var zero T
		return zero, false
	}
	return *n.value, true
}

// UnmarshalJSON marks the field present; a JSON null clears it.
func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.present = true
	if string(b) == "null" {
		n.value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.value = &v
	return nil
}

// PromotionUpdate is a partial update. StartAt and EndAt are the only fields
// that can be cleared by sending an explicit null.
type PromotionUpdate struct {
	ID              int64               `json:"-" validate:"min=1"`
	Name            *string             `json:"name" validate:"omitempty,min=1,max=200"`
	DiscountPercent *float64            `json:"discountPercent" validate:"omitempty,gte=0,lte=100"`
	IsActive        *bool               `json:"isActive"`
	StartAt         Nullable[time.Time] `json:"startAt"`
	EndAt           Nullable[time.Time] `json:"endAt"`
	ProductIDs      []int64             `json:"productIds"`
}

// Input renders the update object: absent fields are omitted, cleared dates are null.
func (u PromotionUpdate) Input() (map[string]any, error) {
	if err := validateStruct(u); err != nil {
		return nil, err
	}
	start, hasStart := u.StartAt.Get()
	end, hasEnd := u.EndAt.Get()
	if hasStart && hasEnd && end.Before(start) {
		return nil, invalid("endAt", "must not precede startAt")
	}

	input := map[string]any{}
	if u.Name != nil {
		input["name"] = *u.Name
	}
	if u.DiscountPercent != nil {
		input["discountPercent"] = *u.DiscountPercent
	}
	if u.IsActive != nil {
		input["isActive"] = *u.IsActive
	}
	setNullableTime(input, "startAt", u.StartAt)
	setNullableTime(input, "endAt", u.EndAt)
	if u.ProductIDs != nil {
		input["productIds"] = u.ProductIDs
	}
	if len(input) == 0 {
		return nil, invalid("input", "nothing to update")
	}
	return input, nil
}

func setNullableTime(input map[string]any, key string, v Nullable[time.Time]) {
	switch {
	case v.Omitted():
	case v.IsNull():
		input[key] = nil
	default:
		t, _ := v.Get()
		input[key] = t.UTC().Format(time.RFC3339)
	}
}

// AssignProducts replaces the promotion's products with the selected ones.
func (u PromotionUpdate) AssignProducts(selected []models.Selection[models.Product]) PromotionUpdate {
	u.ProductIDs = models.SelectedIDs(selected, func(p models.Product) int64 { return p.ID })
	return u
}
