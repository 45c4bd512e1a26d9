package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrimaryImageURL(t *testing.T) {
	cases := []struct {
		name   string
		images []ProductImage
		want   string
	}{
		{name: "empty", images: nil, want: ""},
		{
			name: "flagged wins",
			images: []ProductImage{
				{URL: "a", Position: 0, IsPrimary: false},
				{URL: "b", Position: 1, IsPrimary: true},
			},
			want: "b",
		},
		{
			name: "first by position when none flagged",
			images: []ProductImage{
				{URL: "late", Position: 5},
				{URL: "early", Position: 2},
			},
			want: "early",
		},
		{
			name: "earliest flagged by position",
			images: []ProductImage{
				{URL: "second", Position: 3, IsPrimary: true},
				{URL: "first", Position: 1, IsPrimary: true},
			},
			want: "first",
		},
		{
			name: "ties keep input order",
			images: []ProductImage{
				{URL: "x", Position: 0},
				{URL: "y", Position: 0},
			},
			want: "x",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Product{Images: tc.images}
			assert.Equal(t, tc.want, p.PrimaryImageURL())
		})
	}
}

func TestPrimaryImageURLDoesNotReorderImages(t *testing.T) {
	p := Product{Images: []ProductImage{{URL: "b", Position: 2}, {URL: "a", Position: 1}}}
	_ = p.PrimaryImageURL()
	assert.Equal(t, "b", p.Images[0].URL)
}

func TestOrderTotals(t *testing.T) {
	order := Order{Items: []OrderItem{
		{UnitPriceMinor: 1999, Quantity: 2},
		{UnitPriceMinor: 500, Quantity: 3},
	}}
	assert.Equal(t, int64(3998), order.Items[0].TotalPriceMinor())
	assert.Equal(t, int64(5498), order.RecomputeTotal())
	assert.Equal(t, int64(5498), order.TotalPriceMinor)
}

func TestPromotionActiveAt(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	promo := Promotion{IsActive: true, StartAt: &start, EndAt: &end}

	assert.False(t, promo.ActiveAt(start.Add(-time.Second)))
	assert.True(t, promo.ActiveAt(start))
	assert.True(t, promo.ActiveAt(end))
	assert.False(t, promo.ActiveAt(end.Add(time.Second)))

	open := Promotion{IsActive: true}
	assert.True(t, open.ActiveAt(end))

	flaggedOff := Promotion{IsActive: false}
	assert.False(t, flaggedOff.ActiveAt(end))
}

func TestSelectedIDs(t *testing.T) {
	sel := []Selection[Product]{{Item: Product{ID: 3}, Quantity: 1}, {Item: Product{ID: 9}, Quantity: 4}}
	assert.Equal(t, []int64{3, 9}, SelectedIDs(sel, func(p Product) int64 { return p.ID }))
}
