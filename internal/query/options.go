package query

import (
	"strings"
	"time"

	"github.com/angelmondragon/stockdesk/pkg/enums"
)

// DateLayout is the format of range filter dates.
const DateLayout = "2006-01-02"

// Options is the caller's filter, sort and paging intent. Nil pointers are absent filters.
type Options struct {
	Page       int                `json:"page" validate:"min=1"`
	PageSize   int                `json:"pageSize" validate:"min=1,max=500"`
	Search     *string            `json:"search"`
	CategoryID *int64             `json:"categoryId" validate:"omitempty,min=1"`
	MinPrice   *int64             `json:"minPrice" validate:"omitempty,min=0"`
	MaxPrice   *int64             `json:"maxPrice" validate:"omitempty,min=0"`
	SortKey    string             `json:"sortKey"`
	FromDate   *time.Time         `json:"fromDate"`
	ToDate     *time.Time         `json:"toDate"`
	Status     *enums.OrderStatus `json:"status"`
}

// Params holds the variables of one request. Only present keys are set.
type Params map[string]any

// Validate checks paging bounds and range ordering.
func (o Options) Validate() error {
	if err := validateStruct(o); err != nil {
		return err
	}
	if o.MinPrice != nil && o.MaxPrice != nil && *o.MinPrice > *o.MaxPrice {
		return invalid("minPrice", "must not exceed maxPrice")
	}
	if o.FromDate != nil && o.ToDate != nil && o.ToDate.Before(*o.FromDate) {
		return invalid("toDate", "must not precede fromDate")
	}
	if o.Status != nil && !o.Status.IsValid() {
		return invalid("status", "is invalid")
	}
	return nil
}

// Compose turns opts into request variables, omitting every absent filter.
// Dates are passed through as given; see InclusiveEnd for the exclusive upper bound.
func Compose(opts Options, table SortTable) (Params, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	params := Params{
		"page":     opts.Page,
		"pageSize": opts.PageSize,
	}
	if opts.Search != nil {
		if s := strings.TrimSpace(*opts.Search); s != "" {
			params["search"] = s
		}
	}
	if opts.CategoryID != nil {
		params["categoryId"] = *opts.CategoryID
	}
	if opts.MinPrice != nil {
		params["minPrice"] = *opts.MinPrice
	}
	if opts.MaxPrice != nil {
		params["maxPrice"] = *opts.MaxPrice
	}
	if s, ok := table.Lookup(opts.SortKey); ok {
		params["sortField"] = s.Field.String()
		params["sortDirection"] = s.Direction.String()
	}
	if opts.FromDate != nil {
		params["fromDate"] = FormatDate(*opts.FromDate)
	}
	if opts.ToDate != nil {
		params["toDate"] = FormatDate(*opts.ToDate)
	}
	if opts.Status != nil {
		params["status"] = opts.Status.String()
	}
	return params, nil
}

// FormatDate renders t as yyyy-MM-dd in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// InclusiveEnd converts an inclusive "to" date into the exclusive bound the remote expects.
func InclusiveEnd(t time.Time) time.Time {
	return t.AddDate(0, 0, 1)
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
