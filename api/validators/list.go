package validators

import (
	"math"
	"net/http"
	"strings"

	"github.com/angelmondragon/stockdesk/internal/query"
	"github.com/angelmondragon/stockdesk/pkg/enums"
	pkgerrors "github.com/angelmondragon/stockdesk/pkg/errors"
	"github.com/angelmondragon/stockdesk/pkg/pagination"
)

// ParseListOptions reads paging, search, sort and range filters shared by list endpoints.
// Filters a list does not support are ignored by its service.
func ParseListOptions(r *http.Request, sorts query.SortTable) (query.Options, error) {
	var opts query.Options
	var err error

	if opts.Page, err = ParseQueryInt(r, "page", 1, 1, math.MaxInt32); err != nil {
		return opts, err
	}
	if opts.PageSize, err = ParseQueryInt(r, "pageSize", pagination.DefaultPageSize, 1, pagination.MaxPageSize); err != nil {
		return opts, err
	}
	opts.Search = ParseOptionalString(r, "search", SearchMaxLen)
	if opts.CategoryID, err = ParseOptionalInt64(r, "categoryId", 1); err != nil {
		return opts, err
	}
	if opts.MinPrice, err = ParseOptionalInt64(r, "minPrice", 0); err != nil {
		return opts, err
	}
	if opts.MaxPrice, err = ParseOptionalInt64(r, "maxPrice", 0); err != nil {
		return opts, err
	}
	if opts.FromDate, err = ParseOptionalDate(r, "from"); err != nil {
		return opts, err
	}
	if opts.ToDate, err = ParseOptionalDate(r, "to"); err != nil {
		return opts, err
	}

	if label := strings.TrimSpace(r.URL.Query().Get("sort")); label != "" && label != query.SortNone {
		if _, ok := sorts.Lookup(label); !ok {
			return opts, pkgerrors.New(pkgerrors.CodeValidation, "unknown sort").
				WithDetails(map[string]any{"field": "sort", "allowed": sorts.Labels()})
		}
		opts.SortKey = label
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err := enums.ParseOrderStatus(raw)
		if err != nil {
			return opts, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status").
				WithDetails(map[string]any{"field": "status"})
		}
		opts.Status = &status
	}

	return opts, opts.Validate()
}
