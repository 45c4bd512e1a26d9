package enums

import "fmt"

// SortField is a canonical sort column understood by the remote API.
type SortField string

const (
	SortFieldName        SortField = "NAME"
	SortFieldImportPrice SortField = "IMPORT_PRICE"
	SortFieldCount       SortField = "COUNT"
	SortFieldCreatedAt   SortField = "CREATED_AT"
	SortFieldTotalPrice  SortField = "TOTAL_PRICE"
	SortFieldCustomer    SortField = "CUSTOMER_NAME"
)

var validSortFields = []SortField{
	SortFieldName,
	SortFieldImportPrice,
	SortFieldCount,
	SortFieldCreatedAt,
	SortFieldTotalPrice,
	SortFieldCustomer,
}

// String implements fmt.Stringer.
func (f SortField) String() string {
	return string(f)
}

// IsValid reports whether the value is a known SortField.
func (f SortField) IsValid() bool {
	for _, candidate := range validSortFields {
		if candidate == f {
			return true
		}
	}
	return false
}

// SortDirection orders results ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// String implements fmt.Stringer.
func (d SortDirection) String() string {
	return string(d)
}

// IsValid reports whether the value is a known SortDirection.
func (d SortDirection) IsValid() bool {
	return d == SortAsc || d == SortDesc
}

// ParseSortDirection converts raw input into a SortDirection.
func ParseSortDirection(value string) (SortDirection, error) {
	switch SortDirection(value) {
	case SortAsc, SortDesc:
		return SortDirection(value), nil
	}
	return "", fmt.Errorf("invalid sort direction %q", value)
}
