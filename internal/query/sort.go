package query

import (
	"sort"
	"strings"

	"github.com/angelmondragon/stockdesk/pkg/enums"
)

// Sort is a canonical (field, direction) pair.
type Sort struct {
	Field     enums.SortField
	Direction enums.SortDirection
}

// SortTable maps a UI sort label to its canonical sort.
type SortTable map[string]Sort

// SortNone is the label that asks for the remote's default order.
const SortNone = "None"

var ProductSorts = SortTable{
	"Name (A-Z)":          {enums.SortFieldName, enums.SortAsc},
	"Name (Z-A)":          {enums.SortFieldName, enums.SortDesc},
	"Price (Low to High)": {enums.SortFieldImportPrice, enums.SortAsc},
	"Price (High to Low)": {enums.SortFieldImportPrice, enums.SortDesc},
	"Stock (Low to High)": {enums.SortFieldCount, enums.SortAsc},
	"Stock (High to Low)": {enums.SortFieldCount, enums.SortDesc},
	"Newest First":        {enums.SortFieldCreatedAt, enums.SortDesc},
	"Oldest First":        {enums.SortFieldCreatedAt, enums.SortAsc},
}

var OrderSorts = SortTable{
	"Newest First":        {enums.SortFieldCreatedAt, enums.SortDesc},
	"Oldest First":        {enums.SortFieldCreatedAt, enums.SortAsc},
	"Total (High to Low)": {enums.SortFieldTotalPrice, enums.SortDesc},
	"Total (Low to High)": {enums.SortFieldTotalPrice, enums.SortAsc},
	"Customer (A-Z)":      {enums.SortFieldCustomer, enums.SortAsc},
	"Customer (Z-A)":      {enums.SortFieldCustomer, enums.SortDesc},
}

// Lookup resolves a label. Blank, "None" and unknown labels report false.
func (t SortTable) Lookup(label string) (Sort, bool) {
	label = strings.TrimSpace(label)
	if label == "" || label == SortNone {
		return Sort{}, false
	}
	s, ok := t[label]
	return s, ok
}

// Labels lists "None" followed by the table's labels in lexical order.
func (t SortTable) Labels() []string {
	labels := make([]string, 0, len(t))
	for label := range t {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return append([]string{SortNone}, labels...)
}
