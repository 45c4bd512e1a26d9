package models

// Selection pairs an item the caller picked with how many of it.
type Selection[T any] struct {
	Item     T   `json:"item"`
	Quantity int `json:"quantity"`
}

// SelectedIDs extracts identities from a selection list using id.
func SelectedIDs[T any](items []Selection[T], id func(T) int64) []int64 {
	out := make([]int64, 0, len(items))
	for _, s := range items {
		out = append(out, id(s.Item))
	}
	return out
}
