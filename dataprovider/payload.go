package dataprovider

import (
	"fmt"
	"strings"
)

// PaginationPayload selects a page of results. Page is 1-based.
type PaginationPayload struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// SortOrder is the sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder accepts "asc" or "desc" in any case.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return SortAsc, nil
	case "desc":
		return SortDesc, nil
	default:
		return "", fmt.Errorf("dataprovider: sort order must be asc or desc (got: %s)", s)
	}
}

// SortPayload orders results by a single field.
type SortPayload struct {
	Field string    `json:"field"`
	Order SortOrder `json:"order"`
}

// FilterPayload maps field names to the values they must match.
type FilterPayload map[string]any

// Meta carries backend-specific hints. The contract never inspects it.
type Meta map[string]any

// PageInfo describes the neighbourhood of the returned page.
type PageInfo struct {
	HasNextPage     bool `json:"has_next_page"`
	HasPreviousPage bool `json:"has_previous_page"`
}
