package rest

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/kbukum/dataprovider/dataprovider"
)

// json-server query parameter names.
const (
	paramPage  = "_page"
	paramLimit = "_limit"
	paramSort  = "_sort"
	paramOrder = "_order"

	headerTotalCount = "X-Total-Count"
)

// listQuery renders pagination, sort and filter as json-server query
// parameters. Filter values that are slices repeat their key.
func listQuery(pagination *dataprovider.PaginationPayload, sort *dataprovider.SortPayload, filter dataprovider.FilterPayload) url.Values {
	q := url.Values{}
	if pagination != nil {
		if pagination.Page > 0 {
			q.Set(paramPage, strconv.Itoa(pagination.Page))
		}
		if pagination.PerPage > 0 {
			q.Set(paramLimit, strconv.Itoa(pagination.PerPage))
		}
	}
	if sort != nil && sort.Field != "" {
		q.Set(paramSort, sort.Field)
		if sort.Order != "" {
			q.Set(paramOrder, string(sort.Order))
		}
	}
	for key, value := range filter {
		switch v := value.(type) {
		case nil:
		case []any:
			for _, item := range v {
				q.Add(key, fmt.Sprint(item))
			}
		case []string:
			for _, item := range v {
				q.Add(key, item)
			}
		default:
			q.Add(key, fmt.Sprint(v))
		}
	}
	return q
}

// totalFromHeader reads the X-Total-Count header.
func totalFromHeader(value string) (int, bool) {
	if value == "" {
		return 0, false
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// pageInfo derives navigation flags from a 1-based page and a total count.
func pageInfo(pagination *dataprovider.PaginationPayload, total int) *dataprovider.PageInfo {
	if pagination == nil || pagination.Page <= 0 || pagination.PerPage <= 0 {
		return nil
	}
	return &dataprovider.PageInfo{
		HasPreviousPage: pagination.Page > 1,
		HasNextPage:     pagination.Page*pagination.PerPage < total,
	}
}
