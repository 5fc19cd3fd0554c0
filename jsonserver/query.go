package jsonserver

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const defaultLimit = 10

// listOptions is the parsed form of a json-server list query.
type listOptions struct {
	filters  map[string][]string
	sort     []string
	desc     []bool
	page     int
	limit    int
	paginate bool
}

// parseListQuery splits reserved _ parameters from field filters. A field
// filter matches when the field equals any of its values.
func parseListQuery(q url.Values) listOptions {
	opts := listOptions{filters: make(map[string][]string)}
	for key, values := range q {
		if !strings.HasPrefix(key, "_") {
			opts.filters[key] = values
		}
	}

	if s := q.Get("_sort"); s != "" {
		opts.sort = strings.Split(s, ",")
		orders := strings.Split(q.Get("_order"), ",")
		opts.desc = make([]bool, len(opts.sort))
		for i := range opts.sort {
			if i < len(orders) {
				opts.desc[i] = strings.EqualFold(strings.TrimSpace(orders[i]), "desc")
			}
		}
	}

	page, pageErr := strconv.Atoi(q.Get("_page"))
	limit, limitErr := strconv.Atoi(q.Get("_limit"))
	if pageErr == nil || limitErr == nil {
		opts.paginate = true
		opts.page = 1
		if pageErr == nil && page > 0 {
			opts.page = page
		}
		opts.limit = defaultLimit
		if limitErr == nil && limit > 0 {
			opts.limit = limit
		}
	}
	return opts
}

// apply filters, sorts and pages items. It returns the page and the number
// of items that matched before paging.
func (o listOptions) apply(items []Item) ([]Item, int) {
	matched := items[:0:0]
	for _, it := range items {
		if o.matches(it) {
			matched = append(matched, it)
		}
	}

	if len(o.sort) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			for k, field := range o.sort {
				c := compareValues(matched[i][field], matched[j][field])
				if c == 0 {
					continue
				}
				if o.desc[k] {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}

	total := len(matched)
	if !o.paginate {
		return matched, total
	}
	start := (o.page - 1) * o.limit
	if start >= total {
		return []Item{}, total
	}
	end := start + o.limit
	if end > total {
		end = total
	}
	return matched[start:end], total
}

func (o listOptions) matches(it Item) bool {
	for field, values := range o.filters {
		got := valueString(it[field])
		found := false
		for _, v := range values {
			if got == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// compareValues orders numbers numerically and everything else as text.
func compareValues(a, b any) int {
	as, bs := valueString(a), valueString(b)
	af, aErr := strconv.ParseFloat(as, 64)
	bf, bErr := strconv.ParseFloat(bs, 64)
	if aErr == nil && bErr == nil {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(as, bs)
}

// singular turns a collection name into the prefix of its foreign key:
// posts -> post, categories -> category.
func singular(name string) string {
	switch {
	case strings.HasSuffix(name, "ies") && len(name) > 3:
		return name[:len(name)-3] + "y"
	case strings.HasSuffix(name, "s") && !strings.HasSuffix(name, "ss"):
		return name[:len(name)-1]
	default:
		return name
	}
}
