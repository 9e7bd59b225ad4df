package app

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"staybook/internal/domain"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultSort     = "-createdAt"
)

var sortable = map[string]struct{}{
	domain.SortCreatedAt: {},
	domain.SortUpdatedAt: {},
	domain.SortPrice:     {},
	domain.SortTitle:     {},
}

// ParseHotelQuery builds pagination, sorting, search and filter criteria from a
// query string such as
//
//	?page=2&limit=10&sort=-price,title&search=sea view&category=<id>&price[gte]=100
func ParseHotelQuery(v url.Values) (domain.HotelQuery, error) {
	var f fields
	q := domain.HotelQuery{Page: 1, Limit: DefaultPageSize}

	if s := v.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			f.add("page must be a positive integer")
		} else {
			q.Page = n
		}
	}
	if s := v.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > MaxPageSize {
			f.add(fmt.Sprintf("limit must be an integer between 1 and %d", MaxPageSize))
		} else {
			q.Limit = n
		}
	}

	sort := v.Get("sort")
	if sort == "" {
		sort = DefaultSort
	}
	for _, part := range strings.Split(sort, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sf := domain.SortField{Field: strings.TrimPrefix(part, "-"), Desc: strings.HasPrefix(part, "-")}
		if _, ok := sortable[sf.Field]; !ok {
			f.add("cannot sort by " + sf.Field)
			continue
		}
		q.Sort = append(q.Sort, sf)
	}

	q.Filter = domain.HotelFilter{
		Search:     strings.TrimSpace(v.Get("search")),
		CategoryID: strings.TrimSpace(v.Get("category")),
		Country:    strings.TrimSpace(v.Get("country")),
		State:      strings.TrimSpace(v.Get("state")),
		City:       strings.TrimSpace(v.Get("city")),
		Zip:        strings.TrimSpace(v.Get("zip")),
	}
	for op, dst := range map[string]**float64{
		"gt":  &q.Filter.Price.Gt,
		"gte": &q.Filter.Price.Gte,
		"lt":  &q.Filter.Price.Lt,
		"lte": &q.Filter.Price.Lte,
	} {
		s := v.Get("price[" + op + "]")
		if s == "" {
			continue
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			f.add("price[" + op + "] must be a number")
			continue
		}
		*dst = &n
	}
	if s := v.Get("price"); s != "" {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			f.add("price must be a number")
		} else {
			q.Filter.Price.Gte, q.Filter.Price.Lte = &n, &n
		}
	}

	if err := f.err(); err != nil {
		return domain.HotelQuery{}, err
	}
	return q, nil
}
