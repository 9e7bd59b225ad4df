package app_test

import (
	"errors"
	"net/url"
	"reflect"
	"testing"

	"staybook/internal/app"
	"staybook/internal/domain"
)

func TestParseHotelQuery_Defaults(t *testing.T) {
	q, err := app.ParseHotelQuery(url.Values{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if q.Page != 1 || q.Limit != app.DefaultPageSize {
		t.Fatalf("page=%d limit=%d", q.Page, q.Limit)
	}
	want := []domain.SortField{{Field: domain.SortCreatedAt, Desc: true}}
	if !reflect.DeepEqual(q.Sort, want) {
		t.Fatalf("sort = %+v", q.Sort)
	}
	if q.Skip() != 0 {
		t.Fatalf("skip = %d", q.Skip())
	}
}

func TestParseHotelQuery_Full(t *testing.T) {
	v, _ := url.ParseQuery("page=3&limit=5&sort=-price,title&search=sea+view&category=c1&country=India&price[gte]=100&price[lt]=500")
	q, err := app.ParseHotelQuery(v)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if q.Page != 3 || q.Limit != 5 || q.Skip() != 10 {
		t.Fatalf("page=%d limit=%d skip=%d", q.Page, q.Limit, q.Skip())
	}
	wantSort := []domain.SortField{{Field: "price", Desc: true}, {Field: "title"}}
	if !reflect.DeepEqual(q.Sort, wantSort) {
		t.Fatalf("sort = %+v", q.Sort)
	}
	fl := q.Filter
	if fl.Search != "sea view" || fl.CategoryID != "c1" || fl.Country != "India" {
		t.Fatalf("filter = %+v", fl)
	}
	if fl.Price.Gte == nil || *fl.Price.Gte != 100 || fl.Price.Lt == nil || *fl.Price.Lt != 500 || fl.Price.Gt != nil {
		t.Fatalf("price = %+v", fl.Price)
	}
}

func TestParseHotelQuery_Rejects(t *testing.T) {
	cases := map[string]string{
		"page=0":          "page must be a positive integer",
		"page=x":          "page must be a positive integer",
		"limit=1000":      "limit must be an integer between 1 and 100",
		"sort=password":   "cannot sort by password",
		"price[gt]=cheap": "price[gt] must be a number",
	}
	for raw, msg := range cases {
		v, _ := url.ParseQuery(raw)
		_, err := app.ParseHotelQuery(v)
		var ve *app.ValidationError
		if !errors.As(err, &ve) || len(ve.Errors) != 1 || ve.Errors[0] != msg {
			t.Errorf("%s: got %v, want %q", raw, err, msg)
		}
	}
}

func TestParseHotelQuery_HugePageSaturatesSkip(t *testing.T) {
	v, _ := url.ParseQuery("page=9223372036854775807&limit=20")
	q, err := app.ParseHotelQuery(v)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if q.Skip() != domain.MaxSkip {
		t.Fatalf("skip = %d, want %d", q.Skip(), domain.MaxSkip)
	}
	q = domain.HotelQuery{Page: domain.MaxSkip/10 + 2, Limit: 10}
	if q.Skip() != domain.MaxSkip {
		t.Fatalf("boundary skip = %d", q.Skip())
	}
}
