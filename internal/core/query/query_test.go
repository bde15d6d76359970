package query

import (
	"math"
	"net/url"
	"strconv"
	"testing"
)

var userSpec = ListSpec{
	Filters: map[string]Kind{"role": String, "needsPasswordChange": Bool},
	Search:  []string{"id"},
	Sorts:   []string{"id"},
}

func TestTranslate_Defaults(t *testing.T) {
	f, p := Translate(url.Values{}, userSpec)

	if !f.IsZero() {
		t.Fatalf("expected empty filter, got %+v", f)
	}
	if p.Page != DefaultPage || p.Limit != DefaultLimit {
		t.Fatalf("expected page=%d limit=%d, got %+v", DefaultPage, DefaultLimit, p)
	}
	if p.SortBy != DefaultSortBy || p.SortOrder != Desc {
		t.Fatalf("unexpected sort: %+v", p)
	}
}

func TestTranslate_PicksWhitelistedFields(t *testing.T) {
	raw := url.Values{
		"role":                {"student"},
		"needsPasswordChange": {"true"},
		"password":            {"leak"},
		"$where":              {"1"},
		"searchTerm":          {" S-000 "},
	}

	f, _ := Translate(raw, userSpec)

	if len(f.Equals) != 2 {
		t.Fatalf("expected 2 equality filters, got %v", f.Equals)
	}
	if f.Equals["role"] != "student" {
		t.Errorf("role: got %v", f.Equals["role"])
	}
	if f.Equals["needsPasswordChange"] != true {
		t.Errorf("needsPasswordChange must be coerced to bool, got %#v", f.Equals["needsPasswordChange"])
	}
	if _, ok := f.Equals["password"]; ok {
		t.Error("unknown field must be ignored")
	}
	if f.SearchTerm != "S-000" {
		t.Errorf("searchTerm: got %q", f.SearchTerm)
	}
	if len(f.SearchFields) != 1 || f.SearchFields[0] != "id" {
		t.Errorf("searchFields: got %v", f.SearchFields)
	}
}

func TestTranslate_BadBoolIgnored(t *testing.T) {
	f, _ := Translate(url.Values{"needsPasswordChange": {"maybe"}}, userSpec)
	if !f.IsZero() {
		t.Fatalf("expected malformed bool to be dropped, got %+v", f)
	}
}

func TestTranslate_SearchIgnoredWithoutSearchFields(t *testing.T) {
	f, _ := Translate(url.Values{"searchTerm": {"x"}}, ListSpec{})
	if f.SearchTerm != "" {
		t.Fatalf("expected searchTerm ignored, got %q", f.SearchTerm)
	}
}

func TestPaginate(t *testing.T) {
	cases := []struct {
		name string
		raw  url.Values
		want PageOptions
	}{
		{"explicit", url.Values{"page": {"2"}, "limit": {"10"}}, PageOptions{2, 10, "createdAt", Desc}},
		{"garbage numbers", url.Values{"page": {"two"}, "limit": {"-5"}}, PageOptions{1, 10, "createdAt", Desc}},
		{"limit capped", url.Values{"limit": {"1000"}}, PageOptions{1, MaxLimit, "createdAt", Desc}},
		{"sort whitelisted", url.Values{"sortBy": {"id"}, "sortOrder": {"ASC"}}, PageOptions{1, 10, "id", Asc}},
		{"sort not whitelisted", url.Values{"sortBy": {"password"}, "sortOrder": {"sideways"}}, PageOptions{1, 10, "createdAt", Desc}},
		{"max int page clamped", url.Values{"page": {strconv.Itoa(math.MaxInt)}, "limit": {"10"}}, PageOptions{math.MaxInt/10 + 1, 10, "createdAt", Desc}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Paginate(tc.raw, userSpec)
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestPageOptions_Window(t *testing.T) {
	p := PageOptions{Page: 2, Limit: 10}.Normalize()

	start, end := p.Window(25)
	if start != 10 || end != 20 {
		t.Errorf("page 2 of 25: got [%d,%d)", start, end)
	}

	start, end = p.Window(15)
	if start != 10 || end != 15 {
		t.Errorf("page 2 of 15: got [%d,%d)", start, end)
	}

	start, end = p.Window(5)
	if start != 5 || end != 5 {
		t.Errorf("page 2 of 5 must be empty, got [%d,%d)", start, end)
	}
}

func TestPaginate_HugePage(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("page does not parse on 32-bit int")
	}
	p := Paginate(url.Values{"page": {"1000000000000000000"}, "limit": {"10"}}, userSpec)

	if p.Skip() < 0 {
		t.Fatalf("skip overflowed: %d", p.Skip())
	}
	start, end := p.Window(25)
	if start != 25 || end != 25 {
		t.Errorf("huge page of 25 must be empty, got [%d,%d)", start, end)
	}
}

func TestPageOptions_WindowUnnormalized(t *testing.T) {
	cases := []struct {
		name string
		p    PageOptions
	}{
		{"zero limit", PageOptions{Page: 1}},
		{"overflowing page", PageOptions{Page: math.MaxInt, Limit: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := tc.p.Window(7)
			if start != 7 || end != 7 {
				t.Errorf("got [%d,%d), want empty window at 7", start, end)
			}
		})
	}
}

func TestNewMeta(t *testing.T) {
	m := NewMeta(PageOptions{Page: 3, Limit: 7}, 42)
	if m.Page != 3 || m.Limit != 7 || m.Total != 42 {
		t.Fatalf("unexpected meta: %+v", m)
	}
}
