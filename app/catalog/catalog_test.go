package catalog_test

import (
	"testing"

	"github.com/shashiranjanraj/lumina/app/catalog"
	"github.com/shashiranjanraj/lumina/app/models"
)

func testService() *catalog.Service {
	return catalog.NewStatic([]models.Product{
		{ID: 1, Name: "Coastal Linen Throw", Description: "A lightweight linen throw."},
		{ID: 2, Name: "Eucalyptus Soy Candle", Description: "Hand-poured soy candle."},
		{ID: 3, Name: "Merino Beanie", Description: "Double-layered merino wool."},
	})
}

func TestLen(t *testing.T) {
	if got := testService().Len(); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
}

func TestFind(t *testing.T) {
	svc := testService()

	p, ok := svc.Find(2)
	if !ok {
		t.Fatal("expected to find product 2")
	}
	if p.Name != "Eucalyptus Soy Candle" {
		t.Errorf("unexpected product: %s", p.Name)
	}

	for _, id := range []int{0, -1, 4, 99} {
		if _, ok := svc.Find(id); ok {
			t.Errorf("expected Find(%d) to miss", id)
		}
	}
}

func TestAllPreservesOrder(t *testing.T) {
	all := testService().All()
	for i, p := range all {
		if int(p.ID) != i+1 {
			t.Errorf("position %d holds id %d", i, p.ID)
		}
	}
}

func TestAllReturnsACopy(t *testing.T) {
	svc := testService()
	all := svc.All()
	all[0].Name = "mutated"
	if p, _ := svc.Find(1); p.Name == "mutated" {
		t.Error("All must not expose internal state")
	}
}

func TestSearch(t *testing.T) {
	svc := testService()

	cases := []struct {
		query string
		want  int
	}{
		{"", 3},          // empty query returns everything
		{"  ", 3},        // whitespace only
		{"beanie", 1},    // case-insensitive name match
		{"BEANIE", 1},
		{"soy", 1},       // description match
		{"e", 3},         // common substring
		{"quantum", 0},   // no match
	}
	for _, tc := range cases {
		if got := len(svc.Search(tc.query)); got != tc.want {
			t.Errorf("Search(%q) returned %d products, want %d", tc.query, got, tc.want)
		}
	}
}

func TestSearchEmptyResultIsNotNil(t *testing.T) {
	if got := testService().Search("quantum"); got == nil {
		t.Error("expected empty slice, got nil")
	}
}
