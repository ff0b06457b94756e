package cart_test

import (
	"testing"

	"github.com/shashiranjanraj/lumina/app/cart"
	"github.com/shashiranjanraj/lumina/app/models"
)

func testCatalog() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Throw", Price: 10.00},
		{ID: 2, Name: "Candle", Price: 20.00},
		{ID: 3, Name: "Flask", Price: 30.00},
	}
}

func TestDeriveScenario(t *testing.T) {
	// Three increases of product 1, one of product 3.
	items := cart.Zero(3).
		Increase(1).Increase(1).Increase(1).
		Increase(3)

	summary := cart.Derive(testCatalog(), items)

	if len(summary.Items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(summary.Items))
	}

	first := summary.Items[0]
	if first.Product.ID != 1 || first.Quantity != 3 || first.Subtotal != 30.00 {
		t.Errorf("unexpected first line item: %+v", first)
	}

	second := summary.Items[1]
	if second.Product.ID != 3 || second.Quantity != 1 || second.Subtotal != 30.00 {
		t.Errorf("unexpected second line item: %+v", second)
	}

	if summary.Total != 60.00 {
		t.Errorf("expected total 60.00, got %.2f", summary.Total)
	}
	if summary.TotalDisplay != "A$60.00" {
		t.Errorf("expected A$60.00, got %s", summary.TotalDisplay)
	}
	if summary.ItemCount != 4 {
		t.Errorf("expected 4 units, got %d", summary.ItemCount)
	}
}

func TestDeriveEmptyCartIsFirstClass(t *testing.T) {
	summary := cart.Derive(testCatalog(), cart.Zero(3))

	if len(summary.Items) != 0 {
		t.Errorf("expected no line items, got %d", len(summary.Items))
	}
	if summary.Total != 0 {
		t.Errorf("expected total 0, got %.2f", summary.Total)
	}
	if summary.TotalDisplay != "A$0.00" {
		t.Errorf("expected A$0.00, got %s", summary.TotalDisplay)
	}
	if summary.Items == nil {
		t.Error("line items should be an empty slice, not nil")
	}
}

func TestDeriveSkipsZeroQuantities(t *testing.T) {
	summary := cart.Derive(testCatalog(), cart.Items{0, 2, 0})

	if len(summary.Items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(summary.Items))
	}
	if summary.Items[0].Product.ID != 2 {
		t.Errorf("expected product 2, got %d", summary.Items[0].Product.ID)
	}
	if summary.Total != 40.00 {
		t.Errorf("expected total 40.00, got %.2f", summary.Total)
	}
}

func TestDeriveAfterClearYieldsNoLineItems(t *testing.T) {
	items := cart.Items{5, 3, 9}
	summary := cart.Derive(testCatalog(), items.Clear())
	if len(summary.Items) != 0 {
		t.Errorf("expected no line items after Clear, got %d", len(summary.Items))
	}
}

func TestDeriveLineItemsFollowCatalogOrder(t *testing.T) {
	summary := cart.Derive(testCatalog(), cart.Items{1, 1, 1})
	for i, li := range summary.Items {
		if int(li.Product.ID) != i+1 {
			t.Errorf("line item %d is product %d, want catalogue order", i, li.Product.ID)
		}
	}
}

func TestShippingIsFree(t *testing.T) {
	summary := cart.Derive(testCatalog(), cart.Items{1, 0, 0})
	if summary.Shipping != 0 {
		t.Errorf("expected free shipping, got %.2f", summary.Shipping)
	}
	if summary.ShippingDisplay != "A$0.00" {
		t.Errorf("expected A$0.00 shipping display, got %s", summary.ShippingDisplay)
	}
	if summary.Total != 10.00 {
		t.Errorf("shipping must not change the total, got %.2f", summary.Total)
	}
}

func TestFormatPrice(t *testing.T) {
	cases := map[float64]string{
		0:     "A$0.00",
		10:    "A$10.00",
		59.95: "A$59.95",
		59.9:  "A$59.90",
	}
	for amount, want := range cases {
		if got := cart.FormatPrice(amount); got != want {
			t.Errorf("FormatPrice(%v) = %s, want %s", amount, got, want)
		}
	}
}
