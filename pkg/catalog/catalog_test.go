package catalog

import "testing"

func TestTaxonomyShape(t *testing.T) {
	cats := Categories()
	if len(cats) != 2 {
		t.Fatalf("expected 2 top-level categories, got %d", len(cats))
	}

	home, ok := FindCategory("home-services")
	if !ok {
		t.Fatalf("home-services missing")
	}
	if len(home.Subcategories) != 13 {
		t.Fatalf("expected 13 home subcategories, got %d", len(home.Subcategories))
	}

	vehicle, ok := FindCategory("vehicle-services")
	if !ok {
		t.Fatalf("vehicle-services missing")
	}
	if len(vehicle.Subcategories) != 12 {
		t.Fatalf("expected 12 vehicle subcategories, got %d", len(vehicle.Subcategories))
	}
}

func TestFindSubcategory(t *testing.T) {
	sub, ok := FindSubcategory("home-services", "plumber")
	if !ok {
		t.Fatalf("plumber missing")
	}
	if sub.Name != "Plumber" {
		t.Fatalf("unexpected name %q", sub.Name)
	}
	if !sub.BasePrice.Equal(price(199)) {
		t.Fatalf("unexpected base price %s", sub.BasePrice)
	}

	if _, ok := FindSubcategory("home-services", "car-wash"); ok {
		t.Fatalf("car-wash should not appear under home-services")
	}
}

func TestLabelFallbacks(t *testing.T) {
	if got := Label("home-services", "plumber"); got != "Home Services / Plumber" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := Label("home-services", "mystery"); got != "Home Services / mystery" {
		t.Fatalf("unexpected partial fallback %q", got)
	}
	if got := Label("nope", "mystery"); got != "nope / mystery" {
		t.Fatalf("unexpected raw fallback %q", got)
	}
}
