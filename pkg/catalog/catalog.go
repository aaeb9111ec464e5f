// Package catalog carries the fixed two-level service taxonomy used for
// navigation and labels. The taxonomy is shipped with the client; the backend
// only references category and subcategory ids.
package catalog

import "github.com/shopspring/decimal"

type Category struct {
	ID            string
	Name          string
	Description   string
	Subcategories []Subcategory
}

type Subcategory struct {
	ID          string
	Name        string
	Description string
	BasePrice   decimal.Decimal
}

func price(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

var categories = []Category{
	{
		ID:          "home-services",
		Name:        "Home Services",
		Description: "Professional home maintenance and repair services",
		Subcategories: []Subcategory{
			{ID: "plumber", Name: "Plumber", Description: "Pipe repairs, leak fixes, installations", BasePrice: price(199)},
			{ID: "electrician", Name: "Electrician", Description: "Wiring, repairs, installations", BasePrice: price(249)},
			{ID: "house-cleaning", Name: "House Cleaning", Description: "Regular cleaning services", BasePrice: price(499)},
			{ID: "deep-cleaning", Name: "Deep Cleaning", Description: "Thorough deep cleaning", BasePrice: price(999)},
			{ID: "ac-repair", Name: "AC Installation & Repair", Description: "AC service and maintenance", BasePrice: price(399)},
			{ID: "refrigerator-repair", Name: "Refrigerator Repair", Description: "Fridge repairs and service", BasePrice: price(349)},
			{ID: "washing-machine", Name: "Washing Machine Repair", Description: "Washer repairs and service", BasePrice: price(299)},
			{ID: "ro-purifier", Name: "RO Water Purifier", Description: "Water purifier service", BasePrice: price(249)},
			{ID: "pest-control", Name: "Pest Control", Description: "Pest extermination services", BasePrice: price(599)},
			{ID: "painting", Name: "Painting", Description: "Interior and exterior painting", BasePrice: price(1999)},
			{ID: "carpenter", Name: "Carpenter", Description: "Furniture repair and custom work", BasePrice: price(399)},
			{ID: "sofa-cleaning", Name: "Sofa & Carpet Cleaning", Description: "Upholstery cleaning", BasePrice: price(699)},
			{ID: "sanitization", Name: "Home Sanitization", Description: "Complete home sanitization", BasePrice: price(799)},
		},
	},
	{
		ID:          "vehicle-services",
		Name:        "Vehicle Services",
		Description: "Complete vehicle care and maintenance",
		Subcategories: []Subcategory{
			{ID: "car-wash", Name: "Car Wash", Description: "Professional car washing", BasePrice: price(299)},
			{ID: "bike-wash", Name: "Bike Wash", Description: "Bike cleaning services", BasePrice: price(149)},
			{ID: "car-service", Name: "Car Service", Description: "Complete car servicing", BasePrice: price(1999)},
			{ID: "bike-service", Name: "Bike Service", Description: "Bike servicing and tune-up", BasePrice: price(599)},
			{ID: "engine-repair", Name: "Engine Repair", Description: "Engine diagnostics and repair", BasePrice: price(2999)},
			{ID: "tyre-replacement", Name: "Tyre Replacement", Description: "Tyre fitting and balancing", BasePrice: price(499)},
			{ID: "battery-replacement", Name: "Battery Replacement", Description: "Battery testing and replacement", BasePrice: price(799)},
			{ID: "oil-change", Name: "Oil Change", Description: "Engine oil replacement", BasePrice: price(399)},
			{ID: "vehicle-inspection", Name: "Vehicle Inspection", Description: "Complete vehicle checkup", BasePrice: price(499)},
			{ID: "denting-painting", Name: "Denting & Painting", Description: "Body work and painting", BasePrice: price(1499)},
			{ID: "roadside-assistance", Name: "Roadside Assistance", Description: "Emergency roadside help", BasePrice: price(299)},
			{ID: "towing", Name: "Towing Service", Description: "Vehicle towing services", BasePrice: price(999)},
		},
	},
}

// Categories returns the full taxonomy in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// FindCategory looks up a category by id.
func FindCategory(id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// FindSubcategory looks up a subcategory within a category.
func FindSubcategory(categoryID, subcategoryID string) (Subcategory, bool) {
	cat, ok := FindCategory(categoryID)
	if !ok {
		return Subcategory{}, false
	}
	for _, sub := range cat.Subcategories {
		if sub.ID == subcategoryID {
			return sub, true
		}
	}
	return Subcategory{}, false
}

// Label renders "Category / Subcategory" for display, falling back to the raw
// ids when the pair is not in the taxonomy.
func Label(categoryID, subcategoryID string) string {
	cat, ok := FindCategory(categoryID)
	if !ok {
		return categoryID + " / " + subcategoryID
	}
	for _, sub := range cat.Subcategories {
		if sub.ID == subcategoryID {
			return cat.Name + " / " + sub.Name
		}
	}
	return cat.Name + " / " + subcategoryID
}
