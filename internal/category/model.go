package category

import "sushi-be/internal/product"

// Category display names are stored per supported locale, matching the
// storefront clients.
type Category struct {
	ID     uint   `json:"id"`
	NameRu string `json:"name_ru"`
	NameEn string `json:"name_en"`
	NameUk string `json:"name_uk"`
	NameNl string `json:"name_nl"`
	Slug   string `json:"slug"`
}

// MenuCategory is a category with its active products nested, the shape
// served by GET /api/shop/menu.
type MenuCategory struct {
	Category
	Products []*product.Product `json:"products"`
}

type UpsertInput struct {
	NameRu string
	NameEn string
	NameUk string
	NameNl string
	Slug   string
}
