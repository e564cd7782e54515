package product

const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

type Product struct {
	ID            uint     `json:"id"`
	CategoryID    uint     `json:"categoryId"`
	NameRu        string   `json:"name_ru"`
	NameEn        string   `json:"name_en"`
	NameUk        string   `json:"name_uk"`
	NameNl        string   `json:"name_nl"`
	IngredientsRu *string  `json:"ingredients_ru,omitempty"`
	IngredientsEn *string  `json:"ingredients_en,omitempty"`
	IngredientsUk *string  `json:"ingredients_uk,omitempty"`
	IngredientsNl *string  `json:"ingredients_nl,omitempty"`
	Price         float64  `json:"price"`
	ImageURL      *string  `json:"imageUrl,omitempty"`
	IsPopular     bool     `json:"isPopular"`
	IsRecommended bool     `json:"isRecommended"`
	Status        string   `json:"-"`
	Category      *CatRef  `json:"category,omitempty"`
}

// CatRef is the category summary embedded in flat product listings.
// Defined here to keep the product package free of a category import.
type CatRef struct {
	ID     uint   `json:"id"`
	NameRu string `json:"name_ru"`
	Slug   string `json:"slug"`
}

type UpsertInput struct {
	CategoryID    uint
	NameRu        string
	NameEn        string
	NameUk        string
	NameNl        string
	IngredientsRu *string
	IngredientsEn *string
	IngredientsUk *string
	IngredientsNl *string
	Price         float64
	ImageURL      *string
	IsPopular     bool
	IsRecommended bool
}
