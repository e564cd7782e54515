package transport

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeAndValidate parses the JSON body into dst and runs its validate
// tags. Bad payloads never reach business logic.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

type productRequest struct {
	NameRu        string   `json:"name_ru" validate:"required"`
	NameEn        string   `json:"name_en"`
	NameUk        string   `json:"name_uk"`
	NameNl        string   `json:"name_nl"`
	Description   *string  `json:"description"`
	IngredientsRu *string  `json:"ingredients_ru"`
	IngredientsEn *string  `json:"ingredients_en"`
	IngredientsUk *string  `json:"ingredients_uk"`
	IngredientsNl *string  `json:"ingredients_nl"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	ImageURL      *string  `json:"imageUrl"`
	CategoryID    uint     `json:"categoryId" validate:"required"`
	IsPopular     bool     `json:"isPopular"`
	IsRecommended bool     `json:"isRecommended"`
}

type categoryRequest struct {
	NameRu string `json:"name_ru" validate:"required"`
	NameEn string `json:"name_en"`
	NameUk string `json:"name_uk"`
	NameNl string `json:"name_nl"`
	Slug   string `json:"slug"`
}

type cartItemRequest struct {
	Product struct {
		ID uint `json:"id" validate:"required"`
	} `json:"product"`
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

type customerRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	PaymentMethod string `json:"paymentMethod"`
	Comment       string `json:"comment"`
}

// createOrderRequest mirrors the checkout payload the storefront clients
// send. TotalPrice and the per-line price are accepted for compatibility
// but ignored: the server reprices from the catalog.
type createOrderRequest struct {
	CartItems  []cartItemRequest `json:"cartItems" validate:"dive"`
	TotalPrice float64           `json:"totalPrice"`
	Customer   customerRequest   `json:"customer"`
	UserID     *uint             `json:"userId"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
