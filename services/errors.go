package services

import "errors"

var (
	ErrWrongUserCart     = errors.New("you are not allowed to access this cart")
	ErrProductNotFound   = errors.New("product not found")
	ErrEmptyProductStock = errors.New("product stock is empty")
	ErrLowProductStock   = errors.New("product stock cannot satisfy the requested quantity")
	ErrCartNotFound      = errors.New("cart not found")
	ErrProductNotInCart  = errors.New("product not in cart")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrExistingReview    = errors.New("you have already reviewed this product")
	ErrNoReview          = errors.New("you have not reviewed this product")
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUnauthorizedUser = errors.New("you cannot access the information of other users")
	ErrUserNotAdmin     = errors.New("only an admin can act on other users")
	ErrUserIsAdmin      = errors.New("an admin cannot act on another admin")
	ErrInvalidBirthdate = errors.New("birthdate must be a past date formatted as YYYY-MM-DD")
	ErrInvalidRole      = errors.New("role must be one of Customer, Manager or Admin")
)
