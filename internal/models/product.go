package models

type ProductInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Rating      float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Image       string  `json:"image" validate:"required,url"`
}

type CategoryInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

type ReviewInput struct {
	UserID    string  `json:"userId" validate:"required"`
	ProductID string  `json:"productId" validate:"required"`
	Rating    float64 `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string  `json:"comment,omitempty"`
}
