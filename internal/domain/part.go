package domain

import "time"

type Part struct {
	PartID       string    `json:"id" dynamodbav:"part_id"`
	Name         string    `json:"name" dynamodbav:"name"`
	Description  string    `json:"description,omitempty" dynamodbav:"description"`
	Price        float64   `json:"price" dynamodbav:"price"`
	MinOrderQty  int       `json:"minOrderQuantity" dynamodbav:"min_order_qty"`
	AvailableQty int       `json:"availableQuantity" dynamodbav:"available_qty"`
	ImageURL     string    `json:"img,omitempty" dynamodbav:"image_url"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreatePartRequest struct {
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	MinOrderQty  int     `json:"minOrderQuantity" validate:"omitempty,min=1"`
	AvailableQty int     `json:"availableQuantity" validate:"omitempty,min=0"`
	ImageURL     string  `json:"img"`
}
