package domain

import "time"

type Review struct {
	ReviewID  string    `json:"id" dynamodbav:"review_id"`
	Email     string    `json:"email" dynamodbav:"email"`
	Name      string    `json:"name" dynamodbav:"name"`
	Rating    int       `json:"rating" dynamodbav:"rating"`
	Comment   string    `json:"comment,omitempty" dynamodbav:"comment"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}

type CreateReviewRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Name    string `json:"name" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
