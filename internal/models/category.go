package models

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CreateCategoryRequest represents the request body for creating a category
type CreateCategoryRequest struct {
	Name string `json:"name"`
}
