package dto

// CreateAgencyRequest payload.
type CreateAgencyRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateAgencyRequest is a partial patch.
type UpdateAgencyRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CreateCategoryRequest payload.
type CreateCategoryRequest struct {
	AgencyID    string `json:"agencyId" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateCategoryRequest is a partial patch.
type UpdateCategoryRequest struct {
	AgencyID    *string `json:"agencyId"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CreateCitizenRequest payload.
type CreateCitizenRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

// UpdateCitizenRequest is a partial patch.
type UpdateCitizenRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}
