package handler

// --- Request types ---

type createUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required"`
}

type rolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1"`
}

// listUsersQuery carries the query parameters of GET /users. Defaults are
// applied before validation so an absent parameter is not an error.
type listUsersQuery struct {
	Search string `query:"search"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}
