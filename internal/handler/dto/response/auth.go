package response

type LoginResponse struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type MeResponse struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}
