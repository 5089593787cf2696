package dto

type LoginRequest struct {
	RollNumber string `json:"rollNumber" binding:"required"`
	DOB        string `json:"dob" binding:"required"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  ProfileResponse `json:"user"`
}

type VerifyResponse struct {
	Valid bool `json:"valid"`
}
