package dto

type SendMessageRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

type ResetSessionResponse struct {
	Message string `json:"message"`
}
