package dto

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// CountResponse reports how many registrations a batch operation touched.
type CountResponse struct {
	Count int `json:"count"`
}
