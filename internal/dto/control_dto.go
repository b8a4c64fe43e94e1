package dto

type ControlRequest struct {
	Email string `json:"email"`
}

type ListResponse[T any] struct {
	Results []T   `json:"results"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
}
