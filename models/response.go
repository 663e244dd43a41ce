package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Error     string `json:"error,omitempty"`
	Available int    `json:"available,omitempty"`
	Requested int    `json:"requested,omitempty"`
}

type CartResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    Cart     `json:"data"`
	Notices []Notice `json:"notices,omitempty"`
}
