package models

// Response is the standard API envelope. Handlers log internal error detail
// and put only a generic message here.
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
