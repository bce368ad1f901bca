package model

// Response is the JSON envelope every endpoint answers with. Error is set
// on failure, Data on success; Message carries "Success" or the error kind.
type Response struct {
	Data    any     `json:"data,omitempty"`
	Error   *string `json:"error,omitempty"`
	Message string  `json:"message"`
}
