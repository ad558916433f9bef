package rest

// ErrorResponse is the JSON body returned by handlers on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
