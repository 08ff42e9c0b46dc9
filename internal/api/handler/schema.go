package handler

// errorMessage documents the error envelope rendered by the central HTTP
// error handler.
type errorMessage struct {
	Message string `json:"message"`
}

// statusMessage is the body of operations that return no resource.
type statusMessage struct {
	Message string `json:"message"`
}
