package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// okResponse acknowledges a mutation with no payload of its own.
type okResponse struct {
	OK bool `json:"ok"`
}
