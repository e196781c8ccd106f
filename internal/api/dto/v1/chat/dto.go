package chat

// ChatRequest is a single visitor question
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the assistant's answer
type ChatResponse struct {
	Response string `json:"response"`
}
