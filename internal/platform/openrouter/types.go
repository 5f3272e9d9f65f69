package openrouter

// Message is one entry in a chat-completions conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// requestBody is the JSON payload sent to the chat-completions endpoint.
type requestBody struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// Choice is one completion alternative in a model response.
type Choice struct {
	Message Message `json:"message"`
}

// Response is the decoded chat-completions reply. Only the fields the
// application consumes are modeled; the endpoint sends more.
type Response struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
}

// Content returns the content of the first choice's message, or an empty
// string when the response carries no usable content.
func (r *Response) Content() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}
