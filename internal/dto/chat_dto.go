package dto

type ChatQueryRequest struct {
	Query     string `json:"query" validate:"required"`
	SessionId string `json:"session_id,omitempty"`
	Language  string `json:"language,omitempty"`
}

type ChatQueryResponse struct {
	Reply       string                 `json:"reply"`
	Intent      string                 `json:"intent"`
	Entities    map[string]interface{} `json:"entities"`
	Context     map[string]interface{} `json:"context"`
	Suggestions []string               `json:"suggestions"`
	ToolsUsed   []string               `json:"tools_used"`
	MemorySaved bool                   `json:"memory_saved"`
	SessionId   string                 `json:"session_id"`
}

type ClearContextRequest struct {
	// SessionId limits the clear to one session; empty clears everything.
	SessionId string `json:"session_id,omitempty"`
}

type ClearContextResponse struct {
	DeletedTurns int64 `json:"deleted_turns"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}
