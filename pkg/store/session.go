package store

// Session is the scratch state for an active chat session, kept in process
// memory only. Durable history lives in the conversation turn table.
type Session struct {
	ID           string                 `json:"id"`
	UserID       string                 `json:"user_id"`
	LastQuery    string                 `json:"last_query"`
	LastIntent   string                 `json:"last_intent"`
	LastEntities map[string]interface{} `json:"last_entities"`
	TurnCount    int                    `json:"turn_count"`
}
