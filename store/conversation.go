package store

// Conversation groups messages under a project. Listed by UpdatedTs
// descending for display; UpdatedTs is bumped on every message append.
type Conversation struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	OwnerID   string `json:"ownerId"`
	Title     string `json:"title"`
	CreatedTs int64  `json:"createdTs"`
	UpdatedTs int64  `json:"updatedTs"`
}

// FindConversation is the find condition for conversations.
type FindConversation struct {
	ID        *string
	ProjectID *string
	OwnerID   *string
}

// UpdateConversation is the update request for a conversation. A bare
// UpdatedTs update is the best-effort touch issued after a message append.
type UpdateConversation struct {
	ID        string
	Title     *string
	UpdatedTs *int64
}

// DeleteConversation removes a conversation and its messages.
type DeleteConversation struct {
	ID string
}
