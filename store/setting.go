package store

// Setting is a per-project key/value pair. Keyed by (ProjectID, Key);
// upserted, never deleted on its own except through the project cascade.
type Setting struct {
	ProjectID string `json:"projectId"`
	Key       string `json:"key"`
	Value     string `json:"value"` // JSON string
}

// FindSetting is the find condition for settings.
type FindSetting struct {
	ProjectID *string
	Key       *string
}
