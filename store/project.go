package store

// Project is the root entity of the dashboard hierarchy. Its id is intended
// to be globally unique, but the backing store does not reliably enforce
// that; resolution goes through the defensive fetch path.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"ownerId"`
	Manifest    string    `json:"manifest"` // JSON string
	RowStatus   RowStatus `json:"-"`
	CreatedTs   int64     `json:"createdTs"`
	UpdatedTs   int64     `json:"updatedTs"`
}

// FindProject is the find condition for projects.
type FindProject struct {
	ID        *string
	OwnerID   *string
	RowStatus *RowStatus
}

// UpdateProject is the update request for a project.
type UpdateProject struct {
	ID          string
	Name        *string
	Description *string
	Manifest    *string
	RowStatus   *RowStatus
	UpdatedTs   *int64
}

// DeleteProject soft-deletes a project and cascades to its files, settings
// and conversations.
type DeleteProject struct {
	ID string
}
