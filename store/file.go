package store

// FileType categorizes a project file's content.
type FileType string

const (
	FileTypeHTML     FileType = "html"
	FileTypeCSS      FileType = "css"
	FileTypeJS       FileType = "js"
	FileTypeJSON     FileType = "json"
	FileTypeManifest FileType = "manifest"
	FileTypeOther    FileType = "other"
)

// File belongs to exactly one project; its lifetime is bounded by the parent.
type File struct {
	ID        string   `json:"id"`
	ProjectID string   `json:"projectId"`
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	FileType  FileType `json:"fileType"`
	Content   string   `json:"content"`
	CreatedTs int64    `json:"createdTs"`
	UpdatedTs int64    `json:"updatedTs"`
}

// FindFile is the find condition for files.
type FindFile struct {
	ID        *string
	ProjectID *string
}

// UpdateFile is the update request for a file.
type UpdateFile struct {
	ID        string
	Name      *string
	Path      *string
	FileType  *FileType
	Content   *string
	UpdatedTs *int64
}

// DeleteFile removes a single file.
type DeleteFile struct {
	ID string
}
