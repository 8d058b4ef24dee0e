package store

import (
	"context"
	"database/sql"
)

// Driver is the contract a store database driver implements.
//
// Every read returns a list, never a single row: the backing data has known
// duplicate-id defects, and a must-return-exactly-one primitive cannot tell
// "zero rows" apart from "more than one". Disambiguation happens above the
// driver, in the store facade.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	// Project model related methods.
	CreateProject(ctx context.Context, create *Project) (*Project, error)
	ListProjects(ctx context.Context, find *FindProject) ([]*Project, error)
	UpdateProject(ctx context.Context, update *UpdateProject) (*Project, error)
	DeleteProject(ctx context.Context, delete *DeleteProject) error

	// File model related methods.
	CreateFile(ctx context.Context, create *File) (*File, error)
	ListFiles(ctx context.Context, find *FindFile) ([]*File, error)
	UpdateFile(ctx context.Context, update *UpdateFile) (*File, error)
	DeleteFile(ctx context.Context, delete *DeleteFile) error

	// Setting model related methods.
	UpsertSetting(ctx context.Context, upsert *Setting) (*Setting, error)
	ListSettings(ctx context.Context, find *FindSetting) ([]*Setting, error)

	// Conversation model related methods.
	CreateConversation(ctx context.Context, create *Conversation) (*Conversation, error)
	ListConversations(ctx context.Context, find *FindConversation) ([]*Conversation, error)
	UpdateConversation(ctx context.Context, update *UpdateConversation) (*Conversation, error)
	DeleteConversation(ctx context.Context, delete *DeleteConversation) error

	// Message model related methods.
	CreateMessage(ctx context.Context, create *Message) (*Message, error)
	ListMessages(ctx context.Context, find *FindMessage) ([]*Message, error)
}
