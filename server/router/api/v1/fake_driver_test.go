package v1

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/craftdeck/craftdeck/store"
)

// fakeDriver is an in-memory store.Driver for handler tests.
type fakeDriver struct {
	projects      []*store.Project
	files         []*store.File
	settings      []*store.Setting
	conversations []*store.Conversation
	messages      []*store.Message
}

func (*fakeDriver) GetDB() *sql.DB { return nil }
func (*fakeDriver) Close() error   { return nil }

func (d *fakeDriver) CreateProject(_ context.Context, create *store.Project) (*store.Project, error) {
	d.projects = append(d.projects, create)
	return create, nil
}

func (d *fakeDriver) ListProjects(_ context.Context, find *store.FindProject) ([]*store.Project, error) {
	list := []*store.Project{}
	for _, p := range d.projects {
		if find.ID != nil && p.ID != *find.ID {
			continue
		}
		if find.OwnerID != nil && p.OwnerID != *find.OwnerID {
			continue
		}
		if find.RowStatus != nil && p.RowStatus != *find.RowStatus {
			continue
		}
		list = append(list, p)
	}
	return list, nil
}

func (d *fakeDriver) UpdateProject(_ context.Context, update *store.UpdateProject) (*store.Project, error) {
	for _, p := range d.projects {
		if p.ID != update.ID {
			continue
		}
		if update.Name != nil {
			p.Name = *update.Name
		}
		if update.Description != nil {
			p.Description = *update.Description
		}
		if update.Manifest != nil {
			p.Manifest = *update.Manifest
		}
		if update.RowStatus != nil {
			p.RowStatus = *update.RowStatus
		}
		if update.UpdatedTs != nil {
			p.UpdatedTs = *update.UpdatedTs
		}
		return p, nil
	}
	return nil, fmt.Errorf("project not found")
}

func (d *fakeDriver) DeleteProject(_ context.Context, delete *store.DeleteProject) error {
	for _, p := range d.projects {
		if p.ID == delete.ID {
			p.RowStatus = store.Archived
			return nil
		}
	}
	return fmt.Errorf("project not found")
}

func (d *fakeDriver) CreateFile(_ context.Context, create *store.File) (*store.File, error) {
	d.files = append(d.files, create)
	return create, nil
}

func (d *fakeDriver) ListFiles(_ context.Context, find *store.FindFile) ([]*store.File, error) {
	list := []*store.File{}
	for _, f := range d.files {
		if find.ID != nil && f.ID != *find.ID {
			continue
		}
		if find.ProjectID != nil && f.ProjectID != *find.ProjectID {
			continue
		}
		list = append(list, f)
	}
	return list, nil
}

func (d *fakeDriver) UpdateFile(_ context.Context, update *store.UpdateFile) (*store.File, error) {
	for _, f := range d.files {
		if f.ID != update.ID {
			continue
		}
		if update.Name != nil {
			f.Name = *update.Name
		}
		if update.Path != nil {
			f.Path = *update.Path
		}
		if update.FileType != nil {
			f.FileType = *update.FileType
		}
		if update.Content != nil {
			f.Content = *update.Content
		}
		if update.UpdatedTs != nil {
			f.UpdatedTs = *update.UpdatedTs
		}
		return f, nil
	}
	return nil, fmt.Errorf("file not found")
}

func (d *fakeDriver) DeleteFile(_ context.Context, delete *store.DeleteFile) error {
	for i, f := range d.files {
		if f.ID == delete.ID {
			d.files = append(d.files[:i], d.files[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("file not found")
}

func (d *fakeDriver) UpsertSetting(_ context.Context, upsert *store.Setting) (*store.Setting, error) {
	for _, s := range d.settings {
		if s.ProjectID == upsert.ProjectID && s.Key == upsert.Key {
			s.Value = upsert.Value
			return s, nil
		}
	}
	d.settings = append(d.settings, upsert)
	return upsert, nil
}

func (d *fakeDriver) ListSettings(_ context.Context, find *store.FindSetting) ([]*store.Setting, error) {
	list := []*store.Setting{}
	for _, s := range d.settings {
		if find.ProjectID != nil && s.ProjectID != *find.ProjectID {
			continue
		}
		if find.Key != nil && s.Key != *find.Key {
			continue
		}
		list = append(list, s)
	}
	return list, nil
}

func (d *fakeDriver) CreateConversation(_ context.Context, create *store.Conversation) (*store.Conversation, error) {
	d.conversations = append(d.conversations, create)
	return create, nil
}

func (d *fakeDriver) ListConversations(_ context.Context, find *store.FindConversation) ([]*store.Conversation, error) {
	list := []*store.Conversation{}
	for _, c := range d.conversations {
		if find.ID != nil && c.ID != *find.ID {
			continue
		}
		if find.ProjectID != nil && c.ProjectID != *find.ProjectID {
			continue
		}
		if find.OwnerID != nil && c.OwnerID != *find.OwnerID {
			continue
		}
		list = append(list, c)
	}
	return list, nil
}

func (d *fakeDriver) UpdateConversation(_ context.Context, update *store.UpdateConversation) (*store.Conversation, error) {
	for _, c := range d.conversations {
		if c.ID != update.ID {
			continue
		}
		if update.Title != nil {
			c.Title = *update.Title
		}
		if update.UpdatedTs != nil {
			c.UpdatedTs = *update.UpdatedTs
		}
		return c, nil
	}
	return nil, fmt.Errorf("conversation not found")
}

func (d *fakeDriver) DeleteConversation(_ context.Context, delete *store.DeleteConversation) error {
	for i, c := range d.conversations {
		if c.ID == delete.ID {
			kept := d.messages[:0]
			for _, m := range d.messages {
				if m.ConversationID != delete.ID {
					kept = append(kept, m)
				}
			}
			d.messages = kept
			d.conversations = append(d.conversations[:i], d.conversations[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("conversation not found")
}

func (d *fakeDriver) CreateMessage(_ context.Context, create *store.Message) (*store.Message, error) {
	d.messages = append(d.messages, create)
	return create, nil
}

func (d *fakeDriver) ListMessages(_ context.Context, find *store.FindMessage) ([]*store.Message, error) {
	list := []*store.Message{}
	for _, m := range d.messages {
		if find.ID != nil && m.ID != *find.ID {
			continue
		}
		if find.ConversationID != nil && m.ConversationID != *find.ConversationID {
			continue
		}
		list = append(list, m)
	}
	return list, nil
}
