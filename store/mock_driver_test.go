package store

import (
	"context"
	"database/sql"
)

// mockDriver is an in-memory Driver with per-method call counters and
// failure injection, so tests can verify how many store round-trips an
// operation issued and how failures propagate.
type mockDriver struct {
	projects      []*Project
	files         []*File
	settings      []*Setting
	conversations []*Conversation
	messages      []*Message

	calls    map[string]int
	fail     map[string]error // persistent injected failures
	failOnce map[string]error // consumed by the first call
}

func newMockDriver() *mockDriver {
	return &mockDriver{
		calls:    make(map[string]int),
		fail:     make(map[string]error),
		failOnce: make(map[string]error),
	}
}

// touch counts the call and returns any injected failure.
func (m *mockDriver) touch(method string) error {
	m.calls[method]++
	if err, ok := m.failOnce[method]; ok {
		delete(m.failOnce, method)
		return err
	}
	if err, ok := m.fail[method]; ok {
		return err
	}
	return nil
}

func (*mockDriver) GetDB() *sql.DB { return nil }
func (*mockDriver) Close() error   { return nil }

func (m *mockDriver) CreateProject(_ context.Context, create *Project) (*Project, error) {
	if err := m.touch("CreateProject"); err != nil {
		return nil, err
	}
	m.projects = append(m.projects, create)
	return create, nil
}

func (m *mockDriver) ListProjects(_ context.Context, find *FindProject) ([]*Project, error) {
	if err := m.touch("ListProjects"); err != nil {
		return nil, err
	}
	result := make([]*Project, 0)
	for _, p := range m.projects {
		if find.ID != nil && p.ID != *find.ID {
			continue
		}
		if find.OwnerID != nil && p.OwnerID != *find.OwnerID {
			continue
		}
		if find.RowStatus != nil && p.RowStatus != *find.RowStatus {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (m *mockDriver) UpdateProject(_ context.Context, update *UpdateProject) (*Project, error) {
	if err := m.touch("UpdateProject"); err != nil {
		return nil, err
	}
	for _, p := range m.projects {
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
	return nil, sql.ErrNoRows
}

func (m *mockDriver) DeleteProject(_ context.Context, delete *DeleteProject) error {
	if err := m.touch("DeleteProject"); err != nil {
		return err
	}
	for _, p := range m.projects {
		if p.ID == delete.ID {
			p.RowStatus = Archived
		}
	}
	return nil
}

func (m *mockDriver) CreateFile(_ context.Context, create *File) (*File, error) {
	if err := m.touch("CreateFile"); err != nil {
		return nil, err
	}
	m.files = append(m.files, create)
	return create, nil
}

func (m *mockDriver) ListFiles(_ context.Context, find *FindFile) ([]*File, error) {
	if err := m.touch("ListFiles"); err != nil {
		return nil, err
	}
	result := make([]*File, 0)
	for _, f := range m.files {
		if find.ID != nil && f.ID != *find.ID {
			continue
		}
		if find.ProjectID != nil && f.ProjectID != *find.ProjectID {
			continue
		}
		result = append(result, f)
	}
	return result, nil
}

func (m *mockDriver) UpdateFile(_ context.Context, update *UpdateFile) (*File, error) {
	if err := m.touch("UpdateFile"); err != nil {
		return nil, err
	}
	for _, f := range m.files {
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
	return nil, sql.ErrNoRows
}

func (m *mockDriver) DeleteFile(_ context.Context, delete *DeleteFile) error {
	if err := m.touch("DeleteFile"); err != nil {
		return err
	}
	kept := m.files[:0]
	for _, f := range m.files {
		if f.ID != delete.ID {
			kept = append(kept, f)
		}
	}
	m.files = kept
	return nil
}

func (m *mockDriver) UpsertSetting(_ context.Context, upsert *Setting) (*Setting, error) {
	if err := m.touch("UpsertSetting"); err != nil {
		return nil, err
	}
	for _, s := range m.settings {
		if s.ProjectID == upsert.ProjectID && s.Key == upsert.Key {
			s.Value = upsert.Value
			return s, nil
		}
	}
	m.settings = append(m.settings, upsert)
	return upsert, nil
}

func (m *mockDriver) ListSettings(_ context.Context, find *FindSetting) ([]*Setting, error) {
	if err := m.touch("ListSettings"); err != nil {
		return nil, err
	}
	result := make([]*Setting, 0)
	for _, s := range m.settings {
		if find.ProjectID != nil && s.ProjectID != *find.ProjectID {
			continue
		}
		if find.Key != nil && s.Key != *find.Key {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (m *mockDriver) CreateConversation(_ context.Context, create *Conversation) (*Conversation, error) {
	if err := m.touch("CreateConversation"); err != nil {
		return nil, err
	}
	m.conversations = append(m.conversations, create)
	return create, nil
}

func (m *mockDriver) ListConversations(_ context.Context, find *FindConversation) ([]*Conversation, error) {
	if err := m.touch("ListConversations"); err != nil {
		return nil, err
	}
	result := make([]*Conversation, 0)
	for _, c := range m.conversations {
		if find.ID != nil && c.ID != *find.ID {
			continue
		}
		if find.ProjectID != nil && c.ProjectID != *find.ProjectID {
			continue
		}
		if find.OwnerID != nil && c.OwnerID != *find.OwnerID {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (m *mockDriver) UpdateConversation(_ context.Context, update *UpdateConversation) (*Conversation, error) {
	if err := m.touch("UpdateConversation"); err != nil {
		return nil, err
	}
	for _, c := range m.conversations {
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
	return nil, sql.ErrNoRows
}

func (m *mockDriver) DeleteConversation(_ context.Context, delete *DeleteConversation) error {
	if err := m.touch("DeleteConversation"); err != nil {
		return err
	}
	keptMessages := m.messages[:0]
	for _, msg := range m.messages {
		if msg.ConversationID != delete.ID {
			keptMessages = append(keptMessages, msg)
		}
	}
	m.messages = keptMessages

	kept := m.conversations[:0]
	for _, c := range m.conversations {
		if c.ID != delete.ID {
			kept = append(kept, c)
		}
	}
	m.conversations = kept
	return nil
}

func (m *mockDriver) CreateMessage(_ context.Context, create *Message) (*Message, error) {
	if err := m.touch("CreateMessage"); err != nil {
		return nil, err
	}
	m.messages = append(m.messages, create)
	return create, nil
}

func (m *mockDriver) ListMessages(_ context.Context, find *FindMessage) ([]*Message, error) {
	if err := m.touch("ListMessages"); err != nil {
		return nil, err
	}
	result := make([]*Message, 0)
	for _, msg := range m.messages {
		if find.ID != nil && msg.ID != *find.ID {
			continue
		}
		if find.ConversationID != nil && msg.ConversationID != *find.ConversationID {
			continue
		}
		result = append(result, msg)
	}
	return result, nil
}
