package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/craftdeck/craftdeck/internal/apperr"
)

// CreateProject performs the write, then eagerly caches the returned entity:
// a create implicitly satisfies the next read.
func (s *Store) CreateProject(ctx context.Context, callerID string, create *Project) (*Project, error) {
	if create.Name == "" {
		return nil, s.classify(apperr.Validation("project name is required"))
	}
	if create.OwnerID == "" {
		create.OwnerID = callerID
	}
	if create.OwnerID != callerID {
		return nil, s.classify(apperr.Forbidden())
	}

	if create.ID == "" {
		create.ID = uuid.NewString()
	} else if err := ValidateID(create.ID); err != nil {
		return nil, s.classify(err)
	}
	if create.Manifest == "" {
		create.Manifest = "{}"
	}
	now := time.Now().Unix()
	create.CreatedTs = now
	create.UpdatedTs = now
	create.RowStatus = Normal

	created, err := s.driver.CreateProject(ctx, create)
	if err != nil {
		return nil, s.classify(err)
	}

	s.projectCache.Set(created.ID, &ProjectView{
		Project:       created,
		Files:         []*File{},
		Settings:      []*Setting{},
		Conversations: []*Conversation{},
	})
	return created, nil
}

// UpdateProject applies an edit after the ownership check.
func (s *Store) UpdateProject(ctx context.Context, callerID string, update *UpdateProject) (*Project, error) {
	if _, err := s.authorizeProject(ctx, callerID, update.ID); err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	update.UpdatedTs = &now
	updated, err := s.driver.UpdateProject(ctx, update)
	if err != nil {
		return nil, s.classify(err)
	}

	s.InvalidateProject(update.ID)
	return updated, nil
}

// DeleteProject soft-deletes a project after the ownership check. The driver
// cascades to files, settings, conversations and their messages.
func (s *Store) DeleteProject(ctx context.Context, callerID, id string) error {
	if _, err := s.authorizeProject(ctx, callerID, id); err != nil {
		return err
	}

	// Drop cached conversation views before the rows disappear underneath them.
	if conversations, err := s.driver.ListConversations(ctx, &FindConversation{ProjectID: &id}); err == nil {
		for _, c := range conversations {
			s.InvalidateConversation(c.ID)
		}
	}

	if err := s.driver.DeleteProject(ctx, &DeleteProject{ID: id}); err != nil {
		return s.classify(err)
	}

	s.InvalidateProject(id)
	return nil
}

// CreateFile creates a file after its parent project is resolved and owned
// by the caller. A file is never created without a pre-existing parent.
func (s *Store) CreateFile(ctx context.Context, callerID string, create *File) (*File, error) {
	if create.Name == "" {
		return nil, s.classify(apperr.Validation("file name is required"))
	}
	if _, err := s.authorizeProject(ctx, callerID, create.ProjectID); err != nil {
		return nil, err
	}

	if create.ID == "" {
		create.ID = uuid.NewString()
	}
	if create.FileType == "" {
		create.FileType = FileTypeOther
	}
	now := time.Now().Unix()
	create.CreatedTs = now
	create.UpdatedTs = now

	created, err := s.driver.CreateFile(ctx, create)
	if err != nil {
		return nil, s.classify(err)
	}

	s.InvalidateProject(create.ProjectID)
	return created, nil
}

// UpdateFile edits a file after resolving it and authorizing its parent.
func (s *Store) UpdateFile(ctx context.Context, callerID string, update *UpdateFile) (*File, error) {
	file, err := s.resolveFile(ctx, update.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeProject(ctx, callerID, file.ProjectID); err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	update.UpdatedTs = &now
	updated, err := s.driver.UpdateFile(ctx, update)
	if err != nil {
		return nil, s.classify(err)
	}

	s.InvalidateProject(file.ProjectID)
	return updated, nil
}

// DeleteFile removes a file after resolving it and authorizing its parent.
func (s *Store) DeleteFile(ctx context.Context, callerID, id string) error {
	file, err := s.resolveFile(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.authorizeProject(ctx, callerID, file.ProjectID); err != nil {
		return err
	}

	if err := s.driver.DeleteFile(ctx, &DeleteFile{ID: id}); err != nil {
		return s.classify(err)
	}

	s.InvalidateProject(file.ProjectID)
	return nil
}

// UpsertSetting writes a (projectId, key) setting after the parent check.
func (s *Store) UpsertSetting(ctx context.Context, callerID string, upsert *Setting) (*Setting, error) {
	if upsert.Key == "" {
		return nil, s.classify(apperr.Validation("setting key is required"))
	}
	if _, err := s.authorizeProject(ctx, callerID, upsert.ProjectID); err != nil {
		return nil, err
	}

	setting, err := s.driver.UpsertSetting(ctx, upsert)
	if err != nil {
		return nil, s.classify(err)
	}

	s.InvalidateProject(upsert.ProjectID)
	return setting, nil
}

// CreateConversation creates a conversation under a resolved, caller-owned
// project. The id is generated locally so the cache can optimistically
// register the entity before the write is acknowledged; the registration is
// rolled back if the write fails.
func (s *Store) CreateConversation(ctx context.Context, callerID, projectID, title string) (*Conversation, error) {
	if _, err := s.authorizeProject(ctx, callerID, projectID); err != nil {
		return nil, err
	}

	if title == "" {
		title = "Untitled conversation"
	}
	now := time.Now().Unix()
	conversation := &Conversation{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		OwnerID:   callerID,
		Title:     title,
		CreatedTs: now,
		UpdatedTs: now,
	}

	s.conversationCache.SetPending(conversation.ID, &ConversationView{
		Conversation: conversation,
		Messages:     []*Message{},
	})

	created, err := s.driver.CreateConversation(ctx, conversation)
	if err != nil {
		s.conversationCache.Delete(conversation.ID)
		return nil, s.classify(err)
	}

	s.conversationCache.Confirm(created.ID, &ConversationView{
		Conversation: created,
		Messages:     []*Message{},
	})
	s.InvalidateProject(projectID)
	return created, nil
}

// DeleteConversation removes a caller-owned conversation and its messages.
func (s *Store) DeleteConversation(ctx context.Context, callerID, id string) error {
	conversation, err := s.authorizeConversation(ctx, callerID, id)
	if err != nil {
		return err
	}

	if err := s.driver.DeleteConversation(ctx, &DeleteConversation{ID: id}); err != nil {
		return s.classify(err)
	}

	s.InvalidateConversation(id)
	s.InvalidateProject(conversation.ProjectID)
	return nil
}

// AppendMessage appends a message to a caller-owned conversation and then
// best-effort bumps the conversation's UpdatedTs. Failure of that secondary
// update is logged but never fails the append.
func (s *Store) AppendMessage(ctx context.Context, callerID, conversationID string, role MessageRole, content string) (*Message, error) {
	if !role.IsValid() {
		return nil, s.classify(apperr.Validation("message role must be one of user, assistant, system"))
	}
	if content == "" {
		return nil, s.classify(apperr.Validation("message content is required"))
	}

	conversation, err := s.authorizeConversation(ctx, callerID, conversationID)
	if err != nil {
		return nil, err
	}

	message := &Message{
		ID:             uuid.NewString(),
		ConversationID: conversation.ID,
		Role:           role,
		Content:        content,
		CreatedTs:      time.Now().Unix(),
	}

	created, err := s.driver.CreateMessage(ctx, message)
	if err != nil {
		return nil, s.classify(err)
	}

	now := message.CreatedTs
	if _, err := s.driver.UpdateConversation(ctx, &UpdateConversation{ID: conversation.ID, UpdatedTs: &now}); err != nil {
		classified := s.classify(err)
		slog.Warn("best-effort conversation touch failed after message append",
			slog.String("conversation_id", conversation.ID),
			slog.String("kind", string(classified.Kind)),
			slog.String("error", classified.Error()))
	}

	s.InvalidateConversation(conversation.ID)
	s.InvalidateProject(conversation.ProjectID)
	return created, nil
}

// resolveFile runs the defensive probe for a file id.
func (s *Store) resolveFile(ctx context.Context, id string) (*File, error) {
	if err := ValidateID(id); err != nil {
		return nil, s.classify(err)
	}

	rows, err := s.driver.ListFiles(ctx, &FindFile{ID: &id})
	if err != nil {
		return nil, s.classify(err)
	}

	file, count := disambiguate(rows)
	if count == 0 {
		return nil, s.classify(apperr.NotFound("file", id))
	}
	if count > 1 {
		slog.Warn("duplicate file rows for id, using first by store order",
			slog.String("id", id),
			slog.Int("count", count))
	}
	return file, nil
}
