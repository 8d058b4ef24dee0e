package store

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/craftdeck/craftdeck/internal/apperr"
)

// CollectionWarning records a dependent-collection fetch that degraded to an
// empty collection. It never surfaces on the caller's success path, but
// callers and tests can tell "truly empty" apart from "failed to fetch".
type CollectionWarning struct {
	Collection string
	Err        error
}

// ProjectView is the composite view of a project with its dependent
// collections attached.
type ProjectView struct {
	*Project
	Files         []*File             `json:"files"`
	Settings      []*Setting          `json:"settings"`
	Conversations []*Conversation     `json:"conversations"`
	Warnings      []CollectionWarning `json:"-"`
}

// ConversationView is the composite view of a conversation with its messages.
type ConversationView struct {
	*Conversation
	Messages []*Message          `json:"messages"`
	Warnings []CollectionWarning `json:"-"`
}

// GetProject returns the composite view for a project id, cache-first. On a
// miss the project is resolved defensively, its collections are aggregated
// concurrently, and the result populates the cache. Failures are never cached.
func (s *Store) GetProject(ctx context.Context, id string) (*ProjectView, error) {
	if v, ok := s.projectCache.Get(id); ok {
		return v.(*ProjectView), nil
	}

	project, err := s.resolveProject(ctx, id)
	if err != nil {
		return nil, err
	}

	view := s.aggregateProject(ctx, project)
	s.projectCache.Set(id, view)
	return view, nil
}

// GetConversation returns the composite view for a conversation id,
// cache-first, same contract as GetProject.
func (s *Store) GetConversation(ctx context.Context, id string) (*ConversationView, error) {
	if v, ok := s.conversationCache.Get(id); ok {
		return v.(*ConversationView), nil
	}

	conversation, err := s.resolveConversation(ctx, id)
	if err != nil {
		return nil, err
	}

	view := s.aggregateConversation(ctx, conversation)
	s.conversationCache.Set(id, view)
	return view, nil
}

// ListProjects lists the live projects belonging to an owner.
func (s *Store) ListProjects(ctx context.Context, ownerID string) ([]*Project, error) {
	status := Normal
	rows, err := s.driver.ListProjects(ctx, &FindProject{OwnerID: &ownerID, RowStatus: &status})
	if err != nil {
		return nil, s.classify(err)
	}
	return rows, nil
}

// ListConversations lists a project's conversations, most recently updated
// first (driver ordering).
func (s *Store) ListConversations(ctx context.Context, projectID string) ([]*Conversation, error) {
	if err := ValidateID(projectID); err != nil {
		return nil, s.classify(err)
	}
	rows, err := s.driver.ListConversations(ctx, &FindConversation{ProjectID: &projectID})
	if err != nil {
		return nil, s.classify(err)
	}
	return rows, nil
}

// aggregateProject fires the three dependent-collection fetches concurrently
// and waits for all to settle, so total latency is bounded by the slowest
// fetch rather than their sum. A failed collection degrades to empty with a
// recorded warning; it never fails the whole operation.
func (s *Store) aggregateProject(ctx context.Context, project *Project) *ProjectView {
	view := &ProjectView{
		Project:       project,
		Files:         []*File{},
		Settings:      []*Setting{},
		Conversations: []*Conversation{},
	}

	var mu sync.Mutex
	degrade := func(collection string, err error) {
		mu.Lock()
		view.Warnings = append(view.Warnings, CollectionWarning{Collection: collection, Err: err})
		mu.Unlock()
		s.recordWarning("project", project.ID, collection, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var files []*File
		err := s.fetchWithRetry(func() error {
			var err error
			files, err = s.driver.ListFiles(gctx, &FindFile{ProjectID: &project.ID})
			return err
		})
		if err != nil {
			degrade("files", err)
			return nil
		}
		mu.Lock()
		view.Files = files
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		var settings []*Setting
		err := s.fetchWithRetry(func() error {
			var err error
			settings, err = s.driver.ListSettings(gctx, &FindSetting{ProjectID: &project.ID})
			return err
		})
		if err != nil {
			degrade("settings", err)
			return nil
		}
		mu.Lock()
		view.Settings = settings
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		var conversations []*Conversation
		err := s.fetchWithRetry(func() error {
			var err error
			conversations, err = s.driver.ListConversations(gctx, &FindConversation{ProjectID: &project.ID})
			return err
		})
		if err != nil {
			degrade("conversations", err)
			return nil
		}
		mu.Lock()
		view.Conversations = conversations
		mu.Unlock()
		return nil
	})

	// Branches never return errors; Wait only synchronizes.
	_ = g.Wait()
	return view
}

func (s *Store) aggregateConversation(ctx context.Context, conversation *Conversation) *ConversationView {
	view := &ConversationView{
		Conversation: conversation,
		Messages:     []*Message{},
	}

	var messages []*Message
	err := s.fetchWithRetry(func() error {
		var err error
		messages, err = s.driver.ListMessages(ctx, &FindMessage{ConversationID: &conversation.ID})
		return err
	})
	if err != nil {
		view.Warnings = append(view.Warnings, CollectionWarning{Collection: "messages", Err: err})
		s.recordWarning("conversation", conversation.ID, "messages", err)
		return view
	}

	view.Messages = messages
	return view
}

// fetchWithRetry runs a dependent-collection fetch, retrying exactly once
// when the failure classifies as a network error. Mutations and the primary
// existence probe never go through here.
func (s *Store) fetchWithRetry(fetch func() error) error {
	err := fetch()
	if err == nil {
		return nil
	}
	if apperr.Classify(err, nil).Kind == apperr.KindNetwork {
		return fetch()
	}
	return err
}
