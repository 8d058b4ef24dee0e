package store

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/craftdeck/craftdeck/internal/apperr"
)

// ValidateID checks that id is syntactically a UUID in canonical
// 8-4-4-4-12 form. Invalid ids fail before any store round-trip.
func ValidateID(id string) error {
	if len(id) != 36 || id[8] != '-' || id[13] != '-' || id[18] != '-' || id[23] != '-' {
		return apperr.Validation("id is not a canonical UUID")
	}
	if _, err := uuid.Parse(id); err != nil {
		return apperr.Validation("id is not a canonical UUID")
	}
	return nil
}

// disambiguate selects "the" row from a candidate list whose shared id
// should have been unique. Policy: first element in store-returned order.
// Pure function; returns the pick and the candidate count.
func disambiguate[T any](rows []*T) (*T, int) {
	if len(rows) == 0 {
		return nil, 0
	}
	return rows[0], len(rows)
}

// resolveProject runs the existence probe for a project id: validate the id,
// list matching rows, and interpret 0/1/>1. Duplicate rows resolve to the
// first row with a logged diagnostic rather than an error.
func (s *Store) resolveProject(ctx context.Context, id string) (*Project, error) {
	if err := ValidateID(id); err != nil {
		return nil, s.classify(err)
	}

	status := Normal
	rows, err := s.driver.ListProjects(ctx, &FindProject{ID: &id, RowStatus: &status})
	if err != nil {
		return nil, s.classify(err)
	}

	project, count := disambiguate(rows)
	if count == 0 {
		return nil, s.classify(apperr.NotFound("project", id))
	}
	if count > 1 {
		slog.Warn("duplicate project rows for id, using first by store order",
			slog.String("id", id),
			slog.Int("count", count))
	}
	return project, nil
}

// resolveConversation is the conversation counterpart of resolveProject.
func (s *Store) resolveConversation(ctx context.Context, id string) (*Conversation, error) {
	if err := ValidateID(id); err != nil {
		return nil, s.classify(err)
	}

	rows, err := s.driver.ListConversations(ctx, &FindConversation{ID: &id})
	if err != nil {
		return nil, s.classify(err)
	}

	conversation, count := disambiguate(rows)
	if count == 0 {
		return nil, s.classify(apperr.NotFound("conversation", id))
	}
	if count > 1 {
		slog.Warn("duplicate conversation rows for id, using first by store order",
			slog.String("id", id),
			slog.Int("count", count))
	}
	return conversation, nil
}

// authorizeProject resolves a project and verifies the caller owns it.
// Used before every mutating operation on the project subtree.
func (s *Store) authorizeProject(ctx context.Context, callerID, projectID string) (*Project, error) {
	project, err := s.resolveProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != callerID {
		return nil, s.classify(apperr.Forbidden())
	}
	return project, nil
}

// AuthorizeProject resolves a project and verifies the caller owns it.
// The transport layer uses it to gate reads scoped to a project.
func (s *Store) AuthorizeProject(ctx context.Context, callerID, projectID string) (*Project, error) {
	return s.authorizeProject(ctx, callerID, projectID)
}

// authorizeConversation resolves a conversation and verifies ownership.
func (s *Store) authorizeConversation(ctx context.Context, callerID, conversationID string) (*Conversation, error) {
	conversation, err := s.resolveConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation.OwnerID != callerID {
		return nil, s.classify(apperr.Forbidden())
	}
	return conversation, nil
}
