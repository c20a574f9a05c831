// Package service is the write boundary of the ledger. Every mutation is
// validated here before it reaches storage, and every committed write is
// followed by the matching change notification.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"splitledger/internal/auth"
	"splitledger/internal/ledger"
	"splitledger/internal/models"
	"splitledger/internal/notify"
	"splitledger/internal/storage"
)

// GroupService manages groups and their activity feeds.
type GroupService struct {
	store    storage.Store
	notifier notify.Notifier
}

// NewGroupService creates a group service.
func NewGroupService(store storage.Store, notifier notify.Notifier) *GroupService {
	return &GroupService{store: store, notifier: notifier}
}

// CreateGroup creates a group with a fixed member set. The creator is always
// a member, even if left off the list. Member emails are normalized;
// duplicates and blanks are rejected.
func (s *GroupService) CreateGroup(ctx context.Context, creator, name string, members []string) (*models.Group, error) {
	if name == "" {
		return nil, &ledger.InvalidMembersError{Reason: "group name must not be empty"}
	}

	creator = auth.NormalizeEmail(creator)
	seen := make(map[string]bool, len(members)+1)
	normalized := make([]string, 0, len(members)+1)
	for _, m := range members {
		m = auth.NormalizeEmail(m)
		if m == "" {
			return nil, &ledger.InvalidMembersError{Reason: "member email must not be blank"}
		}
		if seen[m] {
			return nil, &ledger.InvalidMembersError{Reason: fmt.Sprintf("duplicate member %s", m)}
		}
		seen[m] = true
		normalized = append(normalized, m)
	}
	if !seen[creator] {
		normalized = append(normalized, creator)
	}

	group := &models.Group{
		ID:        uuid.New().String(),
		Name:      name,
		Members:   normalized,
		CreatedBy: creator,
		CreatedAt: time.Now().Unix(),
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	for _, member := range group.Members {
		if err := s.notifier.PublishMembershipChange(ctx, member); err != nil {
			return group, fmt.Errorf("group created but notification failed: %w", err)
		}
	}
	return group, nil
}

// GetGroup returns a group the actor belongs to.
func (s *GroupService) GetGroup(ctx context.Context, actor, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(actor) {
		return nil, ErrNotMember
	}
	return group, nil
}

// ListGroups returns every group the actor belongs to.
func (s *GroupService) ListGroups(ctx context.Context, actor string) ([]*models.Group, error) {
	return s.store.ListGroupsByMember(ctx, actor)
}

// ListActivity returns the group's activity feed, newest first, capped at
// limit entries.
func (s *GroupService) ListActivity(ctx context.Context, actor, groupID string, limit int) ([]*models.Activity, error) {
	if _, err := s.GetGroup(ctx, actor, groupID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.store.ListActivityByGroup(ctx, groupID, limit)
}
