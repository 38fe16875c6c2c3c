package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/splitbook/internal/models"
)

// CreateGroup registers a group. Every member must be a known user;
// repeated member IDs are kept once.
func (l *Ledger) CreateGroup(ctx context.Context, name string, memberIDs []string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	members, err := l.newMembersLocked(memberIDs, nil)
	if err != nil {
		return nil, err
	}
	group := &models.Group{
		ID:        uuid.New().String(),
		Name:      name,
		Members:   members,
		CreatedAt: l.now().Unix(),
	}

	if l.journal != nil {
		if err := l.journal.AppendGroup(ctx, group); err != nil {
			return nil, err
		}
	}
	l.groups[group.ID] = group
	l.groupOrder = append(l.groupOrder, group.ID)
	l.metrics.SetDirectorySize(len(l.users), len(l.groups))

	slog.Info("Group created", "group_id", group.ID, "name", group.Name, "members_count", len(members))
	return copyGroup(group), nil
}

// AddGroupMembers adds users to a group. Users already in the group are
// skipped.
func (l *Ledger) AddGroupMembers(ctx context.Context, groupID string, userIDs []string) (*models.Group, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	group, ok := l.groups[groupID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
	}

	added, err := l.newMembersLocked(userIDs, group.Members)
	if err != nil {
		return nil, err
	}
	if len(added) == 0 {
		return copyGroup(group), nil
	}

	if l.journal != nil {
		if err := l.journal.AppendGroupMembers(ctx, groupID, added); err != nil {
			return nil, err
		}
	}
	group.Members = append(group.Members, added...)

	slog.Info("Group members added", "group_id", groupID, "new_members", added)
	return copyGroup(group), nil
}

// Group returns the group with the given ID.
func (l *Ledger) Group(id string) (models.Group, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	g, ok := l.groups[id]
	if !ok {
		return models.Group{}, fmt.Errorf("%w: %s", ErrGroupNotFound, id)
	}
	return *copyGroup(g), nil
}

// Groups returns every group in creation order.
func (l *Ledger) Groups() []models.Group {
	l.mu.Lock()
	defer l.mu.Unlock()

	groups := make([]models.Group, 0, len(l.groupOrder))
	for _, id := range l.groupOrder {
		groups = append(groups, *copyGroup(l.groups[id]))
	}
	return groups
}

// newMembersLocked returns the IDs of userIDs that are not in existing,
// deduplicated and in order. Unknown users are an error.
func (l *Ledger) newMembersLocked(userIDs, existing []string) ([]string, error) {
	seen := make(map[string]bool, len(existing)+len(userIDs))
	for _, m := range existing {
		seen[m] = true
	}
	var added []string
	for _, id := range userIDs {
		if _, ok := l.users[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		added = append(added, id)
	}
	return added, nil
}

func copyGroup(g *models.Group) *models.Group {
	c := *g
	c.Members = append([]string(nil), g.Members...)
	return &c
}
