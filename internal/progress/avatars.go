package progress

import (
	"context"
	"fmt"

	"taskventure/internal/model"
)

// DefaultAvatars is the built-in avatar set with its level gates.
func DefaultAvatars() []model.Avatar {
	return []model.Avatar{
		{Name: "gladiator", Asset: "avatars/gladiator.png", RequiredLevel: 1},
		{Name: "assassin", Asset: "avatars/assassin.png", RequiredLevel: 2},
		{Name: "knight", Asset: "avatars/knight.png", RequiredLevel: 3},
		{Name: "wizard", Asset: "avatars/wizard.png", RequiredLevel: 5},
		{Name: "astronaut", Asset: "avatars/astronaut.png", RequiredLevel: 10},
	}
}

// Avatars returns the avatar catalog.
func (s *Service) Avatars() []model.Avatar {
	out := make([]model.Avatar, len(s.avatars))
	copy(out, s.avatars)
	return out
}

// AvatarUnlocked reports whether the avatar is available at the given level.
func AvatarUnlocked(a model.Avatar, level int) bool {
	return level >= a.RequiredLevel
}

// SelectAvatar sets the user's profile picture after checking the level gate.
func (s *Service) SelectAvatar(ctx context.Context, userID int64, name string) (*model.Avatar, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, a := range s.avatars {
		if a.Name != name {
			continue
		}
		if !AvatarUnlocked(a, p.Level) {
			return nil, fmt.Errorf("%w: %q needs level %d (you are %d)", ErrAvatarLocked, a.Name, a.RequiredLevel, p.Level)
		}
		if err := s.store.UpdateAvatar(ctx, userID, a.Asset); err != nil {
			return nil, err
		}
		return &a, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAvatar, name)
}

// SelectTitle sets the user's displayed title. Only titles earned as
// achievements can be worn.
func (s *Service) SelectTitle(ctx context.Context, userID int64, title string) error {
	unlocked, err := s.store.UnlockedTitles(ctx)
	if err != nil {
		return err
	}
	if !unlocked[title] {
		return fmt.Errorf("%w: %q", ErrTitleLocked, title)
	}
	return s.store.UpdateTitle(ctx, userID, title)
}
