package coordination

import (
	constants "Tankard/constants/events"
	models "Tankard/models/postgres"
	"context"
	"fmt"
	"log"
)

// CreateGamer registers a player account. The password arrives already
// hashed; identity generation happens in the store layer.
func (s *Service) CreateGamer(ctx context.Context, fullName, email, passwordHash string) (string, error) {
	if fullName == "" || email == "" || passwordHash == "" {
		return "", ErrMissingFields
	}
	var existing []models.Gamer
	if err := s.store.Query(ctx, constants.CollectionGamers,
		map[string]any{"email": email}, &existing); err != nil {
		return "", err
	}
	if len(existing) > 0 {
		return "", ErrEmailTaken
	}

	gamer := models.Gamer{FullName: fullName, Email: email, PasswordHash: passwordHash}
	return s.store.Add(ctx, constants.CollectionGamers, &gamer)
}

// GetGamerByEmail is the login lookup.
func (s *Service) GetGamerByEmail(ctx context.Context, email string) (*models.Gamer, error) {
	var gamers []models.Gamer
	if err := s.store.Query(ctx, constants.CollectionGamers,
		map[string]any{"email": email}, &gamers); err != nil {
		return nil, err
	}
	if len(gamers) == 0 {
		return nil, ErrGamerNotFound
	}
	return &gamers[0], nil
}

// UpdateGamerProfile patches the whitelisted profile fields.
func (s *Service) UpdateGamerProfile(ctx context.Context, gamerID string, fields map[string]any) error {
	if len(fields) == 0 {
		return ErrMissingFields
	}
	if _, err := s.GetGamer(ctx, gamerID); err != nil {
		return err
	}
	return s.store.Update(ctx, constants.CollectionGamers, gamerID, fields)
}

// CreatePublican registers a pub-owner account with its venue attributes.
func (s *Service) CreatePublican(ctx context.Context, pub *models.Publican) (string, error) {
	if pub.PubName == "" || pub.Email == "" || pub.PasswordHash == "" {
		return "", ErrMissingFields
	}
	if pub.Tables < 0 {
		return "", fmt.Errorf("%w: tables", ErrMissingFields)
	}
	var existing []models.Publican
	if err := s.store.Query(ctx, constants.CollectionPublicans,
		map[string]any{"email": pub.Email}, &existing); err != nil {
		return "", err
	}
	if len(existing) > 0 {
		return "", ErrEmailTaken
	}
	return s.store.Add(ctx, constants.CollectionPublicans, pub)
}

// GetPublicanByEmail is the publican login lookup.
func (s *Service) GetPublicanByEmail(ctx context.Context, email string) (*models.Publican, error) {
	var pubs []models.Publican
	if err := s.store.Query(ctx, constants.CollectionPublicans,
		map[string]any{"email": email}, &pubs); err != nil {
		return nil, err
	}
	if len(pubs) == 0 {
		return nil, ErrPublicanNotFound
	}
	return &pubs[0], nil
}

// AddFriend records the friendship on both gamers. The relation is always
// mutually consistent: if the second write fails the first is undone.
func (s *Service) AddFriend(ctx context.Context, gamerID, friendID string) error {
	if gamerID == friendID {
		return fmt.Errorf("%w: cannot befriend yourself", ErrMissingFields)
	}
	if _, err := s.GetGamer(ctx, gamerID); err != nil {
		return err
	}
	if _, err := s.GetGamer(ctx, friendID); err != nil {
		return err
	}

	if err := s.store.ArrayUnion(ctx, constants.CollectionGamers, gamerID, "friends_list", friendID); err != nil {
		return err
	}
	if err := s.store.ArrayUnion(ctx, constants.CollectionGamers, friendID, "friends_list", gamerID); err != nil {
		if undoErr := s.store.ArrayRemove(ctx, constants.CollectionGamers, gamerID, "friends_list", friendID); undoErr != nil {
			log.Printf("Warning: friends_list of %s left inconsistent: %v", gamerID, undoErr)
		}
		return err
	}
	return nil
}

// RemoveFriend undoes both directions of the friendship.
func (s *Service) RemoveFriend(ctx context.Context, gamerID, friendID string) error {
	if _, err := s.GetGamer(ctx, gamerID); err != nil {
		return err
	}
	if _, err := s.GetGamer(ctx, friendID); err != nil {
		return err
	}

	if err := s.store.ArrayRemove(ctx, constants.CollectionGamers, gamerID, "friends_list", friendID); err != nil {
		return err
	}
	if err := s.store.ArrayRemove(ctx, constants.CollectionGamers, friendID, "friends_list", gamerID); err != nil {
		if undoErr := s.store.ArrayUnion(ctx, constants.CollectionGamers, gamerID, "friends_list", friendID); undoErr != nil {
			log.Printf("Warning: friends_list of %s left inconsistent: %v", gamerID, undoErr)
		}
		return err
	}
	return nil
}

// ListFriends resolves the gamer's friends to their profiles. Friends whose
// accounts vanished are skipped.
func (s *Service) ListFriends(ctx context.Context, gamerID string) ([]models.Gamer, error) {
	gamer, err := s.GetGamer(ctx, gamerID)
	if err != nil {
		return nil, err
	}
	friendIDs, err := models.DecodeStringSlice(gamer.FriendsList)
	if err != nil {
		return nil, err
	}

	friends := make([]models.Gamer, 0, len(friendIDs))
	for _, id := range friendIDs {
		friend, err := s.GetGamer(ctx, id)
		if err != nil {
			continue
		}
		friends = append(friends, *friend)
	}
	return friends, nil
}

// ReservePubTable decrements the pub's walk-in table counter.
func (s *Service) ReservePubTable(ctx context.Context, pubID string) (int, error) {
	s.locks.Lock("pub:" + pubID)
	defer s.locks.Unlock("pub:" + pubID)

	pub, err := s.GetPublican(ctx, pubID)
	if err != nil {
		return 0, err
	}
	if pub.Tables <= 0 {
		return 0, ErrNoTablesLeft
	}
	remaining := pub.Tables - 1
	if err := s.store.Update(ctx, constants.CollectionPublicans, pubID,
		map[string]any{"tables": remaining}); err != nil {
		return 0, err
	}
	return remaining, nil
}

// CancelPubTable gives a walk-in table back.
func (s *Service) CancelPubTable(ctx context.Context, pubID string) (int, error) {
	s.locks.Lock("pub:" + pubID)
	defer s.locks.Unlock("pub:" + pubID)

	pub, err := s.GetPublican(ctx, pubID)
	if err != nil {
		return 0, err
	}
	remaining := pub.Tables + 1
	if err := s.store.Update(ctx, constants.CollectionPublicans, pubID,
		map[string]any{"tables": remaining}); err != nil {
		return 0, err
	}
	return remaining, nil
}
