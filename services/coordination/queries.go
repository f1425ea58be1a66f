package coordination

import (
	constants "Tankard/constants/events"
	models "Tankard/models/postgres"
	"context"
	"log"
)

func (s *Service) GetGamer(ctx context.Context, gamerID string) (*models.Gamer, error) {
	var gamer models.Gamer
	if err := s.store.Get(ctx, constants.CollectionGamers, gamerID, &gamer); err != nil {
		return nil, s.mapNotFound(err, ErrGamerNotFound)
	}
	return &gamer, nil
}

func (s *Service) GetPublican(ctx context.Context, pubID string) (*models.Publican, error) {
	var pub models.Publican
	if err := s.store.Get(ctx, constants.CollectionPublicans, pubID, &pub); err != nil {
		return nil, s.mapNotFound(err, ErrPublicanNotFound)
	}
	return &pub, nil
}

func (s *Service) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	var event models.Event
	if err := s.store.Get(ctx, constants.CollectionEvents, eventID, &event); err != nil {
		return nil, s.mapNotFound(err, ErrEventNotFound)
	}
	return &event, nil
}

func (s *Service) GetGame(ctx context.Context, gameID string) (*models.Game, error) {
	var game models.Game
	if err := s.store.Get(ctx, constants.CollectionGames, gameID, &game); err != nil {
		return nil, s.mapNotFound(err, ErrGameNotFound)
	}
	return &game, nil
}

// ListPubEvents returns every event belonging to one pub.
func (s *Service) ListPubEvents(ctx context.Context, pubID string) ([]models.Event, error) {
	var events []models.Event
	if err := s.store.Query(ctx, constants.CollectionEvents,
		map[string]any{"pub_id": pubID}, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// ListGames returns every game, optionally restricted to one pub. The
// mobile client filters by distance on the denormalized coordinates.
func (s *Service) ListGames(ctx context.Context, pubID string) ([]models.Game, error) {
	filters := map[string]any{}
	if pubID != "" {
		filters["pub_id"] = pubID
	}
	var games []models.Game
	if err := s.store.Query(ctx, constants.CollectionGames, filters, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// ListGamers returns all player accounts.
func (s *Service) ListGamers(ctx context.Context) ([]models.Gamer, error) {
	var gamers []models.Gamer
	if err := s.store.Query(ctx, constants.CollectionGamers, nil, &gamers); err != nil {
		return nil, err
	}
	return gamers, nil
}

// EventAvailability reads the event's slot map, serving from the Redis
// cache when possible and falling back to the store on a miss.
func (s *Service) EventAvailability(ctx context.Context, eventID string) (map[string]int, error) {
	if s.cache != nil {
		if slotMap, err := s.cache.GetEventSlots(eventID); err == nil {
			return slotMap, nil
		}
	}

	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	slotMap, err := models.DecodeSlotMap(event.AvailableSlots)
	if err != nil {
		return nil, err
	}
	if s.sync != nil {
		if err := s.sync.RefreshEventSlots(ctx, eventID); err != nil {
			log.Printf("Warning: could not prime slot cache for event %s: %v", eventID, err)
		}
	}
	return slotMap, nil
}
