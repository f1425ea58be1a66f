package coordination

import (
	constants "Tankard/constants/events"
	models "Tankard/models/postgres"
	"Tankard/services/reservation"
	redis_service "Tankard/services/redis"
	"Tankard/services/slots"
	"Tankard/services/store"
	gamesync "Tankard/sync"
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

/*
 * Service orchestrates every cross-entity workflow: create-event,
 * create-game, join/leave/cancel, friends and the pub walk-in table
 * counter. Each operation is lookups, one slot-allocator or
 * reservation-engine call, then the persistence writes.
 *
 * The store gives per-record atomicity only, so the check-then-act window
 * on an event's slot map is guarded by a per-event mutex: every
 * read-allocate-write sequence for one event runs serialized. Without it,
 * two concurrent bookings could both read the same slot map and overdraw
 * capacity.
 */
type Service struct {
	store store.Store
	locks *gamesync.KeyedMutex
	cache *redis_service.RedisClient
	sync  *gamesync.SyncManager
}

// NewService wires the coordination service. cache may be nil (tests, or
// running without Redis); availability reads then fall through to the store.
func NewService(st store.Store, cache *redis_service.RedisClient) *Service {
	svc := &Service{
		store: st,
		locks: gamesync.NewKeyedMutex(),
		cache: cache,
	}
	if cache != nil {
		svc.sync = gamesync.NewSyncManager(cache, st)
	}
	return svc
}

// refreshCache rewrites the cached slot map after a slot write. Cache
// trouble never fails the operation that already committed.
func (s *Service) refreshCache(ctx context.Context, eventID string) {
	if s.sync == nil {
		return
	}
	if err := s.sync.RefreshEventSlots(ctx, eventID); err != nil {
		log.Printf("Warning: could not refresh slot cache for event %s: %v", eventID, err)
	}
}

type CreateEventParams struct {
	PubID     string
	GameType  string
	StartTime time.Time
	EndTime   time.Time
	Expires   time.Time

	// Seat Based events need NumSeats; Table Based ones need NumTables
	// and TableCapacity (players per table).
	NumSeats      int
	NumTables     int
	TableCapacity int
}

// CreateEvent validates the publican and the capacity parameters for the
// chosen game type, builds the hourly slot map and persists the event.
func (s *Service) CreateEvent(ctx context.Context, params CreateEventParams) (string, error) {
	if params.PubID == "" {
		return "", ErrMissingFields
	}
	if _, err := s.GetPublican(ctx, params.PubID); err != nil {
		return "", err
	}

	var capacity int
	switch params.GameType {
	case constants.GameTypeSeatBased:
		if params.NumSeats <= 0 {
			return "", fmt.Errorf("%w: num_seats", ErrMissingFields)
		}
		capacity = params.NumSeats
	case constants.GameTypeTableBased:
		if params.NumTables <= 0 || params.TableCapacity <= 0 {
			return "", fmt.Errorf("%w: num_tables and table_capacity", ErrMissingFields)
		}
		capacity = params.NumTables
	default:
		return "", fmt.Errorf("%w: %q", slots.ErrInvalidGameType, params.GameType)
	}

	slotMap, err := slots.Initialize(params.StartTime, params.EndTime, params.GameType, capacity)
	if err != nil {
		return "", err
	}
	encoded, err := models.EncodeJSON(slotMap)
	if err != nil {
		return "", err
	}

	event := models.Event{
		PubID:           params.PubID,
		GameType:        params.GameType,
		StartTime:       params.StartTime,
		EndTime:         params.EndTime,
		Expires:         params.Expires,
		NumSeats:        params.NumSeats,
		NumTables:       params.NumTables,
		TableCapacity:   params.TableCapacity,
		InitialCapacity: capacity,
		AvailableSlots:  encoded,
	}
	eventID, err := s.store.Add(ctx, constants.CollectionEvents, &event)
	if err != nil {
		return "", err
	}

	if err := s.store.ArrayUnion(ctx, constants.CollectionPublicans, params.PubID, "events", eventID); err != nil {
		// Compensate so no event dangles without its publican reference
		if delErr := s.store.Delete(ctx, constants.CollectionEvents, eventID); delErr != nil {
			log.Printf("Warning: could not roll back event %s: %v", eventID, delErr)
		}
		return "", err
	}

	s.refreshCache(ctx, eventID)
	return eventID, nil
}

type CreateGameParams struct {
	PubID    string
	HostID   string
	Name     string
	Desc     string
	GameType string

	StartTime time.Time
	EndTime   time.Time
	Expires   time.Time

	MaxPlayers int
	// Table names for games inside Table Based events
	Tables []string

	IsPrivate  bool
	AccessCode string
}

// CreateGame books a game into the covering event at the pub: it finds the
// event spanning the requested window, consumes slot capacity for the
// whole roster and persists the game shaped by the event's game type. The
// game's own GameType string is a descriptive label, nothing more.
func (s *Service) CreateGame(ctx context.Context, params CreateGameParams) (string, error) {
	if params.PubID == "" || params.HostID == "" || params.Name == "" || params.MaxPlayers <= 0 {
		return "", ErrMissingFields
	}
	if !slots.Aligned(params.StartTime) || !slots.Aligned(params.EndTime) {
		return "", slots.ErrUnalignedTime
	}
	if !params.EndTime.After(params.StartTime) {
		return "", fmt.Errorf("%w: end must be after start", slots.ErrInvalidTimeRange)
	}

	pub, err := s.GetPublican(ctx, params.PubID)
	if err != nil {
		return "", err
	}
	if _, err := s.GetGamer(ctx, params.HostID); err != nil {
		return "", err
	}

	event, err := s.findCoveringEvent(ctx, params.PubID, params.StartTime, params.EndTime)
	if err != nil {
		return "", err
	}
	if event.GameType == constants.GameTypeTableBased && len(params.Tables) == 0 {
		return "", fmt.Errorf("%w: tables", ErrMissingFields)
	}

	units, err := slots.UnitsFor(event.GameType, params.MaxPlayers, event.TableCapacity)
	if err != nil {
		return "", err
	}

	// Serialize the read-allocate-write window per event
	s.locks.Lock(event.ID)
	defer s.locks.Unlock(event.ID)

	var fresh models.Event
	if err := s.store.Get(ctx, constants.CollectionEvents, event.ID, &fresh); err != nil {
		return "", s.mapNotFound(err, ErrEventNotFound)
	}
	slotMap, err := models.DecodeSlotMap(fresh.AvailableSlots)
	if err != nil {
		return "", err
	}
	updated, err := slots.Allocate(slotMap, params.StartTime, params.EndTime, units)
	if err != nil {
		return "", err
	}

	game, err := s.buildGame(&fresh, pub, params)
	if err != nil {
		return "", err
	}
	gameID, err := s.store.Add(ctx, constants.CollectionGames, game)
	if err != nil {
		return "", err
	}
	if err := s.store.ArrayUnion(ctx, constants.CollectionGamers, params.HostID, "hosted_games", gameID); err != nil {
		if delErr := s.store.Delete(ctx, constants.CollectionGames, gameID); delErr != nil {
			log.Printf("Warning: could not roll back game %s: %v", gameID, delErr)
		}
		return "", err
	}

	encodedSlots, err := models.EncodeJSON(updated)
	if err != nil {
		return "", err
	}
	if err := s.store.Update(ctx, constants.CollectionEvents, event.ID,
		map[string]any{"available_slots": encodedSlots}); err != nil {
		// Slots never committed; drop the half-created game
		if remErr := s.store.ArrayRemove(ctx, constants.CollectionGamers, params.HostID, "hosted_games", gameID); remErr != nil {
			log.Printf("Warning: could not roll back hosted_games for %s: %v", params.HostID, remErr)
		}
		if delErr := s.store.Delete(ctx, constants.CollectionGames, gameID); delErr != nil {
			log.Printf("Warning: could not roll back game %s: %v", gameID, delErr)
		}
		return "", err
	}

	s.refreshCache(ctx, event.ID)
	return gameID, nil
}

func (s *Service) findCoveringEvent(ctx context.Context, pubID string, start, end time.Time) (*models.Event, error) {
	var events []models.Event
	if err := s.store.Query(ctx, constants.CollectionEvents,
		map[string]any{"pub_id": pubID}, &events); err != nil {
		return nil, err
	}
	for i := range events {
		if slots.Covers(events[i].StartTime, events[i].EndTime, start, end) {
			return &events[i], nil
		}
	}
	return nil, ErrNoCoveringEvent
}

func (s *Service) buildGame(event *models.Event, pub *models.Publican, params CreateGameParams) (*models.Game, error) {
	game := &models.Game{
		HostID:     params.HostID,
		PubID:      params.PubID,
		EventID:    event.ID,
		Name:       params.Name,
		Desc:       params.Desc,
		GameType:   params.GameType,
		StartTime:  params.StartTime,
		EndTime:    params.EndTime,
		Expires:    params.Expires,
		Location:   pub.Location,
		Xcoord:     pub.Xcoord,
		Ycoord:     pub.Ycoord,
		MaxPlayers: params.MaxPlayers,
		IsPrivate:  params.IsPrivate,
		AccessCode: params.AccessCode,
		Shape:      event.GameType,
	}

	empty, err := models.EncodeJSON([]string{})
	if err != nil {
		return nil, err
	}
	game.Participants = empty

	switch event.GameType {
	case constants.GameTypeSeatBased:
		seats, err := models.EncodeSeatMap(reservation.NewSeatGame(params.MaxPlayers, params.IsPrivate, params.AccessCode).Seats)
		if err != nil {
			return nil, err
		}
		game.Seats = seats
	case constants.GameTypeTableBased:
		tables, err := models.EncodeJSON(reservation.NewTableGame(params.MaxPlayers, params.Tables, params.IsPrivate, params.AccessCode).Tables)
		if err != nil {
			return nil, err
		}
		game.Tables = tables
	}
	return game, nil
}

// JoinOptions selects the unit to reserve: a seat number inside Seat Based
// events, a table name inside Table Based ones. AccessCode gates private
// games.
type JoinOptions struct {
	SeatNumber int
	TableName  string
	AccessCode string
}

// JoinGame reserves a place in the game for the gamer and records the game
// in the gamer's joined_games, as a paired mutation: if the second write
// fails the first is compensated.
func (s *Service) JoinGame(ctx context.Context, gameID, gamerID string, opts JoinOptions) error {
	// Serialize the read-modify-write on the game record, same guard as
	// the event slot window: concurrent joins must not overwrite each
	// other's participant state.
	s.locks.Lock("game:" + gameID)
	defer s.locks.Unlock("game:" + gameID)

	var game models.Game
	if err := s.store.Get(ctx, constants.CollectionGames, gameID, &game); err != nil {
		return s.mapNotFound(err, ErrGameNotFound)
	}
	if _, err := s.GetGamer(ctx, gamerID); err != nil {
		return err
	}

	original := map[string]any{
		"participants": game.Participants,
		"seats":        game.Seats,
		"tables":       game.Tables,
	}

	var fields map[string]any
	switch game.Shape {
	case constants.GameTypeSeatBased:
		seatGame, err := decodeSeatGame(&game)
		if err != nil {
			return err
		}
		if opts.SeatNumber <= 0 {
			return fmt.Errorf("%w: seat_number", ErrMissingFields)
		}
		if err := seatGame.ReserveSeat(gamerID, opts.SeatNumber, opts.AccessCode); err != nil {
			return err
		}
		if fields, err = seatGameFields(seatGame); err != nil {
			return err
		}
	case constants.GameTypeTableBased:
		tableGame, err := decodeTableGame(&game)
		if err != nil {
			return err
		}
		if opts.TableName == "" {
			return fmt.Errorf("%w: table_name", ErrMissingFields)
		}
		if err := tableGame.ReserveSpot(gamerID, opts.TableName, opts.AccessCode); err != nil {
			return err
		}
		if fields, err = tableGameFields(tableGame); err != nil {
			return err
		}
	default:
		roster, err := decodeRoster(&game)
		if err != nil {
			return err
		}
		if err := roster.Add(gamerID, opts.AccessCode); err != nil {
			return err
		}
		if fields, err = rosterFields(roster); err != nil {
			return err
		}
	}

	if err := s.store.Update(ctx, constants.CollectionGames, gameID, fields); err != nil {
		return err
	}
	if err := s.store.ArrayUnion(ctx, constants.CollectionGamers, gamerID, "joined_games", gameID); err != nil {
		if undoErr := s.store.Update(ctx, constants.CollectionGames, gameID, original); undoErr != nil {
			log.Printf("Warning: could not roll back participants of game %s: %v", gameID, undoErr)
		}
		return err
	}
	return nil
}

// LeaveGame frees the gamer's seat or table spot and removes the game from
// their joined_games, with the same pairing guarantee as JoinGame. The
// game's slot capacity stays booked: it belongs to the game, not to the
// individual participant, and returns only when the host cancels.
func (s *Service) LeaveGame(ctx context.Context, gameID, gamerID string) error {
	s.locks.Lock("game:" + gameID)
	defer s.locks.Unlock("game:" + gameID)

	var game models.Game
	if err := s.store.Get(ctx, constants.CollectionGames, gameID, &game); err != nil {
		return s.mapNotFound(err, ErrGameNotFound)
	}
	if _, err := s.GetGamer(ctx, gamerID); err != nil {
		return err
	}

	original := map[string]any{
		"participants": game.Participants,
		"seats":        game.Seats,
		"tables":       game.Tables,
	}

	var fields map[string]any
	switch game.Shape {
	case constants.GameTypeSeatBased:
		seatGame, err := decodeSeatGame(&game)
		if err != nil {
			return err
		}
		if err := seatGame.CancelReservation(gamerID); err != nil {
			return err
		}
		if fields, err = seatGameFields(seatGame); err != nil {
			return err
		}
	case constants.GameTypeTableBased:
		tableGame, err := decodeTableGame(&game)
		if err != nil {
			return err
		}
		if err := tableGame.CancelReservation(gamerID); err != nil {
			return err
		}
		if fields, err = tableGameFields(tableGame); err != nil {
			return err
		}
	default:
		roster, err := decodeRoster(&game)
		if err != nil {
			return err
		}
		if err := roster.Remove(gamerID); err != nil {
			return err
		}
		if fields, err = rosterFields(roster); err != nil {
			return err
		}
	}

	if err := s.store.Update(ctx, constants.CollectionGames, gameID, fields); err != nil {
		return err
	}
	if err := s.store.ArrayRemove(ctx, constants.CollectionGamers, gamerID, "joined_games", gameID); err != nil {
		if undoErr := s.store.Update(ctx, constants.CollectionGames, gameID, original); undoErr != nil {
			log.Printf("Warning: could not roll back participants of game %s: %v", gameID, undoErr)
		}
		return err
	}
	return nil
}

// CancelGame lets the host withdraw the whole game: the record is removed,
// every participant's joined_games is cleaned and the slot capacity the
// booking consumed is released back to the event.
func (s *Service) CancelGame(ctx context.Context, gameID, hostID string) error {
	var game models.Game
	if err := s.store.Get(ctx, constants.CollectionGames, gameID, &game); err != nil {
		return s.mapNotFound(err, ErrGameNotFound)
	}
	if game.HostID != hostID {
		return ErrNotHost
	}

	participants, err := models.DecodeStringSlice(game.Participants)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, constants.CollectionGames, gameID); err != nil {
		return err
	}
	if err := s.store.ArrayRemove(ctx, constants.CollectionGamers, hostID, "hosted_games", gameID); err != nil {
		log.Printf("Warning: could not remove game %s from host %s: %v", gameID, hostID, err)
	}
	for _, participant := range participants {
		if err := s.store.ArrayRemove(ctx, constants.CollectionGamers, participant, "joined_games", gameID); err != nil {
			log.Printf("Warning: could not remove game %s from gamer %s: %v", gameID, participant, err)
		}
	}

	s.releaseGameCapacity(ctx, &game)
	return nil
}

// releaseGameCapacity returns the game's units to its event, best effort:
// a vanished event just means there is nothing left to release into.
func (s *Service) releaseGameCapacity(ctx context.Context, game *models.Game) {
	s.locks.Lock(game.EventID)
	defer s.locks.Unlock(game.EventID)

	var event models.Event
	if err := s.store.Get(ctx, constants.CollectionEvents, game.EventID, &event); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("Warning: could not load event %s for release: %v", game.EventID, err)
		}
		return
	}
	units, err := slots.UnitsFor(event.GameType, game.MaxPlayers, event.TableCapacity)
	if err != nil {
		log.Printf("Warning: could not compute release units for game %s: %v", game.ID, err)
		return
	}
	slotMap, err := models.DecodeSlotMap(event.AvailableSlots)
	if err != nil {
		log.Printf("Warning: could not decode slots of event %s: %v", event.ID, err)
		return
	}
	restored := slots.Release(slotMap, game.StartTime, game.EndTime, units, event.InitialCapacity)
	encoded, err := models.EncodeJSON(restored)
	if err != nil {
		log.Printf("Warning: could not encode slots of event %s: %v", event.ID, err)
		return
	}
	if err := s.store.Update(ctx, constants.CollectionEvents, event.ID,
		map[string]any{"available_slots": encoded}); err != nil {
		log.Printf("Warning: could not release capacity on event %s: %v", event.ID, err)
		return
	}
	s.refreshCache(ctx, event.ID)
}

func (s *Service) mapNotFound(err, notFound error) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFound
	}
	return err
}
