package coordination

import (
	constants "Tankard/constants/events"
	models "Tankard/models/postgres"
	"Tankard/services/reservation"
	"Tankard/services/slots"
	"Tankard/services/store"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func hourAt(hour int) time.Time {
	return time.Date(2026, 9, 4, hour, 0, 0, 0, time.UTC)
}

func newTestService() *Service {
	return NewService(store.NewMemoryStore(), nil)
}

func seedGamer(t *testing.T, svc *Service, name, email string) string {
	t.Helper()
	id, err := svc.CreateGamer(context.Background(), name, email, "hashed")
	assert.NoError(t, err)
	return id
}

func seedPublican(t *testing.T, svc *Service, name, email string) string {
	t.Helper()
	id, err := svc.CreatePublican(context.Background(), &models.Publican{
		PubName:      name,
		Email:        email,
		PasswordHash: "hashed",
		Location:     "12 Keg Lane",
		Tables:       3,
	})
	assert.NoError(t, err)
	return id
}

func seedSeatEvent(t *testing.T, svc *Service, pubID string, startHour, endHour, seats int) string {
	t.Helper()
	id, err := svc.CreateEvent(context.Background(), CreateEventParams{
		PubID:     pubID,
		GameType:  constants.GameTypeSeatBased,
		StartTime: hourAt(startHour),
		EndTime:   hourAt(endHour),
		Expires:   hourAt(endHour),
		NumSeats:  seats,
	})
	assert.NoError(t, err)
	return id
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	pubID := seedPublican(t, svc, "The Tankard", "tankard@pub.test")

	t.Run("Seat based event primes every hourly slot", func(t *testing.T) {
		eventID := seedSeatEvent(t, svc, pubID, 18, 21, 10)

		slotMap, err := svc.EventAvailability(ctx, eventID)
		assert.NoError(t, err)
		assert.Equal(t, map[string]int{
			"18:00-19:00": 10,
			"19:00-20:00": 10,
			"20:00-21:00": 10,
		}, slotMap)

		// The event is recorded on the publican
		pub, err := svc.GetPublican(ctx, pubID)
		assert.NoError(t, err)
		events, err := models.DecodeStringSlice(pub.Events)
		assert.NoError(t, err)
		assert.Contains(t, events, eventID)
	})

	t.Run("Table based event slots hold the table count", func(t *testing.T) {
		eventID, err := svc.CreateEvent(ctx, CreateEventParams{
			PubID:         pubID,
			GameType:      constants.GameTypeTableBased,
			StartTime:     hourAt(12),
			EndTime:       hourAt(14),
			Expires:       hourAt(14),
			NumTables:     5,
			TableCapacity: 4,
		})
		assert.NoError(t, err)

		slotMap, err := svc.EventAvailability(ctx, eventID)
		assert.NoError(t, err)
		assert.Equal(t, map[string]int{"12:00-13:00": 5, "13:00-14:00": 5}, slotMap)
	})

	t.Run("Unknown publican", func(t *testing.T) {
		_, err := svc.CreateEvent(ctx, CreateEventParams{
			PubID:     "ghost",
			GameType:  constants.GameTypeSeatBased,
			StartTime: hourAt(18),
			EndTime:   hourAt(20),
			NumSeats:  10,
		})
		assert.ErrorIs(t, err, ErrPublicanNotFound)
	})

	t.Run("Seat based event without seats", func(t *testing.T) {
		_, err := svc.CreateEvent(ctx, CreateEventParams{
			PubID:     pubID,
			GameType:  constants.GameTypeSeatBased,
			StartTime: hourAt(18),
			EndTime:   hourAt(20),
		})
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("Unknown game type", func(t *testing.T) {
		_, err := svc.CreateEvent(ctx, CreateEventParams{
			PubID:     pubID,
			GameType:  "Quiz Based",
			StartTime: hourAt(18),
			EndTime:   hourAt(20),
			NumSeats:  10,
		})
		assert.ErrorIs(t, err, slots.ErrInvalidGameType)
	})
}

func TestCreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Booking consumes seats on every covered slot", func(t *testing.T) {
		svc := newTestService()
		pubID := seedPublican(t, svc, "The Tankard", "tankard@pub.test")
		hostID := seedGamer(t, svc, "Bob", "bob@pub.test")
		eventID := seedSeatEvent(t, svc, pubID, 18, 21, 10)

		gameID, err := svc.CreateGame(ctx, CreateGameParams{
			PubID:      pubID,
			HostID:     hostID,
			Name:       "Friday Poker",
			GameType:   "Poker",
			StartTime:  hourAt(19),
			EndTime:    hourAt(21),
			Expires:    hourAt(21),
			MaxPlayers: 6,
		})
		assert.NoError(t, err)

		slotMap, err := svc.EventAvailability(ctx, eventID)
		assert.NoError(t, err)
		assert.Equal(t, map[string]int{
			"18:00-19:00": 10,
			"19:00-20:00": 4,
			"20:00-21:00": 4,
		}, slotMap)

		game, err := svc.GetGame(ctx, gameID)
		assert.NoError(t, err)
		assert.Equal(t, constants.GameTypeSeatBased, game.Shape)
		assert.Equal(t, "12 Keg Lane", game.Location)

		// The game is recorded on the host
		host, err := svc.GetGamer(ctx, hostID)
		assert.NoError(t, err)
		hosted, err := models.DecodeStringSlice(host.HostedGames)
		assert.NoError(t, err)
		assert.Equal(t, []string{gameID}, hosted)
	})

	t.Run("Table based booking consumes whole tables", func(t *testing.T) {
		svc := newTestService()
		pubID := seedPublican(t, svc, "The Tankard", "tankard@pub.test")
		hostID := seedGamer(t, svc, "Bob", "bob@pub.test")
		eventID, err := svc.CreateEvent(ctx, CreateEventParams{
			PubID:         pubID,
			GameType:      constants.GameTypeTableBased,
			StartTime:     hourAt(18),
			EndTime:       hourAt(20),
			Expires:       hourAt(20),
			NumTables:     5,
			TableCapacity: 4,
		})
		assert.NoError(t, err)

		// 10 players over 4-seat tables need 3 tables
		_, err = svc.CreateGame(ctx, CreateGameParams{
			PubID:      pubID,
			HostID:     hostID,
			Name:       "Darts Night",
			StartTime:  hourAt(18),
			EndTime:    hourAt(20),
			MaxPlayers: 10,
			Tables:     []string{"window", "corner", "bar"},
		})
		assert.NoError(t, err)

		slotMap, err := svc.EventAvailability(ctx, eventID)
		assert.NoError(t, err)
		assert.Equal(t, map[string]int{"18:00-19:00": 2, "19:00-20:00": 2}, slotMap)
	})

	t.Run("Insufficient capacity leaves the slots unchanged", func(t *testing.T) {
		svc := newTestService()
		pubID := seedPublican(t, svc, "The Tankard", "tankard@pub.test")
		hostID := seedGamer(t, svc, "Bob", "bob@pub.test")
		eventID := seedSeatEvent(t, svc, pubID, 18, 20, 4)

		_, err := svc.CreateGame(ctx, CreateGameParams{
			PubID:      pubID,
			HostID:     hostID,
			Name:       "Big Game",
			StartTime:  hourAt(18),
			EndTime:    hourAt(20),
			MaxPlayers: 5,
		})
		assert.ErrorIs(t, err, slots.ErrInsufficientCapacity)

		slotMap, err := svc.EventAvailability(ctx, eventID)
		assert.NoError(t, err)
		assert.Equal(t, map[string]int{"18:00-19:00": 4, "19:00-20:00": 4}, slotMap)

		// No half-created game on the host either
		host, err := svc.GetGamer(ctx, hostID)
		assert.NoError(t, err)
		hosted, err := models.DecodeStringSlice(host.HostedGames)
		assert.NoError(t, err)
		assert.Empty(t, hosted)
	})

	t.Run("No event covers the requested window", func(t *testing.T) {
		svc := newTestService()
		pubID := seedPublican(t, svc, "The Tankard", "tankard@pub.test")
		hostID := seedGamer(t, svc, "Bob", "bob@pub.test")
		seedSeatEvent(t, svc, pubID, 18, 20, 10)

		_, err := svc.CreateGame(ctx, CreateGameParams{
			PubID:      pubID,
			HostID:     hostID,
			Name:       "Late Game",
			StartTime:  hourAt(21),
			EndTime:    hourAt(23),
			MaxPlayers: 4,
		})
		assert.ErrorIs(t, err, ErrNoCoveringEvent)
	})

	t.Run("Game times must sit on the hour", func(t *testing.T) {
		svc := newTestService()
		pubID := seedPublican(t, svc, "The Tankard", "tankard@pub.test")
		hostID := seedGamer(t, svc, "Bob", "bob@pub.test")
		seedSeatEvent(t, svc, pubID, 18, 20, 10)

		_, err := svc.CreateGame(ctx, CreateGameParams{
			PubID:      pubID,
			HostID:     hostID,
			Name:       "Odd Game",
			StartTime:  time.Date(2026, 9, 4, 18, 30, 0, 0, time.UTC),
			EndTime:    hourAt(20),
			MaxPlayers: 4,
		})
		assert.ErrorIs(t, err, slots.ErrUnalignedTime)
	})

	t.Run("Table based event needs table names", func(t *testing.T) {
		svc := newTestService()
		pubID := seedPublican(t, svc, "The Tankard", "tankard@pub.test")
		hostID := seedGamer(t, svc, "Bob", "bob@pub.test")
		_, err := svc.CreateEvent(ctx, CreateEventParams{
			PubID:         pubID,
			GameType:      constants.GameTypeTableBased,
			StartTime:     hourAt(18),
			EndTime:       hourAt(20),
			NumTables:     5,
			TableCapacity: 4,
		})
		assert.NoError(t, err)

		_, err = svc.CreateGame(ctx, CreateGameParams{
			PubID:      pubID,
			HostID:     hostID,
			Name:       "No Tables",
			StartTime:  hourAt(18),
			EndTime:    hourAt(20),
			MaxPlayers: 4,
		})
		assert.ErrorIs(t, err, ErrMissingFields)
	})
}

func TestJoinAndLeaveSeatGame(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	pubID := seedPublican(t, svc, "The Tankard", "tankard@pub.test")
	hostID := seedGamer(t, svc, "Bob", "bob@pub.test")
	carlID := seedGamer(t, svc, "Carl", "carl@pub.test")
	deeID := seedGamer(t, svc, "Dee", "dee@pub.test")
	seedSeatEvent(t, svc, pubID, 18, 22, 10)

	gameID, err := svc.CreateGame(ctx, CreateGameParams{
		PubID:      pubID,
		HostID:     hostID,
		Name:       "Friday Poker",
		StartTime:  hourAt(19),
		EndTime:    hourAt(21),
		MaxPlayers: 2,
	})
	assert.NoError(t, err)

	t.Run("Reserve a numbered seat", func(t *testing.T) {
		err := svc.JoinGame(ctx, gameID, carlID, JoinOptions{SeatNumber: 1})
		assert.NoError(t, err)

		game, err := svc.GetGame(ctx, gameID)
		assert.NoError(t, err)
		seats, err := models.DecodeSeatMap(game.Seats)
		assert.NoError(t, err)
		assert.Equal(t, carlID, seats[1])

		carl, err := svc.GetGamer(ctx, carlID)
		assert.NoError(t, err)
		joined, err := models.DecodeStringSlice(carl.JoinedGames)
		assert.NoError(t, err)
		assert.Equal(t, []string{gameID}, joined)
	})

	t.Run("Taken seat is rejected", func(t *testing.T) {
		err := svc.JoinGame(ctx, gameID, deeID, JoinOptions{SeatNumber: 1})
		assert.ErrorIs(t, err, reservation.ErrSeatTaken)
	})

	t.Run("Joining twice is rejected", func(t *testing.T) {
		err := svc.JoinGame(ctx, gameID, carlID, JoinOptions{SeatNumber: 2})
		assert.ErrorIs(t, err, reservation.ErrAlreadyJoined)
	})

	t.Run("Seat number is required", func(t *testing.T) {
		err := svc.JoinGame(ctx, gameID, deeID, JoinOptions{})
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("Leaving frees the seat and the joined list", func(t *testing.T) {
		assert.NoError(t, svc.LeaveGame(ctx, gameID, carlID))

		game, err := svc.GetGame(ctx, gameID)
		assert.NoError(t, err)
		seats, err := models.DecodeSeatMap(game.Seats)
		assert.NoError(t, err)
		assert.Equal(t, "", seats[1])

		carl, err := svc.GetGamer(ctx, carlID)
		assert.NoError(t, err)
		joined, err := models.DecodeStringSlice(carl.JoinedGames)
		assert.NoError(t, err)
		assert.Empty(t, joined)

		// The seat can be rebooked
		assert.NoError(t, svc.JoinGame(ctx, gameID, deeID, JoinOptions{SeatNumber: 1}))
	})

	t.Run("Leaving a game you never joined", func(t *testing.T) {
		err := svc.LeaveGame(ctx, gameID, carlID)
		assert.ErrorIs(t, err, reservation.ErrNotJoined)
	})

	t.Run("Unknown game", func(t *testing.T) {
		err := svc.JoinGame(ctx, "ghost", carlID, JoinOptions{SeatNumber: 1})
		assert.ErrorIs(t, err, ErrGameNotFound)
	})
}

func TestJoinTableGame(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	pubID := seedPublican(t, svc, "The Tankard", "tankard@pub.test")
	hostID := seedGamer(t, svc, "Bob", "bob@pub.test")
	carlID := seedGamer(t, svc, "Carl", "carl@pub.test")
	deeID := seedGamer(t, svc, "Dee", "dee@pub.test")
	earlID := seedGamer(t, svc, "Earl", "earl@pub.test")

	_, err := svc.CreateEvent(ctx, CreateEventParams{
		PubID:         pubID,
		GameType:      constants.GameTypeTableBased,
		StartTime:     hourAt(18),
		EndTime:       hourAt(20),
		NumTables:     5,
		TableCapacity: 4,
	})
	assert.NoError(t, err)

	// 4 players over two tables: at most 2 per table
	gameID, err := svc.CreateGame(ctx, CreateGameParams{
		PubID:      pubID,
		HostID:     hostID,
		Name:       "Dominoes",
		StartTime:  hourAt(18),
		EndTime:    hourAt(20),
		MaxPlayers: 4,
		Tables:     []string{"window", "corner"},
	})
	assert.NoError(t, err)

	t.Run("Sit at a named table", func(t *testing.T) {
		assert.NoError(t, svc.JoinGame(ctx, gameID, carlID, JoinOptions{TableName: "window"}))
		assert.NoError(t, svc.JoinGame(ctx, gameID, deeID, JoinOptions{TableName: "window"}))

		game, err := svc.GetGame(ctx, gameID)
		assert.NoError(t, err)
		tables, err := models.DecodeTableMap(game.Tables)
		assert.NoError(t, err)
		assert.Equal(t, []string{carlID, deeID}, tables["window"])
	})

	t.Run("Full table turns the next sitter away", func(t *testing.T) {
		err := svc.JoinGame(ctx, gameID, earlID, JoinOptions{TableName: "window"})
		assert.ErrorIs(t, err, reservation.ErrTableFull)

		assert.NoError(t, svc.JoinGame(ctx, gameID, earlID, JoinOptions{TableName: "corner"}))
	})

	t.Run("Unknown table name", func(t *testing.T) {
		hostJoin := svc.JoinGame(ctx, gameID, hostID, JoinOptions{TableName: "garden"})
		assert.ErrorIs(t, hostJoin, reservation.ErrTableNotFound)
	})

	t.Run("Table name is required", func(t *testing.T) {
		err := svc.JoinGame(ctx, gameID, hostID, JoinOptions{})
		assert.ErrorIs(t, err, ErrMissingFields)
	})
}

func TestPrivateGameAccess(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	pubID := seedPublican(t, svc, "The Tankard", "tankard@pub.test")
	hostID := seedGamer(t, svc, "Bob", "bob@pub.test")
	carlID := seedGamer(t, svc, "Carl", "carl@pub.test")
	seedSeatEvent(t, svc, pubID, 18, 20, 10)

	gameID, err := svc.CreateGame(ctx, CreateGameParams{
		PubID:      pubID,
		HostID:     hostID,
		Name:       "Private Poker",
		StartTime:  hourAt(18),
		EndTime:    hourAt(20),
		MaxPlayers: 4,
		IsPrivate:  true,
		AccessCode: "hops",
	})
	assert.NoError(t, err)

	t.Run("Wrong code is turned away before any seat check", func(t *testing.T) {
		err := svc.JoinGame(ctx, gameID, carlID, JoinOptions{SeatNumber: 1, AccessCode: "malt"})
		assert.ErrorIs(t, err, reservation.ErrAccessDenied)
	})

	t.Run("Right code books the seat", func(t *testing.T) {
		err := svc.JoinGame(ctx, gameID, carlID, JoinOptions{SeatNumber: 1, AccessCode: "hops"})
		assert.NoError(t, err)
	})
}

func TestConcurrentJoins(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	pubID := seedPublican(t, svc, "The Tankard", "tankard@pub.test")
	hostID := seedGamer(t, svc, "Bob", "bob@pub.test")
	seedSeatEvent(t, svc, pubID, 18, 22, 20)

	gameID, err := svc.CreateGame(ctx, CreateGameParams{
		PubID:      pubID,
		HostID:     hostID,
		Name:       "Big Table",
		StartTime:  hourAt(18),
		EndTime:    hourAt(20),
		MaxPlayers: 10,
	})
	assert.NoError(t, err)

	gamerIDs := make([]string, 10)
	for i := range gamerIDs {
		gamerIDs[i] = seedGamer(t, svc, fmt.Sprintf("Gamer %d", i),
			fmt.Sprintf("gamer%d@pub.test", i))
	}

	// Every gamer grabs a distinct seat at the same time. All joins must
	// succeed, and every successful join must be visible in the final
	// participant list: concurrent joins must not overwrite each other.
	var wg sync.WaitGroup
	errs := make([]error, len(gamerIDs))
	for i, gamerID := range gamerIDs {
		wg.Add(1)
		go func(i int, gamerID string) {
			defer wg.Done()
			errs[i] = svc.JoinGame(ctx, gameID, gamerID, JoinOptions{SeatNumber: i + 1})
		}(i, gamerID)
	}
	wg.Wait()

	game, err := svc.GetGame(ctx, gameID)
	assert.NoError(t, err)
	participants, err := models.DecodeStringSlice(game.Participants)
	assert.NoError(t, err)
	seats, err := models.DecodeSeatMap(game.Seats)
	assert.NoError(t, err)

	for i, gamerID := range gamerIDs {
		assert.NoError(t, errs[i])
		assert.Contains(t, participants, gamerID)
		assert.Equal(t, gamerID, seats[i+1])

		gamer, err := svc.GetGamer(ctx, gamerID)
		assert.NoError(t, err)
		joined, err := models.DecodeStringSlice(gamer.JoinedGames)
		assert.NoError(t, err)
		assert.Equal(t, []string{gameID}, joined)
	}
	assert.Len(t, participants, len(gamerIDs))
}

func TestCancelGame(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	pubID := seedPublican(t, svc, "The Tankard", "tankard@pub.test")
	hostID := seedGamer(t, svc, "Bob", "bob@pub.test")
	carlID := seedGamer(t, svc, "Carl", "carl@pub.test")
	eventID := seedSeatEvent(t, svc, pubID, 18, 20, 10)

	gameID, err := svc.CreateGame(ctx, CreateGameParams{
		PubID:      pubID,
		HostID:     hostID,
		Name:       "Friday Poker",
		StartTime:  hourAt(18),
		EndTime:    hourAt(20),
		MaxPlayers: 6,
	})
	assert.NoError(t, err)
	assert.NoError(t, svc.JoinGame(ctx, gameID, carlID, JoinOptions{SeatNumber: 1}))

	t.Run("Only the host can cancel", func(t *testing.T) {
		err := svc.CancelGame(ctx, gameID, carlID)
		assert.ErrorIs(t, err, ErrNotHost)
	})

	t.Run("Cancelling releases the capacity and cleans both sides", func(t *testing.T) {
		assert.NoError(t, svc.CancelGame(ctx, gameID, hostID))

		_, err := svc.GetGame(ctx, gameID)
		assert.ErrorIs(t, err, ErrGameNotFound)

		slotMap, err := svc.EventAvailability(ctx, eventID)
		assert.NoError(t, err)
		assert.Equal(t, map[string]int{"18:00-19:00": 10, "19:00-20:00": 10}, slotMap)

		host, err := svc.GetGamer(ctx, hostID)
		assert.NoError(t, err)
		hosted, err := models.DecodeStringSlice(host.HostedGames)
		assert.NoError(t, err)
		assert.Empty(t, hosted)

		carl, err := svc.GetGamer(ctx, carlID)
		assert.NoError(t, err)
		joined, err := models.DecodeStringSlice(carl.JoinedGames)
		assert.NoError(t, err)
		assert.Empty(t, joined)
	})
}
