package coordination

import (
	models "Tankard/models/postgres"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccounts(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	t.Run("Signup and lookup by email", func(t *testing.T) {
		id, err := svc.CreateGamer(ctx, "Bob", "bob@pub.test", "hashed")
		assert.NoError(t, err)

		gamer, err := svc.GetGamerByEmail(ctx, "bob@pub.test")
		assert.NoError(t, err)
		assert.Equal(t, id, gamer.ID)
		assert.Equal(t, "Bob", gamer.FullName)
	})

	t.Run("Duplicate email is rejected", func(t *testing.T) {
		_, err := svc.CreateGamer(ctx, "Bobby", "bob@pub.test", "hashed")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("Missing fields are rejected", func(t *testing.T) {
		_, err := svc.CreateGamer(ctx, "", "x@pub.test", "hashed")
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("Profile update", func(t *testing.T) {
		id, err := svc.CreateGamer(ctx, "Carl", "carl@pub.test", "hashed")
		assert.NoError(t, err)

		assert.NoError(t, svc.UpdateGamerProfile(ctx, id, map[string]any{"full_name": "Carlos", "icon": 7}))

		gamer, err := svc.GetGamer(ctx, id)
		assert.NoError(t, err)
		assert.Equal(t, "Carlos", gamer.FullName)
		assert.Equal(t, 7, gamer.Icon)
	})

	t.Run("Publican signup and lookup", func(t *testing.T) {
		id, err := svc.CreatePublican(ctx, &models.Publican{
			PubName:      "The Tankard",
			Email:        "tankard@pub.test",
			PasswordHash: "hashed",
			Tables:       3,
		})
		assert.NoError(t, err)

		pub, err := svc.GetPublicanByEmail(ctx, "tankard@pub.test")
		assert.NoError(t, err)
		assert.Equal(t, id, pub.ID)

		_, err = svc.CreatePublican(ctx, &models.Publican{
			PubName:      "Copy Cat",
			Email:        "tankard@pub.test",
			PasswordHash: "hashed",
		})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestFriends(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	bobID := seedGamer(t, svc, "Bob", "bob@pub.test")
	carlID := seedGamer(t, svc, "Carl", "carl@pub.test")

	t.Run("Adding records the friendship on both sides", func(t *testing.T) {
		assert.NoError(t, svc.AddFriend(ctx, bobID, carlID))

		bobFriends, err := svc.ListFriends(ctx, bobID)
		assert.NoError(t, err)
		assert.Len(t, bobFriends, 1)
		assert.Equal(t, carlID, bobFriends[0].ID)

		carlFriends, err := svc.ListFriends(ctx, carlID)
		assert.NoError(t, err)
		assert.Len(t, carlFriends, 1)
		assert.Equal(t, bobID, carlFriends[0].ID)
	})

	t.Run("Adding twice stays a single entry", func(t *testing.T) {
		assert.NoError(t, svc.AddFriend(ctx, bobID, carlID))

		bobFriends, err := svc.ListFriends(ctx, bobID)
		assert.NoError(t, err)
		assert.Len(t, bobFriends, 1)
	})

	t.Run("Befriending yourself is rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.AddFriend(ctx, bobID, bobID), ErrMissingFields)
	})

	t.Run("Unknown friend", func(t *testing.T) {
		assert.ErrorIs(t, svc.AddFriend(ctx, bobID, "ghost"), ErrGamerNotFound)
	})

	t.Run("Removing clears both sides", func(t *testing.T) {
		assert.NoError(t, svc.RemoveFriend(ctx, bobID, carlID))

		bobFriends, err := svc.ListFriends(ctx, bobID)
		assert.NoError(t, err)
		assert.Empty(t, bobFriends)

		carlFriends, err := svc.ListFriends(ctx, carlID)
		assert.NoError(t, err)
		assert.Empty(t, carlFriends)
	})
}

func TestPubTables(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	pubID := seedPublican(t, svc, "The Tankard", "tankard@pub.test")

	t.Run("Reservations count the walk-in tables down", func(t *testing.T) {
		remaining, err := svc.ReservePubTable(ctx, pubID)
		assert.NoError(t, err)
		assert.Equal(t, 2, remaining)

		remaining, err = svc.ReservePubTable(ctx, pubID)
		assert.NoError(t, err)
		assert.Equal(t, 1, remaining)

		remaining, err = svc.ReservePubTable(ctx, pubID)
		assert.NoError(t, err)
		assert.Equal(t, 0, remaining)
	})

	t.Run("An empty pub turns reservations away", func(t *testing.T) {
		_, err := svc.ReservePubTable(ctx, pubID)
		assert.ErrorIs(t, err, ErrNoTablesLeft)
	})

	t.Run("Cancelling gives the table back", func(t *testing.T) {
		remaining, err := svc.CancelPubTable(ctx, pubID)
		assert.NoError(t, err)
		assert.Equal(t, 1, remaining)
	})

	t.Run("Unknown pub", func(t *testing.T) {
		_, err := svc.ReservePubTable(ctx, "ghost")
		assert.ErrorIs(t, err, ErrPublicanNotFound)
	})
}
