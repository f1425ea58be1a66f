package coordination

import (
	models "Tankard/models/postgres"
	"Tankard/services/reservation"
)

// Conversions between the persisted Game record and the in-memory
// reservation shapes. Mutations happen on the decoded shape; the touched
// fields are re-encoded and written back as one record update.

func decodeRoster(game *models.Game) (*reservation.Roster, error) {
	participants, err := models.DecodeStringSlice(game.Participants)
	if err != nil {
		return nil, err
	}
	return &reservation.Roster{
		MaxPlayers:   game.MaxPlayers,
		IsPrivate:    game.IsPrivate,
		AccessCode:   game.AccessCode,
		Participants: participants,
	}, nil
}

func decodeSeatGame(game *models.Game) (*reservation.SeatGame, error) {
	roster, err := decodeRoster(game)
	if err != nil {
		return nil, err
	}
	seats, err := models.DecodeSeatMap(game.Seats)
	if err != nil {
		return nil, err
	}
	return &reservation.SeatGame{Roster: *roster, Seats: seats}, nil
}

func decodeTableGame(game *models.Game) (*reservation.TableGame, error) {
	roster, err := decodeRoster(game)
	if err != nil {
		return nil, err
	}
	tables, err := models.DecodeTableMap(game.Tables)
	if err != nil {
		return nil, err
	}
	return &reservation.TableGame{Roster: *roster, Tables: tables}, nil
}

func rosterFields(roster *reservation.Roster) (map[string]any, error) {
	participants, err := models.EncodeJSON(roster.Participants)
	if err != nil {
		return nil, err
	}
	return map[string]any{"participants": participants}, nil
}

func seatGameFields(game *reservation.SeatGame) (map[string]any, error) {
	fields, err := rosterFields(&game.Roster)
	if err != nil {
		return nil, err
	}
	seats, err := models.EncodeSeatMap(game.Seats)
	if err != nil {
		return nil, err
	}
	fields["seats"] = seats
	return fields, nil
}

func tableGameFields(game *reservation.TableGame) (map[string]any, error) {
	fields, err := rosterFields(&game.Roster)
	if err != nil {
		return nil, err
	}
	tables, err := models.EncodeJSON(game.Tables)
	if err != nil {
		return nil, err
	}
	fields["tables"] = tables
	return fields, nil
}
