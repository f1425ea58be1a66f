package reservation

// SeatGame tracks one numbered seat per participant. Seats are numbered
// 1..MaxPlayers and hold the occupant's gamer id, "" when free.
type SeatGame struct {
	Roster
	Seats map[int]string
}

// NewSeatGame allocates the empty seat map for a fresh game.
func NewSeatGame(maxPlayers int, isPrivate bool, accessCode string) *SeatGame {
	seats := make(map[int]string, maxPlayers)
	for i := 1; i <= maxPlayers; i++ {
		seats[i] = ""
	}
	return &SeatGame{
		Roster: Roster{MaxPlayers: maxPlayers, IsPrivate: isPrivate, AccessCode: accessCode},
		Seats:  seats,
	}
}

// ReserveSeat assigns the participant to one specific seat and adds them
// to the roster.
func (g *SeatGame) ReserveSeat(participant string, seatNumber int, code string) error {
	if err := g.checkAccess(code); err != nil {
		return err
	}
	occupant, ok := g.Seats[seatNumber]
	if !ok {
		return ErrInvalidSeat
	}
	if occupant != "" {
		return ErrSeatTaken
	}
	if g.Joined(participant) {
		return ErrAlreadyJoined
	}

	g.Seats[seatNumber] = participant
	g.Participants = append(g.Participants, participant)
	return nil
}

// CancelReservation frees the participant's seat and removes them from
// the roster.
func (g *SeatGame) CancelReservation(participant string) error {
	for seat, occupant := range g.Seats {
		if occupant == participant {
			g.Seats[seat] = ""
			return g.Remove(participant)
		}
	}
	return ErrNotJoined
}
