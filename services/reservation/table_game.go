package reservation

// TableGame tracks named tables with an ordered occupant list each. The
// per-table cap spreads MaxPlayers evenly over the tables (floor), so a
// 4-player game on two tables seats at most 2 per table.
type TableGame struct {
	Roster
	Tables map[string][]string
}

// NewTableGame allocates empty occupant lists for the given table names.
func NewTableGame(maxPlayers int, tables []string, isPrivate bool, accessCode string) *TableGame {
	tableMap := make(map[string][]string, len(tables))
	for _, name := range tables {
		tableMap[name] = []string{}
	}
	return &TableGame{
		Roster: Roster{MaxPlayers: maxPlayers, IsPrivate: isPrivate, AccessCode: accessCode},
		Tables: tableMap,
	}
}

// PerTableCap is the occupancy limit of each table.
func (g *TableGame) PerTableCap() int {
	if len(g.Tables) == 0 {
		return 0
	}
	return g.MaxPlayers / len(g.Tables)
}

// ReserveSpot seats the participant at one named table and adds them to
// the roster.
func (g *TableGame) ReserveSpot(participant, tableName, code string) error {
	if err := g.checkAccess(code); err != nil {
		return err
	}
	occupants, ok := g.Tables[tableName]
	if !ok {
		return ErrTableNotFound
	}
	if len(occupants) >= g.PerTableCap() {
		return ErrTableFull
	}
	if g.Joined(participant) {
		return ErrAlreadyJoined
	}

	g.Tables[tableName] = append(occupants, participant)
	g.Participants = append(g.Participants, participant)
	return nil
}

// CancelReservation removes the participant from whichever table holds
// them and from the roster.
func (g *TableGame) CancelReservation(participant string) error {
	for table, occupants := range g.Tables {
		for i, occupant := range occupants {
			if occupant == participant {
				g.Tables[table] = append(occupants[:i], occupants[i+1:]...)
				return g.Remove(participant)
			}
		}
	}
	return ErrNotJoined
}
