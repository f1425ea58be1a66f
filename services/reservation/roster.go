package reservation

/*
 * Roster is the base participant contract every game shape shares: a
 * capped, duplicate-free participant list with an optional access-code
 * gate for private games. Seat and table games embed it and layer their
 * unit assignment on top.
 *
 * Every mutating method validates first and only then mutates, so a
 * rejected operation leaves the roster untouched.
 */
type Roster struct {
	MaxPlayers   int
	IsPrivate    bool
	AccessCode   string
	Participants []string
}

func (r *Roster) checkAccess(code string) error {
	if r.IsPrivate && r.AccessCode != code {
		return ErrAccessDenied
	}
	return nil
}

func (r *Roster) Joined(participant string) bool {
	for _, p := range r.Participants {
		if p == participant {
			return true
		}
	}
	return false
}

func (r *Roster) Full() bool {
	return len(r.Participants) >= r.MaxPlayers
}

// Add joins a participant without seat/table granularity.
func (r *Roster) Add(participant, code string) error {
	if err := r.checkAccess(code); err != nil {
		return err
	}
	if r.Joined(participant) {
		return ErrAlreadyJoined
	}
	if r.Full() {
		return ErrGameFull
	}
	r.Participants = append(r.Participants, participant)
	return nil
}

// Remove drops a participant from the roster.
func (r *Roster) Remove(participant string) error {
	for i, p := range r.Participants {
		if p == participant {
			r.Participants = append(r.Participants[:i], r.Participants[i+1:]...)
			return nil
		}
	}
	return ErrNotJoined
}
