package postgres

// RecordID/SetRecordID let the store hand back generated identifiers
// without reflection.

func (g *Gamer) RecordID() string      { return g.ID }
func (g *Gamer) SetRecordID(id string) { g.ID = id }

func (p *Publican) RecordID() string      { return p.ID }
func (p *Publican) SetRecordID(id string) { p.ID = id }

func (e *Event) RecordID() string      { return e.ID }
func (e *Event) SetRecordID(id string) { e.ID = id }

func (g *Game) RecordID() string      { return g.ID }
func (g *Game) SetRecordID(id string) { g.ID = id }
