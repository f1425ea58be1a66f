package event_constants

// Event game types. The event's type decides which reservation shape
// (seats vs tables) every game created inside it gets.
const (
	GameTypeSeatBased  = "Seat Based"
	GameTypeTableBased = "Table Based"
)

// Gamer/game short id generation
const (
	IDCharset  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	GamerIDLen = 5
	GameIDLen  = 6
)

// Slot key formatting, e.g. "18:00-19:00"
const SlotKeyFormat = "%02d:00-%02d:00"

const SecondsPerHour = 3600

// Store collection names
const (
	CollectionGamers    = "gamers"
	CollectionPublicans = "publicans"
	CollectionEvents    = "events"
	CollectionGames     = "games"
)
