package domain

// ResultStore is the observable, key-ordered mapping from item key to entry.
// The search controller is its only writer; renderers read from it.
type ResultStore interface {
	// Reset drops every entry. Observers see this as "search in progress".
	Reset()

	// Seed adds one pending entry per title, in order. Titles whose key is
	// already present are skipped. Returns the entries that were added.
	Seed(titles []Title) []Entry

	// MarkAvailable merges a review into a pending entry.
	// Returns false if the key is unknown or the entry is no longer pending.
	MarkAvailable(key string, review *Review) bool

	// MarkUnavailable moves a pending entry to RatingUnavailable.
	// Returns false if the key is unknown or the entry is no longer pending.
	MarkUnavailable(key, reason string) bool

	Get(key string) (Entry, bool)
	Entries() []Entry
	Len() int
}

// StoreChangeKind identifies what happened to the store.
type StoreChangeKind int

const (
	StoreReset StoreChangeKind = iota
	StoreSeeded
	StoreEntryUpdated
)

func (k StoreChangeKind) String() string {
	switch k {
	case StoreReset:
		return "reset"
	case StoreSeeded:
		return "seeded"
	case StoreEntryUpdated:
		return "entry_updated"
	default:
		return "unknown"
	}
}

// StoreChange is delivered to store subscribers after each mutation.
// Key is empty for StoreReset and StoreSeeded.
type StoreChange struct {
	Kind    StoreChangeKind
	Key     string
	Version uint64
}
