package domain

// NamespaceStories is the single Fact Store namespace this system persists.
const NamespaceStories = "stories"

// NotYetProvided is the marker the arbiter reports for an absent side.
const NotYetProvided = "not yet provided"

// StoryRecord is a fact contributed by one side of the conflict, addressed
// by "{userId}_{side}". Writes are idempotent overwrites: the newest put for
// a key is authoritative, nothing is merged or versioned.
type StoryRecord struct {
	Content string `json:"content"`
}
