package services

// Change event types published after every successful mutation.
const (
	EventCreated  = "created"
	EventUpdated  = "updated"
	EventImported = "imported"
	EventCatalog  = "catalog"
)

// ChangeEvent tells subscribers the collection moved to Version.
type ChangeEvent struct {
	Type    string   `json:"type"`
	IDs     []string `json:"ids"`
	Version uint64   `json:"version"`
}

// Notifier receives change events. Publish must not block.
type Notifier interface {
	Publish(ev ChangeEvent)
}

type noopNotifier struct{}

func (noopNotifier) Publish(ChangeEvent) {}
