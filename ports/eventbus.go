package ports

type Topic = string
type Event = []string
type EventBus interface {
	Shutdown()
	Pub(Topic, Event)
	Sub(Topic) chan Event
	Unsub(chan Event)
}

const (
	// TopicCaptured carries one event per successful capture.
	// Event payload is the capture timestamp in epoch milliseconds.
	TopicCaptured Topic = "captured"
	// TopicArtifactUpdated carries the name of an artifact which
	// appeared in the photo directory outside of the capture path.
	TopicArtifactUpdated Topic = "artifact-updated"
	// TopicPhotoDirUpdated tells the watcher to (re)arm a directory.
	TopicPhotoDirUpdated Topic = "photo-dir-updated"
)
