package notify

import "sync"

// Level classifies a notice for presentation.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a single dismissible user-facing notification.
type Notice struct {
	Level   Level
	Message string
}

// Handler handles a published notice.
type Handler func(Notice)

// Notifier interface allows notice publication/subscription. The HTTP
// client publishes request failures here; the status bar subscribes.
type Notifier interface {
	Publish(notice Notice)
	Subscribe(handler Handler)
}

// inMemoryNotifier is a simple synchronous notifier.
type inMemoryNotifier struct {
	mu       sync.RWMutex
	handlers []Handler
}

// NewInMemoryNotifier creates a notifier instance.
func NewInMemoryNotifier() Notifier {
	return &inMemoryNotifier{}
}

// Publish synchronously invokes handlers for the given notice.
func (n *inMemoryNotifier) Publish(notice Notice) {
	n.mu.RLock()
	handlers := append([]Handler{}, n.handlers...)
	n.mu.RUnlock()

	for _, handler := range handlers {
		handler(notice)
	}
}

// Subscribe registers a handler for all notices.
func (n *inMemoryNotifier) Subscribe(handler Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers = append(n.handlers, handler)
}

// Error publishes an error-level notice.
func Error(n Notifier, message string) {
	n.Publish(Notice{Level: LevelError, Message: message})
}

// Success publishes a success-level notice.
func Success(n Notifier, message string) {
	n.Publish(Notice{Level: LevelSuccess, Message: message})
}
