package eventbus

import (
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"pixview/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventImageLoaded       = domain.EventImageLoaded
	EventImageLoadFailed   = domain.EventImageLoadFailed
	EventNavigated         = domain.EventNavigated
	EventBackgroundToggled = domain.EventBackgroundToggled
	EventError             = domain.EventError
	EventConfigLoaded      = domain.EventConfigLoaded
	EventConfigSaved       = domain.EventConfigSaved
	EventConfigChanged     = domain.EventConfigChanged
	EventAppReady          = domain.EventAppReady
)

// Re-export domain event types
type ImageLoadedEvent = domain.ImageLoadedEvent
type ImageLoadFailedEvent = domain.ImageLoadFailedEvent
type NavigatedEvent = domain.NavigatedEvent
type BackgroundToggledEvent = domain.BackgroundToggledEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent
type ConfigChangedEvent = domain.ConfigChangedEvent
type AppReadyEvent = domain.AppReadyEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	log       *zap.Logger
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus. A nil logger disables bus logging.
func New(log *zap.Logger) EventBus {
	if log == nil {
		log = zap.NewNop()
	}
	b := &bus{
		log:       log.Named("bus"),
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	b.log.Debug("Publishing event", zap.String("type", string(event.Type())))

	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		b.log.Warn("Event bus channel full, dropping event", zap.String("type", string(event.Type())))
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher and drops undelivered events
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			// Copy handlers to avoid holding the lock while they run
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			for _, s := range subs {
				b.wg.Add(1)
				go func(h EventHandler) {
					defer b.wg.Done()
					defer func() {
						if r := recover(); r != nil {
							b.log.Error("Event handler panic",
								zap.String("type", string(event.Type())),
								zap.Any("panic", r),
								zap.ByteString("stack", debug.Stack()))
						}
					}()
					h(event)
				}(s.handler)
			}

		case <-b.quit:
			// Drain remaining events
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}
