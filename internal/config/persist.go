package config

import (
	"sync"

	"go.uber.org/zap"

	"pixview/internal/domain"
	"pixview/internal/eventbus"
)

// BackgroundPersister keeps the background choice in the config file. A
// toggle becomes a ConfigChangedEvent; the change is written with svc.
// Bus handlers run concurrently and in any order, so every change carries
// the sequence number of its toggle and only newer changes are written.
type BackgroundPersister struct {
	bus eventbus.EventBus
	svc ConfigService
	log *zap.Logger

	mu      sync.Mutex
	cfg     *Config
	saved   uint64 // sequence of the last change written
	stopped bool
	unsub   []func()
}

// PersistBackground subscribes a BackgroundPersister to bus. cfg should be
// the config as read from disk, without command line overrides. Save
// failures are published as ErrorEvent.
func PersistBackground(bus eventbus.EventBus, svc ConfigService, cfg *Config, log *zap.Logger) *BackgroundPersister {
	if log == nil {
		log = zap.NewNop()
	}
	p := &BackgroundPersister{bus: bus, svc: svc, log: log, cfg: cfg}

	p.unsub = append(p.unsub, bus.Subscribe(eventbus.EventBackgroundToggled, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.BackgroundToggledEvent); ok {
			bus.Publish(eventbus.ConfigChangedEvent{
				DarkBackground: event.Background == domain.BackgroundDark,
				Seq:            event.Seq,
			})
		}
	}))

	p.unsub = append(p.unsub, bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		event, ok := e.(eventbus.ConfigChangedEvent)
		if !ok {
			return
		}
		if err := p.save(event.DarkBackground, event.Seq); err != nil {
			bus.Publish(eventbus.ErrorEvent{Message: "Failed to save config", Err: err})
		}
	}))

	return p
}

// Saved returns the sequence number of the last change written
func (p *BackgroundPersister) Saved() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saved
}

// Stop removes the subscriptions and writes final if toggle seq has not
// been written yet. Events still queued on the bus are ignored afterwards.
// Call it before the bus is closed, once the UI no longer toggles.
func (p *BackgroundPersister) Stop(final domain.Background, seq uint64) error {
	for _, unsub := range p.unsub {
		unsub()
	}
	p.unsub = nil

	err := p.save(final == domain.BackgroundDark, seq)

	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()
	return err
}

func (p *BackgroundPersister) save(dark bool, seq uint64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped || seq <= p.saved {
		return nil
	}

	p.cfg.Background.DarkDefault = dark
	if err := p.svc.Save(p.cfg); err != nil {
		p.log.Error("Failed to save config", zap.String("path", p.svc.Path()), zap.Error(err))
		return err
	}
	p.saved = seq
	p.log.Info("Config saved", zap.String("path", p.svc.Path()), zap.Bool("dark", dark), zap.Uint64("seq", seq))
	return nil
}
