// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

// Package events is the in-process event bus. Rule reloads are published
// as messages so that caches and other consumers react without the rules
// refresher knowing about them.
package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/logging"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/recommend"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/rules"
)

// TopicRulesReloaded carries a RulesReloaded payload.
const TopicRulesReloaded = "rules.reloaded"

// RulesReloaded describes a newly published rule snapshot.
type RulesReloaded struct {
	EventID  string       `json:"event_id"`
	Version  uint64       `json:"version"`
	Source   string       `json:"source"`
	Counts   rules.Counts `json:"counts"`
	PoolSize int          `json:"pool_size"`
	LoadedAt time.Time    `json:"loaded_at"`
}

// NewRulesReloaded builds the event for snap.
func NewRulesReloaded(snap *recommend.Snapshot) RulesReloaded {
	return RulesReloaded{
		EventID:  uuid.NewString(),
		Version:  snap.Version,
		Source:   snap.Source,
		Counts:   snap.Table.Counts(),
		PoolSize: snap.Pool.Size(),
		LoadedAt: snap.LoadedAt,
	}
}

// Bus couples a go-channel pub/sub with a watermill router.
type Bus struct {
	pubsub *gochannel.GoChannel
	router *message.Router
	logger zerolog.Logger
}

// NewBus creates a bus. Handlers must be registered before Serve.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBus(logger zerolog.Logger) (*Bus, error) {
	wmLogger := watermill.NewSlogLogger(logging.NewSlogLoggerWith(logger))

	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 16,
	}, wmLogger)

	router, err := message.NewRouter(message.RouterConfig{
		CloseTimeout: 5 * time.Second,
	}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("create router: %w", err)
	}

	return &Bus{
		pubsub: pubsub,
		router: router,
		logger: logger.With().Str("component", "events").Logger(),
	}, nil
}

// PublishRulesReloaded announces snap on TopicRulesReloaded.
func (b *Bus) PublishRulesReloaded(snap *recommend.Snapshot) error {
	event := NewRulesReloaded(snap)
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", TopicRulesReloaded, err)
	}
	msg := message.NewMessage(event.EventID, payload)
	msg.Metadata.Set("source", event.Source)
	if err := b.pubsub.Publish(TopicRulesReloaded, msg); err != nil {
		return fmt.Errorf("publish %s: %w", TopicRulesReloaded, err)
	}
	b.logger.Debug().Str("event_id", event.EventID).Uint64("version", event.Version).Msg("rules reload announced")
	return nil
}

// OnRulesReloaded subscribes fn under the handler name. A returned error
// nacks the message and it is redelivered.
func (b *Bus) OnRulesReloaded(name string, fn func(context.Context, RulesReloaded) error) {
	b.router.AddNoPublisherHandler(name, TopicRulesReloaded, b.pubsub, func(msg *message.Message) error {
		var event RulesReloaded
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			b.logger.Error().Err(err).Str("handler", name).Msg("dropping malformed event")
			return nil
		}
		return fn(msg.Context(), event)
	})
}

// Running is closed once the router is processing messages.
func (b *Bus) Running() chan struct{} {
	return b.router.Running()
}

// Serve implements suture.Service. It runs the router until ctx is
// canceled. A router cannot be restarted, so a failure is final.
func (b *Bus) Serve(ctx context.Context) error {
	if err := b.router.Run(ctx); err != nil {
		return fmt.Errorf("event router: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.New("event router stopped")
}

// Close shuts down the router and the pub/sub.
func (b *Bus) Close() error {
	return errors.Join(b.router.Close(), b.pubsub.Close())
}

// String implements fmt.Stringer for supervisor logging.
func (b *Bus) String() string {
	return "event-bus"
}
