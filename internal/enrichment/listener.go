// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package enrichment

import (
	"context"

	"github.com/rs/zerolog"
)

// RebuildFunc performs one search index rebuild from the current catalog.
type RebuildFunc func(ctx context.Context) error

// RebuildListener consumes rebuild triggers and runs the index rebuild.
// Keeping it on the queue decouples the worker from the index manager: the
// worker never blocks on a rebuild, and triggers that arrive while a
// rebuild runs simply queue up behind it.
type RebuildListener struct {
	queue   *Queue
	rebuild RebuildFunc
	logger  zerolog.Logger
}

// NewRebuildListener wires a rebuild listener.
func NewRebuildListener(queue *Queue, rebuild RebuildFunc, logger zerolog.Logger) *RebuildListener {
	return &RebuildListener{
		queue:   queue,
		rebuild: rebuild,
		logger:  logger.With().Str("component", "rebuild-listener").Logger(),
	}
}

// Run consumes rebuild triggers until the context is canceled.
func (l *RebuildListener) Run(ctx context.Context) error {
	messages, err := l.queue.SubscribeRebuilds(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}

			trigger, err := DecodeRebuildTrigger(msg)
			if err != nil {
				l.logger.Error().Err(err).Str("message_id", msg.UUID).Msg("dropping undecodable rebuild trigger")
				msg.Ack()
				continue
			}

			if err := l.rebuild(ctx); err != nil {
				// The previous snapshot stays active; the next batch
				// completion retries naturally.
				l.logger.Error().Err(err).Str("batch_id", trigger.BatchID).Msg("index rebuild failed")
			} else {
				l.logger.Info().
					Str("batch_id", trigger.BatchID).
					Int("enriched", trigger.Enriched).
					Msg("index rebuilt after enrichment batch")
			}
			msg.Ack()
		}
	}
}
