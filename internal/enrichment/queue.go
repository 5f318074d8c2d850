// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package enrichment

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/playpick/playpick/internal/metrics"
)

// Queue is the in-process enrichment task queue, a watermill gochannel
// Pub/Sub. Enrichment is fire-and-forget within one process, so no broker
// is involved; the watermill message contract keeps the worker decoupled
// from the producers.
type Queue struct {
	pubSub *gochannel.GoChannel
	logger zerolog.Logger
}

// NewQueue creates the queue with the given output buffer size.
func NewQueue(bufferSize int, logger zerolog.Logger) *Queue {
	componentLogger := logger.With().Str("component", "enrichment-queue").Logger()

	pubSub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            int64(bufferSize),
			BlockPublishUntilSubscriberAck: false,
		},
		watermillLogger{logger: componentLogger},
	)

	return &Queue{pubSub: pubSub, logger: componentLogger}
}

// EnqueueBatch publishes one task per app id as a single batch and returns
// the batch id. The worker publishes a rebuild trigger once every task of
// the batch has been processed.
func (q *Queue) EnqueueBatch(appIDs []int64) (string, error) {
	if len(appIDs) == 0 {
		return "", nil
	}

	batchID := uuid.New().String()
	now := time.Now().UTC()

	for _, appID := range appIDs {
		task := EnrichTask{TaskID: uuid.New().String(), AppID: appID, EnqueuedAt: now}
		msg, err := newTaskMessage(task, batchID, len(appIDs))
		if err != nil {
			return "", err
		}
		if err := q.pubSub.Publish(TopicEnrichTasks, msg); err != nil {
			return "", fmt.Errorf("publish enrich task for %d: %w", appID, err)
		}
		metrics.EnrichmentQueueDepth.Inc()
	}

	q.logger.Info().Str("batch_id", batchID).Int("tasks", len(appIDs)).Msg("enrichment batch enqueued")
	return batchID, nil
}

// SubscribeTasks returns the enrichment task stream.
func (q *Queue) SubscribeTasks(ctx context.Context) (<-chan *message.Message, error) {
	return q.pubSub.Subscribe(ctx, TopicEnrichTasks)
}

// SubscribeRebuilds returns the rebuild trigger stream.
func (q *Queue) SubscribeRebuilds(ctx context.Context) (<-chan *message.Message, error) {
	return q.pubSub.Subscribe(ctx, TopicRebuildTriggers)
}

// publishRebuild emits a rebuild trigger for a completed batch.
func (q *Queue) publishRebuild(trigger RebuildTrigger) error {
	msg, err := newRebuildMessage(trigger)
	if err != nil {
		return err
	}
	if err := q.pubSub.Publish(TopicRebuildTriggers, msg); err != nil {
		return fmt.Errorf("publish rebuild trigger: %w", err)
	}
	return nil
}

// Close shuts the queue down. In-flight messages are dropped; enrichment
// re-runs from MissingFromCatalog on the next sync.
func (q *Queue) Close() error {
	return q.pubSub.Close()
}

// watermillLogger adapts zerolog to watermill's LoggerAdapter.
type watermillLogger struct {
	logger zerolog.Logger
}

func (w watermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	w.event(w.logger.Error().Err(err), msg, fields)
}

func (w watermillLogger) Info(msg string, fields watermill.LogFields) {
	// Watermill's Info level is chatty; map it to debug.
	w.event(w.logger.Debug(), msg, fields)
}

func (w watermillLogger) Debug(msg string, fields watermill.LogFields) {
	w.event(w.logger.Debug(), msg, fields)
}

func (w watermillLogger) Trace(msg string, fields watermill.LogFields) {
	w.event(w.logger.Trace(), msg, fields)
}

func (w watermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	ctx := w.logger.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return watermillLogger{logger: ctx.Logger()}
}

func (w watermillLogger) event(ev *zerolog.Event, msg string, fields watermill.LogFields) {
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}
