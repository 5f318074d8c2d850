// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package enrichment

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Topics for the in-process queue.
const (
	// TopicEnrichTasks carries one EnrichTask per game missing from the
	// catalog.
	TopicEnrichTasks = "catalog.enrich"

	// TopicRebuildTriggers carries one RebuildTrigger per completed
	// enrichment batch.
	TopicRebuildTriggers = "index.rebuild"
)

// Message metadata keys.
const (
	metaBatchID   = "batch_id"
	metaBatchSize = "batch_size"
)

// EnrichTask asks the worker to fetch and store catalog metadata for one
// game.
type EnrichTask struct {
	TaskID     string    `json:"task_id"`
	AppID      int64     `json:"appid"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// RebuildTrigger signals that a batch of catalog writes finished and the
// search index should be rebuilt.
type RebuildTrigger struct {
	BatchID     string    `json:"batch_id"`
	Enriched    int       `json:"enriched"`
	Failed      int       `json:"failed"`
	CompletedAt time.Time `json:"completed_at"`
}

// newTaskMessage encodes an EnrichTask as a watermill message carrying its
// batch accounting in metadata.
func newTaskMessage(task EnrichTask, batchID string, batchSize int) (*message.Message, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("encode enrich task: %w", err)
	}
	msg := message.NewMessage(uuid.New().String(), payload)
	msg.Metadata.Set(metaBatchID, batchID)
	msg.Metadata.Set(metaBatchSize, fmt.Sprintf("%d", batchSize))
	return msg, nil
}

// decodeTask decodes an EnrichTask from a watermill message.
func decodeTask(msg *message.Message) (EnrichTask, error) {
	var task EnrichTask
	if err := json.Unmarshal(msg.Payload, &task); err != nil {
		return EnrichTask{}, fmt.Errorf("decode enrich task %s: %w", msg.UUID, err)
	}
	return task, nil
}

// newRebuildMessage encodes a RebuildTrigger as a watermill message.
func newRebuildMessage(trigger RebuildTrigger) (*message.Message, error) {
	payload, err := json.Marshal(trigger)
	if err != nil {
		return nil, fmt.Errorf("encode rebuild trigger: %w", err)
	}
	return message.NewMessage(uuid.New().String(), payload), nil
}

// DecodeRebuildTrigger decodes a RebuildTrigger from a watermill message.
func DecodeRebuildTrigger(msg *message.Message) (RebuildTrigger, error) {
	var trigger RebuildTrigger
	if err := json.Unmarshal(msg.Payload, &trigger); err != nil {
		return RebuildTrigger{}, fmt.Errorf("decode rebuild trigger %s: %w", msg.UUID, err)
	}
	return trigger, nil
}
