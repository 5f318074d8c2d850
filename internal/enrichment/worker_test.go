// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package enrichment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/playpick/playpick/internal/models"
	"github.com/playpick/playpick/internal/steam"
)

type fakeFetcher struct {
	details map[int64]*steam.AppDetails
}

func (f *fakeFetcher) AppDetails(_ context.Context, appID int64) (*steam.AppDetails, error) {
	details, ok := f.details[appID]
	if !ok {
		return nil, errors.New("steamspy unavailable")
	}
	return details, nil
}

type fakeCatalog struct {
	mu      sync.Mutex
	entries map[int64]*models.CatalogEntry
	err     error
}

func (c *fakeCatalog) UpsertCatalogEntry(_ context.Context, entry *models.CatalogEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	if c.entries == nil {
		c.entries = make(map[int64]*models.CatalogEntry)
	}
	c.entries[entry.AppID] = entry
	return nil
}

func (c *fakeCatalog) get(appID int64) *models.CatalogEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[appID]
}

func newTestWorker(t *testing.T, fetcher *fakeFetcher, catalog *fakeCatalog) (*Worker, *Queue) {
	t.Helper()
	queue := NewQueue(64, zerolog.Nop())
	t.Cleanup(func() { _ = queue.Close() })
	return NewWorker(queue, fetcher, catalog, zerolog.Nop()), queue
}

func taskMessage(t *testing.T, appID int64, batchID string, batchSize int) *message.Message {
	t.Helper()
	task := EnrichTask{TaskID: "task", AppID: appID, EnqueuedAt: time.Now().UTC()}
	msg, err := newTaskMessage(task, batchID, batchSize)
	if err != nil {
		t.Fatalf("newTaskMessage() error = %v", err)
	}
	return msg
}

func TestWorkerEnrichesGame(t *testing.T) {
	fetcher := &fakeFetcher{details: map[int64]*steam.AppDetails{
		42: {
			AppID:          42,
			Name:           "Cozy Farm",
			Developer:      "Leaf Studio",
			Publisher:      "Leaf Studio",
			Positive:       900,
			Negative:       30,
			AverageForever: 95,
			Price:          "1999",
			Genre:          "Simulation, Indie",
			Tags:           map[string]int{"Farming": 200, "Relaxing": 90, "Co-op": 40},
		},
	}}
	catalog := &fakeCatalog{}
	worker, _ := newTestWorker(t, fetcher, catalog)

	worker.handle(context.Background(), taskMessage(t, 42, "batch-1", 2))

	entry := catalog.get(42)
	if entry == nil {
		t.Fatal("catalog entry not written")
	}
	if entry.Name != "Cozy Farm" {
		t.Errorf("Name = %q, want %q", entry.Name, "Cozy Farm")
	}
	if entry.Price != 19.99 {
		t.Errorf("Price = %v, want 19.99", entry.Price)
	}
	if entry.Difficulty != "low" {
		t.Errorf("Difficulty = %q, want %q", entry.Difficulty, "low")
	}
	if entry.MultiplayerMode != "coop" {
		t.Errorf("MultiplayerMode = %q, want %q", entry.MultiplayerMode, "coop")
	}
	if entry.AvgSessionMinutes != 95 {
		t.Errorf("AvgSessionMinutes = %d, want 95", entry.AvgSessionMinutes)
	}
	if entry.Tags != "Farming, Relaxing, Co-op" {
		t.Errorf("Tags = %q, want %q", entry.Tags, "Farming, Relaxing, Co-op")
	}
	wantDoc := "Cozy Farm\nSimulation, Indie\nFarming\nRelaxing\nCo-op"
	if entry.Document != wantDoc {
		t.Errorf("Document = %q, want %q", entry.Document, wantDoc)
	}
	if !entry.Windows {
		t.Error("Windows = false, want true")
	}
}

func TestWorkerBatchCompletionPublishesRebuild(t *testing.T) {
	fetcher := &fakeFetcher{details: map[int64]*steam.AppDetails{
		1: {AppID: 1, Name: "One"},
		2: {AppID: 2, Name: "Two"},
	}}
	catalog := &fakeCatalog{}
	worker, queue := newTestWorker(t, fetcher, catalog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rebuilds, err := queue.SubscribeRebuilds(ctx)
	if err != nil {
		t.Fatalf("SubscribeRebuilds() error = %v", err)
	}

	// Three-task batch: two succeed, app 3 has no SteamSpy data and fails.
	for _, appID := range []int64{1, 2, 3} {
		worker.handle(ctx, taskMessage(t, appID, "batch-7", 3))
	}

	select {
	case msg := <-rebuilds:
		trigger, err := DecodeRebuildTrigger(msg)
		if err != nil {
			t.Fatalf("DecodeRebuildTrigger() error = %v", err)
		}
		msg.Ack()
		if trigger.BatchID != "batch-7" {
			t.Errorf("BatchID = %q, want %q", trigger.BatchID, "batch-7")
		}
		if trigger.Enriched != 2 || trigger.Failed != 1 {
			t.Errorf("Enriched/Failed = %d/%d, want 2/1", trigger.Enriched, trigger.Failed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no rebuild trigger published")
	}

	if len(worker.batches) != 0 {
		t.Errorf("batch accounting not cleaned up, %d batches left", len(worker.batches))
	}
}

func TestWorkerNoRebuildBeforeBatchDone(t *testing.T) {
	fetcher := &fakeFetcher{details: map[int64]*steam.AppDetails{1: {AppID: 1, Name: "One"}}}
	worker, queue := newTestWorker(t, fetcher, &fakeCatalog{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rebuilds, err := queue.SubscribeRebuilds(ctx)
	if err != nil {
		t.Fatalf("SubscribeRebuilds() error = %v", err)
	}

	worker.handle(ctx, taskMessage(t, 1, "batch-2", 2))

	select {
	case <-rebuilds:
		t.Fatal("rebuild trigger published before the batch finished")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWorkerDropsUndecodableTask(t *testing.T) {
	catalog := &fakeCatalog{}
	worker, _ := newTestWorker(t, &fakeFetcher{}, catalog)

	msg := message.NewMessage("bad", []byte("{not json"))
	worker.handle(context.Background(), msg)

	if len(catalog.entries) != 0 {
		t.Error("undecodable task wrote a catalog entry")
	}
}

func TestWorkerCatalogWriteFailureCountsAsFailed(t *testing.T) {
	fetcher := &fakeFetcher{details: map[int64]*steam.AppDetails{1: {AppID: 1, Name: "One"}}}
	catalog := &fakeCatalog{err: errors.New("disk full")}
	worker, queue := newTestWorker(t, fetcher, catalog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rebuilds, err := queue.SubscribeRebuilds(ctx)
	if err != nil {
		t.Fatalf("SubscribeRebuilds() error = %v", err)
	}

	worker.handle(ctx, taskMessage(t, 1, "batch-3", 1))

	select {
	case msg := <-rebuilds:
		trigger, err := DecodeRebuildTrigger(msg)
		if err != nil {
			t.Fatalf("DecodeRebuildTrigger() error = %v", err)
		}
		msg.Ack()
		if trigger.Enriched != 0 || trigger.Failed != 1 {
			t.Errorf("Enriched/Failed = %d/%d, want 0/1", trigger.Enriched, trigger.Failed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no rebuild trigger published")
	}
}

func TestWorkerRunProcessesEnqueuedBatch(t *testing.T) {
	fetcher := &fakeFetcher{details: map[int64]*steam.AppDetails{
		10: {AppID: 10, Name: "Ten"},
		20: {AppID: 20, Name: "Twenty"},
	}}
	catalog := &fakeCatalog{}
	worker, queue := newTestWorker(t, fetcher, catalog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rebuilds, err := queue.SubscribeRebuilds(ctx)
	if err != nil {
		t.Fatalf("SubscribeRebuilds() error = %v", err)
	}

	go func() { _ = worker.Run(ctx) }()
	// Give the worker time to subscribe before publishing; gochannel does
	// not replay messages to late subscribers.
	time.Sleep(100 * time.Millisecond)

	batchID, err := queue.EnqueueBatch([]int64{10, 20})
	if err != nil {
		t.Fatalf("EnqueueBatch() error = %v", err)
	}
	if batchID == "" {
		t.Fatal("EnqueueBatch() returned empty batch id")
	}

	select {
	case msg := <-rebuilds:
		trigger, err := DecodeRebuildTrigger(msg)
		if err != nil {
			t.Fatalf("DecodeRebuildTrigger() error = %v", err)
		}
		msg.Ack()
		if trigger.BatchID != batchID {
			t.Errorf("BatchID = %q, want %q", trigger.BatchID, batchID)
		}
		if trigger.Enriched != 2 {
			t.Errorf("Enriched = %d, want 2", trigger.Enriched)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("batch never completed")
	}

	if catalog.get(10) == nil || catalog.get(20) == nil {
		t.Error("catalog entries not written")
	}
}

func TestEnqueueBatchEmpty(t *testing.T) {
	queue := NewQueue(8, zerolog.Nop())
	t.Cleanup(func() { _ = queue.Close() })

	batchID, err := queue.EnqueueBatch(nil)
	if err != nil {
		t.Fatalf("EnqueueBatch(nil) error = %v", err)
	}
	if batchID != "" {
		t.Errorf("EnqueueBatch(nil) batch id = %q, want empty", batchID)
	}
}
