package queue

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-system/internal/core/domain"
	"github.com/taskforge/task-system/internal/core/ports"
)

type recordingService struct {
	mu        sync.Mutex
	processed []ports.ActivityInput
	done      chan struct{}
	expect    int
}

func newRecordingService(expect int) *recordingService {
	return &recordingService{done: make(chan struct{}), expect: expect}
}

func (s *recordingService) Process(_ context.Context, in ports.ActivityInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed = append(s.processed, in)
	if len(s.processed) == s.expect {
		close(s.done)
	}
	return nil
}

func (s *recordingService) ListByTask(context.Context, string) ([]*domain.ActivityEntry, error) {
	return nil, nil
}

func (s *recordingService) wait(t *testing.T) {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for events")
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(4, newRecordingService(0), zerolog.Nop())

	for _, id := range []string{"task-1", "task-2", "abc", ""} {
		first := d.shardIndex(id)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(id); got != first {
				t.Fatalf("shard for %q changed: %d then %d", id, first, got)
			}
		}
		if first < 0 || first >= 4 {
			t.Fatalf("shard out of range: %d", first)
		}
	}
}

func TestDispatcher_PerTaskOrdering(t *testing.T) {
	const events = 50
	svc := newRecordingService(events)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(ctx)

	for i := 0; i < events; i++ {
		d.Enqueue(ports.ActivityInput{
			TaskID: "task-1",
			Action: domain.ActivityTaskUpdated,
			Detail: strconv.Itoa(i),
		})
	}
	svc.wait(t)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	for i, in := range svc.processed {
		if in.Detail != strconv.Itoa(i) {
			t.Fatalf("event %d out of order: got detail %q", i, in.Detail)
		}
	}
}

func TestDispatcher_FansOutAcrossTasks(t *testing.T) {
	const tasks = 20
	svc := newRecordingService(tasks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(ctx)

	for i := 0; i < tasks; i++ {
		d.Enqueue(ports.ActivityInput{
			TaskID: "task-" + strconv.Itoa(i),
			Action: domain.ActivityTaskCreated,
		})
	}
	svc.wait(t)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	seen := make(map[string]bool, tasks)
	for _, in := range svc.processed {
		seen[in.TaskID] = true
	}
	if len(seen) != tasks {
		t.Fatalf("expected %d distinct tasks processed, got %d", tasks, len(seen))
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, newRecordingService(0), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
