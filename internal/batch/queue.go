// Package batch implements the ordered work-item queue and its two
// sequential pass drivers: identification and analysis. The queue is the
// exclusive owner of its item list and the only writer of item status.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/gradeflow/gradeflow/internal/model"
)

// ErrPassRunning indicates a pass was started or the queue cleared while
// another pass is in flight on the same queue.
var ErrPassRunning = errors.New("a pass is already running on this queue")

// maxDiagnosticLen caps the per-item failure message stored on an item.
const maxDiagnosticLen = 200

// idleIndex is the CurrentIndex sentinel when no pass is running.
const idleIndex = -1

// Queue holds scanned work items and drives them through identification
// and analysis. Both passes are strictly sequential: the identification
// and analysis services are rate-limited, so item N+1 is never started
// before item N's call completes. That is an observable contract, not an
// implementation accident.
type Queue struct {
	resolver   Resolver
	analyzer   Analyzer
	onProgress ProgressFunc
	logger     *slog.Logger
	items      []*model.WorkItem
	current    int
	running    bool
	abort      bool
	mu         sync.Mutex
}

// Option configures a Queue.
type Option func(*Queue)

// WithProgressFunc registers a callback for per-item progress events.
func WithProgressFunc(fn ProgressFunc) Option {
	return func(q *Queue) { q.onProgress = fn }
}

// WithLogger sets the queue's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(q *Queue) { q.logger = logger }
}

// NewQueue creates an empty queue over the given collaborators.
func NewQueue(resolver Resolver, analyzer Analyzer, opts ...Option) *Queue {
	q := &Queue{
		resolver: resolver,
		analyzer: analyzer,
		logger:   slog.Default(),
		current:  idleIndex,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Add appends a new pending work item and returns its id. Student fields
// are optional; when supplied the item counts as manually assigned.
func (q *Queue) Add(image []byte, studentID, studentName string) string {
	item := &model.WorkItem{
		ID:          uuid.NewString(),
		Image:       image,
		StudentID:   studentID,
		StudentName: studentName,
		Status:      model.StatusPending,
	}

	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()

	q.logger.Debug("work item added", "item_id", item.ID, "student_id", studentID)
	return item.ID
}

// Remove deletes an item by id. Unknown ids are a no-op.
func (q *Queue) Remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, item := range q.items {
		if item.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// Reassign manually attaches a student to an item, returning it to Pending
// from any terminal state. The assignment is marked as human-made; it is
// never overwritten by a resolver. Unknown ids are a no-op.
func (q *Queue) Reassign(id, studentID, studentName string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	item, ok := q.lookupLocked(id)
	if !ok {
		return
	}

	item.StudentID = studentID
	item.StudentName = studentName
	item.AutoAssigned = false
	if item.Status.Terminal() {
		item.Status = model.StatusPending
	}
}

// Clear empties the queue. It is rejected while a pass is in flight.
func (q *Queue) Clear() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.running {
		return ErrPassRunning
	}
	q.items = nil
	return nil
}

// Items returns a snapshot copy of the queue in order. Mutating the copies
// has no effect on the queue.
func (q *Queue) Items() []model.WorkItem {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := make([]model.WorkItem, len(q.items))
	for i, item := range q.items {
		items[i] = *item
	}
	return items
}

// Len returns the number of items in the queue.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// CurrentIndex returns the progress cursor of the running pass, or -1 when
// no pass is running. During a pass it strictly increases by one per item
// visited, in queue order.
func (q *Queue) CurrentIndex() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.current
}

// Running reports whether a pass is in flight.
func (q *Queue) Running() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.running
}

// Abort requests that the running pass stop before its next item. The
// in-flight item runs to completion; already-finished items keep their
// results. No-op when no pass is running.
func (q *Queue) Abort() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.running {
		q.abort = true
	}
}

// RunIdentification sweeps the queue once, resolving each unassigned item
// to a student identity. Items that already have a student are skipped, so
// the pass is idempotent. An empty queue or roster is a silent no-op; a
// pass already in flight is rejected with ErrPassRunning.
func (q *Queue) RunIdentification(ctx context.Context, roster []model.Student) error {
	ids, err := q.beginPass(len(roster) > 0)
	if err != nil || ids == nil {
		return err
	}
	defer q.finishPass()

	q.logger.Info("starting identification pass",
		"items", len(ids),
		"roster_size", len(roster))

	identified := 0
	for i, id := range ids {
		if q.abortRequested() {
			q.logger.Info("identification pass aborted", "processed", i)
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		q.mu.Lock()
		q.current = i
		item, ok := q.lookupLocked(id)
		if !ok || item.Assigned() {
			q.mu.Unlock()
			continue
		}
		item.Status = model.StatusIdentifying
		snapshot := *item
		q.mu.Unlock()

		q.emit(Progress{Stage: StageIdentification, ItemID: id, Index: i, Total: len(ids)})

		result := q.resolver.Resolve(ctx, snapshot, roster)

		// Apply by id lookup: the list may have been mutated while the
		// resolver was in flight, and a removed item must not resurface.
		q.mu.Lock()
		if item, ok := q.lookupLocked(id); ok {
			if q.resolver.Apply(item, result, false) {
				identified++
			}
			item.Status = model.StatusPending
		}
		q.mu.Unlock()
	}

	q.logger.Info("identification pass complete", "auto_assigned", identified)
	return nil
}

// RunAnalysis sweeps every item through the grading service in queue
// order. Per-item failures mark that item Failed and the pass continues;
// one bad image never aborts the batch. Re-analysis of terminal items is
// explicit via this same driver and overwrites prior results. An empty
// queue or rubric is a silent no-op; a pass already in flight is rejected
// with ErrPassRunning.
func (q *Queue) RunAnalysis(ctx context.Context, rubric []model.RubricStep) error {
	ids, err := q.beginPass(len(rubric) > 0)
	if err != nil || ids == nil {
		return err
	}
	defer q.finishPass()

	q.logger.Info("starting analysis pass", "items", len(ids), "rubric_steps", len(rubric))

	completed := 0
	failed := 0
	for i, id := range ids {
		if q.abortRequested() {
			q.logger.Info("analysis pass aborted", "processed", i)
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		q.mu.Lock()
		q.current = i
		item, ok := q.lookupLocked(id)
		if !ok {
			q.mu.Unlock()
			continue
		}
		item.Status = model.StatusAnalyzing
		image := item.Image
		studentName := item.StudentName
		q.mu.Unlock()

		q.emit(Progress{Stage: StageAnalysis, ItemID: id, Index: i, Total: len(ids)})

		result, analyzeErr := q.analyzer.AnalyzeWork(ctx, image, studentName, rubric)

		q.mu.Lock()
		item, ok = q.lookupLocked(id)
		if !ok {
			q.mu.Unlock()
			continue
		}
		if analyzeErr != nil {
			item.Status = model.StatusFailed
			item.Result = nil
			item.Error = shortDiagnostic(analyzeErr)
			failed++
			q.mu.Unlock()

			q.logger.Warn("analysis failed for item",
				"item_id", id,
				"error", analyzeErr)
			continue
		}
		item.Status = model.StatusCompleted
		item.Result = result
		item.Error = ""
		completed++
		q.mu.Unlock()
	}

	q.logger.Info("analysis pass complete", "completed", completed, "failed", failed)
	return nil
}

// beginPass acquires the pass guard and snapshots item ids. It returns
// (nil, nil) for the silent no-op cases: empty queue or missing input.
func (q *Queue) beginPass(haveInput bool) ([]string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.running {
		return nil, ErrPassRunning
	}
	if len(q.items) == 0 || !haveInput {
		return nil, nil
	}

	q.running = true
	q.abort = false
	q.current = idleIndex

	ids := make([]string, len(q.items))
	for i, item := range q.items {
		ids[i] = item.ID
	}
	return ids, nil
}

// finishPass resets the guard and the progress cursor.
func (q *Queue) finishPass() {
	q.mu.Lock()
	q.running = false
	q.abort = false
	q.current = idleIndex
	q.mu.Unlock()
}

func (q *Queue) abortRequested() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.abort
}

// lookupLocked finds an item by id. Callers must hold q.mu.
func (q *Queue) lookupLocked(id string) (*model.WorkItem, bool) {
	for _, item := range q.items {
		if item.ID == id {
			return item, true
		}
	}
	return nil, false
}

func (q *Queue) emit(p Progress) {
	if q.onProgress != nil {
		q.onProgress(p)
	}
}

// shortDiagnostic reduces a collaborator error to the short human-readable
// reason stored on a failed item.
func shortDiagnostic(err error) string {
	msg := err.Error()
	if len(msg) > maxDiagnosticLen {
		msg = fmt.Sprintf("%s…", msg[:maxDiagnosticLen])
	}
	return msg
}
