package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mcoot/wordduel-go/internal/dependencies/clock"
	"github.com/mcoot/wordduel-go/internal/model"
	"github.com/mcoot/wordduel-go/internal/storage"
)

// queueSize bounds the jobs waiting on one room
const queueSize = 64

var (
	// ErrRoomExists is returned by Insert when the id is taken
	ErrRoomExists = errors.New("room already exists")

	// ErrClosed is returned once the registry has been shut down
	ErrClosed = errors.New("registry closed")
)

// MutateFunc changes a private copy of a room. Returning an error discards
// the copy.
type MutateFunc func(room *model.Room) error

// CommitFunc observes every committed room. It runs on the room's worker,
// so calls for one room arrive in commit order and must not block.
type CommitFunc func(room *model.Room)

type result struct {
	room *model.Room
	err  error
}

type job struct {
	ctx    context.Context
	insert *model.Room
	mutate MutateFunc
	done   chan result
}

// worker applies the jobs of a single room in arrival order
type worker struct {
	roomID model.RoomID
	jobs   chan job
}

// Registry serialises all writes to a room through one goroutine per room.
// Rooms are saved to storage only after a job succeeds, and a saved room is
// never written again, so rooms handed out by Get and Do are safe to read
// from any goroutine.
type Registry struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	mu        sync.Mutex
	workers   map[model.RoomID]*worker
	listeners []CommitFunc
	closed    bool
	wg        sync.WaitGroup
}

// New creates a new Registry
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Registry {
	return &Registry{
		storage: storage,
		clock:   clock,
		logger:  logger,
		workers: make(map[model.RoomID]*worker),
	}
}

// Get returns the latest committed state of a room
func (r *Registry) Get(ctx context.Context, id model.RoomID) (*model.Room, error) {
	return r.storage.GetRoom(ctx, id)
}

// List returns every live room, oldest first
func (r *Registry) List(ctx context.Context) ([]*model.Room, error) {
	return r.storage.ListRooms(ctx)
}

// Insert adds a new room. It fails with ErrRoomExists if the id is taken.
func (r *Registry) Insert(ctx context.Context, room *model.Room) (*model.Room, error) {
	w, err := r.worker(room.ID, true)
	if err != nil {
		return nil, err
	}
	return r.submit(ctx, w, job{ctx: ctx, insert: room})
}

// Do runs fn against a copy of the room on the room's worker and commits
// the copy if fn succeeds. The committed room is returned.
func (r *Registry) Do(ctx context.Context, id model.RoomID, fn MutateFunc) (*model.Room, error) {
	w, err := r.worker(id, false)
	if err != nil {
		return nil, err
	}
	return r.submit(ctx, w, job{ctx: ctx, mutate: fn})
}

// OnCommit registers fn to be called after every successful commit
func (r *Registry) OnCommit(fn CommitFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Close stops every worker after it drains its queue
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	for _, w := range r.workers {
		close(w.jobs)
	}
	r.mu.Unlock()

	r.wg.Wait()
}

// worker returns the room's worker, starting one if needed. Only Insert may
// start a worker for a room that is not yet stored.
func (r *Registry) worker(id model.RoomID, create bool) (*worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}
	if w, ok := r.workers[id]; ok {
		return w, nil
	}

	if !create {
		exists, err := r.storage.RoomExists(context.Background(), id)
		if err != nil {
			return nil, fmt.Errorf("checking room: %w", err)
		}
		if !exists {
			return nil, model.ErrRoomNotFound
		}
	}

	w := &worker{
		roomID: id,
		jobs:   make(chan job, queueSize),
	}
	r.workers[id] = w
	r.wg.Add(1)
	go r.run(w)
	return w, nil
}

func (r *Registry) submit(ctx context.Context, w *worker, j job) (room *model.Room, err error) {
	j.done = make(chan result, 1)

	// A send on a closed queue panics; Close may race with an enqueue
	defer func() {
		if recover() != nil {
			room, err = nil, ErrClosed
		}
	}()

	select {
	case w.jobs <- j:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	res := <-j.done
	return res.room, res.err
}

func (r *Registry) run(w *worker) {
	defer r.wg.Done()

	logger := r.logger.With(slog.String("room_id", string(w.roomID)))
	logger.Debug("room worker started")

	for j := range w.jobs {
		room, err := r.apply(w.roomID, j)
		if err == nil {
			r.notify(room)
		}
		j.done <- result{room: room, err: err}
	}

	logger.Debug("room worker stopped")
}

func (r *Registry) notify(room *model.Room) {
	r.mu.Lock()
	listeners := r.listeners
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(room)
	}
}

// apply runs one job. A job whose caller has already gone away is skipped.
func (r *Registry) apply(id model.RoomID, j job) (room *model.Room, err error) {
	if err := j.ctx.Err(); err != nil {
		return nil, err
	}

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("room job panicked",
				slog.String("room_id", string(id)),
				slog.Any("panic", p),
			)
			room, err = nil, fmt.Errorf("room job panicked: %v", p)
		}
	}()

	if j.insert != nil {
		return r.applyInsert(j.ctx, j.insert)
	}
	return r.applyMutate(j.ctx, id, j.mutate)
}

func (r *Registry) applyInsert(ctx context.Context, room *model.Room) (*model.Room, error) {
	exists, err := r.storage.RoomExists(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("checking room: %w", err)
	}
	if exists {
		return nil, ErrRoomExists
	}

	committed := room.Clone()
	if err := r.storage.SaveRoom(ctx, committed); err != nil {
		return nil, fmt.Errorf("saving room: %w", err)
	}
	return committed, nil
}

func (r *Registry) applyMutate(ctx context.Context, id model.RoomID, fn MutateFunc) (*model.Room, error) {
	current, err := r.storage.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	working := current.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	working.UpdatedAt = r.clock.Now()

	if err := r.storage.SaveRoom(ctx, working); err != nil {
		return nil, fmt.Errorf("saving room: %w", err)
	}
	return working, nil
}
