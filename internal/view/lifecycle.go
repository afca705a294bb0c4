package view

import (
	"context"
	"sync"

	applogger "BrentDash/pkg/logger"
)

// Lifecycle scopes the fetch tasks of one component tree. Tasks are keyed
// by slot: issuing a task on a busy slot cancels the previous one and its
// result is dropped. After Unmount no result is applied.
type Lifecycle struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *applogger.Logger

	mu        sync.Mutex
	slots     map[string]*slot
	unmounted bool
	wg        sync.WaitGroup
}

type slot struct {
	// mu serializes generation changes with result delivery, so a result
	// checked as current cannot be superseded while it is being applied.
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewLifecycle binds a component tree to parent, usually the request
// context.
func NewLifecycle(parent context.Context, l *applogger.Logger) *Lifecycle {
	if l == nil {
		l = applogger.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Lifecycle{
		ctx:    ctx,
		cancel: cancel,
		logger: l,
		slots:  make(map[string]*slot),
	}
}

// Logger returns the logger components should use.
func (l *Lifecycle) Logger() *applogger.Logger {
	return l.logger
}

// Issue runs fetch on its own goroutine under slot key and hands the
// outcome to apply, unless the slot was reissued, cancelled or the
// lifecycle unmounted in the meantime. apply may issue tasks on other
// slots but must not reissue key.
func Issue[T any](l *Lifecycle, key string, fetch func(ctx context.Context) (T, error), apply func(T, error)) {
	s, ok := l.slot(key)
	if !ok {
		return
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	ctx, cancel := context.WithCancel(l.ctx)
	s.cancel = cancel
	l.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer l.wg.Done()
		defer cancel()

		v, err := fetch(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen != gen || !l.Mounted() {
			l.logger.Debug("dropping stale task result", applogger.String("slot", key))
			return
		}
		s.cancel = nil
		apply(v, err)
	}()
}

// Cancel drops whatever is in flight on the given slots.
func (l *Lifecycle) Cancel(keys ...string) {
	for _, key := range keys {
		l.mu.Lock()
		s, ok := l.slots[key]
		l.mu.Unlock()
		if !ok {
			continue
		}
		s.mu.Lock()
		s.gen++
		if s.cancel != nil {
			s.cancel()
			s.cancel = nil
		}
		s.mu.Unlock()
	}
}

// Wait blocks until every issued task, nested ones included, has finished.
func (l *Lifecycle) Wait() {
	l.wg.Wait()
}

// Mounted reports whether results are still being applied.
func (l *Lifecycle) Mounted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.unmounted
}

// Unmount cancels every in-flight task. Once it returns no apply callback
// runs anymore.
func (l *Lifecycle) Unmount() {
	l.mu.Lock()
	if l.unmounted {
		l.mu.Unlock()
		return
	}
	l.unmounted = true
	slots := make([]*slot, 0, len(l.slots))
	for _, s := range l.slots {
		slots = append(slots, s)
	}
	l.mu.Unlock()

	l.cancel()
	// an apply already running holds its slot lock; wait it out
	for _, s := range slots {
		s.mu.Lock()
		s.cancel = nil
		s.mu.Unlock()
	}
}

func (l *Lifecycle) slot(key string) (*slot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.unmounted {
		return nil, false
	}
	s, ok := l.slots[key]
	if !ok {
		s = &slot{}
		l.slots[key] = s
	}
	return s, true
}
