package store

import (
	"context"
	"sync"

	"github.com/harshitkumar81444-source/RIDDLE-SHIELD/internal/quiz"
)

// Memory keeps the session in-process behind a mutex: a true
// compare-and-swap, since every Update runs against the latest committed
// state. Suited to single-process deployments and tests.
type Memory struct {
	mu   sync.Mutex
	sess quiz.Session
}

func NewMemory() *Memory {
	return &Memory{sess: quiz.NewSession()}
}

func (m *Memory) Load(ctx context.Context) (quiz.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess.Clone(), nil
}

func (m *Memory) Update(ctx context.Context, fn func(quiz.Session) (quiz.Session, error)) (quiz.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := fn(m.sess.Clone())
	if err == ErrNoChange {
		return m.sess.Clone(), nil
	}
	if err != nil {
		return quiz.Session{}, err
	}
	m.sess = next
	return next.Clone(), nil
}
