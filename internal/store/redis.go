package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/harshitkumar81444-source/RIDDLE-SHIELD/internal/quiz"
)

const (
	sessionKey = "riddleshield:session"

	// casRetries bounds how often an optimistic transaction is retried after
	// losing a race to another writer.
	casRetries = 10
)

// Redis keeps the session in a single key and applies every Update inside a
// WATCH/MULTI/EXEC transaction: a genuine compare-and-swap, which closes the
// double-advance window two polls can otherwise hit at a question boundary.
type Redis struct {
	client *redis.Client
}

func NewRedis(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: connecting to redis: %v", ErrUnavailable, err)
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Load(ctx context.Context) (quiz.Session, error) {
	return get(ctx, r.client)
}

func (r *Redis) Update(ctx context.Context, fn func(quiz.Session) (quiz.Session, error)) (quiz.Session, error) {
	var out quiz.Session

	txn := func(tx *redis.Tx) error {
		sess, err := get(ctx, tx)
		if err != nil {
			return err
		}
		next, err := fn(sess.Clone())
		if err == ErrNoChange {
			out = sess
			return nil
		}
		if err != nil {
			return err
		}
		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("%w: encoding session: %v", ErrUnavailable, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, sessionKey, data, 0)
			return nil
		})
		if err != nil {
			return err
		}
		out = next
		return nil
	}

	for i := 0; i < casRetries; i++ {
		err := r.client.Watch(ctx, txn, sessionKey)
		if err == nil {
			return out, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			// Another writer committed first; rerun fn on the fresh state.
			continue
		}
		return quiz.Session{}, err
	}
	return quiz.Session{}, fmt.Errorf("%w: update contention on %s", ErrUnavailable, sessionKey)
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func get(ctx context.Context, c redis.Cmdable) (quiz.Session, error) {
	data, err := c.Get(ctx, sessionKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return quiz.NewSession(), nil
	}
	if err != nil {
		return quiz.Session{}, fmt.Errorf("%w: reading session: %v", ErrUnavailable, err)
	}

	var sess quiz.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return quiz.Session{}, fmt.Errorf("%w: corrupt session in %s: %v", ErrUnavailable, sessionKey, err)
	}
	normalize(&sess)
	return sess, nil
}
