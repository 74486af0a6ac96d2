package service

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReminderQueue guarda recordatorios planificados ordenados por instante.
// Quien los entrega (push, email) es un colaborador externo que los drena
// con DueBefore.
type ReminderQueue interface {
	Enqueue(ctx context.Context, reminders []Reminder) error
	DueBefore(ctx context.Context, t time.Time) ([]Reminder, error)
}

type memoryReminderQueue struct {
	mu    sync.Mutex
	items []Reminder
}

// NewMemoryReminderQueue crea una cola en memoria para despliegues sin redis
// y para tests.
func NewMemoryReminderQueue() ReminderQueue {
	return &memoryReminderQueue{}
}

func (q *memoryReminderQueue) Enqueue(_ context.Context, reminders []Reminder) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, reminders...)
	sort.Slice(q.items, func(i, j int) bool { return q.items[i].At.Before(q.items[j].At) })
	return nil
}

func (q *memoryReminderQueue) DueBefore(_ context.Context, t time.Time) ([]Reminder, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var due []Reminder
	for _, r := range q.items {
		if !r.At.After(t) {
			due = append(due, r)
		}
	}
	return due, nil
}

// redisZClient es el subconjunto de go-redis que usa la cola; permite
// mockear en tests sin un servidor.
type redisZClient interface {
	ZAdd(ctx context.Context, key string, members ...redis.Z) *redis.IntCmd
	ZRangeByScore(ctx context.Context, key string, opt *redis.ZRangeBy) *redis.StringSliceCmd
}

type redisReminderQueue struct {
	client redisZClient
	key    string
}

// NewRedisReminderQueue crea una cola respaldada por un sorted set de redis,
// con el instante unix del recordatorio como score.
func NewRedisReminderQueue(client *redis.Client) ReminderQueue {
	if client == nil {
		return nil
	}
	return &redisReminderQueue{client: client, key: "reminders:scheduled"}
}

func (q *redisReminderQueue) Enqueue(ctx context.Context, reminders []Reminder) error {
	if len(reminders) == 0 {
		return nil
	}
	members := make([]redis.Z, 0, len(reminders))
	for _, r := range reminders {
		payload, err := json.Marshal(r)
		if err != nil {
			return err
		}
		members = append(members, redis.Z{
			Score:  float64(r.At.Unix()),
			Member: string(payload),
		})
	}
	return q.client.ZAdd(ctx, q.key, members...).Err()
}

func (q *redisReminderQueue) DueBefore(ctx context.Context, t time.Time) ([]Reminder, error) {
	raw, err := q.client.ZRangeByScore(ctx, q.key, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(t.Unix(), 10),
	}).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Reminder, 0, len(raw))
	for _, item := range raw {
		var r Reminder
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			// entrada corrupta: se ignora, no bloquea el resto
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
