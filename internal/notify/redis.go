package notify

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
)

const (
	// EventChannel carries structured lifecycle events as JSON.
	EventChannel = "meditrack.appointments"
	// BroadcastChannel carries free-text announcements.
	BroadcastChannel = "meditrack.broadcasts"
)

// RedisObserver publishes every notification to redis pub/sub so channels
// outside this process (SMS workers, dashboards) can subscribe.
type RedisObserver struct {
	client *redis.Client
}

func NewRedisObserver(client *redis.Client) *RedisObserver {
	return &RedisObserver{client: client}
}

func (o *RedisObserver) AppointmentChanged(ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return o.client.Publish(context.Background(), EventChannel, payload).Err()
}

func (o *RedisObserver) Broadcast(message string) error {
	return o.client.Publish(context.Background(), BroadcastChannel, message).Err()
}
