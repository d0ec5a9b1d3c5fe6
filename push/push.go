package push

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"fitcoach_backend/models"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/lib/pq"
)

// Transport delivers one payload to one subscription endpoint.
type Transport interface {
	Send(sub models.PushSubscription, payload []byte) error
}

// WebPush sends through the Web Push protocol with VAPID authentication.
type WebPush struct {
	Subscriber      string
	VAPIDPublicKey  string
	VAPIDPrivateKey string
}

func (w *WebPush) Send(sub models.PushSubscription, payload []byte) error {
	resp, err := webpush.SendNotification(payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      w.Subscriber,
		VAPIDPublicKey:  w.VAPIDPublicKey,
		VAPIDPrivateKey: w.VAPIDPrivateKey,
		TTL:             60,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("push endpoint returned %d", resp.StatusCode)
	}
	return nil
}

// Fanout sends the payload to every subscription concurrently and waits for
// all sends to settle. One endpoint failing never affects the others; the
// result is a count differential, not an error. Dead subscriptions are not
// pruned.
func Fanout(t Transport, subs []models.PushSubscription, payload []byte) (sent, total int) {
	total = len(subs)

	var wg sync.WaitGroup
	var ok atomic.Int64
	for _, sub := range subs {
		wg.Add(1)
		go func(s models.PushSubscription) {
			defer wg.Done()
			if err := t.Send(s, payload); err == nil {
				ok.Add(1)
			}
		}(sub)
	}
	wg.Wait()

	return int(ok.Load()), total
}

// Service looks up registered subscriptions and fans a notification out to
// them. With no transport configured every send counts as failed.
type Service struct {
	DB        *sql.DB
	Transport Transport
}

// SendToUsers delivers a notification to every subscription of every given
// user. Zero subscriptions is a no-op success.
func (s *Service) SendToUsers(userIDs []int, title, message, url string) (sent, total int, err error) {
	rows, err := s.DB.Query(`
        SELECT id, user_id, endpoint, p256dh, auth
        FROM push_subscriptions
        WHERE user_id = ANY($1)
    `, pq.Array(userIDs))
	if err != nil {
		return 0, 0, fmt.Errorf("error loading push subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []models.PushSubscription
	for rows.Next() {
		var sub models.PushSubscription
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.Endpoint, &sub.P256dh, &sub.Auth); err != nil {
			return 0, 0, fmt.Errorf("error scanning push subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return 0, 0, err
	}

	if len(subs) == 0 {
		return 0, 0, nil
	}

	payload, err := json.Marshal(models.PushPayload{Title: title, Message: message, URL: url})
	if err != nil {
		return 0, 0, err
	}

	if s.Transport == nil {
		return 0, len(subs), nil
	}

	sent, total = Fanout(s.Transport, subs, payload)
	return sent, total, nil
}
