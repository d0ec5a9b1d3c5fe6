package push

import (
	"errors"
	"sync"
	"testing"

	"fitcoach_backend/models"
)

// fakeTransport fails for the endpoints listed in failing.
type fakeTransport struct {
	mu      sync.Mutex
	failing map[string]bool
	sent    []string
}

func (f *fakeTransport) Send(sub models.PushSubscription, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing[sub.Endpoint] {
		return errors.New("subscription expired")
	}
	f.sent = append(f.sent, sub.Endpoint)
	return nil
}

func TestFanoutPartialFailure(t *testing.T) {
	subs := []models.PushSubscription{
		{Endpoint: "https://push.example/a", P256dh: "k1", Auth: "a1"},
		{Endpoint: "https://push.example/b", P256dh: "k2", Auth: "a2"},
		{Endpoint: "https://push.example/c", P256dh: "k3", Auth: "a3"},
	}
	tr := &fakeTransport{failing: map[string]bool{"https://push.example/b": true}}

	sent, total := Fanout(tr, subs, []byte(`{"title":"hi"}`))

	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if sent != 2 {
		t.Errorf("sent = %d, want 2", sent)
	}
	if len(tr.sent) != 2 {
		t.Errorf("transport recorded %d deliveries, want 2", len(tr.sent))
	}
}

func TestFanoutNoSubscriptions(t *testing.T) {
	tr := &fakeTransport{}
	sent, total := Fanout(tr, nil, []byte(`{}`))
	if sent != 0 || total != 0 {
		t.Errorf("got sent=%d total=%d, want zeros", sent, total)
	}
}

func TestFanoutAllFail(t *testing.T) {
	subs := []models.PushSubscription{
		{Endpoint: "https://push.example/a"},
		{Endpoint: "https://push.example/b"},
	}
	tr := &fakeTransport{failing: map[string]bool{
		"https://push.example/a": true,
		"https://push.example/b": true,
	}}

	sent, total := Fanout(tr, subs, []byte(`{}`))
	if sent != 0 {
		t.Errorf("sent = %d, want 0", sent)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
}
