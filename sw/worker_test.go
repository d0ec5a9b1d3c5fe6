package sw

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func newTestWorker(store *CacheStore) *Worker {
	return New(Config{
		CacheName:       "fitcoach-v2",
		ShellRoutes:     []string{"/", "/login", "/member/dashboard", "/offline"},
		BypassFragments: []string{"/api/", "backend.fitcoach.app"},
	}, store)
}

func TestOnInstallPrecachesShellRoutes(t *testing.T) {
	store := NewCacheStore()
	w := newTestWorker(store)

	plan := w.OnInstall()
	if plan.Cache != "fitcoach-v2" {
		t.Errorf("plan cache = %q", plan.Cache)
	}
	if !reflect.DeepEqual(plan.Precache, []string{"/", "/login", "/member/dashboard", "/offline"}) {
		t.Errorf("unexpected precache list: %v", plan.Precache)
	}

	w.ApplyInstall(plan, func(url string) ([]byte, error) {
		if url == "/offline" {
			return nil, errors.New("unreachable")
		}
		return []byte("page:" + url), nil
	})

	if _, ok := store.Get("fitcoach-v2", "/login"); !ok {
		t.Error("expected /login to be precached")
	}
	if _, ok := store.Get("fitcoach-v2", "/offline"); ok {
		t.Error("unfetchable route must not be cached")
	}
}

func TestOnActivateDeletesOldGenerations(t *testing.T) {
	store := NewCacheStore()
	store.Put("fitcoach-v1", "/", []byte("old"))
	store.Put("fitcoach-v2", "/", []byte("current"))
	store.Put("other-app", "/", []byte("stranger"))

	w := newTestWorker(store)
	plan := w.OnActivate(store.Names())
	if plan.Keep != "fitcoach-v2" {
		t.Errorf("keep = %q", plan.Keep)
	}
	w.ApplyActivate(plan)

	if got := store.Names(); !reflect.DeepEqual(got, []string{"fitcoach-v2"}) {
		t.Errorf("surviving caches = %v, want only fitcoach-v2", got)
	}
}

func TestHandleFetchCachesThenFallsBack(t *testing.T) {
	store := NewCacheStore()
	w := newTestWorker(store)

	networkUp := true
	fetch := func(url string) (FetchResult, error) {
		if !networkUp {
			return FetchResult{}, errors.New("network down")
		}
		return FetchResult{Status: 200, Body: []byte("live body for " + url)}, nil
	}

	live, err := w.HandleFetch("/member/progress", fetch)
	if err != nil {
		t.Fatalf("live fetch failed: %v", err)
	}
	if live.FromCache {
		t.Error("first response should come from the network")
	}

	networkUp = false
	cached, err := w.HandleFetch("/member/progress", fetch)
	if err != nil {
		t.Fatalf("expected cached fallback, got error: %v", err)
	}
	if !cached.FromCache {
		t.Error("fallback response should come from the cache")
	}
	if !bytes.Equal(cached.Body, live.Body) {
		t.Errorf("cached body %q differs from live body %q", cached.Body, live.Body)
	}
}

func TestHandleFetchDoesNotCacheErrors(t *testing.T) {
	store := NewCacheStore()
	w := newTestWorker(store)

	_, err := w.HandleFetch("/missing", func(string) (FetchResult, error) {
		return FetchResult{Status: 404, Body: []byte("not found")}, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = w.HandleFetch("/missing", func(string) (FetchResult, error) {
		return FetchResult{}, errors.New("network down")
	})
	if err == nil {
		t.Error("a 404 must not populate the cache fallback")
	}
}

func TestHandleFetchBypassesAPI(t *testing.T) {
	store := NewCacheStore()
	w := newTestWorker(store)

	w.HandleFetch("/api/lessons", func(string) (FetchResult, error) {
		return FetchResult{Status: 200, Body: []byte(`[]`)}, nil
	})
	if _, ok := store.Get("fitcoach-v2", "/api/lessons"); ok {
		t.Error("API responses must never be cached")
	}

	_, err := w.HandleFetch("https://backend.fitcoach.app/rest/v1/users", func(string) (FetchResult, error) {
		return FetchResult{}, errors.New("network down")
	})
	if err == nil {
		t.Error("backend requests must not fall back to cache")
	}
}

func TestOnPush(t *testing.T) {
	w := newTestWorker(NewCacheStore())

	if got := w.OnPush(nil); got != nil {
		t.Errorf("empty payload must be a no-op, got %+v", got)
	}

	full := w.OnPush([]byte(`{"title":"Weekly report","message":"3 sessions!","url":"/member/report"}`))
	if full.Title != "Weekly report" || full.Body != "3 sessions!" || full.URL != "/member/report" {
		t.Errorf("unexpected notification: %+v", full)
	}

	partial := w.OnPush([]byte(`{"message":"hello"}`))
	if partial.Title != DefaultTitle {
		t.Errorf("missing title should fall back, got %q", partial.Title)
	}
	if partial.Icon != DefaultIcon || partial.URL != DefaultURL {
		t.Errorf("missing fields should fall back: %+v", partial)
	}

	malformed := w.OnPush([]byte(`{{{`))
	if malformed == nil || malformed.Title != DefaultTitle || malformed.Body != DefaultBody {
		t.Errorf("malformed payload should display defaults, got %+v", malformed)
	}
}

func TestOnNotificationClick(t *testing.T) {
	w := newTestWorker(NewCacheStore())
	origin := "https://fitcoach.app"

	focus := w.OnNotificationClick(
		[]string{"https://other.example/page", "https://fitcoach.app/blog"},
		origin, "/member/report",
	)
	if focus.FocusWindow != "https://fitcoach.app/blog" {
		t.Errorf("expected same-origin window focus, got %+v", focus)
	}
	if focus.NavigateTo != "/member/report" {
		t.Errorf("focused window should navigate to target, got %+v", focus)
	}

	open := w.OnNotificationClick([]string{"https://other.example/page"}, origin, "/member/report")
	if open.OpenURL != "https://fitcoach.app/member/report" {
		t.Errorf("expected a new window at the target, got %+v", open)
	}
}
