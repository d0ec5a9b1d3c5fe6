// Package sw models the client service worker lifecycle as explicit hooks.
// The browser runtime drives install/activate/fetch/push; each hook here is
// a function from event to declared effects over an in-memory cache store,
// so the caching and notification rules stay testable server-side.
package sw

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"
)

const (
	DefaultTitle = "FitCoach"
	DefaultBody  = "You have a new notification."
	DefaultIcon  = "/icons/icon-192.png"
	DefaultURL   = "/"
)

// Config mirrors what the worker script is generated with. CacheName is the
// versioned tag; changing it retires every older cache generation on the
// next activation.
type Config struct {
	CacheName   string
	ShellRoutes []string
	// Request URLs containing any of these fragments bypass the cache
	// entirely (API and backend hosts).
	BypassFragments []string
}

// CacheStore is the named-cache storage the hooks operate on.
type CacheStore struct {
	mu     sync.RWMutex
	caches map[string]map[string][]byte
}

func NewCacheStore() *CacheStore {
	return &CacheStore{caches: make(map[string]map[string][]byte)}
}

func (s *CacheStore) Put(cache, url string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.caches[cache] == nil {
		s.caches[cache] = make(map[string][]byte)
	}
	s.caches[cache][url] = append([]byte(nil), body...)
}

func (s *CacheStore) Get(cache, url string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	body, ok := s.caches[cache][url]
	return body, ok
}

func (s *CacheStore) Delete(cache string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.caches, cache)
}

func (s *CacheStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.caches))
	for name := range s.caches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Worker holds the hook set for one cache generation.
type Worker struct {
	cfg   Config
	store *CacheStore
}

func New(cfg Config, store *CacheStore) *Worker {
	return &Worker{cfg: cfg, store: store}
}

// InstallPlan lists the shell routes to pre-populate under the current cache.
type InstallPlan struct {
	Cache    string
	Precache []string
}

func (w *Worker) OnInstall() InstallPlan {
	return InstallPlan{
		Cache:    w.cfg.CacheName,
		Precache: append([]string(nil), w.cfg.ShellRoutes...),
	}
}

// ApplyInstall executes an install plan with the given fetcher. A route that
// cannot be fetched is skipped; install itself never fails.
func (w *Worker) ApplyInstall(plan InstallPlan, fetch func(url string) ([]byte, error)) {
	for _, route := range plan.Precache {
		body, err := fetch(route)
		if err != nil {
			continue
		}
		w.store.Put(plan.Cache, route, body)
	}
}

// ActivatePlan names the cache generations to retire. At most one generation
// survives an activation.
type ActivatePlan struct {
	Keep   string
	Delete []string
}

func (w *Worker) OnActivate(existing []string) ActivatePlan {
	plan := ActivatePlan{Keep: w.cfg.CacheName}
	for _, name := range existing {
		if name != w.cfg.CacheName {
			plan.Delete = append(plan.Delete, name)
		}
	}
	return plan
}

func (w *Worker) ApplyActivate(plan ActivatePlan) {
	for _, name := range plan.Delete {
		w.store.Delete(name)
	}
}

// FetchResult is a simplified response: status plus body.
type FetchResult struct {
	Status    int
	Body      []byte
	FromCache bool
}

// HandleFetch is network-first with cache fallback. API and backend requests
// bypass the cache; a 200 is stored before being returned; on network failure
// the last cached response answers, or the error surfaces if nothing was
// ever cached.
func (w *Worker) HandleFetch(url string, fetch func(url string) (FetchResult, error)) (FetchResult, error) {
	if w.bypasses(url) {
		return fetch(url)
	}

	res, err := fetch(url)
	if err == nil {
		if res.Status == 200 {
			w.store.Put(w.cfg.CacheName, url, res.Body)
		}
		return res, nil
	}

	if body, ok := w.store.Get(w.cfg.CacheName, url); ok {
		return FetchResult{Status: 200, Body: body, FromCache: true}, nil
	}
	return FetchResult{}, err
}

func (w *Worker) bypasses(url string) bool {
	for _, frag := range w.cfg.BypassFragments {
		if strings.Contains(url, frag) {
			return true
		}
	}
	return false
}

// Notification is the display effect of a push event.
type Notification struct {
	Title string
	Body  string
	Icon  string
	URL   string
}

// OnPush parses the push payload and fills in fallbacks for missing fields.
// An empty payload is a no-op and returns nil.
func (w *Worker) OnPush(payload []byte) *Notification {
	if len(payload) == 0 {
		return nil
	}

	var data struct {
		Title   string `json:"title"`
		Message string `json:"message"`
		URL     string `json:"url"`
	}
	// Malformed payloads still display something rather than dropping
	// the notification.
	_ = json.Unmarshal(payload, &data)

	n := &Notification{
		Title: data.Title,
		Body:  data.Message,
		Icon:  DefaultIcon,
		URL:   data.URL,
	}
	if n.Title == "" {
		n.Title = DefaultTitle
	}
	if n.Body == "" {
		n.Body = DefaultBody
	}
	if n.URL == "" {
		n.URL = DefaultURL
	}
	return n
}

// ClickAction is the effect of a notification click: dismiss, then either
// focus and navigate an already-open same-origin window or open a new one.
type ClickAction struct {
	FocusWindow string
	OpenURL     string
	NavigateTo  string
}

func (w *Worker) OnNotificationClick(openWindows []string, origin, target string) ClickAction {
	for _, win := range openWindows {
		if strings.HasPrefix(win, origin) {
			return ClickAction{FocusWindow: win, NavigateTo: target}
		}
	}
	return ClickAction{OpenURL: origin + target}
}
