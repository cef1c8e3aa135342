package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"rental-booking/internal/data/entity"

	"go.uber.org/zap"
)

func TestListAddonsDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/addons" {
			t.Errorf("path = %s, want /api/addons", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": []entity.Addon{
				{ID: 1, Name: "GPS Navigation", PricePerDay: 9.5, AddonType: entity.AddonPerDay, IsAvailable: true, Status: "active"},
				{ID: 3, Name: "Roof Box", PricePerDay: 30, AddonType: entity.AddonPerBooking, IsAvailable: true, Status: "active"},
			},
		})
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPCatalog(srv.URL, time.Second, zap.NewNop())
	addons, err := c.ListAddons(context.Background())
	if err != nil {
		t.Fatalf("ListAddons: %v", err)
	}
	if len(addons) != 2 {
		t.Fatalf("got %d addons, want 2", len(addons))
	}
	if addons[0].Name != "GPS Navigation" || addons[0].AddonType != entity.AddonPerDay {
		t.Errorf("first addon = %+v", addons[0])
	}
	if addons[1].AddonType != entity.AddonPerBooking {
		t.Errorf("second addon = %+v", addons[1])
	}
}

func TestListAddonsCachesWithinTTL(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"data": []entity.Addon{{ID: 1, Name: "GPS", IsAvailable: true, Status: "active"}},
		})
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPCatalog(srv.URL, time.Second, zap.NewNop())
	for i := 0; i < 3; i++ {
		if _, err := c.ListAddons(context.Background()); err != nil {
			t.Fatalf("ListAddons #%d: %v", i+1, err)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("upstream hit %d times, want 1", got)
	}

	// Expire the cache and confirm the next call refetches.
	c.mu.Lock()
	c.fetchedAt = time.Now().Add(-c.ttl - time.Minute)
	c.mu.Unlock()

	if _, err := c.ListAddons(context.Background()); err != nil {
		t.Fatalf("ListAddons after expiry: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("upstream hit %d times after expiry, want 2", got)
	}
}

func TestListAddonsUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPCatalog(srv.URL, time.Second, zap.NewNop())
	if _, err := c.ListAddons(context.Background()); err == nil {
		t.Fatal("expected error on 502, got nil")
	}
}
