package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rfeldman/wedsite/internal/models"
)

func groupItem(amountContributed float64) models.RegistryItem {
	return models.RegistryItem{
		ID:                "item-1",
		Name:              "Stand Mixer",
		Price:             100,
		Quantity:          1,
		IsGroupGift:       true,
		AmountContributed: amountContributed,
		Contributors:      []models.Contributor{},
	}
}

func TestCacheApplyContribution(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	t.Run("group gift accumulates and clamps", func(t *testing.T) {
		var cache Cache
		cache.Set([]models.RegistryItem{groupItem(40)})

		cache.ApplyContribution("item-1", "Bob", 30, now)
		items, _ := cache.Items()
		if items[0].AmountContributed != 70 || items[0].Purchased {
			t.Errorf("after partial contribution: amount=%v purchased=%v, want 70/false",
				items[0].AmountContributed, items[0].Purchased)
		}
		if len(items[0].Contributors) != 1 || items[0].Contributors[0].Name != "Bob" {
			t.Errorf("contributors = %+v, want local entry for Bob", items[0].Contributors)
		}

		cache.ApplyContribution("item-1", "Cara", 45, now)
		items, _ = cache.Items()
		if items[0].AmountContributed != 100 || !items[0].Purchased {
			t.Errorf("after overshoot: amount=%v purchased=%v, want clamped 100/true",
				items[0].AmountContributed, items[0].Purchased)
		}
	})

	t.Run("non-group claim", func(t *testing.T) {
		var cache Cache
		item := groupItem(0)
		item.IsGroupGift = false
		cache.Set([]models.RegistryItem{item})

		cache.ApplyContribution("item-1", "Alice", 100, now)
		items, _ := cache.Items()
		if !items[0].Purchased || items[0].PurchaserName != "Alice" || items[0].AmountContributed != 100 {
			t.Errorf("claim left item %+v", items[0])
		}
	})

	t.Run("snapshot shields against optimistic mutation", func(t *testing.T) {
		var cache Cache
		cache.Set([]models.RegistryItem{groupItem(0)})

		snapshot := cache.Snapshot()
		cache.ApplyContribution("item-1", "Bob", 50, now)
		if snapshot[0].AmountContributed != 0 || len(snapshot[0].Contributors) != 0 {
			t.Fatalf("snapshot mutated by optimistic apply: %+v", snapshot[0])
		}

		cache.Restore(snapshot)
		items, valid := cache.Items()
		if !valid {
			t.Fatal("restored cache should be valid")
		}
		if items[0].AmountContributed != 0 || len(items[0].Contributors) != 0 {
			t.Errorf("restore did not roll back: %+v", items[0])
		}
	})

	t.Run("unknown item is a no-op", func(t *testing.T) {
		var cache Cache
		cache.Set([]models.RegistryItem{groupItem(0)})
		cache.ApplyContribution("no-such-id", "Bob", 50, now)
		items, _ := cache.Items()
		if items[0].AmountContributed != 0 {
			t.Errorf("contribution bled into wrong item: %+v", items[0])
		}
	})
}

// registryStub serves a fixed item list and scripted contribution responses.
type registryStub struct {
	item               models.RegistryItem
	contributeStatus   int
	contributeMessage  string
	contributeStarted  chan struct{}
	contributeRelease  chan struct{}
	contributeAccepted bool
}

func (s *registryStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/registry/items", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.RegistryItem{s.item})
	})
	mux.HandleFunc("POST /api/registry/contribute", func(w http.ResponseWriter, r *http.Request) {
		if s.contributeStarted != nil {
			close(s.contributeStarted)
			<-s.contributeRelease
		}
		if s.contributeStatus != http.StatusOK {
			w.WriteHeader(s.contributeStatus)
			json.NewEncoder(w).Encode(map[string]string{"error": s.contributeMessage})
			return
		}
		s.contributeAccepted = true
		updated := s.item
		updated.AmountContributed += 50
		s.item = updated
		json.NewEncoder(w).Encode(updated)
	})
	return mux
}

func TestContributeRollsBackOnRejection(t *testing.T) {
	stub := &registryStub{
		item:              groupItem(0),
		contributeStatus:  http.StatusBadRequest,
		contributeMessage: "Contribution cannot be greater than the remaining amount.",
		contributeStarted: make(chan struct{}),
		contributeRelease: make(chan struct{}),
	}
	ts := httptest.NewServer(stub.handler())
	t.Cleanup(ts.Close)

	c := New(ts.URL, ts.Client())
	if _, err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- c.Contribute(context.Background(), "item-1", "Bob", 50)
	}()

	// While the request is in flight the optimistic total is visible.
	<-stub.contributeStarted
	items, valid := c.cache.Items()
	if !valid || items[0].AmountContributed != 50 {
		t.Errorf("in-flight total = %v (valid=%v), want optimistic 50", items[0].AmountContributed, valid)
	}
	close(stub.contributeRelease)

	err := <-done
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Message != stub.contributeMessage {
		t.Errorf("message = %q, want server rejection text", apiErr.Message)
	}

	// After settling, the visible total is back to server truth.
	items, err = c.Items(context.Background())
	if err != nil {
		t.Fatalf("items after rollback: %v", err)
	}
	if items[0].AmountContributed != 0 || len(items[0].Contributors) != 0 {
		t.Errorf("cache kept the refused contribution: %+v", items[0])
	}
}

func TestContributeRefreshesOnSuccess(t *testing.T) {
	stub := &registryStub{item: groupItem(0), contributeStatus: http.StatusOK}
	ts := httptest.NewServer(stub.handler())
	t.Cleanup(ts.Close)

	c := New(ts.URL, ts.Client())
	if err := c.Contribute(context.Background(), "item-1", "Bob", 50); err != nil {
		t.Fatalf("contribute: %v", err)
	}
	if !stub.contributeAccepted {
		t.Fatal("contribution never reached the server")
	}

	items, err := c.Items(context.Background())
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if items[0].AmountContributed != 50 {
		t.Errorf("amountContributed = %v, want server total 50", items[0].AmountContributed)
	}
}

func TestContributeInvalidatesWhenServerVanishes(t *testing.T) {
	stub := &registryStub{item: groupItem(0)}
	ts := httptest.NewServer(stub.handler())

	c := New(ts.URL, ts.Client())
	if _, err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	ts.Close()

	if err := c.Contribute(context.Background(), "item-1", "Bob", 50); err == nil {
		t.Fatal("contribute against a dead server should fail")
	}
	if _, valid := c.cache.Items(); valid {
		t.Error("cache should be invalidated when reconciliation is impossible")
	}
}

func TestDeleteItem(t *testing.T) {
	deleted := false
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/registry/items", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.RegistryItem{groupItem(0)})
	})
	mux.HandleFunc("DELETE /api/registry/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "item-1" {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Item not found"})
			return
		}
		deleted = true
		json.NewEncoder(w).Encode(map[string]string{"message": "Item deleted successfully"})
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	c := New(ts.URL, ts.Client())
	if _, err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if err := c.DeleteItem(context.Background(), "missing"); err == nil {
		t.Fatal("deleting a missing item should surface the server error")
	}
	if _, valid := c.cache.Items(); !valid {
		t.Error("failed delete should leave the cache intact")
	}

	if err := c.DeleteItem(context.Background(), "item-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatal("delete never reached the server")
	}
	if _, valid := c.cache.Items(); valid {
		t.Error("confirmed delete should invalidate the cache")
	}
}
