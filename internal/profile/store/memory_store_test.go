package store

import (
	"context"
	"testing"

	"github.com/MorningZephyr/zhen-bot/internal/models"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "app", "zhen")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if ok {
		t.Fatal("expected absent profile")
	}

	p := models.NewProfile()
	p.Facts["favorite_color"] = models.FactRecord{Value: "blue"}
	p.Keys = append(p.Keys, "favorite_color")
	if err := s.Put(ctx, "app", "zhen", p); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, ok, err := s.Get(ctx, "app", "zhen")
	if err != nil || !ok {
		t.Fatalf("get after put: ok=%v err=%v", ok, err)
	}
	if got.Facts["favorite_color"].Value != "blue" {
		t.Errorf("unexpected profile: %+v", got)
	}
}

func TestMemoryStoreIsolatesCallers(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	p := models.NewProfile()
	p.Facts["k"] = models.FactRecord{Value: "v"}
	if err := s.Put(ctx, "app", "zhen", p); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	// Mutating what the caller handed in or got back must not leak into
	// the store.
	p.Facts["k"] = models.FactRecord{Value: "changed"}
	got, _, _ := s.Get(ctx, "app", "zhen")
	if got.Facts["k"].Value != "v" {
		t.Error("store shares state with the caller's put argument")
	}

	got.Facts["k"] = models.FactRecord{Value: "tampered"}
	again, _, _ := s.Get(ctx, "app", "zhen")
	if again.Facts["k"].Value != "v" {
		t.Error("store shares state with a previous get result")
	}
}

func TestMemoryStoreListSessions(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Put(ctx, "app_a", "zhen", models.NewProfile()); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := s.Put(ctx, "app_b", "zhen", models.NewProfile()); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := s.Put(ctx, "app_a", "alice", models.NewProfile()); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	keys, err := s.ListSessions(ctx, "zhen")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("expected 2 sessions for zhen, got %v", keys)
	}
}
