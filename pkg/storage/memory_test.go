package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryProfileLookup(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	created, err := m.CreateProfile(ctx, "laptop", "key-1")
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	got, err := m.GetProfileByAPIKey(ctx, "key-1")
	if err != nil {
		t.Fatalf("GetProfileByAPIKey: %v", err)
	}
	if got.ID != created.ID || got.Name != "laptop" {
		t.Fatalf("unexpected profile %+v", got)
	}

	if _, err := m.GetProfileByAPIKey(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryItemsAreScopedPerProfile(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	a, _ := m.CreateProfile(ctx, "a", "ka")
	b, _ := m.CreateProfile(ctx, "b", "kb")

	if err := m.Items(a.ID).SetItem(ctx, "shortcutAmount", "3"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	if _, ok, _ := m.Items(b.ID).GetItem(ctx, "shortcutAmount"); ok {
		t.Fatalf("profile b must not see profile a's keys")
	}
	v, ok, _ := m.Items(a.ID).GetItem(ctx, "shortcutAmount")
	if !ok || v != "3" {
		t.Fatalf("got %q, %v", v, ok)
	}
}

func TestMemoryUpdateRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	p, _ := m.CreateProfile(ctx, "a", "ka")
	kv := m.Items(p.ID)
	_ = kv.SetItem(ctx, "x", "1")

	boom := errors.New("boom")
	err := Update(ctx, kv, func(tx KeyValue) error {
		_ = tx.SetItem(ctx, "x", "2")
		_ = tx.RemoveItem(ctx, "x")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if v, _, _ := kv.GetItem(ctx, "x"); v != "1" {
		t.Fatalf("expected rollback to keep x=1, got %q", v)
	}

	err = Update(ctx, kv, func(tx KeyValue) error {
		return tx.SetItem(ctx, "x", "2")
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if v, _, _ := kv.GetItem(ctx, "x"); v != "2" {
		t.Fatalf("expected commit x=2, got %q", v)
	}
}

func TestUpdateFallsBackWithoutTransactions(t *testing.T) {
	ctx := context.Background()
	kv := NewMapKV()
	if err := Update(ctx, kv, func(tx KeyValue) error { return tx.SetItem(ctx, "k", "v") }); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if kv.Data["k"] != "v" {
		t.Fatalf("write not applied")
	}
}
