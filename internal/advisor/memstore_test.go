package advisor

import (
	"context"
	"fmt"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.AppendMessage(ctx, 7, "user", "wheat outlook?"); err != nil {
		t.Fatalf("AppendMessage returned error: %v", err)
	}
	if err := store.AppendMessage(ctx, 7, "assistant", "stable"); err != nil {
		t.Fatalf("AppendMessage returned error: %v", err)
	}

	msgs, err := store.RecentMessages(ctx, 7, 10)
	if err != nil {
		t.Fatalf("RecentMessages returned error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != "user" || msgs[1].Role != "assistant" {
		t.Errorf("messages out of order: %q, %q", msgs[0].Role, msgs[1].Role)
	}
	if msgs[0].CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestMemoryStoreLimit(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		store.AppendMessage(ctx, 1, "user", fmt.Sprintf("message %d", i))
	}

	msgs, err := store.RecentMessages(ctx, 1, 2)
	if err != nil {
		t.Fatalf("RecentMessages returned error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[1].Content != "message 4" {
		t.Errorf("expected newest message last, got %q", msgs[1].Content)
	}
}

func TestMemoryStoreIsolatesChats(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	store.AppendMessage(ctx, 1, "user", "corn")
	store.AppendMessage(ctx, 2, "user", "rice")

	msgs, _ := store.RecentMessages(ctx, 1, 10)
	if len(msgs) != 1 || msgs[0].Content != "corn" {
		t.Fatalf("chat 1 contaminated: %+v", msgs)
	}
}
