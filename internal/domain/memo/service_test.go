package memo

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSendAndFeed(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())
	clock := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	send := func(in Input) Memo {
		t.Helper()
		m, err := svc.Send(ctx, in)
		if err != nil {
			t.Fatalf("send %q: %v", in.Title, err)
		}
		return m
	}
	all := send(Input{Title: "Town hall", Content: "Friday 4pm", SentToAll: true, Priority: "high"})
	direct := send(Input{Title: "1:1", Content: "Let's sync", RecipientEmployeeIDs: []string{" E1 ", "E1"}})
	send(Input{Title: "Ops only", Content: "Rota", RecipientDepartments: []string{"Operations"}})
	send(Input{Title: "Draft", Content: "WIP", SentToAll: true, Status: StatusDraft})

	if all.Priority != PriorityHigh || direct.Priority != PriorityMedium {
		t.Fatalf("unexpected priorities %s %s", all.Priority, direct.Priority)
	}
	if len(direct.RecipientEmployeeIDs) != 1 {
		t.Fatalf("expected recipients cleaned, got %v", direct.RecipientEmployeeIDs)
	}

	feed, err := svc.Feed(ctx, Audience{EmployeeID: "E1", Department: "finance"})
	if err != nil {
		t.Fatal(err)
	}
	if len(feed) != 2 || feed[0].Title != "1:1" || feed[1].Title != "Town hall" {
		t.Fatalf("unexpected feed %+v", feed)
	}

	feed, _ = svc.Feed(ctx, Audience{EmployeeID: "E2", Department: "operations"})
	if len(feed) != 2 || feed[0].Title != "Ops only" {
		t.Fatalf("department memos must reach case-insensitively, got %+v", feed)
	}
}

func TestSendRejectsUnaddressedMemo(t *testing.T) {
	svc := NewService(NewMemoryStore())
	if _, err := svc.Send(context.Background(), Input{Title: "x", Content: "y"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
