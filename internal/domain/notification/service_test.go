package notification

import (
	"context"
	"strings"
	"testing"

	"github.com/swasthtrack/clinic/internal/platform/idgen"
)

func newTestService() *Service {
	return NewService(NewRepoMem(), idgen.NewFrom(1))
}

func TestNotify(t *testing.T) {
	svc := newTestService()
	n, err := svc.Notify(context.Background(), Notification{
		Recipient: "John Doe",
		Type:      TypeAppointment,
		Title:     "Appointment Confirmed",
		Message:   "Your appointment on Feb 10 is confirmed.",
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if !strings.HasPrefix(n.ID, "NTF") {
		t.Errorf("id = %q, want NTF prefix", n.ID)
	}
	if n.Read {
		t.Error("new notifications must start unread")
	}
	if n.Priority != PriorityMedium {
		t.Errorf("priority = %q, want default medium", n.Priority)
	}
	if n.Timestamp == "" {
		t.Error("timestamp should be stamped")
	}
}

func TestNotifyValidation(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Notify(context.Background(), Notification{Title: "Hi"}); err == nil {
		t.Error("missing recipient should fail")
	}
	if _, err := svc.Notify(context.Background(), Notification{Recipient: "John Doe"}); err == nil {
		t.Error("missing title should fail")
	}
	if _, err := svc.Notify(context.Background(), Notification{Recipient: "John Doe", Title: "Hi", Type: "carrier-pigeon"}); err == nil {
		t.Error("bad type should fail")
	}
	if _, err := svc.Notify(context.Background(), Notification{Recipient: "John Doe", Title: "Hi", Priority: "urgent-ish"}); err == nil {
		t.Error("bad priority should fail")
	}
}

func TestFeedIsScopedAndNewestFirst(t *testing.T) {
	svc := newTestService()
	first, _ := svc.Notify(context.Background(), Notification{Recipient: "John Doe", Title: "First"})
	svc.Notify(context.Background(), Notification{Recipient: "Mary Johnson", Title: "Other"})
	second, _ := svc.Notify(context.Background(), Notification{Recipient: "John Doe", Title: "Second"})

	rows, err := svc.ListForRecipient(context.Background(), "John Doe")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	if rows[0].ID != second.ID || rows[1].ID != first.ID {
		t.Errorf("order = [%s %s], want newest first", rows[0].ID, rows[1].ID)
	}
}

func TestMarkReadAndUnreadCount(t *testing.T) {
	svc := newTestService()
	n1, _ := svc.Notify(context.Background(), Notification{Recipient: "John Doe", Title: "A"})
	svc.Notify(context.Background(), Notification{Recipient: "John Doe", Title: "B"})
	svc.Notify(context.Background(), Notification{Recipient: "Mary Johnson", Title: "C"})

	count, err := svc.UnreadCount(context.Background(), "John Doe")
	if err != nil || count != 2 {
		t.Fatalf("unread = %d (%v), want 2", count, err)
	}

	read, err := svc.MarkRead(context.Background(), n1.ID)
	if err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if !read.Read {
		t.Error("notification should be read")
	}

	count, _ = svc.UnreadCount(context.Background(), "John Doe")
	if count != 1 {
		t.Errorf("unread = %d, want 1", count)
	}
}

func TestMarkAllRead(t *testing.T) {
	svc := newTestService()
	svc.Notify(context.Background(), Notification{Recipient: "John Doe", Title: "A"})
	svc.Notify(context.Background(), Notification{Recipient: "John Doe", Title: "B"})
	svc.Notify(context.Background(), Notification{Recipient: "Mary Johnson", Title: "C"})

	updated, err := svc.MarkAllRead(context.Background(), "John Doe")
	if err != nil {
		t.Fatalf("mark all read: %v", err)
	}
	if updated != 2 {
		t.Errorf("updated = %d, want 2", updated)
	}

	count, _ := svc.UnreadCount(context.Background(), "John Doe")
	if count != 0 {
		t.Errorf("unread = %d, want 0", count)
	}
	count, _ = svc.UnreadCount(context.Background(), "Mary Johnson")
	if count != 1 {
		t.Errorf("other recipient unread = %d, want untouched 1", count)
	}
}

func TestDelete(t *testing.T) {
	svc := newTestService()
	n, _ := svc.Notify(context.Background(), Notification{Recipient: "John Doe", Title: "A"})
	if err := svc.Delete(context.Background(), n.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), n.ID); err == nil {
		t.Error("deleting twice should fail")
	}
}
