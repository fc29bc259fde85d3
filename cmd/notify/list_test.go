package notify

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/glowandgrind/site-api/internal/repo"
)

func TestRenderDeliveries(t *testing.T) {
	var buf bytes.Buffer
	renderDeliveries(&buf, []repo.Delivery{{
		SubmissionID: uuid.MustParse("0192f1c4-0000-7000-8000-000000000001"),
		Role:         repo.RoleSubmitter,
		Recipient:    "jane@example.com",
		Status:       repo.DeliveryFailed,
		Attempts:     2,
		LastError:    "mailbox unavailable",
		CreatedAt:    time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}})

	out := buf.String()
	for _, want := range []string{"RECIPIENT", "jane@example.com", "failed", "mailbox unavailable"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Errorf("truncate() = %q, want abcd…", got)
	}
}
