package event

import "testing"

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{StatusDraft, "draft"},
		{StatusPendingPayment, "pending_payment"},
		{StatusPublished, "published"},
		{StatusInProgress, "in_progress"},
		{StatusFinished, "finished"},
		{StatusCancelled, "cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.status.String(); got != tt.expected {
				t.Errorf("String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStatus_IsValid(t *testing.T) {
	for _, status := range AllStatuses() {
		if !status.IsValid() {
			t.Errorf("IsValid() = false for %s, want true", status)
		}
	}

	invalidStatuses := []Status{
		"invalid",
		"",
		"DRAFT",
		"archived",
	}

	for _, status := range invalidStatuses {
		if status.IsValid() {
			t.Errorf("IsValid() = true for %q, want false", status)
		}
	}
}

func TestStatus_IsFinal(t *testing.T) {
	tests := []struct {
		status Status
		final  bool
	}{
		{StatusDraft, false},
		{StatusPendingPayment, false},
		{StatusPublished, false},
		{StatusInProgress, false},
		{StatusFinished, true},
		{StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			if got := tt.status.IsFinal(); got != tt.final {
				t.Errorf("IsFinal() = %v, want %v", got, tt.final)
			}
		})
	}
}

func TestStatus_IsActive(t *testing.T) {
	tests := []struct {
		status Status
		active bool
	}{
		{StatusDraft, false},
		{StatusPendingPayment, true},
		{StatusPublished, true},
		{StatusInProgress, true},
		{StatusFinished, false},
		{StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			if got := tt.status.IsActive(); got != tt.active {
				t.Errorf("IsActive() = %v, want %v", got, tt.active)
			}
		})
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		// From draft
		{StatusDraft, StatusPendingPayment, true},
		{StatusDraft, StatusCancelled, true},
		{StatusDraft, StatusPublished, false},
		{StatusDraft, StatusInProgress, false},
		{StatusDraft, StatusFinished, false},
		{StatusDraft, StatusDraft, false},

		// From pending_payment
		{StatusPendingPayment, StatusPublished, true},
		{StatusPendingPayment, StatusCancelled, true},
		{StatusPendingPayment, StatusDraft, false},
		{StatusPendingPayment, StatusInProgress, false},

		// From published
		{StatusPublished, StatusInProgress, true},
		{StatusPublished, StatusCancelled, true},
		{StatusPublished, StatusFinished, false},
		{StatusPublished, StatusDraft, false},

		// From in_progress
		{StatusInProgress, StatusFinished, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusPublished, false},

		// Terminal states allow nothing
		{StatusFinished, StatusDraft, false},
		{StatusFinished, StatusCancelled, false},
		{StatusCancelled, StatusDraft, false},
		{StatusCancelled, StatusCancelled, false},
	}

	for _, tt := range tests {
		name := tt.from.String() + "->" + tt.to.String()
		t.Run(name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
				t.Errorf("CanTransitionTo() = %v, want %v", got, tt.allowed)
			}
		})
	}
}

func TestStatus_NextValidStatuses(t *testing.T) {
	tests := []struct {
		status Status
		want   []Status
	}{
		{StatusDraft, []Status{StatusPendingPayment, StatusCancelled}},
		{StatusPendingPayment, []Status{StatusPublished, StatusCancelled}},
		{StatusPublished, []Status{StatusInProgress, StatusCancelled}},
		{StatusInProgress, []Status{StatusFinished, StatusCancelled}},
		{StatusFinished, []Status{}},
		{StatusCancelled, []Status{}},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			got := tt.status.NextValidStatuses()
			if len(got) != len(tt.want) {
				t.Fatalf("NextValidStatuses() = %v, want %v", got, tt.want)
			}
			for i, s := range got {
				if s != tt.want[i] {
					t.Errorf("NextValidStatuses()[%d] = %v, want %v", i, s, tt.want[i])
				}
			}
		})
	}

	if got := Status("bogus").NextValidStatuses(); got != nil {
		t.Errorf("NextValidStatuses() for unknown status = %v, want nil", got)
	}
}

func TestParseStatus(t *testing.T) {
	for _, status := range AllStatuses() {
		parsed, err := ParseStatus(status.String())
		if err != nil {
			t.Errorf("ParseStatus(%q) returned error: %v", status, err)
		}
		if parsed != status {
			t.Errorf("ParseStatus(%q) = %v, want %v", status, parsed, status)
		}
	}

	if _, err := ParseStatus("bogus"); err == nil {
		t.Error("ParseStatus should reject unknown statuses")
	}
	if _, err := ParseStatus(""); err == nil {
		t.Error("ParseStatus should reject the empty string")
	}
}

func TestAllStatuses(t *testing.T) {
	statuses := AllStatuses()
	if len(statuses) != 6 {
		t.Errorf("AllStatuses() returned %d statuses, want 6", len(statuses))
	}

	seen := make(map[Status]bool)
	for _, s := range statuses {
		if seen[s] {
			t.Errorf("AllStatuses() contains duplicate %s", s)
		}
		seen[s] = true
	}
}

// Every status named by the transition table must be a valid status, and
// terminal statuses must have no outgoing transitions.
func TestTransitionTableIntegrity(t *testing.T) {
	for from, targets := range validTransitions() {
		if !from.IsValid() {
			t.Errorf("transition table contains invalid source %q", from)
		}
		for _, to := range targets {
			if !to.IsValid() {
				t.Errorf("transition table contains invalid target %q", to)
			}
		}
		if from.IsFinal() && len(targets) != 0 {
			t.Errorf("terminal status %s has outgoing transitions %v", from, targets)
		}
	}

	for _, status := range AllStatuses() {
		if _, ok := validTransitions()[status]; !ok {
			t.Errorf("status %s missing from transition table", status)
		}
	}
}
