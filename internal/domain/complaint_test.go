package domain

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		current ComplaintStatus
		next    ComplaintStatus
		want    bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusResolved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusPending, false},
		{StatusInProgress, StatusResolved, true},
		{StatusInProgress, StatusRejected, true},
		{StatusInProgress, StatusPending, false},
		{StatusResolved, StatusPending, false},
		{StatusResolved, StatusInProgress, false},
		{StatusResolved, StatusRejected, false},
		{StatusRejected, StatusPending, false},
		{StatusRejected, StatusResolved, false},
		{ComplaintStatus("UNKNOWN"), StatusPending, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.current, tt.next); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.current, tt.next, got, tt.want)
		}
	}
}

func TestComplaintStatusValid(t *testing.T) {
	for _, s := range []ComplaintStatus{StatusPending, StatusInProgress, StatusResolved, StatusRejected} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if ComplaintStatus("DONE").Valid() {
		t.Error("DONE should not be valid")
	}
}

func TestComplaintPriorityValid(t *testing.T) {
	for _, p := range []ComplaintPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent} {
		if !p.Valid() {
			t.Errorf("%s should be valid", p)
		}
	}
	if ComplaintPriority("CRITICAL").Valid() {
		t.Error("CRITICAL should not be valid")
	}
}
