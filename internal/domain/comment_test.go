//nolint:testpackage // Testing internal domain helpers requires same package access
package domain

import (
	"testing"
)

func TestPartition_PreservesOrder(t *testing.T) {
	items := []ModerationItem{
		{ID: "c1", IsSpam: false},
		{ID: "c2", IsSpam: true},
		{ID: "c3", IsSpam: false},
		{ID: "c4", IsSpam: true},
		{ID: "c5", IsSpam: false},
	}

	queue := Partition(items)

	wantLegit := []string{"c1", "c3", "c5"}
	wantSpam := []string{"c2", "c4"}

	if len(queue.Legitimate) != len(wantLegit) {
		t.Fatalf("legitimate: got %d, want %d", len(queue.Legitimate), len(wantLegit))
	}
	for i, id := range wantLegit {
		if queue.Legitimate[i].ID != id {
			t.Errorf("legitimate[%d]: got %s, want %s", i, queue.Legitimate[i].ID, id)
		}
	}
	for i, id := range wantSpam {
		if queue.Spam[i].ID != id {
			t.Errorf("spam[%d]: got %s, want %s", i, queue.Spam[i].ID, id)
		}
	}
}

func TestPartition_Empty(t *testing.T) {
	queue := Partition(nil)

	if queue.Legitimate == nil || queue.Spam == nil {
		t.Error("partitions must be non-nil empty slices")
	}
	if len(queue.Legitimate) != 0 || len(queue.Spam) != 0 {
		t.Error("expected empty partitions")
	}
}

func TestBatchResult_Success(t *testing.T) {
	tests := []struct {
		name   string
		result BatchResult
		want   bool
	}{
		{"all succeeded", BatchResult{Successful: []string{"c1", "c2"}, TotalProcessed: 2}, true},
		{"partial", BatchResult{Successful: []string{"c1"}, Failed: []ItemFailure{{ID: "c2"}}, TotalProcessed: 2}, true},
		{"all failed", BatchResult{Failed: []ItemFailure{{ID: "c1"}}, TotalProcessed: 1}, false},
		{"empty", BatchResult{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Success(); got != tt.want {
				t.Errorf("Success(): got %v, want %v", got, tt.want)
			}
		})
	}
}
