package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	topics, err := Topics()
	if err != nil {
		t.Fatalf("Topics() error = %v", err)
	}
	want := []string{"loans", "projection", "reconciliation", "recurring"}
	if len(topics) != len(want) {
		t.Fatalf("Topics() = %v, want %v", topics, want)
	}
	for i := range want {
		if topics[i] != want[i] {
			t.Errorf("Topics()[%d] = %q, want %q", i, topics[i], want[i])
		}
	}
}

func TestTopic(t *testing.T) {
	content, err := Topic("reconciliation")
	if err != nil {
		t.Fatalf("Topic() error = %v", err)
	}
	if !strings.HasPrefix(content, "# Reconciliation") {
		t.Errorf("Topic(reconciliation) starts with %q", content[:min(40, len(content))])
	}

	if _, err := Topic("nope"); err == nil {
		t.Error("Topic(nope) did not fail")
	}
}

func TestTopic_Star(t *testing.T) {
	all, err := Topic("*")
	if err != nil {
		t.Fatalf("Topic(*) error = %v", err)
	}
	for _, heading := range []string{"# Loans", "# Projection", "# Reconciliation", "# Recurring rules"} {
		if !strings.Contains(all, heading) {
			t.Errorf("Topic(*) missing %q", heading)
		}
	}
	// The readme is the landing page, not a topic.
	if strings.Contains(all, "# fin\n") {
		t.Error("Topic(*) includes the readme")
	}
}
