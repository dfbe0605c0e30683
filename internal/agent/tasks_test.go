package agent

import "testing"

func TestLookup(t *testing.T) {
	task, ok := Lookup("generate_diagram")
	if !ok {
		t.Fatal("expected generate_diagram to exist")
	}
	if task.Prompt == "" {
		t.Error("task prompt must not be empty")
	}

	if _, ok := Lookup("nope"); ok {
		t.Error("unknown IDs must not resolve")
	}
}

func TestPredefinedTasks_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, task := range PredefinedTasks {
		if seen[task.ID] {
			t.Errorf("duplicate task ID %q", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain answer", "plain answer"},
		{"<thinking>hmm</thinking>answer", "answer"},
		{"a<thinking>1</thinking>b<thinking>2</thinking>c", "abc"},
		{"  padded  ", "padded"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanResponse(tt.in); got != tt.want {
			t.Errorf("CleanResponse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
