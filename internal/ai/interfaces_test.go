package ai

import "testing"

func TestEmbeddingText(t *testing.T) {
	blurb := "Use when drafting outreach."
	empty := ""
	blank := "   "

	tests := []struct {
		name     string
		useCases *string
		want     string
	}{
		{name: "with use cases", useCases: &blurb, want: "Cold Email Write a cold email Use when drafting outreach."},
		{name: "nil use cases", useCases: nil, want: "Cold Email Write a cold email"},
		{name: "empty use cases", useCases: &empty, want: "Cold Email Write a cold email"},
		{name: "blank use cases", useCases: &blank, want: "Cold Email Write a cold email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EmbeddingText("Cold Email", "Write a cold email", tt.useCases)
			if got != tt.want {
				t.Errorf("EmbeddingText() = %q, want %q", got, tt.want)
			}
		})
	}
}
