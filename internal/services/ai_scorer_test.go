package services

import "testing"

func TestParseReviewResponseHandlesMarkdownFencing(t *testing.T) {
	response := "Here is my review:\n```json\n{\"score\": 7.5, \"feedback\": \"solid\"}\n```"

	result, err := parseReviewResponse(response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 7.5 || result.Feedback != "solid" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestParseReviewResponseRejectsGarbage(t *testing.T) {
	if _, err := parseReviewResponse("I cannot grade this."); err == nil {
		t.Fatal("expected an error for a response with no JSON")
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		score, max, want float64
	}{
		{-1, 10, 0},
		{5, 10, 5},
		{15, 10, 10},
	}
	for _, tt := range tests {
		if got := clampScore(tt.score, tt.max); got != tt.want {
			t.Fatalf("clampScore(%.1f, %.1f) = %.1f, want %.1f", tt.score, tt.max, got, tt.want)
		}
	}
}

func TestChunkTextSplitsLongDocuments(t *testing.T) {
	chunker := NewTextChunker()

	text := "First paragraph about grading criteria.\n\nSecond paragraph about scoring bands.\n\nThird paragraph about edge cases."
	chunks := chunker.ChunkText(text, 60, 10)
	if len(chunks) < 2 {
		t.Fatalf("expected the text to be split, got %d chunk(s)", len(chunks))
	}

	short := chunker.ChunkText("tiny", 1000, 100)
	if len(short) != 1 || short[0] != "tiny" {
		t.Fatalf("expected a single chunk, got %v", short)
	}
}
