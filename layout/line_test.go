package layout

import (
	"testing"

	"github.com/veridoc/veridoc/model"
)

// makeWord creates a test word for layout tests
func makeWord(text string, conf float64, x, y, width, height int) model.Word {
	return model.NewWord(text, conf, x, y, width, height)
}

func TestGroupWords_Empty(t *testing.T) {
	lines := GroupWords(nil, DefaultLineConfig())

	if lines.Count() != 0 {
		t.Errorf("Expected 0 lines, got %d", lines.Count())
	}
}

func TestGroupWords_SingleLine(t *testing.T) {
	words := []model.Word{
		makeWord("Hello", 90, 100, 200, 40, 12),
		makeWord("World", 90, 150, 202, 45, 12),
	}

	lines := GroupWords(words, DefaultLineConfig())

	if lines.Count() != 1 {
		t.Fatalf("Expected 1 line, got %d", lines.Count())
	}

	lineWords := lines.Words(lines.Keys()[0])
	if len(lineWords) != 2 {
		t.Errorf("Expected 2 words on line, got %d", len(lineWords))
	}
}

func TestGroupWords_SeparateLines(t *testing.T) {
	words := []model.Word{
		makeWord("Line one", 90, 100, 100, 60, 12),
		makeWord("Line two", 90, 100, 150, 60, 12),
		makeWord("Line three", 90, 100, 200, 70, 12),
	}

	lines := GroupWords(words, DefaultLineConfig())

	if lines.Count() != 3 {
		t.Errorf("Expected 3 lines, got %d", lines.Count())
	}
}

func TestGroupWords_DropsLowConfidence(t *testing.T) {
	words := []model.Word{
		makeWord("keep", 90, 100, 100, 40, 12),
		makeWord("drop", 30, 150, 100, 40, 12),
		makeWord("boundary", 50, 200, 100, 40, 12), // exactly at the floor is kept
	}

	lines := GroupWords(words, DefaultLineConfig())

	if lines.Count() != 1 {
		t.Fatalf("Expected 1 line, got %d", lines.Count())
	}

	lineWords := lines.Words(lines.Keys()[0])
	if len(lineWords) != 2 {
		t.Errorf("Expected 2 words kept, got %d", len(lineWords))
	}
}

// A word within reach of two line keys joins the one created first, not the
// nearest one. This pins the greedy first-match behavior that downstream
// thresholds were tuned against.
func TestGroupWords_FirstMatchWins(t *testing.T) {
	words := []model.Word{
		makeWord("a", 90, 100, 100, 20, 12), // starts line key 100
		makeWord("b", 90, 130, 118, 20, 12), // starts line key 118
		makeWord("c", 90, 160, 110, 20, 12), // within 10 of both keys, nearer 118
	}

	lines := GroupWords(words, DefaultLineConfig())

	if lines.Count() != 2 {
		t.Fatalf("Expected 2 lines, got %d", lines.Count())
	}

	first := lines.Words(100)
	if len(first) != 2 {
		t.Fatalf("Expected word to join the first-created line, got %d words", len(first))
	}
	if first[1].Text != "c" {
		t.Errorf("Expected 'c' on line 100, got '%s'", first[1].Text)
	}
}

func TestGroupWords_KeyOrderIsScanOrder(t *testing.T) {
	// The lower-on-page word is scanned first and must keep the first key.
	words := []model.Word{
		makeWord("bottom", 90, 100, 500, 40, 12),
		makeWord("top", 90, 100, 100, 40, 12),
	}

	lines := GroupWords(words, DefaultLineConfig())

	keys := lines.Keys()
	if len(keys) != 2 || keys[0] != 500 || keys[1] != 100 {
		t.Errorf("Expected keys in scan order [500 100], got %v", keys)
	}
}

func TestLines_WordsSortedByX(t *testing.T) {
	words := []model.Word{
		makeWord("second", 90, 300, 100, 40, 12),
		makeWord("first", 90, 100, 100, 40, 12),
		makeWord("third", 90, 500, 100, 40, 12),
	}

	lines := GroupWords(words, DefaultLineConfig())
	lineWords := lines.Words(lines.Keys()[0])

	want := []string{"first", "second", "third"}
	for i, w := range lineWords {
		if w.Text != want[i] {
			t.Errorf("Position %d: expected '%s', got '%s'", i, want[i], w.Text)
		}
	}
}
