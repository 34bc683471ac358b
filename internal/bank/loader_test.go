package bank

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validBankJSON = `[
	{"id": "t1", "text": "What is a goroutine?", "type": "technical", "difficulty": "easy", "topic": "concurrency"},
	{"id": "b1", "text": "Tell me about a conflict.", "type": "behavioral", "difficulty": "medium", "topic": "collaboration"},
	{"id": "s1", "text": "What are your salary expectations?", "type": "behavioral", "difficulty": "medium", "topic": "salary"}
]`

func TestParseValid(t *testing.T) {
	b, err := Parse([]byte(validBankJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}

	q, err := b.Get("t1")
	if err != nil {
		t.Fatalf("get t1: %v", err)
	}
	if q.Tier != TierEasy {
		t.Errorf("t1 tier = %v, want easy", q.Tier)
	}

	if got := len(b.SalaryQuestions()); got != 1 {
		t.Errorf("salary questions = %d, want 1", got)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"not json", `{{`},
		{"missing field", `[{"id": "t1", "text": "x", "type": "technical", "topic": "a"}]`},
		{"bad difficulty", `[{"id": "t1", "text": "x", "type": "technical", "difficulty": "extreme", "topic": "a"}]`},
		{"bad type", `[{"id": "t1", "text": "x", "type": "puzzle", "difficulty": "easy", "topic": "a"}]`},
		{"extra field", `[{"id": "t1", "text": "x", "type": "technical", "difficulty": "easy", "topic": "a", "answer": "42"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.json)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	if err := os.WriteFile(path, []byte(validBankJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "read bank file") {
		t.Errorf("unexpected error: %v", err)
	}
}
