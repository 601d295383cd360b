package kb

import (
	"reflect"
	"testing"
)

func TestParseBasic(t *testing.T) {
	text := "Q: What is your name?\nA: I Know All\nQ: who made you\nA: A curious engineer"
	records := Parse(text)
	want := []Record{
		{Question: "what is your name?", Answer: "I Know All"},
		{Question: "who made you", Answer: "A curious engineer"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("Parse = %v, want %v", records, want)
	}
}

func TestParseMultiLine(t *testing.T) {
	text := "Q: what\nis love\nA: baby don't\nhurt me"
	records := Parse(text)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Question != "what is love" {
		t.Errorf("question = %q, want %q", records[0].Question, "what is love")
	}
	if records[0].Answer != "baby don't hurt me" {
		t.Errorf("answer = %q, want %q", records[0].Answer, "baby don't hurt me")
	}
}

func TestParseDanglingQuestion(t *testing.T) {
	records := Parse("Q: unanswered")
	if len(records) != 0 {
		t.Errorf("dangling question should be dropped, got %v", records)
	}
}

func TestParseQuestionOverwrite(t *testing.T) {
	text := "Q: first question\nQ: second question\nA: the answer"
	records := Parse(text)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Question != "second question" {
		t.Errorf("question = %q, want the later one", records[0].Question)
	}
}

func TestParseEmptyAnswer(t *testing.T) {
	text := "Q: silence?\nA:\n\nQ: next\nA: something"
	records := Parse(text)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Answer != "" {
		t.Errorf("expected empty answer to be emitted, got %q", records[0].Answer)
	}
}

func TestParseBlankLineFlush(t *testing.T) {
	text := "Q: what is\nthe question\n\nA: split by\na blank line"
	records := Parse(text)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Question != "what is the question" {
		t.Errorf("question = %q", records[0].Question)
	}
	if records[0].Answer != "split by a blank line" {
		t.Errorf("answer = %q", records[0].Answer)
	}
}

func TestParseCaseInsensitiveMarkers(t *testing.T) {
	records := Parse("q: lower marker\na: still works")
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Answer != "still works" {
		t.Errorf("answer = %q", records[0].Answer)
	}
}

func TestParseAnswerBeforeQuestion(t *testing.T) {
	records := Parse("A: orphan answer\nQ: real question\nA: real answer")
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Question != "real question" {
		t.Errorf("question = %q", records[0].Question)
	}
}

func TestParseStrayText(t *testing.T) {
	records := Parse("some preamble text\n\nQ: works anyway\nA: yes")
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, text := range []string{"", "\n\n\n", "   \n  \n"} {
		if got := Parse(text); len(got) != 0 {
			t.Errorf("Parse(%q) = %v, want no records", text, got)
		}
	}
}

func TestParseIdempotent(t *testing.T) {
	text := "Q: one\nA: 1\n\nQ: two\nwrapped\nA: 2\nalso wrapped\n\nQ: dangling"
	first := Parse(text)
	second := Parse(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("parsing is not idempotent: %v vs %v", first, second)
	}
}

func TestFingerprintStability(t *testing.T) {
	text := "Q: stable?\nA: yes"
	if Fingerprint(text) != Fingerprint(text) {
		t.Error("same text should fingerprint equal")
	}
	if Fingerprint(text) == Fingerprint(text+" ") {
		t.Error("different texts should fingerprint differently")
	}
	if len(Fingerprint("")) != 64 {
		t.Errorf("expected 64-char hex digest, got %d chars", len(Fingerprint("")))
	}
}
