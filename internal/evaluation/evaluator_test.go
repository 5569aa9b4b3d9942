package evaluation

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeGenAI struct {
	response string
	err      error
}

func (f *fakeGenAI) Generate(ctx context.Context, prompt string) (string, error) {
	return f.response, f.err
}

const wellFormed = `{
	"score": 8,
	"feedback": "Solid answer with concrete examples.",
	"strengths": ["Knows INDEX-MATCH", "Clear structure"],
	"improvements": ["Mention error handling", "Cover volatile functions"]
}`

func TestEvaluateWellFormedResponse(t *testing.T) {
	e := NewEvaluator(&fakeGenAI{response: wellFormed})

	result := e.Evaluate(context.Background(), "How do you reconcile sheets?", "I use INDEX-MATCH.", "Financial Analyst")

	if result.Score != 8 {
		t.Errorf("score = %d, want 8", result.Score)
	}
	if result.Feedback != "Solid answer with concrete examples." {
		t.Errorf("unexpected feedback: %q", result.Feedback)
	}
	if len(result.Strengths) != 2 || len(result.Improvements) != 2 {
		t.Errorf("unexpected strengths/improvements: %v / %v", result.Strengths, result.Improvements)
	}
}

func TestEvaluateExtractsEmbeddedJSON(t *testing.T) {
	response := "Sure! Here is the evaluation you asked for:\n" + wellFormed + "\nHope this helps."
	e := NewEvaluator(&fakeGenAI{response: response})

	result := e.Evaluate(context.Background(), "Q", "A", "Data Analyst")
	if result.Score != 8 {
		t.Errorf("score = %d, want 8 from embedded JSON", result.Score)
	}
}

func TestEvaluateHeuristicFallback(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
	}{
		{"backend error", "", errors.New("timeout")},
		{"garbage text", "I cannot evaluate this answer, sorry.", nil},
		{"missing fields", `{"score": 7}`, nil},
		{"wrong types", `{"score": "seven", "feedback": "ok", "strengths": [], "improvements": []}`, nil},
		{"score out of range", `{"score": 15, "feedback": "ok", "strengths": ["a"], "improvements": ["b"]}`, nil},
	}

	question := "Explain how you would use Excel to analyze and visualize data trends over time."

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEvaluator(&fakeGenAI{response: tt.response, err: tt.err})

			result := e.Evaluate(context.Background(), question, "I would try my best.", "Analyst")

			if result.Score != 5 {
				t.Errorf("heuristic score = %d, want 5", result.Score)
			}
			if !strings.Contains(result.Feedback, question[:50]) {
				t.Errorf("feedback should reference the question prefix, got %q", result.Feedback)
			}
			if len(result.Strengths) != 2 {
				t.Errorf("expected 2 strengths, got %v", result.Strengths)
			}
			if len(result.Improvements) != 3 {
				t.Errorf("expected 3 improvements, got %v", result.Improvements)
			}
		})
	}
}

func TestEvaluateHeuristicAdvancedFeatures(t *testing.T) {
	e := NewEvaluator(&fakeGenAI{err: errors.New("unavailable")})

	tests := []struct {
		name   string
		answer string
		score  int
	}{
		{"vlookup", "I would use VLOOKUP across the sheets.", 6},
		{"pivot", "A Pivot table handles this.", 6},
		{"macro", "Record a MACRO for the repetitive part.", 6},
		{"plain answer", "I would sort the data manually.", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := e.Evaluate(context.Background(), "Q", tt.answer, "Analyst")
			if result.Score != tt.score {
				t.Errorf("score = %d, want %d", result.Score, tt.score)
			}
			if tt.score == 6 {
				last := result.Strengths[len(result.Strengths)-1]
				if last != "Mentioned advanced Excel features" {
					t.Errorf("expected advanced-features strength, got %q", last)
				}
			}
		})
	}
}

func TestEvaluateHeuristicFormulaStrength(t *testing.T) {
	e := NewEvaluator(&fakeGenAI{err: errors.New("unavailable")})

	result := e.Evaluate(context.Background(), "Q", "Use =SUMIF(A:A, criteria) here.", "Analyst")
	found := false
	for _, s := range result.Strengths {
		if s == "Used Excel formulas in explanation" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected formula strength, got %v", result.Strengths)
	}
}

func TestParseEvaluationScoreBounds(t *testing.T) {
	// Every outcome must keep score in [0,10]
	inputs := []string{
		wellFormed,
		`{"score": 0, "feedback": "weak", "strengths": ["tried"], "improvements": ["study"]}`,
		`{"score": 10, "feedback": "perfect", "strengths": ["all"], "improvements": ["none"]}`,
	}

	for _, in := range inputs {
		result, err := parseEvaluation(in)
		if err != nil {
			t.Fatalf("parseEvaluation(%q) failed: %v", in, err)
		}
		if result.Score < 0 || result.Score > 10 {
			t.Errorf("score %d out of range", result.Score)
		}
	}
}

func TestExtractBraceSpan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`, true},
		{"prose around object", `before {"a": 1} after`, `{"a": 1}`, true},
		{"nested braces", `x {"a": {"b": 2}} y`, `{"a": {"b": 2}}`, true},
		{"brace inside string", `{"a": "}"}`, `{"a": "}"}`, true},
		{"no object", "nothing here", "", false},
		{"unbalanced", `{"a": 1`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractBraceSpan(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("extractBraceSpan(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}
