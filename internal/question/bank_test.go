package question

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		jobTitle string
		want     string
	}{
		{"Senior Financial Analyst", BankFinancial},
		{"finance manager", BankFinancial},
		{"Data Engineer", BankData},
		{"Analytics Lead", BankData},
		{"Graphic Designer", BankDefault},
		{"", BankDefault},
	}

	for _, tt := range tests {
		t.Run(tt.jobTitle, func(t *testing.T) {
			if got := Classify(tt.jobTitle); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.jobTitle, got, tt.want)
			}
		})
	}
}

func TestSelectDeterministic(t *testing.T) {
	banks := DefaultBanks()

	for n := 1; n <= 3; n++ {
		first := banks.Select("Data Analyst", n)
		if first == "" {
			t.Fatalf("Select returned empty question for number %d", n)
		}
		if second := banks.Select("Data Analyst", n); second != first {
			t.Errorf("Select not deterministic for number %d", n)
		}
	}

	// Different banks yield different question sets
	if banks.Select("Financial Analyst", 1) == banks.Select("Graphic Designer", 1) {
		t.Error("financial and default banks should differ")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid override", func(t *testing.T) {
		path := filepath.Join(dir, "banks.yaml")
		content := `banks:
  default:
    - "Question one about spreadsheets?"
    - "Question two about spreadsheets?"
    - "Question three about spreadsheets?"
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		banks := DefaultBanks()
		if err := banks.LoadFromFile(path); err != nil {
			t.Fatalf("LoadFromFile failed: %v", err)
		}

		if got := banks.Select("Graphic Designer", 1); got != "Question one about spreadsheets?" {
			t.Errorf("override not applied, got %q", got)
		}
		// Unrelated banks keep their defaults
		if got := banks.Select("Data Analyst", 1); got == "Question one about spreadsheets?" {
			t.Error("data bank should not be overridden")
		}
	})

	t.Run("wrong question count", func(t *testing.T) {
		path := filepath.Join(dir, "short.yaml")
		content := `banks:
  default:
    - "Only one question?"
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		banks := DefaultBanks()
		if err := banks.LoadFromFile(path); err == nil {
			t.Error("expected error for bank with one question")
		}
	})

	t.Run("unknown bank skipped", func(t *testing.T) {
		path := filepath.Join(dir, "unknown.yaml")
		content := `banks:
  project-manager:
    - "a?"
    - "b?"
    - "c?"
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		banks := DefaultBanks()
		if err := banks.LoadFromFile(path); err != nil {
			t.Fatalf("unknown banks should be skipped, got error: %v", err)
		}
	})
}
