package question

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/terra-clan/interview-engine/internal/models"
)

// Bank names. Every interview resolves to exactly one of these.
const (
	BankFinancial = "financial-analyst"
	BankData      = "data-analyst"
	BankDefault   = "default"
)

// Banks holds the fallback question banks, each exactly three questions.
// The built-in defaults cover all banks, so selection never comes up empty
// even when no bank file is configured.
type Banks struct {
	mu    sync.RWMutex
	banks map[string][]string
}

type bankFile struct {
	Banks map[string][]string `yaml:"banks"`
}

// DefaultBanks returns the built-in question banks
func DefaultBanks() *Banks {
	return &Banks{
		banks: map[string][]string{
			BankFinancial: {
				"Explain how you would use VLOOKUP and INDEX-MATCH to reconcile financial data from multiple sheets.",
				"How would you create a dynamic dashboard for monthly financial reporting using pivot tables?",
				"Describe your approach to creating a budget variance analysis template in Excel.",
			},
			BankData: {
				"How would you clean and deduplicate a large dataset using Excel functions?",
				"Explain your process for creating a dynamic dashboard with slicers and pivot tables.",
				"Describe how you would use Power Query to automate data transformation tasks.",
			},
			BankDefault: {
				"Explain how you would use Excel to analyze and visualize data trends.",
				"Describe your experience with pivot tables and VLOOKUP functions.",
				"How would you automate repetitive tasks in Excel using macros or VBA?",
			},
		},
	}
}

// LoadFromFile overrides banks from a YAML file. Only the three known bank
// names are accepted; each override must carry exactly three questions.
func (b *Banks) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read bank file: %w", err)
	}

	var file bankFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	loaded := 0
	for name, questions := range file.Banks {
		if name != BankFinancial && name != BankData && name != BankDefault {
			slog.Warn("skipping unknown question bank", "bank", name)
			continue
		}

		if err := validateBank(questions); err != nil {
			return fmt.Errorf("bank %q: %w", name, err)
		}

		b.mu.Lock()
		b.banks[name] = questions
		b.mu.Unlock()
		loaded++
	}

	slog.Info("question banks loaded", "file", path, "count", loaded)
	return nil
}

func validateBank(questions []string) error {
	if len(questions) != models.QuestionCount {
		return fmt.Errorf("expected exactly %d questions, got %d", models.QuestionCount, len(questions))
	}
	for i, q := range questions {
		if strings.TrimSpace(q) == "" {
			return fmt.Errorf("question %d is empty", i+1)
		}
	}
	return nil
}

// Classify maps a job title to a bank name, case-insensitively
func Classify(jobTitle string) string {
	title := strings.ToLower(jobTitle)
	switch {
	case strings.Contains(title, "financial") || strings.Contains(title, "finance"):
		return BankFinancial
	case strings.Contains(title, "data") || strings.Contains(title, "analytics"):
		return BankData
	default:
		return BankDefault
	}
}

// Select returns the fallback question for a job title and 1-based
// question number.
func (b *Banks) Select(jobTitle string, questionNumber int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	bank := b.banks[Classify(jobTitle)]
	return bank[(questionNumber-1)%len(bank)]
}
