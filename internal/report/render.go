package report

import (
	"fmt"
	"io"
	"strings"
)

// WriteText renders the report as the plain-text artifact handed to the
// report sink (a file, stdout).
func (r *FinalReport) WriteText(w io.Writer) error {
	var b strings.Builder

	divider := strings.Repeat("=", 50)
	b.WriteString(divider + "\n")
	b.WriteString("MOCK INTERVIEW REPORT\n")
	b.WriteString(divider + "\n\n")

	b.WriteString(fmt.Sprintf("Role: %s (%s)\n", r.Role, r.Seniority))
	if r.Company != "" {
		b.WriteString(fmt.Sprintf("Company: %s\n", r.Company))
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Questions answered: %d (%d technical, %d behavioral)\n",
		r.TotalQuestions, r.TechnicalCount, r.BehavioralCount))
	if r.SkippedTurns > 0 {
		b.WriteString(fmt.Sprintf("Skipped turns: %d\n", r.SkippedTurns))
	}
	b.WriteString(fmt.Sprintf("Average score: %.2f / 5\n", r.AverageScore))
	b.WriteString(fmt.Sprintf("Overall confidence: %s\n", r.OverallConfidence))
	b.WriteString(fmt.Sprintf("STAR coverage: %.0f%%\n\n", r.STARCoverage*100))

	writeList := func(title string, items []string) {
		b.WriteString(title + ":\n")
		if len(items) == 0 {
			b.WriteString("  - (none)\n")
		}
		for _, item := range items {
			b.WriteString("  - " + item + "\n")
		}
		b.WriteString("\n")
	}

	writeList("Strengths", r.Strengths)
	writeList("Areas to improve", r.ImprovementAreas)
	writeList("Next steps", r.NextSteps)

	b.WriteString("Salary negotiation: " + r.NegotiationOutcome + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
