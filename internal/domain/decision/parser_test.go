package decision

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_WellFormed(t *testing.T) {
	raw := "Decision: APPROVED\nConfidence Level: 92\nFairness Score: 88\nExplanation: Strong credit history."

	got := Parse(raw)

	assert.Equal(t, Decision{
		Prediction:    Approved,
		Confidence:    92,
		FairnessScore: 88,
		Explanation:   "Strong credit history.",
	}, got)
}

func TestParse_NoDecisionLabel_FallsBackToDefaults(t *testing.T) {
	for _, raw := range []string{
		"",
		"I cannot evaluate this application.",
		"The applicant looks fine to me.\n\nBest regards",
		"Decision pending further review",
	} {
		got := Parse(raw)
		assert.Equal(t, Rejected, got.Prediction, "raw=%q", raw)
		assert.Equal(t, DefaultConfidence, got.Confidence, "raw=%q", raw)
		assert.Equal(t, DefaultFairnessScore, got.FairnessScore, "raw=%q", raw)
		assert.Equal(t, raw, got.Explanation, "raw=%q", raw)
	}
}

func TestParse_NumberedPromptFormat(t *testing.T) {
	raw := `Here is my assessment.

1. Decision: REJECTED
2. Confidence Level: 81%
3. Fairness Score: 93
4. Explanation: The debt-to-income ratio is too high. Savings do not cover three months of installments.`

	got := Parse(raw)

	assert.Equal(t, Rejected, got.Prediction)
	assert.Equal(t, 81, got.Confidence)
	assert.Equal(t, 93, got.FairnessScore)
	assert.Equal(t, "The debt-to-income ratio is too high. Savings do not cover three months of installments.", got.Explanation)
}

func TestParse_MarkdownEmphasis(t *testing.T) {
	raw := "**Decision:** Approved\n**Confidence Level:** 70\n**Fairness Score**: 90\n**Explanation:** Stable income and low leverage."

	got := Parse(raw)

	assert.Equal(t, Approved, got.Prediction)
	assert.Equal(t, 70, got.Confidence)
	assert.Equal(t, 90, got.FairnessScore)
	assert.Equal(t, "Stable income and low leverage.", got.Explanation)
}

func TestParse_CaseInsensitiveLabels(t *testing.T) {
	got := Parse("decision: approved\nconfidence level: 60\nfairness score: 61\nexplanation: ok")

	assert.Equal(t, Approved, got.Prediction)
	assert.Equal(t, 60, got.Confidence)
	assert.Equal(t, 61, got.FairnessScore)
	assert.Equal(t, "ok", got.Explanation)
}

func TestParse_OutOfRangeScoresAreDefaulted(t *testing.T) {
	tests := []struct {
		confidence, fairness string
		wantConf, wantFair   int
	}{
		{"1000", "85", DefaultConfidence, 85},
		{"101", "150", DefaultConfidence, DefaultFairnessScore},
		{"100", "0", 100, 0},
		{"99999999999999999999999", "7", DefaultConfidence, 7},
		{"-5", "-1", DefaultConfidence, DefaultFairnessScore},
	}
	for _, tt := range tests {
		t.Run(tt.confidence+"/"+tt.fairness, func(t *testing.T) {
			raw := fmt.Sprintf("Decision: APPROVED\nConfidence Level: %s\nFairness Score: %s\nExplanation: x", tt.confidence, tt.fairness)
			got := Parse(raw)
			assert.Equal(t, tt.wantConf, got.Confidence)
			assert.Equal(t, tt.wantFair, got.FairnessScore)
			assert.Equal(t, Approved, got.Prediction)
		})
	}
}

func TestParse_FieldsDefaultIndependently(t *testing.T) {
	raw := "Decision: APPROVED\nExplanation: Good."

	got := Parse(raw)

	assert.Equal(t, Approved, got.Prediction)
	assert.Equal(t, DefaultConfidence, got.Confidence)
	assert.Equal(t, DefaultFairnessScore, got.FairnessScore)
	assert.Equal(t, "Good.", got.Explanation)
}

func TestParse_ExplanationStopsAtBlankLine(t *testing.T) {
	raw := "Decision: REJECTED\nExplanation: Too many open loans.\nIncome is irregular.\n\nDisclaimer: automated output."

	got := Parse(raw)

	assert.Equal(t, "Too many open loans.\nIncome is irregular.", got.Explanation)
}

func TestParse_ExplanationStopsAtNextLabel(t *testing.T) {
	raw := "Explanation: Solid savings.\nDecision: APPROVED\nConfidence Level: 88\nFairness Score: 91"

	got := Parse(raw)

	assert.Equal(t, "Solid savings.", got.Explanation)
	assert.Equal(t, Approved, got.Prediction)
	assert.Equal(t, 88, got.Confidence)
	assert.Equal(t, 91, got.FairnessScore)
}

func TestParse_EmptyExplanationFallsBackToRaw(t *testing.T) {
	raw := "Decision: REJECTED\nConfidence Level: 50\nFairness Score: 50\nExplanation:   "

	got := Parse(raw)

	assert.Equal(t, raw, got.Explanation)
}

func TestParse_UnknownDecisionValueIsRejected(t *testing.T) {
	got := Parse("Decision: MAYBE\nConfidence Level: 40")

	assert.Equal(t, Rejected, got.Prediction)
	assert.Equal(t, 40, got.Confidence)
}

func TestParse_CRLF(t *testing.T) {
	raw := "Decision: APPROVED\r\nConfidence Level: 77\r\nFairness Score: 80\r\nExplanation: Fine.\r\n"

	got := Parse(raw)

	assert.Equal(t, Approved, got.Prediction)
	assert.Equal(t, 77, got.Confidence)
	assert.Equal(t, 80, got.FairnessScore)
	assert.Equal(t, "Fine.", got.Explanation)
}

func TestParse_Deterministic(t *testing.T) {
	raw := "Decision: APPROVED\nConfidence Level: 92\nFairness Score: 88\nExplanation: Strong credit history."
	assert.Equal(t, Parse(raw), Parse(raw))
}

func TestPrediction_Valid(t *testing.T) {
	assert.True(t, Approved.Valid())
	assert.True(t, Rejected.Valid())
	assert.False(t, Prediction("APPROVED").Valid())
}
