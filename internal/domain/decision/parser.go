// Package decision turns the free-form text returned by the AI loan officer
// into a structured, defaulted Decision.
//
// The AI is asked to answer with labelled fields:
//
//	Decision: APPROVED | REJECTED
//	Confidence Level: 0-100
//	Fairness Score: 0-100
//	Explanation: free text
//
// Every field is extracted independently. A missing or out-of-range field
// falls back to a conservative default; Parse never fails.
package decision

import (
	"regexp"
	"strconv"
	"strings"
)

type Prediction string

const (
	Approved Prediction = "Approved"
	Rejected Prediction = "Rejected"
)

func (p Prediction) Valid() bool { return p == Approved || p == Rejected }

const (
	DefaultPrediction    = Rejected
	DefaultConfidence    = 75
	DefaultFairnessScore = 85

	minScore = 0
	maxScore = 100
)

type Decision struct {
	Prediction    Prediction `json:"prediction"`
	Confidence    int        `json:"confidence"`
	FairnessScore int        `json:"fairness_score"`
	Explanation   string     `json:"explanation"`
}

// Labels may be wrapped in markdown emphasis ("**Decision:** APPROVED") and
// prefixed with list numbering ("1. Decision: ...").
const (
	labels  = `(?i:decision|confidence level|fairness score|explanation)`
	afterLb = `[*_]*\s*:[\s*_]*`
)

var (
	reDecision   = regexp.MustCompile(`(?i)decision` + afterLb + `(approved|rejected)\b`)
	reConfidence = regexp.MustCompile(`(?i)confidence level` + afterLb + `(\d+)`)
	reFairness   = regexp.MustCompile(`(?i)fairness score` + afterLb + `(\d+)`)
	// explanation runs until a blank line, the next known label or the end.
	reExplanation = regexp.MustCompile(`(?s)(?i:explanation)[*_]*\s*:[ \t*_]*(.+?)` +
		`(?:\n[ \t]*\n|\n[ \t]*(?:\d+\.[ \t]*)?[*_]*` + labels + `[*_]*\s*:|\z)`)
)

// Parse extracts a Decision from raw AI output.
func Parse(raw string) Decision {
	text := strings.ReplaceAll(raw, "\r\n", "\n")

	return Decision{
		Prediction:    parsePrediction(text),
		Confidence:    parseScore(reConfidence, text, DefaultConfidence),
		FairnessScore: parseScore(reFairness, text, DefaultFairnessScore),
		Explanation:   parseExplanation(text, raw),
	}
}

func parsePrediction(text string) Prediction {
	m := reDecision.FindStringSubmatch(text)
	if m == nil {
		return DefaultPrediction
	}
	if strings.EqualFold(m[1], "approved") {
		return Approved
	}
	return Rejected
}

// parseScore treats out-of-range values as absent instead of clamping them, so
// a malformed "1000" never turns into a reported 100.
func parseScore(re *regexp.Regexp, text string, def int) int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return def
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < minScore || n > maxScore {
		return def
	}
	return n
}

func parseExplanation(text, raw string) string {
	m := reExplanation.FindStringSubmatch(text)
	if m == nil {
		return raw
	}
	exp := strings.Trim(m[1], " \t\n*_")
	if exp == "" {
		return raw
	}
	return exp
}
