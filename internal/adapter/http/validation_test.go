package http

import (
	"errors"
	"strings"
	"testing"
)

func TestHex32Validation(t *testing.T) {
	type P struct {
		LoanID string `json:"loan_id" validate:"hex32"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{LoanID: strings.Repeat("a", 32)}); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	for _, s := range []string{
		"",
		strings.Repeat("A", 32),
		"deadbeef",
		strings.Repeat("g", 32),
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x",
	} {
		err := cv.Validate(P{LoanID: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "loan_id", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, fe)
		}
	}
}

func TestDec2Validation(t *testing.T) {
	type P struct {
		Amount float64 `json:"loan_amount" validate:"dec2"`
	}
	cv := NewValidator()

	for _, v := range []float64{1.29, 2.00, 0.9, 25000, 1234.5} {
		if err := cv.Validate(P{Amount: v}); err != nil {
			t.Fatalf("expected dec2 OK for %v, got %v", v, err)
		}
	}
	for _, v := range []float64{1.234, 2.9999} {
		err := cv.Validate(P{Amount: v})
		if err == nil {
			t.Fatalf("expected dec2 error for %v", v)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "loan_amount", "at most 2 decimal places") {
			t.Fatalf("expected 'at most 2 decimal places' for %v, got %+v", v, fe)
		}
	}
}

func TestNotBlankValidation(t *testing.T) {
	type P struct {
		Comment string `json:"review_comment" validate:"notblank"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{Comment: "ok"}); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	err := cv.Validate(P{Comment: " \t "})
	if err == nil {
		t.Fatalf("expected notblank error")
	}
	if fe := ToFieldErrors(err); !containsFieldMsg(fe, "review_comment", "is required") {
		t.Fatalf("unexpected mapping: %+v", fe)
	}
}

func TestRequiredAndBoundsMapping(t *testing.T) {
	type P struct {
		Name     string  `json:"name" validate:"required"`
		Age      int     `json:"age" validate:"gte=18"`
		Score    int     `json:"credit_score" validate:"lte=900"`
		Amount   float64 `json:"loan_amount" validate:"gt=0"`
		Bank     string  `json:"bank" validate:"max=5"`
		Decision string  `json:"final_decision" validate:"oneof=a b"`
	}
	cv := NewValidator()

	err := cv.Validate(P{Age: 17, Score: 901, Amount: 0, Bank: "toolong", Decision: "c"})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)

	checks := map[string]string{
		"name":           "is required",
		"age":            "greater than or equal to 18",
		"credit_score":   "less than or equal to 900",
		"loan_amount":    "greater than 0",
		"bank":           "at most 5 characters",
		"final_decision": "one of: a b",
	}
	for field, msg := range checks {
		if !containsFieldMsg(fe, field, msg) {
			t.Fatalf("missing %q for %s: %+v", msg, field, fe)
		}
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	fe := ToFieldErrors(errors.New("boom"))
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
