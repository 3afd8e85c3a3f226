package loan

import (
	"fmt"
	"strings"
)

const SystemPrompt = "You are a fair and ethical loan officer AI. Provide objective financial assessments without bias."

// BuildPrompt renders the user message sent to the AI. The output depends
// only on in.
func BuildPrompt(in ApplicationInput) string {
	var b strings.Builder
	b.WriteString("You are an expert loan officer with deep knowledge of financial risk assessment. ")
	b.WriteString("Analyze this loan application and provide a fair, unbiased decision.\n\n")

	b.WriteString("Application Details:\n")
	fmt.Fprintf(&b, "- Name: %s\n", in.Name)
	fmt.Fprintf(&b, "- Age: %d\n", in.Age)
	fmt.Fprintf(&b, "- Gender: %s\n", in.Gender)
	fmt.Fprintf(&b, "- Annual Income: $%.2f\n", in.Income)
	fmt.Fprintf(&b, "- Credit Score: %d\n", in.CreditScore)
	fmt.Fprintf(&b, "- Loan Amount Requested: $%.2f\n", in.LoanAmount)
	fmt.Fprintf(&b, "- Loan Term: %d months\n", in.LoanTermMonths)
	fmt.Fprintf(&b, "- Loan Purpose: %s\n", in.LoanPurpose)
	fmt.Fprintf(&b, "- Employment Status: %s\n", in.EmploymentStatus)
	fmt.Fprintf(&b, "- Existing Loans: $%.2f\n", in.ExistingLoans)
	fmt.Fprintf(&b, "- Savings Balance: $%.2f\n", in.SavingsBalance)
	if in.Bank != "" {
		fmt.Fprintf(&b, "- Lending Bank: %s\n", in.Bank)
	}

	b.WriteString("\nProvide your analysis in the following format:\n")
	b.WriteString("1. Decision: APPROVED or REJECTED\n")
	b.WriteString("2. Confidence Level: (percentage from 0-100)\n")
	b.WriteString("3. Fairness Score: (percentage from 0-100, indicating how unbiased this decision is)\n")
	b.WriteString("4. Explanation: (2-3 sentences explaining the key factors in your decision)\n\n")

	b.WriteString("Important: Base your decision only on financial factors. Do not discriminate based on age or gender. ")
	b.WriteString("Focus on debt-to-income ratio, creditworthiness, savings, and loan terms.")
	return b.String()
}
