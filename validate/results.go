package validate

import (
	"fmt"
	"strings"
)

// ConditionStatus is the outcome of one validity condition.
type ConditionStatus string

const (
	StatusPass ConditionStatus = "PASS"

	StatusFail ConditionStatus = "FAIL"

	// StatusUnknownPresent is a passing status with attached warnings:
	// the condition holds, but only because explicit UNKNOWN gaps were
	// accepted as such. It is never upgraded to FAIL.
	StatusUnknownPresent ConditionStatus = "UNKNOWN_PRESENT"
)

// ConditionResult is the outcome of checking one validity condition.
type ConditionResult struct {
	Ordinal int             `json:"ordinal"`
	Name    string          `json:"name"`
	Status  ConditionStatus `json:"status"`
	Details []string        `json:"details,omitempty"`
}

// Passed reports whether the condition holds. UNKNOWN_PRESENT passes.
func (c ConditionResult) Passed() bool {
	return c.Status == StatusPass || c.Status == StatusUnknownPresent
}

func statusMark(s ConditionStatus) string {
	if s == StatusUnknownPresent {
		return "PASS (UNKNOWN)"
	}
	return string(s)
}

func renderConditions(sb *strings.Builder, conditions []ConditionResult) {
	for _, c := range conditions {
		fmt.Fprintf(sb, "  %d. %s: %s\n", c.Ordinal, c.Name, statusMark(c.Status))
		for _, d := range c.Details {
			fmt.Fprintf(sb, "     - %s\n", d)
		}
	}
}

// AdmissibilityResult holds the four structural conditions.
type AdmissibilityResult struct {
	Conditions []ConditionResult `json:"conditions"`
}

// IsAdmissible reports whether all conditions passed.
func (r AdmissibilityResult) IsAdmissible() bool {
	for _, c := range r.Conditions {
		if !c.Passed() {
			return false
		}
	}
	return true
}

// HasUnknowns reports whether any condition passed only with explicit
// UNKNOWN gaps.
func (r AdmissibilityResult) HasUnknowns() bool {
	for _, c := range r.Conditions {
		if c.Status == StatusUnknownPresent {
			return true
		}
	}
	return false
}

// Summary renders a human-readable report.
func (r AdmissibilityResult) Summary() string {
	var sb strings.Builder
	status := "NOT ADMISSIBLE"
	if r.IsAdmissible() {
		status = "ADMISSIBLE"
		if r.HasUnknowns() {
			status = "ADMISSIBLE (with UNKNOWN gaps)"
		}
	}
	fmt.Fprintf(&sb, "Admissibility: %s\n", status)
	sb.WriteString(strings.Repeat("-", 50) + "\n")
	renderConditions(&sb, r.Conditions)
	return strings.TrimRight(sb.String(), "\n")
}

// RuleEvaluationResult holds the execution layer's output.
type RuleEvaluationResult struct {
	Violations         []string `json:"violations,omitempty"`
	Advisories         []string `json:"advisories,omitempty"`
	ConstraintFailures []string `json:"constraint_failures,omitempty"`
}

// IsValid reports whether no violations and no constraint failures
// occurred. Advisories never affect validity.
func (r RuleEvaluationResult) IsValid() bool {
	return len(r.Violations) == 0 && len(r.ConstraintFailures) == 0
}

// Summary renders a human-readable report.
func (r RuleEvaluationResult) Summary() string {
	var sb strings.Builder
	status := "FAIL"
	if r.IsValid() {
		status = "PASS"
	}
	fmt.Fprintf(&sb, "Rule Evaluation: %s\n", status)
	sb.WriteString(strings.Repeat("-", 50) + "\n")
	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&sb, "  %s (%d):\n", title, len(items))
		for _, it := range items {
			fmt.Fprintf(&sb, "    - %s\n", it)
		}
	}
	section("Violations", r.Violations)
	section("Advisories", r.Advisories)
	section("Constraint failures", r.ConstraintFailures)
	if len(r.Violations) == 0 && len(r.Advisories) == 0 && len(r.ConstraintFailures) == 0 {
		sb.WriteString("  No issues found.\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ValidationResult is the five-condition predicate result:
// admissibility's four conditions plus Consistency.
type ValidationResult struct {
	Conditions []ConditionResult `json:"conditions"`
}

// IsValid reports whether all five conditions passed.
func (r ValidationResult) IsValid() bool {
	for _, c := range r.Conditions {
		if !c.Passed() {
			return false
		}
	}
	return true
}

// HasUnknowns reports whether any condition passed only with explicit
// UNKNOWN gaps.
func (r ValidationResult) HasUnknowns() bool {
	for _, c := range r.Conditions {
		if c.Status == StatusUnknownPresent {
			return true
		}
	}
	return false
}

// Summary renders a human-readable report.
func (r ValidationResult) Summary() string {
	var sb strings.Builder
	status := "INVALID"
	if r.IsValid() {
		status = "VALID"
		if r.HasUnknowns() {
			status = "VALID (with UNKNOWN gaps)"
		}
	}
	fmt.Fprintf(&sb, "Validation: %s\n", status)
	sb.WriteString(strings.Repeat("-", 50) + "\n")
	renderConditions(&sb, r.Conditions)
	return strings.TrimRight(sb.String(), "\n")
}

// SelfValidationResult is the outcome of definition-time coherence
// checking. Errors are fatal to the definition; warnings are advisory.
type SelfValidationResult struct {
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// IsValid reports whether the definition has no errors.
func (r SelfValidationResult) IsValid() bool { return len(r.Errors) == 0 }

// Summary renders a human-readable report.
func (r SelfValidationResult) Summary() string {
	var sb strings.Builder
	status := "INVALID"
	if r.IsValid() {
		status = "VALID"
	}
	fmt.Fprintf(&sb, "Self-Validation: %s\n", status)
	sb.WriteString(strings.Repeat("-", 50) + "\n")
	if len(r.Errors) > 0 {
		fmt.Fprintf(&sb, "  Errors (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Fprintf(&sb, "    - %s\n", e)
		}
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintf(&sb, "  Warnings (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Fprintf(&sb, "    - %s\n", w)
		}
	}
	if len(r.Errors) == 0 && len(r.Warnings) == 0 {
		sb.WriteString("  No issues found.\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
