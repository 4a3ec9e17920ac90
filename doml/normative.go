package doml

import "fmt"

// Operator is one of the five RFC 2119 normative operators. Each is a
// purely definitional signal; none produces runtime behavior by itself.
type Operator string

const (
	OpMust      Operator = "MUST"
	OpMustNot   Operator = "MUST_NOT"
	OpShould    Operator = "SHOULD"
	OpShouldNot Operator = "SHOULD_NOT"
	OpMay       Operator = "MAY"
)

// Operators lists the five operators in canonical order.
var Operators = []Operator{OpMust, OpMustNot, OpShould, OpShouldNot, OpMay}

// Valid reports whether the operator is one of the five known operators.
func (op Operator) Valid() bool {
	switch op {
	case OpMust, OpMustNot, OpShould, OpShouldNot, OpMay:
		return true
	}
	return false
}

// NormativeRule applies an operator to a target. Overrides names another
// rule this rule intentionally replaces; rule identity is pointer
// identity, so override references survive duplicated rule content.
// Rules are immutable once created.
type NormativeRule struct {
	Operator  Operator
	Target    NormativeTarget
	Overrides *NormativeRule
}

func (r *NormativeRule) String() string {
	s := fmt.Sprintf("%s(%s)", r.Operator, r.Target.Element)
	if r.Overrides != nil {
		s += " [OVERRIDE]"
	}
	return s
}

// FindingKind classifies a Self-QC finding about a pair of rules (or, for
// NoDefault, about all rules on one target).
type FindingKind string

const (
	// FindingConflict: conflicting modalities, same specificity, no override.
	FindingConflict FindingKind = "conflict"

	// FindingException: conflicting modalities at different specificity;
	// the conditional rule excepts the unconditional one (lex specialis).
	FindingException FindingKind = "exception"

	// FindingOverride: conflicting modalities, same specificity, with an
	// explicit override reference between the two rules.
	FindingOverride FindingKind = "override"

	// FindingOverlap: compatible modalities on the same target. Redundancy
	// is never an error.
	FindingOverlap FindingKind = "overlap"

	// FindingAmbiguity: conflicting modalities, both conditional, and the
	// relationship between the conditions is undeclared.
	FindingAmbiguity FindingKind = "ambiguity"

	// FindingNoDefault: a target governed only by conditional rules, none
	// covering the default case.
	FindingNoDefault FindingKind = "no_default"
)

// Severity grades a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// findingSeverity maps each finding kind to its fixed severity.
var findingSeverity = map[FindingKind]Severity{
	FindingConflict:  SeverityError,
	FindingException: SeverityInfo,
	FindingOverride:  SeverityInfo,
	FindingOverlap:   SeverityInfo,
	FindingAmbiguity: SeverityWarning,
	FindingNoDefault: SeverityWarning,
}

// InteractionDiagnostic is a Self-QC finding. Findings are facts about a
// language definition, never about a world. RuleB is nil for NoDefault
// findings, which concern a target rather than a pair.
type InteractionDiagnostic struct {
	Severity Severity
	Kind     FindingKind
	RuleA    *NormativeRule
	RuleB    *NormativeRule
	Message  string
}

func (d InteractionDiagnostic) String() string {
	return fmt.Sprintf("[%s:%s] %s", d.Severity, d.Kind, d.Message)
}

// pairKey builds an unordered key for an operator pair.
func pairKey(a, b Operator) string {
	if a > b {
		a, b = b, a
	}
	return string(a) + "+" + string(b)
}

// compatiblePairs declares the modality pairs that overlap without
// conflicting. Same-operator pairs are always compatible.
var compatiblePairs = map[string]bool{
	pairKey(OpMust, OpShould):       true,
	pairKey(OpMust, OpMay):          true,
	pairKey(OpShould, OpMay):        true,
	pairKey(OpMustNot, OpShouldNot): true,
}

// conflictingPairs declares the six conflicting modality pairs with the
// reason a pair is incoherent.
var conflictingPairs = map[string]string{
	pairKey(OpMust, OpMustNot):      "requiring and prohibiting the same element",
	pairKey(OpMust, OpShouldNot):    "obligating a discouraged element",
	pairKey(OpShould, OpMustNot):    "recommending a prohibited element",
	pairKey(OpShould, OpShouldNot):  "recommending and discouraging the same element",
	pairKey(OpMay, OpMustNot):       "permitting a prohibited element",
	pairKey(OpMay, OpShouldNot):     "permitting a discouraged element",
}

// CompatibleOperators reports whether two modalities overlap rather than
// conflict.
func CompatibleOperators(a, b Operator) bool {
	return a == b || compatiblePairs[pairKey(a, b)]
}

// sameTarget reports whether two rules govern the same vocabulary symbol.
// Conditions are ignored: target identity is operator- and
// condition-independent.
func sameTarget(a, b *NormativeRule) bool {
	return a.Target.Element.Key() == b.Target.Element.Key()
}

// overrides reports whether either rule names the other as the rule it
// intentionally replaces.
func overrides(a, b *NormativeRule) bool {
	return (a.Overrides != nil && a.Overrides == b) ||
		(b.Overrides != nil && b.Overrides == a)
}

// CheckInteraction runs the Self-QC decision procedure on a pair of
// rules. It returns nil when the rules govern different targets.
//
// The ladder, in order:
//  1. compatible modalities -> OVERLAP, regardless of conditions
//  2. exactly one side conditional -> EXCEPTION (lex specialis), with the
//     conditional rule reported as RuleA whatever the argument order
//  3. equal specificity with an override reference -> OVERRIDE
//  4. both conditional -> AMBIGUITY; both unconditional -> CONFLICT
func CheckInteraction(a, b *NormativeRule) *InteractionDiagnostic {
	if !sameTarget(a, b) {
		return nil
	}

	target := a.Target.Element.String()

	if CompatibleOperators(a.Operator, b.Operator) {
		return &InteractionDiagnostic{
			Severity: SeverityInfo,
			Kind:     FindingOverlap,
			RuleA:    a,
			RuleB:    b,
			Message: fmt.Sprintf("overlap: %s and %s on same target %s",
				a.Operator, b.Operator, target),
		}
	}

	reason := conflictingPairs[pairKey(a.Operator, b.Operator)]

	aCond := a.Target.Conditional()
	bCond := b.Target.Conditional()

	if aCond != bCond {
		specific, general := a, b
		if bCond {
			specific, general = b, a
		}
		return &InteractionDiagnostic{
			Severity: SeverityInfo,
			Kind:     FindingException,
			RuleA:    specific,
			RuleB:    general,
			Message: fmt.Sprintf("exception (lex specialis): %s conditionally excepts %s on %s",
				specific.Operator, general.Operator, target),
		}
	}

	if overrides(a, b) {
		return &InteractionDiagnostic{
			Severity: SeverityInfo,
			Kind:     FindingOverride,
			RuleA:    a,
			RuleB:    b,
			Message:  fmt.Sprintf("override: intentional replacement on %s", target),
		}
	}

	if aCond && bCond {
		return &InteractionDiagnostic{
			Severity: SeverityWarning,
			Kind:     FindingAmbiguity,
			RuleA:    a,
			RuleB:    b,
			Message: fmt.Sprintf("ambiguity: %s and %s on %s, condition relationship not declared",
				a.Operator, b.Operator, target),
		}
	}

	return &InteractionDiagnostic{
		Severity: SeverityError,
		Kind:     FindingConflict,
		RuleA:    a,
		RuleB:    b,
		Message:  fmt.Sprintf("conflict: %s on %s", reason, target),
	}
}

// CheckAllInteractions runs the pairwise decision procedure over every
// unordered pair of rules, then a per-target scan for NO_DEFAULT. Output
// order follows rule insertion order, so diagnostics are reproducible
// across runs.
func CheckAllInteractions(rules []*NormativeRule) []InteractionDiagnostic {
	var diags []InteractionDiagnostic
	for i := 0; i < len(rules); i++ {
		for j := i + 1; j < len(rules); j++ {
			if d := CheckInteraction(rules[i], rules[j]); d != nil {
				diags = append(diags, *d)
			}
		}
	}
	diags = append(diags, checkDefaults(rules)...)
	return diags
}

// checkDefaults emits one NO_DEFAULT finding per target whose rules are
// all conditional. The pairwise procedure cannot see this: it is a
// property of the whole rule set on a target, not of any pair.
func checkDefaults(rules []*NormativeRule) []InteractionDiagnostic {
	byTarget := make(map[string][]*NormativeRule)
	var order []string
	for _, r := range rules {
		key := r.Target.Element.Key()
		if _, seen := byTarget[key]; !seen {
			order = append(order, key)
		}
		byTarget[key] = append(byTarget[key], r)
	}

	var diags []InteractionDiagnostic
	for _, key := range order {
		group := byTarget[key]
		allConditional := true
		for _, r := range group {
			if !r.Target.Conditional() {
				allConditional = false
				break
			}
		}
		if !allConditional {
			continue
		}
		diags = append(diags, InteractionDiagnostic{
			Severity: SeverityWarning,
			Kind:     FindingNoDefault,
			RuleA:    group[0],
			Message: fmt.Sprintf("no default: all %d rule(s) on %s are conditional, none covers the default case",
				len(group), group[0].Target.Element),
		})
	}
	return diags
}
