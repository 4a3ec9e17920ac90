// Package definition loads domain-language definitions from YAML. A
// document declares one or more languages (vocabulary, relations,
// normative rules, constraints) plus the composition edges between
// them, and builds into a composition.Graph ready for validation. Rule
// conditions and constraint expressions are CEL, compiled through
// celcond at build time so malformed expressions are rejected before
// any world is checked.
package definition
