// Package validate implements the three validation layers over a
// composition graph:
//
//   - SelfValidate checks the domain definition itself, independent of any
//     instance data: graph structure, normative interactions, closure, and
//     orphan languages.
//   - CheckAdmissibility decides whether a candidate world is structurally
//     admissible under the definition: vocabulary closure, relation
//     admissibility, completeness with explicit gaps, and traceability.
//   - EvaluateRules applies conditional prohibitions, advisory rules, and
//     invariant predicates to an admissible world, producing violations,
//     advisories, and constraint failures.
//
// Validate composes the last two into the five-condition predicate, with
// rule evaluation folded in as the Consistency condition. No layer ever
// aborts on malformed world data: every check accumulates findings into
// its result and returns normally.
package validate
