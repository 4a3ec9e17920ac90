package doml

import "github.com/c360studio/semstreams/vocabulary"

// Report predicates for whole-run validation results.
const (
	// ReportType identifies the entity type of a report node.
	// Values: "validation_report"
	ReportType = "doml.report.type"

	// ReportValid indicates whether the world passed all five conditions.
	ReportValid = "doml.report.valid"

	// ReportWorldID identifies the world the report describes.
	ReportWorldID = "doml.report.world_id"

	// ReportDefinition names the definition file the world was checked against.
	ReportDefinition = "doml.report.definition"
)

// Condition predicates for the five combined-predicate conditions.
const (
	// ConditionOrdinal is the 1-based position of the condition (1-5).
	ConditionOrdinal = "doml.condition.ordinal"

	// ConditionName is the condition's display name.
	// Values: "Vocabulary Closure", "Relation Admissibility",
	// "Completeness with Explicit Gaps", "Traceability", "Consistency"
	ConditionName = "doml.condition.name"

	// ConditionStatus is the condition outcome.
	// Values: "PASS", "FAIL", "UNKNOWN_PRESENT"
	ConditionStatus = "doml.condition.status"

	// ConditionDetail is one detail line of a condition result.
	ConditionDetail = "doml.condition.detail"
)

// Finding predicates for rule evaluation and self-validation output.
const (
	// FindingKind classifies a finding.
	// Values: "conflict", "exception", "override", "overlap", "ambiguity",
	// "no_default", "violation", "advisory", "constraint_failure"
	FindingKind = "doml.finding.kind"

	// FindingSeverity is the finding's severity: error, warning, info.
	FindingSeverity = "doml.finding.severity"

	// FindingMessage is the human-readable finding text.
	FindingMessage = "doml.finding.message"

	// FindingLanguage names the domain language the finding belongs to.
	FindingLanguage = "doml.finding.language"
)

func init() {
	// Report predicates
	vocabulary.Register(ReportType,
		vocabulary.WithDescription("Entity type of a validation report node"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"reportType"))

	vocabulary.Register(ReportValid,
		vocabulary.WithDescription("Whether the world passed all five validation conditions"),
		vocabulary.WithDataType("boolean"),
		vocabulary.WithIRI(Namespace+"valid"))

	vocabulary.Register(ReportWorldID,
		vocabulary.WithDescription("Identifier of the validated world"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"worldId"))

	vocabulary.Register(ReportDefinition,
		vocabulary.WithDescription("Definition file the world was validated against"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"definition"))

	// Condition predicates
	vocabulary.Register(ConditionOrdinal,
		vocabulary.WithDescription("1-based position of the condition in the combined predicate"),
		vocabulary.WithDataType("integer"),
		vocabulary.WithIRI(Namespace+"conditionOrdinal"))

	vocabulary.Register(ConditionName,
		vocabulary.WithDescription("Display name of the validation condition"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"conditionName"))

	vocabulary.Register(ConditionStatus,
		vocabulary.WithDescription("Condition outcome: PASS, FAIL, UNKNOWN_PRESENT"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"conditionStatus"))

	vocabulary.Register(ConditionDetail,
		vocabulary.WithDescription("Detail line of a condition result"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"conditionDetail"))

	// Finding predicates
	vocabulary.Register(FindingKind,
		vocabulary.WithDescription("Finding classification: conflict, exception, override, overlap, ambiguity, no_default, violation, advisory, constraint_failure"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"findingKind"))

	vocabulary.Register(FindingSeverity,
		vocabulary.WithDescription("Finding severity: error, warning, info"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"findingSeverity"))

	vocabulary.Register(FindingMessage,
		vocabulary.WithDescription("Human-readable finding text"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"findingMessage"))

	vocabulary.Register(FindingLanguage,
		vocabulary.WithDescription("Domain language the finding belongs to"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"findingLanguage"))
}
