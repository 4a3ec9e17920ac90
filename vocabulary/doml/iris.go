package doml

// Namespace is the base IRI prefix for all domainlang ontology terms.
const Namespace = "https://domainlang.c360.dev/ontology/"

// EntityNamespace is the base IRI for validation report instances.
const EntityNamespace = "https://domainlang.c360.dev/entity/"

// Class IRIs define the types of entities produced by validation.
const (
	// ClassValidationReport represents one validation run over a world.
	ClassValidationReport = Namespace + "ValidationReport"

	// ClassConditionResult represents one of the five conditions of a run.
	ClassConditionResult = Namespace + "ConditionResult"

	// ClassFinding represents a single rule-interaction finding.
	ClassFinding = Namespace + "Finding"
)
