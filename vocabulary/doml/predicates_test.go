package doml

import (
	"strings"
	"testing"

	"github.com/c360studio/semstreams/vocabulary"
)

func TestPredicatesRegistered(t *testing.T) {
	predicates := []string{
		ReportType,
		ReportValid,
		ReportWorldID,
		ReportDefinition,
		ConditionOrdinal,
		ConditionName,
		ConditionStatus,
		ConditionDetail,
		FindingKind,
		FindingSeverity,
		FindingMessage,
		FindingLanguage,
	}

	for _, pred := range predicates {
		t.Run(pred, func(t *testing.T) {
			meta := vocabulary.GetPredicateMetadata(pred)
			if meta.Description == "" {
				t.Errorf("predicate %s not registered or missing description", pred)
			}
		})
	}
}

func TestPredicateNamingConvention(t *testing.T) {
	predicates := []string{
		ReportType, ReportValid, ReportWorldID, ReportDefinition,
		ConditionOrdinal, ConditionName, ConditionStatus, ConditionDetail,
		FindingKind, FindingSeverity, FindingMessage, FindingLanguage,
	}

	for _, pred := range predicates {
		if parts := strings.Split(pred, "."); len(parts) != 3 || parts[0] != "doml" {
			t.Errorf("predicate %s does not follow doml.category.attribute convention", pred)
		}
	}
}
