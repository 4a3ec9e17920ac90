// Package graph provides utilities for publishing validation reports to
// the knowledge graph.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/nats-io/nats.go"

	vocab "github.com/c360studio/domainlang/vocabulary/doml"
	"github.com/c360studio/domainlang/validate"
)

// Subject for graph ingestion.
const GraphIngestSubject = "graph.ingest.entity"

// Source tag attached to every published triple.
const tripleSource = "domainlang.validate"

// EntityIngestMessage is the message format for graph ingestion.
// Matches the format used by semstreams graph components.
type EntityIngestMessage struct {
	ID        string           `json:"id"`
	Triples   []message.Triple `json:"triples"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// PublishReport publishes a validation report entity to the knowledge
// graph. A nil connection skips publishing so validation still works
// without a graph backend.
func PublishReport(ctx context.Context, nc *nats.Conn, subject string, worldID, definition string, result validate.ValidationResult) error {
	if nc == nil {
		return nil
	}
	if subject == "" {
		subject = GraphIngestSubject
	}

	now := time.Now()
	entityID := ReportEntityID(worldID, now)
	triples := ReportTriples(entityID, worldID, definition, result, now)

	msg := EntityIngestMessage{
		ID:        entityID,
		Triples:   triples,
		UpdatedAt: now,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal report entity: %w", err)
	}

	if err := nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publish report entity: %w", err)
	}
	if err := nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush report entity: %w", err)
	}
	return nil
}

// ReportTriples flattens a validation result into graph triples rooted
// at entityID.
func ReportTriples(entityID, worldID, definition string, result validate.ValidationResult, now time.Time) []message.Triple {
	mk := func(predicate string, object any) message.Triple {
		return message.Triple{
			Subject:    entityID,
			Predicate:  predicate,
			Object:     object,
			Source:     tripleSource,
			Timestamp:  now,
			Confidence: 1.0,
		}
	}

	triples := []message.Triple{
		mk(vocab.ReportType, "validation_report"),
		mk(vocab.ReportValid, result.IsValid()),
		mk(vocab.ReportWorldID, worldID),
	}
	if definition != "" {
		triples = append(triples, mk(vocab.ReportDefinition, definition))
	}

	for _, cond := range result.Conditions {
		condID := fmt.Sprintf("%s.condition.%d", entityID, cond.Ordinal)
		mkc := func(predicate string, object any) message.Triple {
			return message.Triple{
				Subject:    condID,
				Predicate:  predicate,
				Object:     object,
				Source:     tripleSource,
				Timestamp:  now,
				Confidence: 1.0,
			}
		}
		triples = append(triples,
			mkc(vocab.ConditionOrdinal, cond.Ordinal),
			mkc(vocab.ConditionName, cond.Name),
			mkc(vocab.ConditionStatus, string(cond.Status)),
		)
		for _, detail := range cond.Details {
			triples = append(triples, mkc(vocab.ConditionDetail, detail))
		}
	}

	return triples
}

// ReportEntityID generates a graph entity ID for a validation report.
// Format: domainlang.local.validate.report.<worldID>-<unix-nanos>
func ReportEntityID(worldID string, now time.Time) string {
	if worldID == "" {
		worldID = "world"
	}
	return fmt.Sprintf("domainlang.local.validate.report.%s-%d", worldID, now.UnixNano())
}
