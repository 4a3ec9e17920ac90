package graph

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "doml",
		Category:    "report",
		Version:     "v1",
		Description: "Validation report payload with graph triples",
		Factory:     func() any { return &ReportPayload{} },
	})
	if err != nil {
		panic("failed to register ReportPayload: " + err.Error())
	}
}

// ReportType is the message type for validation report payloads.
var ReportType = message.Type{Domain: "doml", Category: "report", Version: "v1"}

// ReportPayload implements message.Payload and graph.Graphable for
// validation report ingestion.
type ReportPayload struct {
	EntityID_  string           `json:"id"`
	TripleData []message.Triple `json:"triples"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (r *ReportPayload) EntityID() string          { return r.EntityID_ }
func (r *ReportPayload) Triples() []message.Triple { return r.TripleData }
func (r *ReportPayload) Schema() message.Type      { return ReportType }

func (r *ReportPayload) Validate() error {
	if r.EntityID_ == "" {
		return errors.New("entity ID is required")
	}
	return nil
}

func (r *ReportPayload) MarshalJSON() ([]byte, error) {
	type Alias ReportPayload
	return json.Marshal((*Alias)(r))
}

func (r *ReportPayload) UnmarshalJSON(data []byte) error {
	type Alias ReportPayload
	return json.Unmarshal(data, (*Alias)(r))
}
