package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/c360studio/domainlang/celcond"
	"github.com/c360studio/domainlang/composition"
	"github.com/c360studio/domainlang/config"
	"github.com/c360studio/domainlang/definition"
	"github.com/c360studio/domainlang/doml"
	"github.com/c360studio/domainlang/graph"
	"github.com/c360studio/domainlang/validate"
)

// Service answers world validation requests against the active
// domain-language definition.
type Service struct {
	cfg      *config.Config
	logger   *slog.Logger
	compiler *celcond.Compiler

	// active is the composition graph requests validate against. Reload
	// swaps it atomically; handlers load it once per request.
	active atomic.Pointer[composition.Graph]

	nc  *nats.Conn
	sub *nats.Subscription

	// Lifecycle.
	running bool
	mu      sync.RWMutex
	cancel  context.CancelFunc
}

// Request asks for validation of one world.
type Request struct {
	WorldID string        `json:"world_id"`
	World   doml.WorldDoc `json:"world"`
}

// Response carries the five-condition result back to the requester.
type Response struct {
	WorldID    string                     `json:"world_id"`
	Valid      bool                       `json:"valid"`
	Conditions []validate.ConditionResult `json:"conditions"`
	Summary    string                     `json:"summary"`
	Error      string                     `json:"error,omitempty"`
}

// New constructs a Service and loads the initial definition. A
// definition that fails self-validation is rejected here, before any
// request can be served.
func New(cfg *config.Config, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	compiler, err := celcond.NewCompiler()
	if err != nil {
		return nil, err
	}

	s := &Service{
		cfg:      cfg,
		logger:   logger,
		compiler: compiler,
	}
	if err := s.Reload(); err != nil {
		return nil, fmt.Errorf("load definition: %w", err)
	}
	return s, nil
}

// Graph returns the active composition graph.
func (s *Service) Graph() *composition.Graph {
	return s.active.Load()
}

// Reload loads the definition file, builds it, and self-validates the
// result. On success the graph is swapped in; on any failure the
// previous graph stays active and the error is returned.
func (s *Service) Reload() error {
	doc, err := definition.LoadFile(s.cfg.Definition.Path)
	if err != nil {
		reloadsTotal.WithLabelValues("error").Inc()
		return err
	}

	g, err := doc.Build(s.compiler)
	if err != nil {
		reloadsTotal.WithLabelValues("error").Inc()
		return err
	}

	self := validate.SelfValidate(g)
	for _, w := range self.Warnings {
		s.logger.Warn("Definition self-validation warning", "warning", w)
	}
	if !self.IsValid() {
		reloadsTotal.WithLabelValues("rejected").Inc()
		for _, e := range self.Errors {
			s.logger.Error("Definition self-validation error", "error", e)
		}
		return fmt.Errorf("definition failed self-validation with %d error(s)", len(self.Errors))
	}

	s.active.Store(g)
	reloadsTotal.WithLabelValues("ok").Inc()
	s.logger.Info("Definition loaded",
		"path", s.cfg.Definition.Path,
		"languages", len(g.Languages()),
		"warnings", len(self.Warnings))
	return nil
}

// Start connects to NATS and begins serving validation requests. When
// configured, it also watches the definition file for changes.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("service already running")
	}
	s.running = true

	subCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	nc, err := nats.Connect(s.cfg.NATS.URL,
		nats.Name(s.cfg.NATS.Name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		s.rollbackStart(cancel)
		return fmt.Errorf("connect to NATS: %w", err)
	}
	s.nc = nc

	sub, err := nc.Subscribe(s.cfg.NATS.RequestSubject, func(msg *nats.Msg) {
		s.handleRequest(subCtx, msg)
	})
	if err != nil {
		nc.Close()
		s.rollbackStart(cancel)
		return fmt.Errorf("subscribe %s: %w", s.cfg.NATS.RequestSubject, err)
	}
	s.sub = sub

	if s.cfg.Definition.Watch {
		if err := s.watchDefinition(subCtx); err != nil {
			s.logger.Warn("Definition watching disabled", "error", err)
		}
	}

	s.logger.Info("Validation service started",
		"subject", s.cfg.NATS.RequestSubject,
		"definition", s.cfg.Definition.Path,
		"watch", s.cfg.Definition.Watch)
	return nil
}

func (s *Service) rollbackStart(cancel context.CancelFunc) {
	s.mu.Lock()
	s.running = false
	s.cancel = nil
	s.mu.Unlock()
	cancel()
}

// Stop drains the subscription and closes the NATS connection.
func (s *Service) Stop(timeout time.Duration) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	cancel := s.cancel
	s.running = false
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	if s.sub != nil {
		if err := s.sub.Drain(); err != nil {
			s.logger.Warn("Failed to drain subscription", "error", err)
		}
	}
	if s.nc != nil {
		done := make(chan struct{})
		go func() {
			s.nc.Close()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(timeout):
			s.logger.Warn("Timed out closing NATS connection")
		}
	}

	s.logger.Info("Validation service stopped")
	return nil
}

// handleRequest validates one world and replies with the result.
func (s *Service) handleRequest(ctx context.Context, msg *nats.Msg) {
	start := time.Now()

	var req Request
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		validationsTotal.WithLabelValues("error").Inc()
		s.logger.Error("Failed to parse validation request", "error", err)
		s.reply(msg, Response{Error: fmt.Sprintf("parse request: %v", err)})
		return
	}

	g := s.active.Load()
	world := req.World.Build(g)

	var opts []validate.Option
	if s.cfg.Validation.StrictProvenance {
		opts = append(opts, validate.WithStrictProvenance())
	}
	result := validate.Validate(g, world, opts...)

	validationDuration.Observe(time.Since(start).Seconds())
	outcome := "valid"
	if !result.IsValid() {
		outcome = "invalid"
	}
	validationsTotal.WithLabelValues(outcome).Inc()
	for _, cond := range result.Conditions {
		if cond.Status == validate.StatusFail {
			conditionFailuresTotal.WithLabelValues(cond.Name).Inc()
		}
	}

	s.reply(msg, Response{
		WorldID:    req.WorldID,
		Valid:      result.IsValid(),
		Conditions: result.Conditions,
		Summary:    result.Summary(),
	})

	if err := graph.PublishReport(ctx, s.nc, s.cfg.NATS.GraphSubject, req.WorldID, s.cfg.Definition.Path, result); err != nil {
		s.logger.Warn("Failed to publish validation report",
			"world_id", req.WorldID,
			"error", err)
	}

	s.logger.Info("World validated",
		"world_id", req.WorldID,
		"valid", result.IsValid(),
		"elements", len(world.Elements()),
		"duration", time.Since(start))
}

func (s *Service) reply(msg *nats.Msg, resp Response) {
	if msg.Reply == "" {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("Failed to marshal response", "error", err)
		return
	}
	if err := msg.Respond(data); err != nil {
		s.logger.Warn("Failed to respond", "error", err)
	}
}
