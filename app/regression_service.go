package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"goregress/domain/core"
	"goregress/domain/field"
	"goregress/domain/frame"
	"goregress/domain/regression"
	"goregress/internal"
	"goregress/ports"

	"golang.org/x/sync/errgroup"
)

// RequestSpec defines the inputs of one regression request. Its JSON form is
// also the persistence key: two requests with the same marshaled spec refer
// to the same stored result.
type RequestSpec struct {
	Model                string          `json:"model,omitempty"`
	RegressionType       string          `json:"regressionType,omitempty"`
	IndependentVariables []string        `json:"independentVariables,omitempty"`
	DependentVariable    string          `json:"dependentVariable,omitempty"`
	Estimator            string          `json:"estimator,omitempty"`
	Degree               int             `json:"degree,omitempty"`
	Weights              json.RawMessage `json:"weights,omitempty"`
	Functions            []string        `json:"functions,omitempty"`
	DatasetID            string          `json:"datasetId,omitempty"`
}

// ApplyDefaults fills the spec fields a caller may omit.
func (s *RequestSpec) ApplyDefaults() {
	if s.Model == "" {
		s.Model = "lr"
	}
	if s.Estimator == "" {
		s.Estimator = "ols"
	}
	if s.Degree == 0 {
		s.Degree = 1
	}
}

// Validate reports whether the spec carries the parameters every run needs.
func (s *RequestSpec) Validate() error {
	if s.DatasetID == "" || s.DependentVariable == "" {
		return core.ErrMissingParameters
	}
	return nil
}

// RegressionService orchestrates the full pipeline: resolve fields, load the
// frame, enumerate candidate models, fit each one, and shape the output.
type RegressionService struct {
	fields     ports.FieldRepository
	frames     ports.FrameLoader
	results    ports.RegressionRepository
	enumerator ports.ModelEnumerator
	runner     *regression.Runner
	log        *internal.Logger
}

// NewRegressionService creates a regression service
func NewRegressionService(
	fields ports.FieldRepository,
	frames ports.FrameLoader,
	results ports.RegressionRepository,
	enumerator ports.ModelEnumerator,
	runner *regression.Runner,
	log *internal.Logger,
) *RegressionService {
	return &RegressionService{
		fields:     fields,
		frames:     frames,
		results:    results,
		enumerator: enumerator,
		runner:     runner,
		log:        log,
	}
}

// RunFromSpec executes the pipeline for one request spec. Validation happens
// before any collaborator is touched so malformed requests never hit storage.
func (s *RegressionService) RunFromSpec(ctx context.Context, projectID core.ID, spec RequestSpec) (*regression.FinalResult, error) {
	spec.ApplyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	datasetID := core.ID(spec.DatasetID)

	var (
		fields []field.Field
		f      *frame.Frame
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fields, err = s.fields.ListFields(gctx, projectID, datasetID)
		return err
	})
	g.Go(func() error {
		var err error
		f, err = s.frames.Load(gctx, projectID, datasetID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	f = f.DropMissing()

	resolution, err := field.Resolve(spec.DependentVariable, spec.IndependentVariables, fields)
	if err != nil {
		return nil, err
	}
	for _, name := range resolution.Unmatched {
		s.log.Warn("independent variable %q not found in dataset %s, skipping", name, datasetID)
	}

	considered, candidates, err := s.enumerator.Enumerate(resolution.Dependent, resolution.Independent)
	if err != nil {
		return nil, err
	}

	typ := regression.RecommendType(resolution.Dependent)
	if spec.RegressionType != "" {
		parsed, ok := regression.ParseType(spec.RegressionType)
		if !ok {
			return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedRegression, spec.RegressionType)
		}
		typ = parsed
	}

	s.log.Info("running %d %s regression(s) for %s on dataset %s",
		len(candidates), typ, spec.DependentVariable, datasetID)
	outcomes := s.runner.Run(ctx, f, candidates, resolution.Dependent, typ)
	for i, outcome := range outcomes {
		if outcome.Err != nil {
			s.log.Warn("candidate %s failed: %v", candidates[i].Formula(), outcome.Err)
		}
	}

	return regression.Format(outcomes, resolution.Independent, considered), nil
}

// SaveResult stores a computed result under its spec. A prior record for the
// identical spec is removed first so each spec maps to exactly one record.
func (s *RegressionService) SaveResult(ctx context.Context, projectID core.ID, spec RequestSpec, result *regression.FinalResult) (*regression.Record, error) {
	spec.ApplyDefaults()

	specJSON, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request spec: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal regression result: %w", err)
	}

	existing, err := s.results.GetBySpec(ctx, projectID, specJSON)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.results.Delete(ctx, projectID, existing.ID); err != nil {
			return nil, err
		}
		s.log.Debug("replaced stored regression %s for repeated spec", existing.ID)
	}

	rec := &regression.Record{
		ID:        core.NewID(),
		ProjectID: projectID,
		Spec:      specJSON,
		Result:    resultJSON,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.results.Insert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetResult loads a stored regression record by id.
func (s *RegressionService) GetResult(ctx context.Context, projectID, id core.ID) (*regression.Record, error) {
	return s.results.GetByID(ctx, projectID, id)
}
