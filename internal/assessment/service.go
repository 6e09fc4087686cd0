// Package assessment runs the full credit pipeline: validation, ratios, scoring, loan structure and CAD.
package assessment

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/wonny/creditlens/internal/cad"
	"github.com/wonny/creditlens/internal/contracts"
	"github.com/wonny/creditlens/internal/loan"
	"github.com/wonny/creditlens/internal/ratios"
	"github.com/wonny/creditlens/internal/scoring"
	"github.com/wonny/creditlens/internal/validation"
	"github.com/wonny/creditlens/pkg/logger"
)

// Request is one assessment of one fiscal year
type Request struct {
	Dataset contracts.Dataset         `json:"dataset"`
	Year    int                       `json:"year"`
	Bureau  *contracts.AECBReport     `json:"bureau,omitempty"`
	Loan    *contracts.LoanParameters `json:"loan,omitempty"` // nil: seeded from the suggestion
	CAD     *contracts.CADLoanFacts   `json:"cad,omitempty"`
}

// Assessment is the full pipeline output for one year
type Assessment struct {
	RunID      string                   `json:"runId"`
	Year       int                      `json:"year"`
	ConfigHash string                   `json:"configHash"`
	Ratios     *contracts.RobustRatios  `json:"ratios"`
	Score      contracts.CompositeScore `json:"score"`
	Blended    contracts.BlendedScore   `json:"blended"`
	Suggestion contracts.LoanSuggestion `json:"suggestion"`
	Loan       *contracts.LoanStructure `json:"loan"`
	CAD        *contracts.CADResult     `json:"cad,omitempty"`
	ComputedAt time.Time                `json:"computedAt"`
}

// Options tune the service
type Options struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// Service orchestrates the engines
// ⭐ SSOT: the only place engines are composed; every engine stays a pure calculator
type Service struct {
	validator  *validation.Validator
	ratios     *ratios.Engine
	scoring    *scoring.Engine
	loans      *loan.Structurer
	cad        *cad.Assessor
	memo       *cache.Cache // nil when disabled
	configHash string
	logger     *logger.Logger
}

// NewService wires the engines around the given scoring engine
func NewService(scorer *scoring.Engine, opts Options, log *logger.Logger) (*Service, error) {
	if log == nil {
		log = logger.Nop()
	}
	if scorer == nil {
		var err error
		if scorer, err = scoring.NewEngine(nil, log); err != nil {
			return nil, err
		}
	}

	hash, err := scoring.Hash(scorer.Config())
	if err != nil {
		return nil, fmt.Errorf("hash scoring config: %w", err)
	}

	validator := validation.NewValidator(log)
	s := &Service{
		validator:  validator,
		ratios:     ratios.NewEngine(validator, log),
		scoring:    scorer,
		loans:      loan.NewStructurer(log),
		cad:        cad.NewAssessor(nil, log),
		configHash: hash,
		logger:     log.Component("assessment"),
	}
	if opts.CacheEnabled && opts.CacheTTL > 0 {
		s.memo = cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	return s, nil
}

// ConfigHash identifies the scoring tables every assessment is computed with
func (s *Service) ConfigHash() string {
	return s.configHash
}

// Assess runs the pipeline for one year
func (s *Service) Assess(ctx context.Context, req Request) (*Assessment, error) {
	rr, err := s.Ratios(ctx, req.Dataset, req.Year)
	if err != nil {
		return nil, err
	}

	score := s.scoring.Score(rr)
	blended := s.scoring.Blended(score, req.Bureau)
	suggestion := s.scoring.Suggest(rr, blended.Score)

	params := suggestion.Parameters()
	if req.Loan != nil {
		params = *req.Loan
	}
	structure, err := s.loans.Project(params, rr)
	if err != nil {
		return nil, err
	}

	result := &Assessment{
		RunID:      uuid.New().String(),
		Year:       req.Year,
		ConfigHash: s.configHash,
		Ratios:     rr,
		Score:      score,
		Blended:    blended,
		Suggestion: suggestion,
		Loan:       structure,
		ComputedAt: time.Now().UTC(),
	}

	if req.CAD != nil {
		result.CAD, err = s.AssessCAD(ctx, *req.CAD, req.Dataset, req.Year)
		if err != nil {
			return nil, err
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"run_id":         result.RunID,
		"year":           result.Year,
		"score":          result.Score.Score,
		"blended":        result.Blended.Score,
		"bureau_applied": result.Blended.BureauApplied,
		"provisional":    result.Score.Provisional,
	}).Info("Assessment completed")

	return result, nil
}

// Ratios returns the ratio bundle for (dataset, year), memoized when the cache is enabled.
// Callers receive their own copy.
func (s *Service) Ratios(ctx context.Context, ds contracts.Dataset, year int) (*contracts.RobustRatios, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ds.CheckShape(); err != nil {
		return nil, err
	}

	var key string
	if s.memo != nil {
		key = fmt.Sprintf("%s:%d", datasetDigest(ds), year)
		if cached, ok := s.memo.Get(key); ok {
			return cloneRatios(cached.(*contracts.RobustRatios)), nil
		}
	}

	rr, err := s.ratios.Calculate(ds, year)
	if err != nil {
		return nil, err
	}

	if s.memo != nil {
		s.memo.Set(key, cloneRatios(rr), cache.DefaultExpiration)
	}
	return rr, nil
}

// Validate runs the data-quality checks for one year
func (s *Service) Validate(ctx context.Context, ds contracts.Dataset, year int) (contracts.ValidationResult, error) {
	if err := ctx.Err(); err != nil {
		return contracts.ValidationResult{}, err
	}
	if err := ds.CheckShape(); err != nil {
		return contracts.ValidationResult{}, err
	}
	if err := contracts.CheckYear(year); err != nil {
		return contracts.ValidationResult{}, err
	}
	return s.validator.Validate(ds, year), nil
}

// ProjectLoan re-derives the loan structure for params against the year's ratios
func (s *Service) ProjectLoan(ctx context.Context, params contracts.LoanParameters, ds contracts.Dataset, year int) (*contracts.LoanStructure, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	rr, err := s.Ratios(ctx, ds, year)
	if err != nil {
		return nil, err
	}
	return s.loans.Project(params, rr)
}

// AssessCAD scores a CAD facility with ratios derived from the dataset
func (s *Service) AssessCAD(ctx context.Context, facts contracts.CADLoanFacts, ds contracts.Dataset, year int) (*contracts.CADResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := facts.Validate(); err != nil {
		return nil, err
	}

	cadRatios, warnings, err := s.ratios.CADRatios(ds, year)
	if err != nil {
		return nil, err
	}

	result, err := s.cad.Assess(facts, cadRatios)
	if err != nil {
		return nil, err
	}
	result.Warnings = append(result.Warnings, warnings...)
	return result, nil
}

// AssessCADWithRatios scores a CAD facility with explicitly supplied ratios
func (s *Service) AssessCADWithRatios(facts contracts.CADLoanFacts, cadRatios contracts.CADRatios) (*contracts.CADResult, error) {
	return s.cad.Assess(facts, cadRatios)
}

func datasetDigest(ds contracts.Dataset) string {
	statements := make([]string, 0, len(ds))
	for statement := range ds {
		statements = append(statements, string(statement))
	}
	sort.Strings(statements)

	// raw float bits keep NaN and ±Inf facts hashable
	h := sha256.New()
	var buf [8]byte
	for _, statement := range statements {
		facts := ds[contracts.StatementName(statement)]
		fmt.Fprintf(h, "%q:%d\n", statement, len(facts))
		for _, f := range facts {
			fmt.Fprintf(h, "%q|%q|%d|", f.FieldName, f.Currency, f.Year)
			binary.BigEndian.PutUint64(buf[:], math.Float64bits(f.Value))
			h.Write(buf[:])
			binary.BigEndian.PutUint64(buf[:], math.Float64bits(f.ConfidenceScore))
			h.Write(buf[:])
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func cloneRatios(rr *contracts.RobustRatios) *contracts.RobustRatios {
	out := *rr
	out.Ratios = make(map[contracts.RatioName]contracts.SafeRatioResult, len(rr.Ratios))
	for k, v := range rr.Ratios {
		out.Ratios[k] = v
	}
	if rr.DataQuality.Issues != nil {
		out.DataQuality.Issues = make([]contracts.DataQualityIssue, len(rr.DataQuality.Issues))
		copy(out.DataQuality.Issues, rr.DataQuality.Issues)
	}
	if rr.DataQuality.Corrections != nil {
		out.DataQuality.Corrections = make(map[string]float64, len(rr.DataQuality.Corrections))
		for k, v := range rr.DataQuality.Corrections {
			out.DataQuality.Corrections[k] = v
		}
	}
	return &out
}
