package doctrine

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/OCAP2/planner/pkg/core"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ErrInvalidPolicy is returned when an EWR range policy cannot be built.
var ErrInvalidPolicy = errors.New("invalid EWR range policy")

// RangePolicy decides the range used to order an early-warning radar
// against SAM sites. The value is an ordering proxy, not a physical range.
// covered reports whether the EWR sits under its own side's air defense
// umbrella.
type RangePolicy interface {
	EWRThreatRange(ewr *core.GroundObject, covered bool) core.Distance
}

// CoveredIngressPolicy treats a covered EWR as threatening out to the
// ingress point, so it is attacked before SAMs that do not threaten the
// ingress point but after those that do. An uncovered EWR only matters out
// to its detection range.
type CoveredIngressPolicy struct {
	Doctrine Doctrine
}

func (p CoveredIngressPolicy) EWRThreatRange(ewr *core.GroundObject, covered bool) core.Distance {
	if covered {
		return p.Doctrine.IngressEgressDistance
	}
	return ewr.MaxDetectionRange()
}

// DetectionRangePolicy always uses the EWR's own detection range.
type DetectionRangePolicy struct{}

func (DetectionRangePolicy) EWRThreatRange(ewr *core.GroundObject, _ bool) core.Distance {
	return ewr.MaxDetectionRange()
}

// ewrEnv is the expression environment. All distances are nautical miles.
type ewrEnv struct {
	Covered       bool
	IngressEgress float64
	Detection     float64
	Threat        float64
	Name          string
}

// Logger receives expression evaluation failures.
type Logger interface {
	Error(msg string, keysAndValues ...any)
}

// ExprPolicy evaluates a compiled expression returning a range in nautical
// miles, e.g. `Covered ? IngressEgress : Detection * 0.8`.
type ExprPolicy struct {
	Source   string
	program  *vm.Program
	doctrine Doctrine
	fallback RangePolicy
	logger   Logger
}

// CompileExprPolicy compiles src against the EWR environment. Evaluation
// failures are reported to logger, or to slog's default logger when nil,
// and fall back to CoveredIngressPolicy.
func CompileExprPolicy(src string, d Doctrine, logger Logger) (*ExprPolicy, error) {
	prog, err := expr.Compile(src, expr.Env(ewrEnv{}), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("%w: compile %q: %w", ErrInvalidPolicy, src, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExprPolicy{
		Source:   src,
		program:  prog,
		doctrine: d,
		fallback: CoveredIngressPolicy{Doctrine: d},
		logger:   logger,
	}, nil
}

func (p *ExprPolicy) EWRThreatRange(ewr *core.GroundObject, covered bool) core.Distance {
	env := ewrEnv{
		Covered:       covered,
		IngressEgress: p.doctrine.IngressEgressDistance.NauticalMiles(),
		Detection:     ewr.MaxDetectionRange().NauticalMiles(),
		Threat:        ewr.MaxThreatRange().NauticalMiles(),
		Name:          ewr.Name,
	}
	result, err := vm.Run(p.program, env)
	if err != nil {
		p.logger.Error("EWR policy failed", "policy", p.Source, "ewr", ewr.Name, "error", err)
		return p.fallback.EWRThreatRange(ewr, covered)
	}
	nm, ok := result.(float64)
	if !ok {
		p.logger.Error("EWR policy returned non-numeric result", "policy", p.Source, "ewr", ewr.Name)
		return p.fallback.EWRThreatRange(ewr, covered)
	}
	return core.NauticalMiles(nm)
}

// NewRangePolicy resolves a configured policy name or expression.
// "" and "ingress" select CoveredIngressPolicy, "detection" selects
// DetectionRangePolicy, anything else is compiled as an expression.
func NewRangePolicy(spec string, d Doctrine, logger Logger) (RangePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(spec)) {
	case "", "ingress", "default":
		return CoveredIngressPolicy{Doctrine: d}, nil
	case "detection":
		return DetectionRangePolicy{}, nil
	}
	p, err := CompileExprPolicy(spec, d, logger)
	if err != nil {
		return nil, err
	}
	return p, nil
}
