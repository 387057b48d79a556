package doctrine

import (
	"fmt"
	"testing"

	"github.com/OCAP2/planner/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDoctrine(t *testing.T) {
	d := DefaultDoctrine()
	assert.Equal(t, "modern", d.Name)
	assert.InDelta(t, 45.0, d.IngressEgressDistance.NauticalMiles(), 1e-9)
	assert.InDelta(t, 50.0, d.CapThreatRange.NauticalMiles(), 1e-9)
}

func TestFromNauticalMilesClamps(t *testing.T) {
	d := FromNauticalMiles("cold war", 1, 500)
	assert.InDelta(t, 5.0, d.IngressEgressDistance.NauticalMiles(), 1e-9)
	assert.InDelta(t, 150.0, d.CapThreatRange.NauticalMiles(), 1e-9)

	d = FromNauticalMiles("ww2", 20, 30)
	assert.InDelta(t, 20.0, d.IngressEgressDistance.NauticalMiles(), 1e-9)
	assert.InDelta(t, 30.0, d.CapThreatRange.NauticalMiles(), 1e-9)
}

func newEWR() *core.GroundObject {
	return &core.GroundObject{
		Name:           "1L13",
		Role:           core.RoleEWR,
		DetectionRange: core.NauticalMiles(80),
	}
}

func TestCoveredIngressPolicy(t *testing.T) {
	p := CoveredIngressPolicy{Doctrine: DefaultDoctrine()}
	ewr := newEWR()

	assert.InDelta(t, 45.0, p.EWRThreatRange(ewr, true).NauticalMiles(), 1e-9)
	assert.InDelta(t, 80.0, p.EWRThreatRange(ewr, false).NauticalMiles(), 1e-9)
}

func TestDetectionRangePolicy(t *testing.T) {
	ewr := newEWR()
	assert.InDelta(t, 80.0, DetectionRangePolicy{}.EWRThreatRange(ewr, true).NauticalMiles(), 1e-9)
}

func TestExprPolicy(t *testing.T) {
	p, err := CompileExprPolicy(`Covered ? IngressEgress : Detection * 0.5`, DefaultDoctrine(), nil)
	require.NoError(t, err)
	ewr := newEWR()

	assert.InDelta(t, 45.0, p.EWRThreatRange(ewr, true).NauticalMiles(), 1e-9)
	assert.InDelta(t, 40.0, p.EWRThreatRange(ewr, false).NauticalMiles(), 1e-9)
}

type recordingLogger struct {
	errors []string
}

func (l *recordingLogger) Error(msg string, keysAndValues ...any) {
	l.errors = append(l.errors, fmt.Sprintf("%s %v", msg, keysAndValues))
}

func TestExprPolicyEvaluationErrorFallsBack(t *testing.T) {
	logger := &recordingLogger{}
	// float() panics on a name that is not a number.
	p, err := CompileExprPolicy(`Covered ? IngressEgress : float(Name)`, DefaultDoctrine(), logger)
	require.NoError(t, err)
	ewr := newEWR()

	assert.InDelta(t, 45.0, p.EWRThreatRange(ewr, true).NauticalMiles(), 1e-9)
	assert.Empty(t, logger.errors)

	want := CoveredIngressPolicy{Doctrine: DefaultDoctrine()}.EWRThreatRange(ewr, false)
	assert.Equal(t, want, p.EWRThreatRange(ewr, false))
	require.Len(t, logger.errors, 1)
	assert.Contains(t, logger.errors[0], "EWR policy failed")
	assert.Contains(t, logger.errors[0], ewr.Name)
}

func TestNewRangePolicyPassesLogger(t *testing.T) {
	logger := &recordingLogger{}
	p, err := NewRangePolicy("float(Name)", DefaultDoctrine(), logger)
	require.NoError(t, err)

	p.EWRThreatRange(newEWR(), true)
	assert.Len(t, logger.errors, 1)
}

func TestCompileExprPolicyRejectsBadSource(t *testing.T) {
	_, err := CompileExprPolicy(`Covered ? "far" : "near"`, DefaultDoctrine(), nil)
	assert.ErrorIs(t, err, ErrInvalidPolicy)

	_, err = CompileExprPolicy(`Unknown + 1`, DefaultDoctrine(), nil)
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}

func TestNewRangePolicy(t *testing.T) {
	d := DefaultDoctrine()

	p, err := NewRangePolicy("", d, nil)
	require.NoError(t, err)
	assert.IsType(t, CoveredIngressPolicy{}, p)

	p, err = NewRangePolicy("Detection", d, nil)
	require.NoError(t, err)
	assert.IsType(t, DetectionRangePolicy{}, p)

	p, err = NewRangePolicy("Detection + 10.0", d, nil)
	require.NoError(t, err)
	assert.InDelta(t, 90.0, p.EWRThreatRange(newEWR(), false).NauticalMiles(), 1e-9)
}
