package objective

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/OCAP2/planner/internal/objective"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
