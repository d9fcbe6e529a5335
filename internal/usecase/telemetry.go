package usecase

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "mecanica_xpto_os/internal/usecase"

var tracer = otel.Tracer(instrumentationName)

func newCounter(name, description string) metric.Int64Counter {
	c, err := otel.Meter(instrumentationName).Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		return noop.Int64Counter{}
	}
	return c
}
