package tracing

import (
	"github.com/honeycombio/otel-config-go/otelconfig"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var GlobalTracer = otel.Tracer("trainmate-backend")

// EndSpanWithErrCheck ends the span, marking it as failed if err is set.
func EndSpanWithErrCheck(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	}
	span.End()
}

// HoneycombSetup configures the OpenTelemetry SDK via the honeycomb
// otel-config distro. Returns a shutdown func to be called on exit.
// When tracing is disabled, the returned shutdown func is a no-op.
func HoneycombSetup(tracingEnabled bool, serviceName string) (func(), error) {
	if !tracingEnabled {
		log.Debugln("tracing disabled, skipping otel setup")
		return func() {}, nil
	}

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(serviceName),
	)
	if err != nil {
		return nil, err
	}

	log.Debugln("otel set up done")
	return otelShutdown, nil
}
