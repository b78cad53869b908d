// Package telemetry provides OpenTelemetry tracing and metrics for
// socialintel, plus the Prometheus registry served at /metrics.
//
// # Usage
//
//	tel, err := telemetry.New(ctx, telemetry.FromSettings(cfg.Telemetry, version))
//	if err != nil {
//	    return err
//	}
//	defer tel.Shutdown(context.Background())
//
//	tracer := tel.Tracer("socialintel/content")
//	meter := tel.Meter("socialintel/http")
//
// # Configuration
//
//	telemetry:
//	  enabled: true
//	  endpoint: "localhost:4317"
//	  protocol: grpc          # or http/protobuf
//	  service_name: socialintel
//	  insecure: true          # loopback endpoints only
//
// # Error Handling
//
// Exporter failures do not stop the server. The instance is marked
// degraded and tracers and meters fall back to the global no-op
// providers. The Prometheus registry works whether or not OTLP export
// is enabled.
//
// # Testing
//
//	tt := telemetry.NewTestTelemetry()
//	_, span := tt.Tracer("test").Start(ctx, "op")
//	span.End()
//	tt.AssertSpanExists(t, "op")
package telemetry
