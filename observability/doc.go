// Package observability provides OpenTelemetry tracing and metrics for data
// providers.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("dataprovider"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "dataprovider.get_list")
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("dataprovider"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("dataprovider"))
//	metrics.RecordRequest(ctx, "placeholder", "GET", 200, duration)
//
// A nil *Metrics is valid and records nothing.
package observability
