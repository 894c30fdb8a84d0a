// Package middleware provides observability wrappers for location
// providers.
//
// A Middleware takes a provider and returns one with the same behavior
// plus a side concern:
//
//	p := middleware.Chain(memory.New(memory.Config{}),
//	    middleware.Prometheus(middleware.WithNamespace("myapp")),
//	    middleware.OpenTelemetry(middleware.WithTracerName("myapp")),
//	)
//
// # Prometheus Metrics
//
//   - boom_navigations_total: navigations by mode (push, replace)
//   - boom_navigation_duration_seconds: time spent in Navigate, subscriber
//     notification included
//   - boom_notifications_total: subscriber callbacks invoked
//   - boom_subscribers: live subscriptions
//
// Expose them with promhttp:
//
//	http.Handle("/metrics", promhttp.Handler())
//
// # OpenTelemetry
//
// Every Navigate produces a span named "boom.navigate" carrying the
// previous and next path. The tracer comes from the global tracer
// provider unless WithTracerProvider is given.
//
// Wrapped providers keep their anchor formatting (location.Hrefs); use
// Unwrap to reach provider specific features such as a memory
// provider's Recorder.
package middleware
