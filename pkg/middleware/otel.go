package middleware

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/boom-router/boom/pkg/location"
)

// Default tracer name.
const defaultTracerName = "boom"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "boom").
	TracerName string

	// TracerProvider supplies the tracer.
	// Default: otel.GetTracerProvider()
	TracerProvider trace.TracerProvider

	// IncludeState records the navigation state type as an attribute.
	IncludeState bool

	// Filter determines which navigations to trace.
	// If nil, all navigations are traced.
	Filter func(target string) bool

	// AttributeExtractor adds custom attributes from the locations before
	// and after the navigation.
	AttributeExtractor func(from, to location.Location) []attribute.KeyValue

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithIncludeState enables recording the state type.
func WithIncludeState(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeState = include
	}
}

// WithNavigationFilter sets a filter function for navigations.
func WithNavigationFilter(filter func(target string) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(from, to location.Location) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates middleware that traces every navigation.
//
// Each span records boom.from, boom.to and boom.replace, and the number
// of subscriber callbacks run as boom.notified. A navigation that leaves
// the location unchanged is marked with boom.unchanged.
func OpenTelemetry(opts ...OTelOption) Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.TracerProvider == nil {
		config.TracerProvider = otel.GetTracerProvider()
	}
	config.tracer = config.TracerProvider.Tracer(config.TracerName)

	return func(p location.Provider) location.Provider {
		return &traced{inner: p, config: config}
	}
}

type traced struct {
	inner  location.Provider
	config OTelConfig

	// notified counts callbacks run during the current Navigate.
	notified atomic.Int64
}

func (w *traced) Subscribe(cb func()) func() {
	return w.inner.Subscribe(func() {
		w.notified.Add(1)
		cb()
	})
}

func (w *traced) Snapshot() location.Location {
	return w.inner.Snapshot()
}

func (w *traced) Navigate(target string, opts ...location.NavigateOption) {
	if w.config.Filter != nil && !w.config.Filter(target) {
		w.inner.Navigate(target, opts...)
		return
	}

	o := location.ApplyOptions(opts...)
	from := w.inner.Snapshot()

	attrs := []attribute.KeyValue{
		attribute.String("boom.from", from.String()),
		attribute.String("boom.target", target),
		attribute.Bool("boom.replace", o.Replace),
	}
	if w.config.IncludeState && o.State != nil {
		attrs = append(attrs, attribute.String("boom.state_type", fmt.Sprintf("%T", o.State)))
	}

	_, span := w.config.tracer.Start(context.Background(), "boom.navigate",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	w.notified.Store(0)
	w.inner.Navigate(target, opts...)
	to := w.inner.Snapshot()

	span.SetAttributes(
		attribute.String("boom.to", to.String()),
		attribute.Int64("boom.notified", w.notified.Load()),
	)
	if to.Equal(from) {
		span.SetAttributes(attribute.Bool("boom.unchanged", true))
	}
	if w.config.AttributeExtractor != nil {
		span.SetAttributes(w.config.AttributeExtractor(from, to)...)
	}
	span.SetStatus(codes.Ok, "")
}

func (w *traced) Href(path string) string {
	return location.Href(w.inner, path)
}

func (w *traced) Unwrap() location.Provider {
	return w.inner
}
