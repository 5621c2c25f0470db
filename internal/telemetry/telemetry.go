// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package telemetry wraps each pipeline stage in an OpenTelemetry span
// opened on the global tracer provider. NewStdoutProvider builds a
// provider that prints spans to stdout; cmd/docref does not install it,
// so spans go to whichever provider is registered globally (the
// OpenTelemetry no-op provider unless one is set).
package telemetry

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const tracerName = "docref"

// NewStdoutProvider builds a TracerProvider that prints spans to stdout.
// Callers must call Shutdown(ctx) before exit to flush buffered spans.
func NewStdoutProvider() (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	return sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter)), nil
}

// RunID mints a correlation id for one pipeline invocation. StartStage
// attaches it to every stage span; log lines do not carry it.
func RunID() string {
	return uuid.NewString()
}

// StartStage opens a span named "docref.<stage>" carrying runID as an
// attribute.
func StartStage(ctx context.Context, stage, runID string) (context.Context, oteltrace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "docref."+stage,
		oteltrace.WithAttributes(attribute.String("run_id", runID)))
}
