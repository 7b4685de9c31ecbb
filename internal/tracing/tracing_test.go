package tracing

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestEndedSpansAreLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	p := NewProvider(true, "moviedeck-test", logger)
	_, span := p.Tracer("test").Start(context.Background(), "tmdb.ListPopular")
	span.SetAttributes(attribute.String("source", "fallback"))
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Span finished", entry.Message)
	assert.Equal(t, "tmdb.ListPopular", entry.Data["span"])
	assert.Equal(t, "fallback", entry.Data["source"])
}

func TestSpansAreQuietAboveDebug(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)

	p := NewProvider(true, "moviedeck-test", logger)
	_, span := p.Tracer("test").Start(context.Background(), "quiet")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))

	assert.Empty(t, hook.AllEntries())
}

func TestDisabledProvider(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	p := NewProvider(false, "moviedeck-test", logger)
	_, span := p.Tracer("test").Start(context.Background(), "noop")
	span.End()

	assert.False(t, span.SpanContext().IsValid())
	assert.NoError(t, p.Shutdown(context.Background()))
	assert.Empty(t, hook.AllEntries())
}
