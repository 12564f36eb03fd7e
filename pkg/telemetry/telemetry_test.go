package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitWithoutEndpoint(t *testing.T) {
	ctx := context.Background()
	shutdown, err := Init(ctx, "pathweaver-test", "0.0.0", "")
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	// Spans must be creatable against the installed provider.
	_, span := otel.Tracer("test").Start(ctx, "noop")
	span.End()

	assert.NoError(t, shutdown(ctx))
}

func TestInitWithEndpoint(t *testing.T) {
	shutdown, err := Init(context.Background(), "pathweaver-test", "0.0.0", "http://127.0.0.1:4318")
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	// Nothing listens on the endpoint; shut down with a canceled
	// context so the flush gives up immediately.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}
