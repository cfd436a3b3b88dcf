package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/tales/internal/runtime"
	"github.com/aretw0/tales/internal/testutils"
	"github.com/aretw0/tales/pkg/domain"
	"github.com/aretw0/tales/pkg/dsl"
	"github.com/aretw0/tales/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forkGraph() *domain.Graph {
	b := dsl.New("S1")
	b.Add("S1").Title("Start").Choice("A", "S2").Choice("B", "S3")
	b.Add("S2").Title("Ending A").Ending()
	b.Add("S3").Title("Ending B").Ending()
	return b.MustBuild()
}

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	nav := runtime.NewNavigator(runtime.WithLifecycleHooks(m.Hooks()))
	_, err := nav.TraverseStory(context.Background(), "Fork", forkGraph(), testutils.NewScriptedChooser(2))
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Traversals.WithLabelValues("Fork")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NodeVisits.WithLabelValues("S1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NodeVisits.WithLabelValues("S3")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Choices.WithLabelValues("S1", "S3")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Endings.WithLabelValues("Fork", "S3")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Steps))
}

func TestMetrics_ObserveRecord(t *testing.T) {
	m := observability.NewMetrics(nil)

	m.ObserveRecord(nil)
	m.ObserveRecord(&domain.PersistenceError{Op: "append", Backend: "file", Err: errors.New("x")})
	m.ObserveRecord(errors.New("other"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Records.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Records.WithLabelValues("file_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Records.WithLabelValues("error")))
}

func TestChain_RunsInOrder(t *testing.T) {
	var calls []string
	first := domain.LifecycleHooks{
		OnNodeEnter: func(context.Context, *domain.NodeEvent) { calls = append(calls, "first") },
	}
	second := domain.LifecycleHooks{
		OnNodeEnter: func(context.Context, *domain.NodeEvent) { calls = append(calls, "second") },
		OnEnding:    func(context.Context, *domain.TraversalEvent) { calls = append(calls, "end") },
	}

	hooks := observability.Chain(first, domain.LifecycleHooks{}, second)
	require.NotNil(t, hooks.OnNodeEnter)
	assert.Nil(t, hooks.OnChoice)

	hooks.OnNodeEnter(context.Background(), &domain.NodeEvent{})
	hooks.OnEnding(context.Background(), &domain.TraversalEvent{})
	assert.Equal(t, []string{"first", "second", "end"}, calls)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	nav := runtime.NewNavigator(runtime.WithLifecycleHooks(observability.LoggingHooks(logger)))
	_, err := nav.TraverseStory(context.Background(), "Fork", forkGraph(), testutils.NewScriptedChooser(1))
	require.NoError(t, err)

	out := buf.String()
	for _, msg := range []string{"traversal_start", "node_enter", "choice", "ending"} {
		assert.True(t, strings.Contains(out, "msg="+msg), msg)
	}
	assert.Contains(t, out, "story=Fork")
}
