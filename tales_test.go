package tales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/tales"
	"github.com/aretw0/tales/internal/testutils"
	"github.com/aretw0/tales/pkg/adapters/memory"
	"github.com/aretw0/tales/pkg/catalog"
	"github.com/aretw0/tales/pkg/domain"
	"github.com/aretw0/tales/pkg/dsl"
	"github.com/aretw0/tales/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func forkCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	b := dsl.New("S1")
	b.Add("S1").Title("Start").Choice("A", "S2").Choice("B", "S3")
	b.Add("S2").Title("Ending A").Ending()
	b.Add("S3").Title("Ending B").Ending()

	c, err := catalog.New(catalog.Entry{Name: "Fork", Graph: b.MustBuild()})
	require.NoError(t, err)
	return c
}

func TestEngine_PlayRecordsOutcome(t *testing.T) {
	rec := memory.NewRecorder()
	presenter := &testutils.RecordingPresenter{}
	eng, err := tales.New(
		tales.WithCatalog(forkCatalog(t)),
		tales.WithRecorder(rec),
		tales.WithPresenter(presenter),
		tales.WithClock(func() time.Time { return fixedNow }),
	)
	require.NoError(t, err)

	outcome, err := eng.Play(context.Background(), 1, "Ada", testutils.NewScriptedChooser(2))
	require.NoError(t, err)
	assert.Equal(t, domain.NewOutcome("Ada", "Fork", "Ending B", fixedNow), outcome)
	assert.Equal(t, []string{"S1", "S3"}, presenter.Visited)

	history, err := eng.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10-16T12:00:00Z | Player: Ada | Story: Fork | Ending: Ending B"}, history)
}

func TestEngine_DefaultCatalog(t *testing.T) {
	eng, err := tales.New(tales.WithRecorder(memory.NewRecorder()))
	require.NoError(t, err)
	assert.Equal(t, 3, eng.Catalog().Len())
}

func TestEngine_PersistenceFailureKeepsOutcome(t *testing.T) {
	rec := memory.NewRecorder()
	rec.FailWith = errors.New("read-only filesystem")
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	eng, err := tales.New(tales.WithCatalog(forkCatalog(t)), tales.WithRecorder(rec), tales.WithMetrics(m))
	require.NoError(t, err)

	outcome, err := eng.Play(context.Background(), 1, "Ada", testutils.NewScriptedChooser(1))
	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "Ending A", outcome.Ending)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Records.WithLabelValues("memory_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Endings.WithLabelValues("Fork", "S2")))
}

func TestEngine_PlayErrors(t *testing.T) {
	rec := memory.NewRecorder()
	eng, err := tales.New(tales.WithCatalog(forkCatalog(t)), tales.WithRecorder(rec))
	require.NoError(t, err)

	_, err = eng.Play(context.Background(), 2, "Ada", testutils.NewScriptedChooser(1))
	assert.ErrorIs(t, err, catalog.ErrIndexOutOfRange)

	_, err = eng.Play(context.Background(), 1, "Ada", testutils.NewScriptedChooser())
	assert.ErrorIs(t, err, domain.ErrInputExhausted)
	assert.Equal(t, 0, rec.Len(), "incomplete traversals are not recorded")
}

func TestEngine_Hooks(t *testing.T) {
	var endings []string
	eng, err := tales.New(
		tales.WithCatalog(forkCatalog(t)),
		tales.WithRecorder(memory.NewRecorder()),
		tales.WithLifecycleHooks(domain.LifecycleHooks{
			OnEnding: func(_ context.Context, e *domain.TraversalEvent) { endings = append(endings, e.NodeID) },
		}),
	)
	require.NoError(t, err)

	_, err = eng.Play(context.Background(), 1, "Ada", testutils.NewScriptedChooser(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"S2"}, endings)
}
