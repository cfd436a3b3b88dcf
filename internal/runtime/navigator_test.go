package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/tales/internal/runtime"
	"github.com/aretw0/tales/internal/testutils"
	"github.com/aretw0/tales/pkg/domain"
	"github.com/aretw0/tales/pkg/dsl"
	"github.com/aretw0/tales/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forkGraph(t *testing.T) *domain.Graph {
	t.Helper()
	b := dsl.New("S1")
	b.Add("S1").Title("Fork").Text("Left or right?").Choice("Left", "S2").Choice("Right", "S3")
	b.Add("S2").Title("Left Ending").Ending()
	b.Add("S3").Title("Right Ending").Ending()
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func TestNavigator_Traverse_Fork(t *testing.T) {
	g := forkGraph(t)
	nav := runtime.NewNavigator()

	title, err := nav.Traverse(context.Background(), g, testutils.NewScriptedChooser(1))
	require.NoError(t, err)
	assert.Equal(t, "Left Ending", title)

	title, err = nav.Traverse(context.Background(), g, testutils.NewScriptedChooser(2))
	require.NoError(t, err)
	assert.Equal(t, "Right Ending", title)
}

func TestNavigator_Traverse_BoundsMatchOptions(t *testing.T) {
	chooser := testutils.NewScriptedChooser(2)
	_, err := runtime.NewNavigator().Traverse(context.Background(), forkGraph(t), chooser)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{1, 2}}, chooser.Bounds)
}

func TestNavigator_Traverse_Deterministic(t *testing.T) {
	b := dsl.New("a")
	b.Add("a").Title("A").Choice("to b", "b").Choice("to c", "c")
	b.Add("b").Title("B").Choice("to c", "c").Choice("to d", "d").Choice("back to a", "a")
	b.Add("c").Title("C").Choice("to d", "d").Choice("to e", "e")
	b.Add("d").Title("Ending D").Ending()
	b.Add("e").Title("Ending E").Ending()
	g := b.MustBuild()

	nav := runtime.NewNavigator()
	picks := []int{1, 3, 2, 2}

	var results []string
	for i := 0; i < 5; i++ {
		presenter := &testutils.RecordingPresenter{}
		nav := runtime.NewNavigator(runtime.WithPresenter(presenter))
		title, err := nav.Traverse(context.Background(), g, testutils.NewScriptedChooser(picks...))
		require.NoError(t, err)
		results = append(results, title)
		assert.Equal(t, []string{"a", "b", "a", "c", "e"}, presenter.Visited)
	}
	for _, r := range results {
		assert.Equal(t, "Ending E", r)
	}

	title, err := nav.Traverse(context.Background(), g, testutils.NewScriptedChooser(picks...))
	require.NoError(t, err)
	assert.Equal(t, "Ending E", title)
}

func TestNavigator_Traverse_CycleExitsOnlyByChoice(t *testing.T) {
	b := dsl.New("X")
	b.Add("X").Title("Room X").Choice("Go to Y", "Y").Choice("Stay", "X")
	b.Add("Y").Title("Room Y").Choice("Back to X", "X").Choice("Climb out", "out")
	b.Add("out").Title("Fresh Air").Ending()
	g := b.MustBuild()

	presenter := &testutils.RecordingPresenter{}
	nav := runtime.NewNavigator(runtime.WithPresenter(presenter))

	// Loop X -> Y -> X -> X -> Y several times before exiting.
	chooser := testutils.NewScriptedChooser(1, 1, 2, 1, 1, 1, 2)
	title, err := nav.Traverse(context.Background(), g, chooser)
	require.NoError(t, err)
	assert.Equal(t, "Fresh Air", title)
	assert.Equal(t, 0, chooser.Remaining())
	assert.Equal(t, []string{"X", "Y", "X", "X", "Y", "X", "Y", "out"}, presenter.Visited)

	// Without a way out the traversal only ends when input does.
	_, err = nav.Traverse(context.Background(), g, testutils.NewScriptedChooser(1, 1, 1, 1))
	assert.ErrorIs(t, err, domain.ErrInputExhausted)
}

func TestNavigator_Traverse_MissingNode(t *testing.T) {
	g, err := domain.NewGraph("A1",
		domain.Node{ID: "A1", Title: "Edge of the Map", Options: []domain.Option{
			{Text: "Walk off the map", Target: "Z9"},
		}},
	)
	require.NoError(t, err)

	_, err = runtime.NewNavigator().TraverseStory(context.Background(), "Broken", g, testutils.NewScriptedChooser(1))
	require.Error(t, err)

	var integrityErr *domain.GraphIntegrityError
	require.True(t, errors.As(err, &integrityErr))
	assert.Equal(t, domain.IntegrityMissingNode, integrityErr.Kind)
	assert.Equal(t, "Z9", integrityErr.NodeID)
	assert.Equal(t, "Broken", integrityErr.Story)
}

func TestNavigator_Traverse_InputExhausted(t *testing.T) {
	_, err := runtime.NewNavigator().Traverse(context.Background(), forkGraph(t), testutils.NewScriptedChooser())
	assert.ErrorIs(t, err, domain.ErrInputExhausted)
}

func TestNavigator_Traverse_BadPickFromChooser(t *testing.T) {
	chooser := ports.ChooserFunc(func(ctx context.Context, min, max int) (int, error) {
		return max + 1, nil
	})
	_, err := runtime.NewNavigator().Traverse(context.Background(), forkGraph(t), chooser)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside [1, 2]")
}

func TestNavigator_Traverse_StartIsEnding(t *testing.T) {
	g, err := domain.NewGraph("only", domain.Node{ID: "only", Title: "Before It Began", Ending: true})
	require.NoError(t, err)

	chooser := testutils.NewScriptedChooser()
	title, err := runtime.NewNavigator().Traverse(context.Background(), g, chooser)
	require.NoError(t, err)
	assert.Equal(t, "Before It Began", title)
	assert.Empty(t, chooser.Bounds)
}

func TestNavigator_Traverse_StepLimit(t *testing.T) {
	b := dsl.New("X")
	b.Add("X").Title("X").Choice("loop", "X").Choice("leave", "end")
	b.Add("end").Title("End").Ending()

	nav := runtime.NewNavigator(runtime.WithMaxSteps(3))
	_, err := nav.Traverse(context.Background(), b.MustBuild(), testutils.NewScriptedChooser(1, 1, 1, 1, 2))
	assert.ErrorIs(t, err, domain.ErrStepLimit)
}

func TestNavigator_Traverse_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runtime.NewNavigator().Traverse(ctx, forkGraph(t), testutils.NewScriptedChooser(1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNavigator_LifecycleHooks(t *testing.T) {
	var entered []string
	var picks []int
	var started, ended []*domain.TraversalEvent

	hooks := domain.LifecycleHooks{
		OnTraversalStart: func(ctx context.Context, e *domain.TraversalEvent) { started = append(started, e) },
		OnNodeEnter:      func(ctx context.Context, e *domain.NodeEvent) { entered = append(entered, e.NodeID) },
		OnChoice:         func(ctx context.Context, e *domain.ChoiceEvent) { picks = append(picks, e.Pick) },
		OnEnding:         func(ctx context.Context, e *domain.TraversalEvent) { ended = append(ended, e) },
	}

	nav := runtime.NewNavigator(runtime.WithLifecycleHooks(hooks))
	_, err := nav.TraverseStory(context.Background(), "Fork Story", forkGraph(t), testutils.NewScriptedChooser(2))
	require.NoError(t, err)

	assert.Equal(t, []string{"S1", "S3"}, entered)
	assert.Equal(t, []int{2}, picks)
	require.Len(t, started, 1)
	require.Len(t, ended, 1)
	assert.Equal(t, "S1", started[0].NodeID)
	assert.Equal(t, "S3", ended[0].NodeID)
	assert.Equal(t, 1, ended[0].Steps)
	assert.Equal(t, "Fork Story", ended[0].Story)
	assert.NotEmpty(t, ended[0].RunID)
	assert.Equal(t, started[0].RunID, ended[0].RunID)
}

func TestNavigator_PresenterError(t *testing.T) {
	failing := presenterFunc(func(ctx context.Context, story string, node domain.Node) error {
		return errors.New("terminal gone")
	})
	_, err := runtime.NewNavigator(runtime.WithPresenter(failing)).Traverse(context.Background(), forkGraph(t), testutils.NewScriptedChooser(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal gone")
}

type presenterFunc func(ctx context.Context, story string, node domain.Node) error

func (f presenterFunc) Present(ctx context.Context, story string, node domain.Node) error {
	return f(ctx, story, node)
}
