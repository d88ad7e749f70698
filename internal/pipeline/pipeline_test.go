package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

// recordingStep appends its name to a shared log and optionally fails.
type recordingStep struct {
	name string
	err  error
	log  *[]string
}

func (s *recordingStep) Name() string { return s.name }

func (s *recordingStep) Do(_ context.Context, _ *Evaluation) error {
	*s.log = append(*s.log, s.name)
	return s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("runs steps in order", func(t *testing.T) {
		t.Parallel()

		var calls []string
		p := New(WithLogger(discardLogger()))
		p.AddStep(&recordingStep{name: "first", log: &calls})
		p.AddSteps(&recordingStep{name: "second", log: &calls}, &recordingStep{name: "third", log: &calls})

		ev := NewEvaluation("https://example.com/")
		if err := p.Execute(context.Background(), ev); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"first", "second", "third"}
		if len(calls) != len(want) {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
		for i := range want {
			if calls[i] != want[i] || ev.PerformedSteps[i] != want[i] {
				t.Errorf("step %d: calls=%q performed=%q, want %q", i, calls[i], ev.PerformedSteps[i], want[i])
			}
		}
	})

	t.Run("stops at first error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		var calls []string
		p := New(WithLogger(discardLogger()))
		p.AddSteps(
			&recordingStep{name: "fetch", err: boom, log: &calls},
			&recordingStep{name: "score", log: &calls},
		)

		ev := NewEvaluation("https://example.com/")
		err := p.Execute(context.Background(), ev)
		if !errors.Is(err, boom) {
			t.Fatalf("err = %v, want boom", err)
		}
		if !errors.Is(ev.Err, boom) {
			t.Errorf("ev.Err = %v, want boom", ev.Err)
		}
		if len(calls) != 1 {
			t.Errorf("expected later steps to be skipped, calls = %v", calls)
		}
		if len(ev.PerformedSteps) != 0 {
			t.Errorf("failed step must not be recorded as performed: %v", ev.PerformedSteps)
		}
	})

	t.Run("cancelled context runs nothing", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var calls []string
		p := New(WithLogger(discardLogger()))
		p.AddStep(&recordingStep{name: "fetch", log: &calls})

		ev := NewEvaluation("https://example.com/")
		if err := p.Execute(ctx, ev); !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
		if len(calls) != 0 {
			t.Errorf("calls = %v", calls)
		}
	})

	t.Run("default logger", func(t *testing.T) {
		t.Parallel()

		p := New()
		if p.logger == nil {
			t.Error("expected default logger")
		}
	})
}

func TestPipelineStepNames(t *testing.T) {
	t.Parallel()

	var calls []string
	p := New()
	p.AddSteps(&recordingStep{name: "fetch", log: &calls}, &recordingStep{name: "score", log: &calls})

	if p.StepCount() != 2 {
		t.Errorf("StepCount() = %d", p.StepCount())
	}
	names := p.StepNames()
	if len(names) != 2 || names[0] != "fetch" || names[1] != "score" {
		t.Errorf("StepNames() = %v", names)
	}
}
