package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestNoOpIsSilent(t *testing.T) {
	// NoOp has nothing to assert against beyond "doesn't panic": exercise
	// every method to be sure the interface is satisfied cleanly.
	var p Progress = NoOp{}
	p.Stage("Layers", 10)
	p.Step()
	p.Done()
}

func TestNewThermometerDefaultsWidth(t *testing.T) {
	var buf bytes.Buffer
	tm := NewThermometer(&buf, 0)
	if tm.width != 30 {
		t.Fatalf("a non-positive barWidth should default to 30, got %d", tm.width)
	}
}

func TestStageRendersLabelAtZeroPercent(t *testing.T) {
	var buf bytes.Buffer
	tm := NewThermometer(&buf, 10)
	tm.Stage("Layers", 4)

	out := buf.String()
	if !strings.Contains(out, "Layers") {
		t.Fatalf("expected the stage name in the rendered frame, got %q", out)
	}
	if !strings.Contains(out, "0%") {
		t.Fatalf("a freshly started stage should render at 0%%, got %q", out)
	}
	if strings.Count(out, "#") != 0 {
		t.Fatalf("a freshly started stage should have no filled bar segments, got %q", out)
	}
}

func TestStepAdvancesFillAndPercentage(t *testing.T) {
	var buf bytes.Buffer
	tm := NewThermometer(&buf, 10)
	tm.Stage("Layers", 4)
	buf.Reset()

	tm.Step()
	buf.Reset()
	tm.Step()

	out := buf.String()
	if !strings.Contains(out, "50%") {
		t.Fatalf("2 of 4 steps should render 50%%, got %q", out)
	}
	if got := strings.Count(out, "#"); got != 5 {
		t.Fatalf("2/4 progress at width 10 should fill 5 segments, got %d (%q)", got, out)
	}
	if got := strings.Count(out, "."); got != 5 {
		t.Fatalf("2/4 progress at width 10 should leave 5 empty segments, got %d (%q)", got, out)
	}
}

func TestStepWithZeroTotalDoesNotRender(t *testing.T) {
	var buf bytes.Buffer
	tm := NewThermometer(&buf, 10)
	tm.Stage("Unknown", 0)
	buf.Reset()

	tm.Step()
	if buf.Len() != 0 {
		t.Fatalf("stepping a stage with an unknown total should not render, got %q", buf.String())
	}
}

func TestStageSeparatesConsecutiveStagesWithNewline(t *testing.T) {
	var buf bytes.Buffer
	tm := NewThermometer(&buf, 10)
	tm.Stage("Slicing", 2)
	tm.Stage("Perimeters", 2)

	out := buf.String()
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("a second Stage call should emit exactly 1 separating newline, got %q", out)
	}
	if !strings.Contains(out, "Perimeters") {
		t.Fatalf("expected the new stage name in the output, got %q", out)
	}
}

func TestDoneIsNoopBeforeAnyStage(t *testing.T) {
	var buf bytes.Buffer
	tm := NewThermometer(&buf, 10)
	tm.Done()
	if buf.Len() != 0 {
		t.Fatalf("Done before any Stage should write nothing, got %q", buf.String())
	}
}

func TestDoneEmitsTrailingNewlineAfterStage(t *testing.T) {
	var buf bytes.Buffer
	tm := NewThermometer(&buf, 10)
	tm.Stage("Layers", 1)
	tm.Done()
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Fatalf("Done after a stage should leave a trailing newline, got %q", buf.String())
	}
}
