package hw

import (
	"errors"
	"testing"
)

func TestFakeInputSample(t *testing.T) {
	f := NewFakeInput(true, false, true)

	want := []bool{true, false, true, true}
	for i, w := range want {
		got, err := f.Sample()
		if err != nil {
			t.Fatalf("sample %d: unexpected error: %v", i, err)
		}
		if got != w {
			t.Errorf("sample %d: got %v, want %v", i, got, w)
		}
	}
}

func TestFakeInputNoLevels(t *testing.T) {
	f := NewFakeInput()

	if _, err := f.Sample(); err == nil {
		t.Error("expected error with no levels")
	}
}

func TestFakeInputError(t *testing.T) {
	f := NewFakeInput(true)
	f.SampleError = errors.New("simulated error")

	_, err := f.Sample()
	if err == nil || err.Error() != "simulated error" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFakeInputSetAndReset(t *testing.T) {
	f := NewFakeInput(true, false)
	f.Sample()
	f.Reset()

	if got, _ := f.Sample(); got != true {
		t.Errorf("after reset: got %v, want true", got)
	}

	f.Set(false)
	for i := 0; i < 3; i++ {
		if got, _ := f.Sample(); got != false {
			t.Errorf("after set, sample %d: got %v, want false", i, got)
		}
	}
}

func TestFakeOutput(t *testing.T) {
	f := NewFakeOutput(false)

	f.Drive(true)
	f.Drive(true)
	f.Drive(false)

	level, err := f.DrivenLevel()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if level {
		t.Error("expected low after last drive")
	}
	if len(f.History) != 3 {
		t.Errorf("history: got %d entries, want 3", len(f.History))
	}
	if n := f.Toggles(false); n != 2 {
		t.Errorf("toggles: got %d, want 2", n)
	}
}

func TestFakeOutputErrors(t *testing.T) {
	f := NewFakeOutput(true)
	f.DriveError = errors.New("bus stuck")

	if err := f.Drive(false); err == nil {
		t.Error("expected drive error")
	}
	if !f.Level {
		t.Error("failed drive must not change the level")
	}

	f.ReadError = errors.New("read failed")
	if _, err := f.DrivenLevel(); err == nil {
		t.Error("expected read error")
	}
}

func TestFaultsUnwrap(t *testing.T) {
	cause := errors.New("EIO")

	var out error = &OutputFault{Op: "drive", Err: cause}
	if !errors.Is(out, cause) {
		t.Error("OutputFault should unwrap to its cause")
	}
	if out.Error() != "output fault: drive: EIO" {
		t.Errorf("unexpected message: %q", out.Error())
	}

	var in error = &InputFault{Op: "sample", Err: cause}
	var fault *InputFault
	if !errors.As(in, &fault) || fault.Op != "sample" {
		t.Error("InputFault should be matchable with errors.As")
	}
}
