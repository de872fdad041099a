package gfx

import (
	"errors"
	"testing"
)

func TestFrameStateString(t *testing.T) {
	tests := []struct {
		s    FrameState
		want string
	}{
		{FrameIdle, "Idle"},
		{FrameOpen, "FrameOpen"},
		{FrameClosed, "FrameClosed"},
		{FrameState(9), "FrameState(9)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("FrameState(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestFrameCycleHappyPath(t *testing.T) {
	var f FrameCycle
	var calls []string

	for i := range 3 {
		ok, err := f.Begin(func() (bool, error) {
			calls = append(calls, "begin")
			return true, nil
		})
		if !ok || err != nil {
			t.Fatalf("frame %d: Begin() = %v, %v", i, ok, err)
		}
		if f.State() != FrameOpen {
			t.Fatalf("State() = %v, want FrameOpen", f.State())
		}
		if err := f.End(func() error { calls = append(calls, "end"); return nil }); err != nil {
			t.Fatalf("End() = %v", err)
		}
		if f.State() != FrameClosed {
			t.Fatalf("State() = %v, want FrameClosed", f.State())
		}
		if err := f.Present(func() error { calls = append(calls, "present"); return nil }); err != nil {
			t.Fatalf("Present() = %v", err)
		}
		if f.State() != FrameIdle {
			t.Fatalf("State() = %v, want Idle", f.State())
		}
	}
	if f.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", f.Frames())
	}
	if len(calls) != 9 {
		t.Errorf("hooks called %d times, want 9", len(calls))
	}
}

func TestFrameCycleNilHooks(t *testing.T) {
	var f FrameCycle
	if ok, err := f.Begin(nil); !ok || err != nil {
		t.Fatalf("Begin(nil) = %v, %v", ok, err)
	}
	if err := f.End(nil); err != nil {
		t.Fatalf("End(nil) = %v", err)
	}
	if err := f.Present(nil); err != nil {
		t.Fatalf("Present(nil) = %v", err)
	}
}

func TestFrameCycleRejections(t *testing.T) {
	var f FrameCycle
	called := false
	hook := func() error { called = true; return nil }

	if err := f.End(hook); !errors.Is(err, ErrFrameNotOpen) {
		t.Errorf("End() on Idle = %v, want ErrFrameNotOpen", err)
	}
	if err := f.Present(hook); !errors.Is(err, ErrNoFrame) {
		t.Errorf("Present() on Idle = %v, want ErrNoFrame", err)
	}
	if f.State() != FrameIdle {
		t.Errorf("State() = %v after rejections, want Idle", f.State())
	}

	f.Begin(nil)
	if ok, err := f.Begin(nil); ok || !errors.Is(err, ErrFrameInProgress) {
		t.Errorf("Begin() on FrameOpen = %v, %v, want false, ErrFrameInProgress", ok, err)
	}
	if err := f.Present(hook); !errors.Is(err, ErrFrameNotEnded) {
		t.Errorf("Present() on FrameOpen = %v, want ErrFrameNotEnded", err)
	}
	if f.State() != FrameOpen {
		t.Errorf("State() = %v, want FrameOpen", f.State())
	}

	f.End(nil)
	if ok, err := f.Begin(nil); ok || !errors.Is(err, ErrFrameInProgress) {
		t.Errorf("Begin() on FrameClosed = %v, %v, want false, ErrFrameInProgress", ok, err)
	}
	if err := f.End(hook); !errors.Is(err, ErrFrameNotOpen) {
		t.Errorf("End() on FrameClosed = %v, want ErrFrameNotOpen", err)
	}
	if f.State() != FrameClosed {
		t.Errorf("State() = %v, want FrameClosed", f.State())
	}
	if called {
		t.Error("hook called for a rejected transition")
	}
}

func TestFrameCycleBeginDeclined(t *testing.T) {
	var f FrameCycle
	ok, err := f.Begin(func() (bool, error) { return false, nil })
	if ok || err != nil {
		t.Fatalf("Begin() = %v, %v, want false, nil", ok, err)
	}
	if f.State() != FrameIdle {
		t.Errorf("State() = %v, want Idle", f.State())
	}
	if f.Skipped() != 1 {
		t.Errorf("Skipped() = %d, want 1", f.Skipped())
	}
	// A later attempt may succeed.
	if ok, err := f.Begin(nil); !ok || err != nil {
		t.Errorf("Begin() after skip = %v, %v", ok, err)
	}
}

func TestFrameCycleHookErrors(t *testing.T) {
	boom := errors.New("boom")

	var f FrameCycle
	if ok, err := f.Begin(func() (bool, error) { return false, boom }); ok || !errors.Is(err, boom) {
		t.Errorf("Begin() = %v, %v, want false, boom", ok, err)
	}
	if f.State() != FrameIdle {
		t.Errorf("State() after Begin error = %v, want Idle", f.State())
	}

	f.Begin(nil)
	if err := f.End(func() error { return boom }); !errors.Is(err, boom) {
		t.Errorf("End() = %v, want boom", err)
	}
	if f.State() != FrameIdle {
		t.Errorf("State() after End error = %v, want Idle", f.State())
	}

	f.Begin(nil)
	f.End(nil)
	if err := f.Present(func() error { return boom }); !errors.Is(err, boom) {
		t.Errorf("Present() = %v, want boom", err)
	}
	if f.State() != FrameIdle {
		t.Errorf("State() after Present error = %v, want Idle", f.State())
	}
	if f.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0", f.Frames())
	}
}

func TestFrameCycleClose(t *testing.T) {
	tests := []struct {
		name      string
		prepare   func(f *FrameCycle)
		wantAbort bool
	}{
		{"idle", func(*FrameCycle) {}, false},
		{"open", func(f *FrameCycle) { f.Begin(nil) }, true},
		{"ended", func(f *FrameCycle) { f.Begin(nil); f.End(nil) }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FrameCycle
			tt.prepare(&f)
			aborted := 0
			if !f.Close(func() { aborted++ }) {
				t.Fatal("first Close() = false, want true")
			}
			if f.Close(func() { aborted++ }) {
				t.Error("second Close() = true, want false")
			}
			if got := aborted > 0; got != tt.wantAbort {
				t.Errorf("abort called = %v, want %v", got, tt.wantAbort)
			}
			if aborted > 1 {
				t.Errorf("abort called %d times", aborted)
			}
			if !f.Closed() {
				t.Error("Closed() = false")
			}
			if ok, err := f.Begin(nil); ok || !errors.Is(err, ErrDeviceClosed) {
				t.Errorf("Begin() after Close = %v, %v", ok, err)
			}
			if err := f.End(nil); !errors.Is(err, ErrDeviceClosed) {
				t.Errorf("End() after Close = %v", err)
			}
			if err := f.Present(nil); !errors.Is(err, ErrDeviceClosed) {
				t.Errorf("Present() after Close = %v", err)
			}
		})
	}
}
