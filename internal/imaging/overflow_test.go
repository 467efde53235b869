package imaging

import "testing"

func TestOverflow_FromFloat(t *testing.T) {
	tests := []struct {
		in       float64
		wrap     uint8
		saturate uint8
	}{
		{0, 0, 0},
		{127.9, 127, 127},
		{255, 255, 255},
		{262.65, 6, 255},
		{-0.5, 0, 0},
		{-1, 255, 0},
		{-127.5, 129, 0},
		{512, 0, 255},
	}

	for _, tt := range tests {
		if got := Wrap.fromFloat(tt.in); got != tt.wrap {
			t.Errorf("Wrap.fromFloat(%g): got %d, want %d", tt.in, got, tt.wrap)
		}
		if got := Saturate.fromFloat(tt.in); got != tt.saturate {
			t.Errorf("Saturate.fromFloat(%g): got %d, want %d", tt.in, got, tt.saturate)
		}
	}
}

func TestOverflow_Sub(t *testing.T) {
	if got := Wrap.sub(0, 255); got != 1 {
		t.Errorf("Wrap.sub(0,255): got %d, want 1", got)
	}
	if got := Saturate.sub(0, 255); got != 0 {
		t.Errorf("Saturate.sub(0,255): got %d, want 0", got)
	}
	if got := Wrap.add(255, 1); got != 0 {
		t.Errorf("Wrap.add(255,1): got %d, want 0", got)
	}
	if got := Saturate.add(255, 1); got != 255 {
		t.Errorf("Saturate.add(255,1): got %d, want 255", got)
	}
}

func TestOverflow_String(t *testing.T) {
	if Wrap.String() != "wrap" || Saturate.String() != "saturate" {
		t.Errorf("got %q and %q", Wrap.String(), Saturate.String())
	}
}

func TestBuildOptions_DefaultsToWrap(t *testing.T) {
	if got := buildOptions(nil).overflow; got != Wrap {
		t.Errorf("default overflow: got %v, want wrap", got)
	}
	if got := buildOptions([]Option{WithOverflow(Saturate)}).overflow; got != Saturate {
		t.Errorf("overflow: got %v, want saturate", got)
	}
}
