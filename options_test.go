package gfx

import "testing"

func TestExtentEmpty(t *testing.T) {
	tests := []struct {
		e    Extent
		want bool
	}{
		{Extent{}, true},
		{Extent{Width: 10}, true},
		{Extent{Height: 10}, true},
		{Extent{Width: 1, Height: 1}, false},
		{DefaultCanvasSize, false},
	}
	for _, tt := range tests {
		if got := tt.e.Empty(); got != tt.want {
			t.Errorf("%v.Empty() = %v, want %v", tt.e, got, tt.want)
		}
	}
}

func TestExtentString(t *testing.T) {
	if got := (Extent{Width: 800, Height: 600}).String(); got != "800x600" {
		t.Errorf("String() = %q, want %q", got, "800x600")
	}
}

func TestCanvasOptionsNormalize(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "Demo", "Demo"},
		{"empty", "", ""},
		{"control", "a\tb\nc\x00", "abc"},
		// "e" + combining acute accent composes to U+00E9.
		{"nfc", "Cafe\u0301", "Caf\u00e9"},
		{"unicode", "Окно 窗口", "Окно 窗口"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := CanvasOptions{
				Title:    tt.title,
				Position: Point{X: 5, Y: 7},
				Size:     Extent{Width: 3, Height: 4},
			}
			got := in.Normalize()
			if got.Title != tt.want {
				t.Errorf("Normalize().Title = %q, want %q", got.Title, tt.want)
			}
			if got.Position != in.Position || got.Size != in.Size {
				t.Errorf("Normalize() changed geometry: %+v", got)
			}
			if in.Title != tt.title {
				t.Errorf("Normalize() modified receiver: %q", in.Title)
			}
		})
	}
}
