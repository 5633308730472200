package atlas

import "testing"

func TestPad(t *testing.T) {
	tests := []struct {
		name           string
		w, h           int
		padding        int
		divisibleByTwo bool
		want           Sides
		wantW, wantH   int
	}{
		{"no padding", 3, 5, 0, false, Sides{}, 3, 5},
		{"uniform", 3, 5, 2, false, Uniform(2), 7, 9},
		{"even stays", 4, 6, 1, true, Uniform(1), 6, 8},
		{"odd width biased left", 3, 4, 1, true, Sides{Left: 2, Right: 1, Up: 1, Down: 1}, 6, 6},
		{"odd height biased up", 4, 3, 0, true, Sides{Up: 1}, 4, 4},
		{"both odd", 5, 7, 0, true, Sides{Left: 1, Up: 1}, 6, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ss := Pad([]Sprite{NewSprite("s", tt.w, tt.h)}, tt.padding, tt.divisibleByTwo)
			s := ss[0]
			if s.Padding != tt.want {
				t.Errorf("Padding = %+v, want %+v", s.Padding, tt.want)
			}
			if s.Padded.Width != tt.wantW || s.Padded.Height != tt.wantH {
				t.Errorf("Padded = %dx%d, want %dx%d", s.Padded.Width, s.Padded.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestPadRoundTrip(t *testing.T) {
	for _, padding := range []int{0, 1, 2, 3} {
		for _, div := range []bool{false, true} {
			ss := Pad(makeSprites([2]int{1, 1}, [2]int{3, 8}, [2]int{7, 2}, [2]int{10, 11}), padding, div)
			for _, s := range ss {
				if got := s.Padded.Width - s.Padding.Horizontal(); got != s.Real.Width {
					t.Errorf("padding=%d div=%v %s: width round trip %d, want %d", padding, div, s.Name, got, s.Real.Width)
				}
				if got := s.Padded.Height - s.Padding.Vertical(); got != s.Real.Height {
					t.Errorf("padding=%d div=%v %s: height round trip %d, want %d", padding, div, s.Name, got, s.Real.Height)
				}
				if div && (s.Padded.Width%2 != 0 || s.Padded.Height%2 != 0) {
					t.Errorf("padding=%d %s: padded %dx%d not even", padding, s.Name, s.Padded.Width, s.Padded.Height)
				}
			}
		}
	}
}
