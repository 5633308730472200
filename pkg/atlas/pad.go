package atlas

// Pad computes each sprite's packing footprint. Every border gets padding
// pixels; when divisibleByTwo is set and a padded dimension is odd, one
// extra pixel goes to the left or top border so both padded dimensions are
// even. Which side absorbs the extra pixel is part of the output format:
// consumers slice sprites with padding.left and padding.up.
func Pad(sprites []Sprite, padding int, divisibleByTwo bool) []Sprite {
	for i := range sprites {
		s := &sprites[i]
		p := Uniform(padding)
		w := s.Real.Width + p.Horizontal()
		h := s.Real.Height + p.Vertical()
		if divisibleByTwo {
			if w%2 != 0 {
				p.Left++
				w++
			}
			if h%2 != 0 {
				p.Up++
				h++
			}
		}
		s.Padding = p
		s.Padded = Rect{Width: w, Height: h}
	}
	return sprites
}
