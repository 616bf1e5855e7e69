package format

// TryGetExact returns want if it is among supported.
func TryGetExact(want Format, supported []Format) (Format, bool) {
	for _, f := range supported {
		if f == want {
			return f, true
		}
	}
	return Format{}, false
}

// GetCompatible picks the format from supported that want should be
// converted to when there is no exact match. Formats that only need
// their channels rearranged are preferred, then formats of the same
// class (alpha, greyscale, premultiplication) with the least loss of
// depth. Ties go to the earlier entry. It returns false if none of the
// supported formats can be converted to.
func GetCompatible(want Format, supported []Format) (Format, bool) {
	if f, ok := TryGetExact(want, supported); ok {
		return f, true
	}

	var best Format
	bestScore := -1
	for _, f := range supported {
		if !Convertible(want, f) {
			continue
		}
		if s := score(want, f); s > bestScore {
			best, bestScore = f, s
		}
	}
	return best, bestScore >= 0
}

func score(want, f Format) int {
	if want.Compatible(f) {
		return 1000
	}

	s := 500
	if want.HasAlpha() == f.HasAlpha() {
		s += 100
	}
	if want.IsGreyscale() == f.IsGreyscale() {
		s += 200
	}
	if want.IsPremultiplied() == f.IsPremultiplied() {
		s += 50
	}
	for sem := Red; sem < semanticCount; sem++ {
		wd, fd := want.Depth(sem), f.Depth(sem)
		switch {
		case wd == 0:
		case fd < wd:
			s -= 2 * (wd - fd)
		case fd > wd:
			s -= fd - wd
		}
	}
	return s
}
