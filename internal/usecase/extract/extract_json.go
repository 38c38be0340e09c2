package extract

// extractJSONObject locates the first balanced {...} object embedded in
// arbitrary text by tracking brace depth outside quoted strings. Handles
// models that wrap JSON in prose or markdown code fences. Returns the
// candidate substring and whether one was found; it does not guarantee the
// substring is valid JSON — callers re-parse it.
func extractJSONObject(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if start != -1 {
				inString = true
			}
		case '{':
			if start == -1 {
				start = i
			}
			depth++
		case '}':
			if start == -1 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}
