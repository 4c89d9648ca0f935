package schema

import (
	"errors"
	"strings"
)

// ErrNoJSONObject means the model output contained no balanced JSON object.
var ErrNoJSONObject = errors.New("no JSON object found in model output")

// fenceMarkers are the code-fence prefixes models like to wrap JSON in.
var fenceMarkers = []string{"```json", "```JSON", "```"}

// stripFences removes markdown code fences from around the payload.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	for _, m := range fenceMarkers {
		if strings.HasPrefix(s, m) {
			s = strings.TrimSpace(s[len(m):])
			break
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}

// extractJSONObject scans for the first balanced JSON object. A plain
// brace counter breaks on string contents like "usage: {}", so the scanner
// tracks in-string and escape state and only counts structural braces.
func extractJSONObject(raw string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if start < 0 {
			if c == '{' {
				start = i
				depth = 1
			}
			continue
		}

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
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], nil
			}
		}
	}

	return "", ErrNoJSONObject
}
