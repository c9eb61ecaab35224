// Package extract locates structured payload regions inside raw model
// responses. The service wraps payloads in prose or code fences often enough
// that extraction is a separate, fallible phase: "no region found" is a
// distinct condition from "region found but invalid", which is the schema
// package's job to report.
package extract

import (
	"strings"

	"github.com/floww-ai/backend/internal/entity"
)

// JSONObject returns the leftmost balanced outermost brace-delimited region
// of raw. Brace counting skips braces inside JSON string literals. When no
// region opens, or the first region never closes, an *entity.ExtractionError
// carrying the raw text is returned so the caller can surface it verbatim.
func JSONObject(raw string) (string, error) {
	start := strings.IndexByte(raw, '{')
	if start == -1 {
		return "", &entity.ExtractionError{RawText: raw}
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
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

	// Region opened but never closed.
	return "", &entity.ExtractionError{RawText: raw}
}

// StripFence removes a surrounding markdown code fence, with an optional
// language tag, from a non-JSON structured text payload such as a mermaid
// diagram description. Text without a fence is returned trimmed.
func StripFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	// Drop the language tag on the opening fence line, if any.
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		firstLine := strings.TrimSpace(text[:idx])
		if firstLine != "" && !strings.ContainsAny(firstLine, " \t") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
