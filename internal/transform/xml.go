package transform

import (
	"errors"
	"strings"
)

// FormatXML reindents an XML document with two-space indentation per depth
// level. Text content stays inline with its enclosing tags. The formatter
// validates only what it needs: angle-bracket framing, tag closure, and
// balanced depth.
func FormatXML(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", errors.New("empty XML input")
	}
	if !strings.HasPrefix(trimmed, "<") || !strings.HasSuffix(trimmed, ">") {
		return "", errors.New("invalid XML: must start with '<' and end with '>'")
	}

	var formatted strings.Builder
	depth := 0
	lastWasText := false
	chars := []rune(trimmed)

	for i := 0; i < len(chars); {
		switch {
		case chars[i] == '<':
			tagEnd := i
			for tagEnd < len(chars) && chars[tagEnd] != '>' {
				tagEnd++
			}
			if tagEnd >= len(chars) {
				return "", errors.New("invalid XML: unclosed tag found")
			}

			tag := string(chars[i+1 : tagEnd])
			isClosing := strings.HasPrefix(tag, "/")
			isSelfClosing := strings.HasSuffix(tag, "/")

			if isClosing {
				depth--
				// A closing tag after inline text stays on the same line.
				if !lastWasText {
					formatted.WriteByte('\n')
					formatted.WriteString(strings.Repeat("  ", max(depth, 0)))
				}
				lastWasText = false
			} else {
				if formatted.Len() > 0 {
					formatted.WriteByte('\n')
				}
				formatted.WriteString(strings.Repeat("  ", max(depth, 0)))
				if !isSelfClosing {
					depth++
				}
				lastWasText = false
			}

			formatted.WriteString(string(chars[i : tagEnd+1]))
			i = tagEnd + 1

		case !isXMLSpace(chars[i]):
			textStart := i
			for i < len(chars) && chars[i] != '<' {
				i++
			}
			content := strings.TrimSpace(string(chars[textStart:i]))
			if content != "" {
				formatted.WriteString(content)
				lastWasText = true
			}

		default:
			i++
		}
	}

	if depth != 0 {
		return "", errors.New("invalid XML: unbalanced tags detected")
	}

	return formatted.String(), nil
}

func isXMLSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
