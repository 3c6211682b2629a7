package extract

import "strings"

// anchored pulls the fragment between an anchor string and an end marker
// out of raw document text. When numChars is non-zero the fragment is a
// fixed-width slice after the anchor instead, truncated at the end of the
// text when the width runs past it. Returns "" when the anchor is
// missing, the remaining text is too short, or the computed end does not
// land strictly after the start.
func anchored(text, start, end string, numChars int) string {
	startPos := strings.Index(text, start)
	endPos := 0

	if startPos > 0 {
		if numChars > 0 {
			if len(text) > startPos+numChars+1 {
				endPos = startPos + len(start) + numChars
			}
		} else {
			if len(text) > startPos+len(start)+1 {
				rel := strings.Index(text[startPos+len(start)+1:], end)
				if rel >= 0 {
					endPos = startPos + len(start) + 1 + rel
				} else {
					endPos = -1
				}
			}
		}
	}

	if startPos >= endPos {
		return ""
	}
	if endPos > len(text) {
		endPos = len(text)
	}

	frag := text[startPos+len(start) : endPos]
	frag = strings.ReplaceAll(frag, "\r", "")
	frag = strings.ReplaceAll(frag, "\n", "")
	return strings.TrimSpace(frag)
}

// anchoredLine is the common case: capture from the anchor to the next
// line break.
func anchoredLine(text, start string) string {
	return anchored(text, start, "\r\n", 0)
}

// containsAny reports whether any needle occurs in text.
func containsAny(text string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
