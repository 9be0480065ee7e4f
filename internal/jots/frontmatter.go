package jots

import "strings"

const frontMatterFence = "---"

// SplitFrontMatter separates a leading front matter block from the body.
// The block must open on the first line with a line that is exactly "---"
// and close on the next such line; it is returned verbatim, fences
// included, without a trailing newline. When there is no block, or it is
// never closed, the whole text is the body and ok is false.
//
// The body has its leading blank lines and trailing whitespace removed.
func SplitFrontMatter(text string) (frontMatter string, body string, ok bool) {
	lines := strings.Split(text, "\n")
	if len(lines) > 1 && lines[0] == frontMatterFence {
		for i := 1; i < len(lines); i++ {
			if lines[i] != frontMatterFence {
				continue
			}
			frontMatter = strings.Join(lines[:i+1], "\n")
			body = strings.Join(lines[i+1:], "\n")
			return frontMatter, trimBody(body), true
		}
	}
	return "", trimBody(text), false
}

func trimBody(body string) string {
	body = strings.TrimRight(body, " \t\r\n")
	for {
		idx := strings.IndexByte(body, '\n')
		if idx < 0 || !isBlank(body[:idx]) {
			break
		}
		body = body[idx+1:]
	}
	if isBlank(body) {
		return ""
	}
	return body
}
