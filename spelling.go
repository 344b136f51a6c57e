package sketch5

import (
	"slices"
	"strings"
)

// Spelling suggestions for unknown names use the edit-distance candidate
// search from Peter Norvig's spelling corrector: words one edit away, then
// (for short words) two edits away.

const suggestLetters = "abcdefghijklmnopqrstuvwxyz_"

func edits1(word string) map[string]struct{} {
	letters := suggestLetters
	if word == strings.ToUpper(word) {
		letters = strings.ToUpper(suggestLetters)
	}
	out := make(map[string]struct{})
	for i := 0; i <= len(word); i++ {
		left, right := word[:i], word[i:]
		if right != "" {
			out[left+right[1:]] = struct{}{}
		}
		if len(right) > 1 {
			out[left+right[1:2]+right[0:1]+right[2:]] = struct{}{}
		}
		for j := 0; j < len(letters); j++ {
			c := letters[j : j+1]
			if right != "" {
				out[left+c+right[1:]] = struct{}{}
			}
			out[left+c+right] = struct{}{}
		}
	}
	return out
}

func known(words map[string]struct{}, dict map[string]struct{}) []string {
	var out []string
	for w := range words {
		if _, ok := dict[w]; ok {
			out = append(out, w)
		}
	}
	slices.Sort(out)
	return out
}

// candidates returns dictionary words within one edit of word, or within two
// edits when word is at most 10 characters and nothing closer exists.
func candidates(word string, dict map[string]struct{}) []string {
	if _, ok := dict[word]; ok {
		return []string{word}
	}
	e1 := edits1(word)
	if c := known(e1, dict); len(c) > 0 {
		return c
	}
	if len(word) > 10 {
		return nil
	}
	e2 := make(map[string]struct{})
	for w := range e1 {
		for w2 := range edits1(w) {
			e2[w2] = struct{}{}
		}
	}
	return known(e2, dict)
}

// suggestions formats the candidates for word as `"a"`, `"a" or "b"`, or
// `"a", "b", or "c"`. It returns "" when nothing is close.
func suggestions(word string, words []string) string {
	dict := make(map[string]struct{}, len(words))
	for _, w := range words {
		dict[w] = struct{}{}
	}
	c := candidates(word, dict)
	quoted := make([]string, len(c))
	for i, w := range c {
		quoted[i] = `"` + w + `"`
	}
	switch len(quoted) {
	case 0:
		return ""
	case 1:
		return quoted[0]
	case 2:
		return quoted[0] + " or " + quoted[1]
	default:
		return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
	}
}

// unknownNameMsg builds `no <kind> named "word". Did you mean ...?`.
func unknownNameMsg(kind, word string, words []string) string {
	msg := `no ` + kind + ` named "` + word + `"`
	if word != "" && word[0] != '_' {
		if s := suggestions(word, words); s != "" {
			msg += ". Did you mean " + s + "?"
		}
	}
	return msg
}
