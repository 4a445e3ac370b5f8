package dialogue

import (
	"regexp"
	"strconv"
	"strings"
)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

var digitsRe = regexp.MustCompile(`\d+`)

// Filler phrases stripped from the front of a name utterance, longest first.
var nameFillers = []string{
	"my name is", "the name is", "name is", "call me", "this is",
	"i am", "i'm", "im", "it's", "its",
}

var (
	orderWords   = []string{"order", "yes", "yeah", "sure", "start", "hungry", "want", "ready", "hi", "hello"}
	confirmWords = []string{"confirm", "yes", "correct", "yeah", "sure", "ok", "okay"}
	cancelWords  = []string{"cancel", "no", "restart", "stop", "nope"}
	menuWords    = []string{"menu", "options", "what do you have", "what's available", "soups"}
	noneWords    = []string{"no protein", "none", "nothing", "skip", "no"}
	moreWords    = []string{"yes", "another", "more", "add", "again"}
	addWords     = []string{"yes", "add", "confirm", "correct", "sure", "ok", "okay", "yeah"}
)

var checkoutWords = []string{
	"checkout", "check out", "place order", "place my order", "place the order",
	"that's all", "that is all", "done", "finish", "no",
}

// ParseQuantity reads a plate count from text. Number words one..ten are
// checked first and any digit sequence overrides them. Defaults to 1.
func ParseQuantity(text string) int {
	n, _ := findQuantity(text)
	return n
}

func findQuantity(text string) (int, bool) {
	qty, found := 1, false
	for _, w := range strings.Fields(cleanWords(text)) {
		if n, ok := numberWords[w]; ok {
			qty, found = n, true
			break
		}
	}
	if m := digitsRe.FindString(text); m != "" {
		if n, err := strconv.Atoi(m); err == nil && n > 0 {
			qty, found = n, true
		}
	}
	return qty, found
}

// ExtractName strips a leading filler phrase and surrounding punctuation.
// The result is empty when nothing usable remains.
func ExtractName(text string) string {
	name := strings.TrimSpace(text)
	lower := strings.ToLower(name)
	for _, f := range nameFillers {
		if lower == f {
			return ""
		}
		if strings.HasPrefix(lower, f+" ") {
			name = strings.TrimSpace(name[len(f):])
			break
		}
	}
	name = strings.Trim(strings.TrimSpace(name), ".,!?;:\"'")
	return strings.Join(strings.Fields(name), " ")
}

// hasAny reports whether text contains any of the phrases as whole words.
func hasAny(text string, phrases []string) bool {
	padded := " " + cleanWords(text) + " "
	for _, p := range phrases {
		if strings.Contains(padded, " "+p+" ") {
			return true
		}
	}
	return false
}

// cleanWords lowercases and turns punctuation other than apostrophes into spaces.
func cleanWords(text string) string {
	text = strings.ToLower(text)
	text = strings.Map(func(r rune) rune {
		switch {
		case r == '\'':
			return r
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r > 127:
			return r
		default:
			return ' '
		}
	}, text)
	return strings.Join(strings.Fields(text), " ")
}
