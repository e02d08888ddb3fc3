package vocab

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	missingDefinition = "Definition not provided."
)

var (
	wordHeadingRe    = regexp.MustCompile(`^##\s+(\d+)\.\s+(.+)$`)
	phrasalHeadingRe = regexp.MustCompile(`^###\s+(\d+)\.\s+(.+)$`)

	bulletPrefixRe  = regexp.MustCompile(`^[-*]\s*`)
	posTagRe        = regexp.MustCompile(`(?i)^\((adj|verb|noun|adverb|prep|conj)\)\s*`)
	examplePrefixRe = regexp.MustCompile(`(?i)^Example:\s*`)
	exampleBulletRe = regexp.MustCompile(`(?i)^-\s*Example:`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// block is one numbered entry: the heading number, the term and the raw
// lines that follow it up to the next heading.
type block struct {
	index int
	term  string
	lines []string
}

// ParseWords parses the words document. Each entry starts with a
// "## N. term" heading followed by "- " definition bullets and
// "- Example:" bullets.
func ParseWords(markdown string) []LearningItem {
	var items []LearningItem
	for _, b := range splitBlocks(markdown, wordHeadingRe) {
		var definitions, examples []string
		for _, line := range nonEmptyTrimmed(b.lines) {
			if !strings.HasPrefix(line, "- ") {
				continue
			}
			if exampleBulletRe.MatchString(line) {
				examples = append(examples, cleanInline(line))
			} else {
				definitions = append(definitions, cleanInline(line))
			}
		}

		meaning := strings.Join(definitions, "; ")
		if meaning == "" {
			meaning = missingDefinition
		}
		example := fallbackExample(b.term)
		if len(examples) > 0 && examples[0] != "" {
			example = examples[0]
		}

		items = append(items, LearningItem{
			ID:       fmt.Sprintf("w-%03d", b.index),
			Type:     TypeWord,
			Category: CategoryWords,
			Term:     b.term,
			Meaning:  meaning,
			Example:  example,
		})
	}
	return items
}

// ParsePhrasalVerbs parses the phrasal verbs document. Each entry starts
// with a "### N. term" heading. The first plain line is the meaning and the
// first line starting with "*" is the example.
func ParsePhrasalVerbs(markdown string) []LearningItem {
	var items []LearningItem
	for _, b := range splitBlocks(markdown, phrasalHeadingRe) {
		var meaningLine, exampleLine string
		for _, line := range nonEmptyTrimmed(b.lines) {
			if strings.HasPrefix(line, "### ") {
				continue
			}
			if strings.HasPrefix(line, "*") {
				if exampleLine == "" {
					exampleLine = line
				}
			} else if meaningLine == "" {
				meaningLine = line
			}
		}

		if meaningLine == "" {
			meaningLine = missingDefinition
		}
		if exampleLine == "" {
			exampleLine = fallbackExample(b.term)
		}

		items = append(items, LearningItem{
			ID:       fmt.Sprintf("pv-%03d", b.index),
			Type:     TypePhrasalVerb,
			Category: CategoryPhrasalVerbs,
			Term:     b.term,
			Meaning:  cleanInline(meaningLine),
			Example:  cleanInline(exampleLine),
		})
	}
	return items
}

// splitBlocks cuts the document at every heading line matching re. Text
// before the first heading is dropped.
func splitBlocks(markdown string, re *regexp.Regexp) []block {
	var blocks []block
	var current *block
	for _, raw := range strings.Split(markdown, "\n") {
		line := strings.TrimRight(raw, "\r")
		if m := re.FindStringSubmatch(line); m != nil {
			idx, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			blocks = append(blocks, block{index: idx, term: strings.TrimSpace(m[2])})
			current = &blocks[len(blocks)-1]
			continue
		}
		if current != nil {
			current.lines = append(current.lines, line)
		}
	}
	return blocks
}

func nonEmptyTrimmed(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// cleanInline strips list markers, part-of-speech tags, an "Example:" label
// and emphasis, and collapses whitespace.
func cleanInline(text string) string {
	text = bulletPrefixRe.ReplaceAllString(text, "")
	text = posTagRe.ReplaceAllString(text, "")
	text = examplePrefixRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "*", "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func fallbackExample(term string) string {
	return fmt.Sprintf("Example sentence for %s.", term)
}
