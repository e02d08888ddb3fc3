package vocab

import "testing"

const wordsDoc = `# Vocabulary

Some intro text that is not an entry.

## 1. abandon
- (verb) to leave behind *completely*
- to give up an idea
- Example: They had to **abandon** the car.

## 2. brisk
- (adj) quick and   energetic

## 12. candor
- Example: Her candor surprised everyone.
`

func TestParseWords(t *testing.T) {
	items := ParseWords(wordsDoc)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}

	tests := []struct {
		idx     int
		id      string
		term    string
		meaning string
		example string
	}{
		{0, "w-001", "abandon", "to leave behind completely; to give up an idea", "They had to abandon the car."},
		{1, "w-002", "brisk", "quick and energetic", "Example sentence for brisk."},
		{2, "w-012", "candor", "Definition not provided.", "Her candor surprised everyone."},
	}
	for _, tt := range tests {
		got := items[tt.idx]
		if got.ID != tt.id {
			t.Errorf("item %d: ID = %q, want %q", tt.idx, got.ID, tt.id)
		}
		if got.Term != tt.term {
			t.Errorf("item %d: Term = %q, want %q", tt.idx, got.Term, tt.term)
		}
		if got.Meaning != tt.meaning {
			t.Errorf("item %d: Meaning = %q, want %q", tt.idx, got.Meaning, tt.meaning)
		}
		if got.Example != tt.example {
			t.Errorf("item %d: Example = %q, want %q", tt.idx, got.Example, tt.example)
		}
		if got.Category != CategoryWords || got.Type != TypeWord {
			t.Errorf("item %d: category/type = %q/%q", tt.idx, got.Category, got.Type)
		}
	}
}

const phrasalDoc = "## Common phrasal verbs\r\n" +
	"\r\n" +
	"### 1. back up\r\n" +
	"To support someone.\r\n" +
	"Another line that is ignored.\r\n" +
	"*Example: My friends **backed me up**.*\r\n" +
	"\r\n" +
	"### 7. carry on\r\n" +
	"*She carried on talking.*\r\n"

func TestParsePhrasalVerbs(t *testing.T) {
	items := ParsePhrasalVerbs(phrasalDoc)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	first := items[0]
	if first.ID != "pv-001" || first.Term != "back up" {
		t.Errorf("first = %q/%q, want pv-001/back up", first.ID, first.Term)
	}
	if first.Meaning != "To support someone." {
		t.Errorf("Meaning = %q", first.Meaning)
	}
	if first.Example != "My friends backed me up." {
		t.Errorf("Example = %q", first.Example)
	}
	if first.Category != CategoryPhrasalVerbs || first.Type != TypePhrasalVerb {
		t.Errorf("category/type = %q/%q", first.Category, first.Type)
	}

	second := items[1]
	if second.ID != "pv-007" {
		t.Errorf("ID = %q, want pv-007", second.ID)
	}
	if second.Meaning != "Definition not provided." {
		t.Errorf("Meaning = %q, want fallback", second.Meaning)
	}
	if second.Example != "She carried on talking." {
		t.Errorf("Example = %q", second.Example)
	}
}

func TestParseWords_NoHeadings(t *testing.T) {
	if got := ParseWords("just text\n- a bullet\n"); len(got) != 0 {
		t.Errorf("got %d items, want 0", len(got))
	}
}

func TestCleanInline(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"- (noun) a thing", "a thing"},
		{"* (ADJ) bold", "bold"},
		{"- Example: hello   world", "hello world"},
		{"**strong** text", "strong text"},
		{"(prep) over", "over"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := cleanInline(tt.in); got != tt.want {
			t.Errorf("cleanInline(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
