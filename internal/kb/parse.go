package kb

import "strings"

// Parse extracts question/answer records from a loosely structured text
// document. A question block starts with "Q:" and an answer block with "A:"
// (case-insensitive); either may wrap across physical lines until a blank
// line or the next marker. Malformed or incomplete entries are dropped, so
// Parse never fails — at worst it returns no records.
//
// A question with no answer before end of input is dropped. A second "Q:"
// before any answer overwrites the pending question. "A:" with nothing after
// it is a valid, empty answer and is still emitted.
func Parse(text string) []Record {
	var (
		records  []Record
		buf      []string
		pendingQ string
		haveQ    bool
	)

	flush := func() {
		if len(buf) == 0 {
			return
		}
		joined := strings.TrimSpace(strings.Join(buf, " "))
		buf = buf[:0]

		switch {
		case hasMarker(joined, "q:"):
			pendingQ = strings.TrimSpace(joined[2:])
			haveQ = true
		case haveQ && hasMarker(joined, "a:"):
			records = append(records, Record{
				Question: strings.ToLower(pendingQ),
				Answer:   strings.TrimSpace(joined[2:]),
			})
			pendingQ = ""
			haveQ = false
		}
		// Anything else is stray text outside a Q/A block; drop it.
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		if len(buf) > 0 && (hasMarker(line, "q:") || hasMarker(line, "a:")) {
			flush()
		}
		buf = append(buf, line)
	}
	flush()

	return records
}

func hasMarker(s, marker string) bool {
	return len(s) >= 2 && strings.EqualFold(s[:2], marker)
}
