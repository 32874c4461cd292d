package dupscan

import (
	"encoding/json"
	"fmt"
	"io"
)

const createdLayout = "2006-01-02T15:04:05.000Z07:00"

// WriteText prints the human-readable summary.
func (r Report) WriteText(w io.Writer) error {
	pw := &printer{w: w}

	pw.printf("Total records found: %d\n", r.Total)
	if len(r.Groups) == 0 {
		pw.printf("No duplicate names found.\n")
	} else {
		pw.printf("\nFound %d potential duplicates:\n", len(r.Groups))
		for i, g := range r.Groups {
			pw.printf("\n%d. Duplicate name: %q\n", i+1, g.Name)
			for j, e := range []Entry{g.Original, g.Duplicate} {
				pw.printf("   %d. ID: %s, Created: %s\n", j+1, e.ID, formatCreated(e))
			}
		}
	}
	if r.Truncated {
		pw.printf("\nWarning: the batch was truncated; duplicates beyond it were not checked.\n")
	}

	return pw.err
}

// WriteJSON writes the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func formatCreated(e Entry) string {
	if e.CreatedAt == nil {
		return "unknown"
	}
	return e.CreatedAt.UTC().Format(createdLayout)
}

// printer keeps the first write error so callers check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
