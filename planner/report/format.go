// Package report renders backend JSON into tool-facing shapes. It is purely
// presentational; no financial logic lives here.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	contractx "github.com/nowcapital/retirement-mcp/planner/contract"
)

var moneyPrinter = message.NewPrinter(language.English)

// YearlyCSV turns uniform per-year records into delimited text. Column order
// follows the first record's key order as the backend emitted it; a plain
// map decode would scramble it. Empty input yields an empty string.
func YearlyCSV(records []json.RawMessage) (string, error) {
	if len(records) == 0 {
		return "", nil
	}

	header, err := orderedKeys(records[0])
	if err != nil {
		return "", fmt.Errorf("read yearly record header: %w", err)
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, raw := range records {
		values, err := decodeRecord(raw)
		if err != nil {
			return "", fmt.Errorf("decode yearly record %d: %w", i, err)
		}
		row := make([]string, len(header))
		for j, key := range header {
			row[j] = formatCell(values[key])
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Narrative frames the computed monthly figure the way an agent can relay it
// verbatim: household total, mode, notable features, and the horizon.
func Narrative(h contractx.Household, monthly float64, deathAge int) string {
	total := h.Person1.Total() + h.Person2.Total()

	intro := moneyPrinter.Sprintf("Based on household assets of $%.2f", total)
	if h.Couple {
		intro += fmt.Sprintf(" (Couple: %s & %s)", h.Person1.Name, h.Person2.Name)
	} else {
		intro += fmt.Sprintf(" (Individual: %s)", h.Person1.Name)
	}

	var features []string
	if h.Person1.Pension.Enabled {
		features = append(features, moneyPrinter.Sprintf("DB Pension ($%.0f/yr)", h.Person1.Pension.Income))
	}
	if h.Person1.LIRA > 0 {
		features = append(features, "LIRA")
	}
	if h.Person1.EnableRRSPMeltdown {
		features = append(features, "RRSP Meltdown")
	}
	if len(features) > 0 {
		intro += fmt.Sprintf(" [Includes: %s]", strings.Join(features, ", "))
	}

	return moneyPrinter.Sprintf(
		"%s, you can sustainably spend approximately **$%.2f per month** (after-tax, inflation-adjusted, in today's dollars) until age %d.",
		intro, monthly, deathAge,
	)
}

// orderedKeys scans the object token by token so key order survives.
func orderedKeys(obj json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(obj))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("yearly record is not an object")
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in yearly record", tok)
		}
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func decodeRecord(raw json.RawMessage) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case json.Number:
		return val.String()
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
