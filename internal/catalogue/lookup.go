// =============================================================================
// Catalogue Generator - Catalogue Lookup
// =============================================================================
//
// The catalogue exists so a level loader can translate model object IDs
// between engine generations: column i of a row is the model's ID in engine
// generation i. This package performs that translation directly on a parsed
// catalogue, which lets the CLI answer "what is TR1 model 12 in TR4?" without
// compiling the generated declaration.
//
// =============================================================================

package catalogue

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/catalogue-generator/internal/types"
)

// NotFound is returned by ConvertID when no row matches.
const NotFound = -1

// Engine is an engine generation, i.e. a catalogue column index.
type Engine int

const (
	TR1 Engine = iota
	TR2
	TR3
	TR4
	TR5
)

var engineNames = [...]string{"TR1", "TR2", "TR3", "TR4", "TR5"}

// String returns the engine name, e.g. "TR3".
func (e Engine) String() string {
	if e < TR1 || e > TR5 {
		return fmt.Sprintf("Engine(%d)", int(e))
	}
	return engineNames[e]
}

// ParseEngine accepts "TR3", "tr3" or "3".
func ParseEngine(s string) (Engine, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "TR")

	n, err := strconv.Atoi(name)
	if err != nil || n < 1 || n > len(engineNames) {
		return 0, fmt.Errorf("unknown engine %q (want TR1..TR5)", s)
	}
	return Engine(n - 1), nil
}

// ConvertID returns the id of the model in engine to whose id in engine
// from is id. The first matching row wins. It returns NotFound when no row
// matches. Rows whose from field is not an integer never match, and neither
// does a negative id: -1 marks a model absent from an engine.
func ConvertID(cat *types.Catalogue, from, to Engine, id int) int {
	if id < 0 {
		return NotFound
	}

	for _, row := range cat.Rows {
		if int(from) >= len(row.Fields) || int(to) >= len(row.Fields) {
			continue
		}

		v, err := strconv.Atoi(strings.TrimSpace(row.Fields[from]))
		if err != nil || v != id {
			continue
		}

		out, err := strconv.Atoi(strings.TrimSpace(row.Fields[to]))
		if err != nil {
			return NotFound
		}
		return out
	}
	return NotFound
}

// ConvertIDs converts every id and drops those without a counterpart.
// When from == to the ids are returned unchanged in a new slice.
func ConvertIDs(cat *types.Catalogue, from, to Engine, ids []int) []int {
	out := make([]int, 0, len(ids))

	if from == to {
		return append(out, ids...)
	}

	for _, id := range ids {
		if converted := ConvertID(cat, from, to, id); converted != NotFound {
			out = append(out, converted)
		}
	}
	return out
}
