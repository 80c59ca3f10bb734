package contract

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lendwell/ledger/internal/ledger"
)

// FeeSchedule maps days-past-due ranges to late-fee multipliers. It is built
// once per contract and immutable afterwards.
type FeeSchedule struct {
	ranges []feeRange
}

type feeRange struct {
	start      int
	end        int // ignored when unbounded
	unbounded  bool
	multiplier decimal.Decimal
}

var one = decimal.NewFromInt(1)

// ParseFeeSchedule parses a JSON object mapping range keys to multipliers.
// A key is either "start-end" or "start+" for the unbounded tail, e.g.
// {"1-7":0.25,"8-10":0.5,"10+":1.0}. The ranges must start at 1, be
// contiguous, and carry exactly one unbounded entry; every multiplier must be
// within [0,1].
func ParseFeeSchedule(raw string) (*FeeSchedule, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ledger.Configf("late fee schedule is empty")
	}

	var entries map[string]decimal.Decimal
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, ledger.Configf("late fee schedule is not a valid JSON object: %v", err)
	}

	if len(entries) == 0 {
		return nil, ledger.Configf("late fee schedule has no entries")
	}

	ranges := make([]feeRange, 0, len(entries))

	unboundedCount := 0

	for key, mult := range entries {
		r, err := parseRangeKey(key)
		if err != nil {
			return nil, err
		}

		if mult.IsNegative() || mult.GreaterThan(one) {
			return nil, ledger.Configf("late fee schedule key %q: multiplier %s outside [0,1]", key, mult)
		}

		if r.unbounded {
			unboundedCount++
		}

		r.multiplier = mult
		ranges = append(ranges, r)
	}

	if unboundedCount != 1 {
		return nil, ledger.Configf("late fee schedule must have exactly one unbounded (\"+\") entry, got %d", unboundedCount)
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i].start < ranges[j].start })

	if ranges[0].start != 1 {
		return nil, ledger.Configf("late fee schedule key %q: smallest range must start at 1", formatRange(ranges[0]))
	}

	for i := 0; i < len(ranges)-1; i++ {
		cur, next := ranges[i], ranges[i+1]
		if cur.unbounded {
			return nil, ledger.Configf("late fee schedule key %q: unbounded range must come last", formatRange(cur))
		}

		if next.unbounded {
			// The tail may begin exactly where the last bounded range ends
			// (it wins the shared day) or immediately after it.
			if next.start != cur.end && next.start != cur.end+1 {
				return nil, ledger.Configf("late fee schedule key %q: gap before unbounded range %q",
					formatRange(cur), formatRange(next))
			}

			continue
		}

		if cur.end+1 != next.start {
			return nil, ledger.Configf("late fee schedule key %q: range not contiguous with %q",
				formatRange(cur), formatRange(next))
		}
	}

	return &FeeSchedule{ranges: ranges}, nil
}

func parseRangeKey(key string) (feeRange, error) {
	if tail, ok := strings.CutSuffix(key, "+"); ok {
		start, err := strconv.Atoi(tail)
		if err != nil || start < 1 {
			return feeRange{}, ledger.Configf("late fee schedule key %q: malformed unbounded range", key)
		}

		return feeRange{start: start, unbounded: true}, nil
	}

	startStr, endStr, found := strings.Cut(key, "-")
	if !found {
		return feeRange{}, ledger.Configf("late fee schedule key %q: expected \"start-end\" or \"start+\"", key)
	}

	start, err := strconv.Atoi(startStr)
	if err != nil || start < 1 {
		return feeRange{}, ledger.Configf("late fee schedule key %q: malformed range start", key)
	}

	end, err := strconv.Atoi(endStr)
	if err != nil {
		return feeRange{}, ledger.Configf("late fee schedule key %q: malformed range end", key)
	}

	if start >= end {
		return feeRange{}, ledger.Configf("late fee schedule key %q: start must be less than end", key)
	}

	return feeRange{start: start, end: end}, nil
}

func formatRange(r feeRange) string {
	if r.unbounded {
		return fmt.Sprintf("%d+", r.start)
	}

	return fmt.Sprintf("%d-%d", r.start, r.end)
}

// Multiplier returns the late-fee multiplier for the range containing
// daysPastDue. The unbounded tail matches any value at or past its start,
// including a day the last bounded range also covers. A loan not yet past
// due carries no multiplier.
func (s *FeeSchedule) Multiplier(daysPastDue int) decimal.Decimal {
	if daysPastDue < 1 {
		return decimal.Zero
	}

	tail := s.ranges[len(s.ranges)-1]
	if daysPastDue >= tail.start {
		return tail.multiplier
	}

	for _, r := range s.ranges[:len(s.ranges)-1] {
		if daysPastDue >= r.start && daysPastDue <= r.end {
			return r.multiplier
		}
	}

	return decimal.Zero
}

// Range is one parsed schedule entry. Unbounded marks the open tail; End is
// meaningless when Unbounded is set.
type Range struct {
	Start      int
	End        int
	Unbounded  bool
	Multiplier decimal.Decimal
}

// Ranges returns the parsed table in ascending order.
func (s *FeeSchedule) Ranges() []Range {
	out := make([]Range, len(s.ranges))
	for i, r := range s.ranges {
		out[i] = Range{Start: r.start, End: r.end, Unbounded: r.unbounded, Multiplier: r.multiplier}
	}

	return out
}
