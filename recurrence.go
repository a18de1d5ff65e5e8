package finanzas

import "iter"

// Occurrences expands a recurring rule into its occurrence dates within the
// closed window [from, to].
//
// Expansion begins at the later of the rule's start and the window's start,
// then advances by the rule's frequency step until it passes the earlier of
// the rule's end (when set) and the window's end. Month-based frequencies use
// calendar-month arithmetic, clamping month-end start dates (the 31st recurs
// on the 28th in February).
//
// The sequence is lazy, finite for any finite window, and restartable: each
// call is independent, so the same rule can be expanded for many windows.
// An unrecognized frequency stops the expansion rather than looping.
func Occurrences(rule RecurringRule, from, to Date) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		end := to
		if !rule.End.IsZero() {
			end = MinDate(rule.End, to)
		}
		for on := MaxDate(rule.Start, from); !on.After(end); {
			if !yield(on) {
				return
			}
			next, ok := rule.Frequency.Next(on)
			if !ok {
				// Unknown frequency: stop rather than loop.
				return
			}
			on = next
		}
	}
}
