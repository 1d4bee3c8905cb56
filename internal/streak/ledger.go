package streak

import "sort"

// Ledger is the in-memory record of exempted dates and the monthly quota.
// It is the single place where day-off decisions are made; the store loads a
// Ledger inside a transaction, applies a mutation, and persists the outcome.
//
// All operations are total: they report success or failure through their
// return value and never partially mutate the ledger.
type Ledger struct {
	Limit   int
	records map[string]struct{}
}

// NewLedger creates a ledger with the given monthly quota and any
// already-recorded dates. Duplicate dates collapse to one record.
func NewLedger(limit int, dates ...string) *Ledger {
	l := &Ledger{Limit: limit, records: make(map[string]struct{}, len(dates))}
	for _, d := range dates {
		l.records[d] = struct{}{}
	}
	return l
}

// IsDayOff reports whether date is exempted from streak-breaking.
func (l *Ledger) IsDayOff(date string) bool {
	_, ok := l.records[date]
	return ok
}

// UsedIn counts recorded day-offs whose month prefix equals month (YYYY-MM).
func (l *Ledger) UsedIn(month string) int {
	n := 0
	for d := range l.records {
		if MonthOf(d) == month {
			n++
		}
	}
	return n
}

// CanTake reports whether a day off may be taken for today. A date that is
// already recorded can never be taken again, regardless of remaining quota.
func (l *Ledger) CanTake(today string) bool {
	if l.IsDayOff(today) {
		return false
	}
	return l.UsedIn(MonthOf(today)) < l.Limit
}

// Take records today as a day off. Reports false, without mutating, when
// today is already recorded or the monthly quota is spent.
func (l *Ledger) Take(today string) bool {
	if !l.CanTake(today) {
		return false
	}
	l.records[today] = struct{}{}
	return true
}

// Undo removes today from the records and reports whether a removal occurred.
func (l *Ledger) Undo(today string) bool {
	if !l.IsDayOff(today) {
		return false
	}
	delete(l.records, today)
	return true
}

// Purge drops every record whose month prefix differs from month and returns
// the dropped dates. Purged exemptions are gone for good: a streak gap
// evaluated after the purge no longer sees them, even if the gap spans the
// month boundary.
func (l *Ledger) Purge(month string) []string {
	var removed []string
	for d := range l.records {
		if MonthOf(d) != month {
			removed = append(removed, d)
			delete(l.records, d)
		}
	}
	sort.Strings(removed)
	return removed
}

// Dates returns the recorded dates in sorted order.
func (l *Ledger) Dates() []string {
	dates := make([]string, 0, len(l.records))
	for d := range l.records {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

func (l *Ledger) Len() int {
	return len(l.records)
}
