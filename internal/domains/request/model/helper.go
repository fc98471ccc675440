package model

import "time"

// SelectFocal picks the single request shown to a viewer on an item page:
// an approved request beats a pending one, which beats anything else; ties
// go to the most recently created.
func SelectFocal(requests []*BorrowRequest) *BorrowRequest {
	var focal *BorrowRequest

	for _, r := range requests {
		if focal == nil {
			focal = r
			continue
		}
		if rank(r.Status) > rank(focal.Status) {
			focal = r
			continue
		}
		if rank(r.Status) == rank(focal.Status) && r.CreatedAt.After(focal.CreatedAt) {
			focal = r
		}
	}

	return focal
}

func rank(s Status) int {
	switch s {
	case StatusApproved:
		return 2
	case StatusPending:
		return 1
	}
	return 0
}

// FilterHistory returns the requests that form an item's borrowing history.
func FilterHistory(requests []*BorrowRequest, now time.Time) []*BorrowRequest {
	history := make([]*BorrowRequest, 0)
	for _, r := range requests {
		if r.InHistory(now) {
			history = append(history, r)
		}
	}
	return history
}
