package taskpad

import "sort"

// SortByCreated returns a copy ordered newest first.
func SortByCreated(tasks []Task) []Task {
	sorted := append([]Task(nil), tasks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt > sorted[j].CreatedAt
	})
	return sorted
}

// SortByPriority returns a copy ordered high to low. Tasks without a
// priority sort with low ones, unknown values after them; ties keep their
// relative order.
func SortByPriority(tasks []Task) []Task {
	sorted := append([]Task(nil), tasks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority.Rank() > sorted[j].Priority.Rank()
	})
	return sorted
}
