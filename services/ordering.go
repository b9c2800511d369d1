package services

import (
	"fmt"

	"github.com/web-mahadihasan/TasksZen-Server/models"
)

// NextOrder returns the order for a task appended to a lane: one past the
// highest existing order, or 0 for an empty lane.
func NextOrder(laneTasks []models.Task) int {
	max := -1
	for _, t := range laneTasks {
		if t.Order > max {
			max = t.Order
		}
	}
	return max + 1
}

// InsertPosition returns where a task moved into a lane lands: the current
// task count, i.e. strictly at the end.
func InsertPosition(laneTasks []models.Task) int {
	return len(laneTasks)
}

// CheckDenseOrdering verifies that the orders of the given lane's tasks form
// exactly the set {0..n-1}: no gaps, no duplicates, nothing negative.
func CheckDenseOrdering(laneTasks []models.Task) error {
	seen := make([]bool, len(laneTasks))
	for _, t := range laneTasks {
		if t.Order < 0 || t.Order >= len(laneTasks) {
			return fmt.Errorf("order %d out of range for lane of %d tasks", t.Order, len(laneTasks))
		}
		if seen[t.Order] {
			return fmt.Errorf("duplicate order %d in lane", t.Order)
		}
		seen[t.Order] = true
	}
	return nil
}
