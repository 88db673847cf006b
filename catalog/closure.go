package catalog

import (
	"gocart/models"

	"gorm.io/gorm"
)

// Closure returns rootID plus the ids of every active category reachable
// from it through parent links. The walk is iterative over an adjacency
// map and keeps a visited set, so it terminates even if the parent graph
// has been corrupted into a cycle.
func Closure(categories []models.Category, rootID uint) []uint {
	children := make(map[uint][]uint, len(categories))
	for _, cat := range categories {
		if cat.ParentID != nil {
			children[*cat.ParentID] = append(children[*cat.ParentID], cat.ID)
		}
	}

	visited := map[uint]bool{rootID: true}
	result := []uint{rootID}
	stack := []uint{rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range children[id] {
			if visited[child] {
				continue
			}
			visited[child] = true
			result = append(result, child)
			stack = append(stack, child)
		}
	}
	return result
}

// ClosureIDs fetches all active categories in one query and resolves the
// closure of rootID in memory, avoiding a round-trip per tree level.
func ClosureIDs(database *gorm.DB, rootID uint) ([]uint, error) {
	var categories []models.Category
	if err := database.Where("is_active = ?", true).Find(&categories).Error; err != nil {
		return nil, err
	}
	return Closure(categories, rootID), nil
}

// WouldCycle reports whether re-parenting category id under newParentID
// would create a cycle, i.e. whether newParentID lies in id's own subtree.
func WouldCycle(categories []models.Category, id uint, newParentID uint) bool {
	for _, descendant := range Closure(categories, id) {
		if descendant == newParentID {
			return true
		}
	}
	return false
}
