package sharedutil

func ToSet[T comparable](ts []T) map[T]struct{} {
	set := make(map[T]struct{}, len(ts))
	for _, t := range ts {
		set[t] = struct{}{}
	}
	return set
}

// Reorder items and return a new slice.
// idxToMove must contain only valid indexes into items, and no repeats
func ReorderItems[T any](items []T, idxToMove []int, insertIdx int) []T {
	idxToMoveSet := ToSet(idxToMove)

	newItems := make([]T, 0, len(items))

	// collect items that will end up before the insertion set
	i := 0
	for ; i < len(items); i++ {
		if insertIdx == i {
			break
		}
		if _, ok := idxToMoveSet[i]; !ok {
			newItems = append(newItems, items[i])
		}
	}

	for _, idx := range idxToMove {
		newItems = append(newItems, items[idx])
	}

	for ; i < len(items); i++ {
		if _, ok := idxToMoveSet[i]; !ok {
			newItems = append(newItems, items[i])
		}
	}

	return newItems
}

// Move is a single "move the item at From to just before the item at To"
// step, the same operation the engine's playlist-move command performs.
type Move struct {
	From, To int
}

// MovesToReorder returns the moves that turn current into target.
// Both slices must hold the same items; equal returns whether two items match.
func MovesToReorder[T any](current, target []T, equal func(a, b T) bool) []Move {
	work := append([]T(nil), current...)
	var moves []Move
	for t := range target {
		from := -1
		for i := t; i < len(work); i++ {
			if equal(work[i], target[t]) {
				from = i
				break
			}
		}
		if from < 0 || from == t {
			continue
		}
		moves = append(moves, Move{From: from, To: t})
		item := work[from]
		copy(work[t+1:from+1], work[t:from])
		work[t] = item
	}
	return moves
}
