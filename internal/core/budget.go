package core

// UpsertBudget applies the one-budget-per-category rule: the first entry
// whose Category matches b is replaced, later entries for the same category
// are dropped, and b is appended when no entry matches. The input slice is
// not modified.
func UpsertBudget(budgets []Budget, b Budget) []Budget {
	out := make([]Budget, 0, len(budgets)+1)
	replaced := false
	for _, existing := range budgets {
		if existing.Category != b.Category {
			out = append(out, existing)
			continue
		}
		if !replaced {
			out = append(out, b)
			replaced = true
		}
	}
	if !replaced {
		out = append(out, b)
	}
	return out
}

// FindBudget returns the budget stored for category, if any.
func FindBudget(budgets []Budget, category string) (Budget, bool) {
	for _, b := range budgets {
		if b.Category == category {
			return b, true
		}
	}
	return Budget{}, false
}
