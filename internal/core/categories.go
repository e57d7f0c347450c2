package core

// DefaultCategories returns the seed set written on first initialization.
func DefaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "Salary", Type: Income, Icon: "💰", Color: "#10b981"},
		{ID: "2", Name: "Freelance", Type: Income, Icon: "💻", Color: "#3b82f6"},
		{ID: "3", Name: "Investment", Type: Income, Icon: "📈", Color: "#8b5cf6"},
		{ID: "4", Name: "Food & Dining", Type: Expense, Icon: "🍕", Color: "#ef4444"},
		{ID: "5", Name: "Transportation", Type: Expense, Icon: "🚗", Color: "#f59e0b"},
		{ID: "6", Name: "Shopping", Type: Expense, Icon: "🛍️", Color: "#ec4899"},
		{ID: "7", Name: "Entertainment", Type: Expense, Icon: "🎬", Color: "#6366f1"},
		{ID: "8", Name: "Utilities", Type: Expense, Icon: "💡", Color: "#84cc16"},
		{ID: "9", Name: "Healthcare", Type: Expense, Icon: "🏥", Color: "#06b6d4"},
		{ID: "10", Name: "Education", Type: Expense, Icon: "📚", Color: "#8b5cf6"},
	}
}

// CategoriesOfType keeps categories of type t, preserving declaration order.
// Duplicate names are allowed and kept.
func CategoriesOfType(categories []Category, t TransactionType) []Category {
	var out []Category
	for _, c := range categories {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}
