package domain

// CategoryType classifies a category as money coming in or going out.
type CategoryType string

const (
	Income  CategoryType = "INCOME"
	Expense CategoryType = "EXPENSE"
)

// Category is a user-defined label for transactions and recurring rules.
type Category struct {
	CategoryID string       `json:"categoryID"`
	UserID     string       `json:"userID"`
	Name       string       `json:"name"`
	Type       CategoryType `json:"type"`
	IsFixed    bool         `json:"isFixed"`
	Color      string       `json:"color"`
	Icon       string       `json:"icon"`
	AuditFields
}
