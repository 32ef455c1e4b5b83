package models

// TaskSortField is a task attribute that listing can be ordered by.
type TaskSortField string

// Sortable task fields, named the way clients pass them in sortBy.
const (
	SortByCreatedAt   TaskSortField = "createdAt"
	SortByUpdatedAt   TaskSortField = "updatedAt"
	SortByDescription TaskSortField = "description"
	SortByCompleted   TaskSortField = "completed"
)

// TaskListParams holds the raw query string values of a task listing request.
// Empty strings mean "not provided".
type TaskListParams struct {
	Completed string
	SortBy    string
	Limit     string
	Skip      string
}

// TaskSort is a validated ordering: a field from the allow-list and a direction.
type TaskSort struct {
	Field TaskSortField
	Desc  bool
}

// TaskQuery is a validated, bounded listing query over one owner's tasks.
type TaskQuery struct {
	// OwnerID scopes the query. Always set from the authenticated identity.
	OwnerID int64

	// Completed filters by completion flag when non-nil.
	Completed *bool

	// Sort orders the result when non-nil; otherwise insertion order.
	// Ties are always broken by task id ascending.
	Sort *TaskSort

	// Limit is the page size, already capped. Never zero.
	Limit uint64

	// Skip is the number of matching tasks to skip.
	Skip uint64
}
