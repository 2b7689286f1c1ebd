package store

// Table and column names of the known issues schema. The DDL itself lives
// in the per-dialect migrations of each platform implementation.
const (
	KnownIssuesTable   = "known_issues"
	ColumnID           = "id"
	ColumnRegexPattern = "regex_pattern"
	ColumnCreatedAt    = "created_at"
)

// EntityKnownIssue is the entity name used in StoreError.
const EntityKnownIssue = "known_issue"
