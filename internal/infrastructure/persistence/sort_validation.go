package persistence

import "strings"

// ValidateSortOrder normalizes the direction to ASC or DESC (the default)
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField when whitelisted, otherwise defaultField
func ValidateSortField(sortField string, allowed map[string]string, defaultField string) string {
	if col, ok := allowed[strings.ToLower(strings.TrimSpace(sortField))]; ok {
		return col
	}
	return defaultField
}

// JournalEntrySortFields maps API sort keys to journal_entries columns
var JournalEntrySortFields = map[string]string{
	"date":            "transaction_date",
	"transactiondate": "transaction_date",
	"number":          "journal_number",
	"journalnumber":   "journal_number",
	"amount":          "total_debit",
	"type":            "journal_type",
	"status":          "status",
	"createdat":       "created_at",
}

// AccountSortFields maps API sort keys to chart_of_accounts columns
var AccountSortFields = map[string]string{
	"code": "account_code",
	"name": "account_name",
	"type": "account_type",
}
