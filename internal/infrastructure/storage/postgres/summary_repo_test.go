package postgres

import (
	"testing"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/expense"
)

func TestSumOverRangeQuery_InclusiveBounds(t *testing.T) {
	start := types.MustDate("2024-03-01")
	end := types.MustDate("2024-03-31")

	tests := []struct {
		name    string
		expr    string
		table   string
		dateCol string
		wantSQL string
	}{
		{
			name:    "purchases",
			expr:    "COALESCE(SUM(value), 0)",
			table:   "product_purchases",
			dateCol: "date",
			wantSQL: "SELECT COALESCE(SUM(value), 0) FROM product_purchases WHERE date >= $1 AND date <= $2",
		},
		{
			name:    "recurring occurrences",
			expr:    "COALESCE(SUM(value), 0)",
			table:   "recurring_expense_occurrences",
			dateCol: "due_date",
			wantSQL: "SELECT COALESCE(SUM(value), 0) FROM recurring_expense_occurrences WHERE due_date >= $1 AND due_date <= $2",
		},
		{
			name:    "cash register",
			expr:    "COALESCE(SUM(value), 0)",
			table:   "cash_register_entries",
			dateCol: "date",
			wantSQL: "SELECT COALESCE(SUM(value), 0) FROM cash_register_entries WHERE date >= $1 AND date <= $2",
		},
		{
			name:    "income",
			expr:    "COALESCE(SUM(value), 0)",
			table:   "incomes",
			dateCol: "date",
			wantSQL: "SELECT COALESCE(SUM(value), 0) FROM incomes WHERE date >= $1 AND date <= $2",
		},
		{
			name:    "income profit rounds per row",
			expr:    "COALESCE(SUM(ROUND(value * profit_margin / 100, 2)), 0)",
			table:   "incomes",
			dateCol: "date",
			wantSQL: "SELECT COALESCE(SUM(ROUND(value * profit_margin / 100, 2)), 0) FROM incomes WHERE date >= $1 AND date <= $2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := sumOverRangeQuery(tt.expr, tt.table, tt.dateCol, start, end)

			sql, args, err := q.ToSql()
			if err != nil {
				t.Fatalf("ToSql failed: %v", err)
			}

			if sql != tt.wantSQL {
				t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", tt.wantSQL, sql)
			}
			if len(args) != 2 {
				t.Fatalf("Args count mismatch\nwant: 2\ngot:  %d", len(args))
			}
			if got, ok := args[0].(types.Date); !ok || !got.Equal(start) {
				t.Errorf("Args[0] mismatch\nwant: %v\ngot:  %v", start, args[0])
			}
			if got, ok := args[1].(types.Date); !ok || !got.Equal(end) {
				t.Errorf("Args[1] mismatch\nwant: %v\ngot:  %v", end, args[1])
			}
		})
	}
}

func TestSumExpensesQuery_FiltersBySource(t *testing.T) {
	start := types.MustDate("2024-03-01")
	end := types.MustDate("2024-03-31")

	q := sumExpensesQuery(expense.SourcePersonal, start, end)

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT COALESCE(SUM(value), 0) FROM expenses WHERE due_date >= $1 AND due_date <= $2 AND source = $3"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 3 {
		t.Fatalf("Args count mismatch\nwant: 3\ngot:  %d", len(args))
	}
	if args[2] != expense.SourcePersonal {
		t.Errorf("Args[2] mismatch\nwant: %v\ngot:  %v", expense.SourcePersonal, args[2])
	}
}
