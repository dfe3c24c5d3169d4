package calculations

import (
	"errors"
	"testing"
)

func TestFirstCycleDays(t *testing.T) {
	tests := []struct {
		name        string
		transaction string
		due         string
		want        int
	}{
		{name: "spans month end", transaction: "2024-01-05", due: "2024-02-20", want: 45},
		{name: "leap february", transaction: "2024-02-27", due: "2024-03-02", want: 3},
		{name: "due the day after", transaction: "2024-03-15", due: "2024-03-16", want: 0},
		{name: "due on transaction day", transaction: "2024-03-15", due: "2024-03-15", want: 0},
		{name: "due before transaction", transaction: "2024-03-15", due: "2024-03-01", want: 0},
		{name: "across daylight saving change", transaction: "2024-03-01", due: "2024-04-01", want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := ParseDate("transaction_date", tt.transaction)
			if err != nil {
				t.Fatal(err)
			}
			due, err := ParseDate("first_due_date", tt.due)
			if err != nil {
				t.Fatal(err)
			}
			if got := FirstCycleDays(tx, due); got != tt.want {
				t.Errorf("FirstCycleDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("transaction_date", " 2024-01-05 ")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if FormatDate(d) != "2024-01-05" {
		t.Errorf("FormatDate() = %s", FormatDate(d))
	}

	for _, bad := range []string{"", "2024-1-5", "2024-02-30", "yesterday"} {
		_, err := ParseDate("first_due_date", bad)
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", bad, err)
		}
		var fieldErr *FieldError
		if !errors.As(err, &fieldErr) || fieldErr.Field != "first_due_date" {
			t.Errorf("ParseDate(%q) should name the field, got %v", bad, err)
		}
	}
}
