package core

import (
	"errors"
	"testing"
	"time"
)

func baseEntry() Entry {
	return Entry{
		Origin:   Business,
		Activity: ActivityProductSale,
		Amount:   "100",
		Client:   "Marta",
		Date:     time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
		UserID:   "u1",
	}
}

func TestClassifyBusinessActivities(t *testing.T) {
	cases := []struct {
		activity Activity
		typ      Type
		category string
	}{
		{ActivityClientConsumption, Income, CategoryClientConsumption},
		{ActivityProductSale, Income, CategoryProductSale},
		{ActivityRoyalty, Income, CategoryRoyalty},
		{ActivityInternalUse, Expense, CategoryInternalUse},
		{ActivityCardPayment, Expense, CategoryCardPayment},
		{ActivityInventory, Income, CategoryInventory},
	}
	for _, tc := range cases {
		t.Run(string(tc.activity), func(t *testing.T) {
			e := baseEntry()
			e.Activity = tc.activity
			if tc.activity == ActivityInternalUse {
				e.Consumer = "Luis"
			}
			tx, err := e.Classify()
			if err != nil {
				t.Fatalf("classify: %v", err)
			}
			if tx.Type != tc.typ || tx.Category != tc.category {
				t.Fatalf("got {%s %s}, want {%s %s}", tx.Type, tx.Category, tc.typ, tc.category)
			}
			if tx.Origin != Business {
				t.Fatalf("origin changed: %s", tx.Origin)
			}
		})
	}
}

func TestClassifyBusinessExpenseSubcategory(t *testing.T) {
	e := baseEntry()
	e.Activity = ActivityExpenses
	e.ExpenseCat = "Servicios"
	tx, err := e.Classify()
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if tx.Type != Expense || tx.Category != "Servicios" {
		t.Fatalf("got {%s %s}, want {Gasto Servicios}", tx.Type, tx.Category)
	}
}

func TestClassifyHome(t *testing.T) {
	e := Entry{
		Origin:  Home,
		HomeCat: CategoryContribution,
		Amount:  "200",
		Date:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		UserID:  "u1",
	}
	tx, err := e.Classify()
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if tx.Type != Income {
		t.Fatalf("Aporte Familiar should be income, got %s", tx.Type)
	}

	e.HomeCat = "Comida"
	tx, err = e.Classify()
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if tx.Type != Expense {
		t.Fatalf("home category should be expense, got %s", tx.Type)
	}
}

func TestClassifyValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Entry)
		want   error
	}{
		{"bad amount", func(e *Entry) { e.Amount = "abc" }, ErrInvalidAmount},
		{"negative amount", func(e *Entry) { e.Amount = "-5" }, ErrInvalidAmount},
		{"sale without client", func(e *Entry) { e.Client = "" }, ErrMissingClient},
		{"consumption without client", func(e *Entry) {
			e.Activity = ActivityClientConsumption
			e.Client = ""
		}, ErrMissingClient},
		{"unknown activity", func(e *Entry) { e.Activity = "Inventada" }, ErrUnknownActivity},
		{"home otros without note", func(e *Entry) {
			e.Origin = Home
			e.HomeCat = CategoryOther
			e.Note = ""
		}, ErrMissingNote},
		{"bad origin", func(e *Entry) { e.Origin = "Oficina" }, ErrInvalidOrigin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := baseEntry()
			tc.mutate(&e)
			if _, err := e.Classify(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestClassifyCreditSale(t *testing.T) {
	e := baseEntry()
	e.CreditSale = true
	tx, err := e.Classify()
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if tx.Status != Pending {
		t.Fatalf("credit sale should be pending, got %s", tx.Status)
	}

	// The fiado toggle never applies to expenses.
	e = baseEntry()
	e.Activity = ActivityExpenses
	e.ExpenseCat = "Insumos"
	e.CreditSale = true
	tx, err = e.Classify()
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if tx.Status != Paid {
		t.Fatalf("expense must stay paid, got %s", tx.Status)
	}
}

func TestClassifyKeepsConsumerOnlyForInternalUse(t *testing.T) {
	e := baseEntry()
	e.Consumer = "Luis" // stray form state from a previous tab
	tx, err := e.Classify()
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if tx.Consumer != "" {
		t.Fatalf("consumer should be dropped for sales, got %q", tx.Consumer)
	}
}
