package core

import (
	"errors"
	"strings"
	"time"
)

// Business activity tabs of the entry form. Each maps to a fixed
// {type, category} pair except Gastos, which carries its own expense
// sub-category.
const (
	ActivityClientConsumption Activity = "Consumo Clientes"
	ActivityProductSale       Activity = "Venta Producto"
	ActivityInventory         Activity = "Inventario Inicial"
	ActivityCardPayment       Activity = "Pago Tarjeta"
	ActivityExpenses          Activity = "Gastos"
	ActivityInternalUse       Activity = "Consumo Propio"
	ActivityRoyalty           Activity = "Regalías"
)

type (
	Activity string

	// Entry is the structured entry-form selection. Classification is a
	// pure function of this selection; the resulting transaction is
	// immutable afterwards except for its settlement status.
	Entry struct {
		Origin     Origin
		Activity   Activity // business origin only
		ExpenseCat string   // business Gastos sub-category
		HomeCat    string   // home origin category
		Amount     string   // decimal text as entered
		Note       string
		Client     string
		Consumer   string
		CreditSale bool // fiado: income awaiting collection
		Date       time.Time
		UserID     string
	}
)

var ErrUnknownActivity = errors.New("unknown business activity")

// businessRules maps each fixed business activity to its classification.
// Gastos is absent because its category comes from the form selection.
var businessRules = map[Activity]struct {
	Type     Type
	Category string
}{
	ActivityClientConsumption: {Income, CategoryClientConsumption},
	ActivityProductSale:       {Income, CategoryProductSale},
	ActivityRoyalty:           {Income, CategoryRoyalty},
	ActivityInternalUse:       {Expense, CategoryInternalUse},
	ActivityCardPayment:       {Expense, CategoryCardPayment},
	ActivityInventory:         {Income, CategoryInventory},
}

// Classify maps an entry-form selection to a transaction draft,
// validating the selection. On error no draft is produced and nothing
// is persisted.
func (e Entry) Classify() (Transaction, error) {
	cents, err := ParseAmountToCents(e.Amount)
	if err != nil {
		return Transaction{}, err
	}

	var typ Type
	var category string

	switch e.Origin {
	case Business:
		if e.Activity == ActivityExpenses {
			typ = Expense
			category = strings.TrimSpace(e.ExpenseCat)
			if category == "" {
				return Transaction{}, ErrEmptyCategory
			}
		} else {
			rule, ok := businessRules[e.Activity]
			if !ok {
				return Transaction{}, ErrUnknownActivity
			}
			typ = rule.Type
			category = rule.Category
		}
	case Home:
		category = strings.TrimSpace(e.HomeCat)
		if category == "" {
			return Transaction{}, ErrEmptyCategory
		}
		if category == CategoryContribution {
			typ = Income
		} else {
			typ = Expense
		}
	default:
		return Transaction{}, ErrInvalidOrigin
	}

	// Sales need a client on record; free-form home spending needs a
	// note so the label stays meaningful.
	if e.Origin == Business &&
		(e.Activity == ActivityClientConsumption || e.Activity == ActivityProductSale) &&
		strings.TrimSpace(e.Client) == "" {
		return Transaction{}, ErrMissingClient
	}
	if e.Origin == Home && category == CategoryOther && strings.TrimSpace(e.Note) == "" {
		return Transaction{}, ErrMissingNote
	}

	status := Paid
	if typ == Income && e.CreditSale {
		status = Pending
	}

	t := Transaction{
		Amount:   Money{Cents: cents},
		Type:     typ,
		Origin:   e.Origin,
		Category: category,
		Status:   status,
		Date:     e.Date,
		Note:     strings.TrimSpace(e.Note),
		UserID:   strings.TrimSpace(e.UserID),
	}
	if e.Origin == Business {
		switch e.Activity {
		case ActivityInternalUse:
			t.Consumer = strings.TrimSpace(e.Consumer)
		case ActivityClientConsumption, ActivityProductSale:
			t.Client = strings.TrimSpace(e.Client)
		}
	}
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}
	return t, nil
}
