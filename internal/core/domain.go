package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Type = "Ingreso"
	Expense Type = "Gasto"

	Business Origin = "Negocio"
	Home     Origin = "Hogar"

	Paid    Status = "paid"
	Pending Status = "pending"
)

// Reserved categories with special reducer behavior. Every other label
// is an ordinary category and is summed into the generic buckets.
const (
	CategoryClientConsumption = "Consumo en Club"
	CategoryProductSale       = "Producto Cerrado"
	CategoryRoyalty           = "Regalías"
	CategoryInternalUse       = "Consumo Interno"
	CategoryCardPayment       = "Pago Tarjeta Crédito"
	CategoryInventory         = "Inventario Inicial"
	CategoryContribution      = "Aporte Familiar"
	CategoryOther             = "Otros"
)

type (
	Type   string
	Origin string
	Status string

	Money struct {
		Cents int64
	}

	// Transaction is the single persisted entity. Classification
	// (type, origin, category) is assigned once at creation and never
	// mutated afterwards; only Status may change, and only from
	// Pending to Paid.
	Transaction struct {
		ID       string
		Amount   Money
		Type     Type
		Origin   Origin
		Category string
		Status   Status
		Date     time.Time
		Note     string
		Client   string
		Consumer string
		UserID   string
	}
)

// Consumers is the fixed household-member vocabulary for internal
// consumption attribution.
var Consumers = []string{"Amarilis", "Luis", "Hijos", "Invitados"}

// BusinessExpenseCategories are the selectable operating expense
// sub-categories for the business origin.
var BusinessExpenseCategories = []string{
	"Arriendo Local",
	"Servicios",
	"Insumos",
	"Transporte",
	"Mantenimiento",
	"Otros",
}

// HomeCategories are the selectable household categories. Every one of
// them is an expense except Aporte Familiar.
var HomeCategories = []string{
	"Arriendo",
	"Servicios",
	"Comida",
	"Transporte",
	"Ocio",
	"Aporte Familiar",
	"Otros",
}

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidOrigin   = errors.New("invalid origin")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrEmptyCategory   = errors.New("empty category")
	ErrMissingClient   = errors.New("client name is required for sales")
	ErrMissingNote     = errors.New("note is required for category Otros")
	ErrMissingConsumer = errors.New("consumer is required for internal consumption")
	ErrUnknownConsumer = errors.New("unknown consumer")
	ErrPendingExpense  = errors.New("only income can be pending")
	ErrZeroDate        = errors.New("date cannot be zero")
	ErrMissingOwner    = errors.New("missing owner id")
)

func (t Type) Valid() bool {
	return t == Income || t == Expense
}

func (o Origin) Valid() bool {
	return o == Business || o == Home
}

func (s Status) Valid() bool {
	return s == Paid || s == Pending
}

// IsConsumer reports whether name belongs to the fixed consumer
// vocabulary.
func IsConsumer(name string) bool {
	for _, c := range Consumers {
		if c == name {
			return true
		}
	}
	return false
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate enforces the record invariants before a transaction is
// handed to a store.
func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if !t.Origin.Valid() {
		return ErrInvalidOrigin
	}
	if !t.Status.Valid() {
		return ErrInvalidStatus
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Status == Pending && t.Type != Income {
		return ErrPendingExpense
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	if strings.TrimSpace(t.UserID) == "" {
		return ErrMissingOwner
	}
	// Consumer is populated iff the record books internal consumption.
	if t.Category == CategoryInternalUse {
		if strings.TrimSpace(t.Consumer) == "" {
			return ErrMissingConsumer
		}
		if !IsConsumer(t.Consumer) {
			return ErrUnknownConsumer
		}
	} else if t.Consumer != "" {
		return ErrUnknownConsumer
	}
	// Client is populated iff the record is a client or product sale.
	isSale := t.Category == CategoryClientConsumption || t.Category == CategoryProductSale
	if isSale && strings.TrimSpace(t.Client) == "" {
		return ErrMissingClient
	}
	return nil
}
