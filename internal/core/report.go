package core

// ConsumerAmount is an internal-consumption amount attributed to one
// household member.
type ConsumerAmount struct {
	Name   string
	Amount Money
}

// BusinessSummary holds the business-side indicators reduced from a
// window-filtered, business-origin record set.
type BusinessSummary struct {
	SalesPaid         Money // collected sales, royalties and inventory excluded
	Pending           Money // credit sales awaiting collection
	Royalties         Money
	OperatingExpense  Money // ordinary operating cost, no card payments or internal use
	CardPayments      Money
	InitialInventory  Money // asset valuation, not cash
	FamilyConsumption Money // internal consumption at retail value
	FamilyBreakdown   []ConsumerAmount
	FamilyCost        Money // 50% of retail value charged against profit
	NetProfit         Money
}

// HouseholdSummary holds the household-side indicators.
type HouseholdSummary struct {
	Contributions Money
	Expenses      Money
	CostOfLiving  Money // expenses minus contributions; negative means surplus
	Surplus       bool
}

// BusinessReport reduces a business-origin record set into indicators.
// It never fails; an empty set yields zero-valued indicators. Records
// with a different origin are ignored so callers may hand over a mixed
// window slice.
func BusinessReport(txs []Transaction) BusinessSummary {
	var s BusinessSummary
	byConsumer := make(map[string]int64, len(Consumers))

	for _, t := range txs {
		if t.Origin != Business {
			continue
		}
		switch t.Category {
		case CategoryInternalUse:
			s.FamilyConsumption.Cents += t.Amount.Cents
			if IsConsumer(t.Consumer) {
				byConsumer[t.Consumer] += t.Amount.Cents
			}
		case CategoryRoyalty:
			s.Royalties.Cents += t.Amount.Cents
		case CategoryCardPayment:
			s.CardPayments.Cents += t.Amount.Cents
		case CategoryInventory:
			s.InitialInventory.Cents += t.Amount.Cents
		default:
			switch t.Type {
			case Income:
				if t.Status == Paid {
					s.SalesPaid.Cents += t.Amount.Cents
				} else {
					s.Pending.Cents += t.Amount.Cents
				}
			case Expense:
				s.OperatingExpense.Cents += t.Amount.Cents
			}
		}
	}

	// Breakdown follows the fixed consumer vocabulary; unattributed
	// entries stay in the total only.
	for _, name := range Consumers {
		s.FamilyBreakdown = append(s.FamilyBreakdown, ConsumerAmount{
			Name:   name,
			Amount: Money{Cents: byConsumer[name]},
		})
	}

	s.FamilyCost = Money{Cents: HalfUp(s.FamilyConsumption.Cents)}
	s.NetProfit = Money{Cents: s.SalesPaid.Cents + s.Royalties.Cents + s.InitialInventory.Cents -
		s.OperatingExpense.Cents - s.FamilyCost.Cents - s.CardPayments.Cents}
	return s
}

// HouseholdReport reduces a home-origin record set into contributions,
// expenses and cost of living. A net-negative cost of living (more
// contributed than spent) is valid and flagged, never clamped.
func HouseholdReport(txs []Transaction) HouseholdSummary {
	var s HouseholdSummary
	for _, t := range txs {
		if t.Origin != Home {
			continue
		}
		if t.Category == CategoryContribution || t.Type == Income {
			s.Contributions.Cents += t.Amount.Cents
		} else {
			s.Expenses.Cents += t.Amount.Cents
		}
	}
	s.CostOfLiving = Money{Cents: s.Expenses.Cents - s.Contributions.Cents}
	s.Surplus = s.CostOfLiving.Cents < 0
	return s
}
