package core

import (
	"testing"
	"time"
)

func TestDailyCash(t *testing.T) {
	target := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	sale := bizTx(Income, CategoryProductSale, 10000)
	royalty := bizTx(Income, CategoryRoyalty, 2000)
	expense := bizTx(Expense, "Insumos", 3000)
	card := bizTx(Expense, CategoryCardPayment, 1000)
	internal := bizTx(Expense, CategoryInternalUse, 4000)
	internal.Consumer = "Luis"
	inventory := bizTx(Income, CategoryInventory, 50000)
	pending := bizTx(Income, CategoryProductSale, 7000)
	pending.Status = Pending
	otherDay := bizTx(Income, CategoryProductSale, 9999)
	otherDay.Date = day(11)
	home := homeTx("Comida", 8000)
	home.Date = day(10)

	txs := []Transaction{sale, royalty, expense, card, internal, inventory, pending, otherDay, home}

	// 100 (sale) - 30 (expense) - 10 (card). Royalties, pending,
	// inventory, internal use and home records all stay out.
	got := DailyCash(txs, target)
	if got.Cents != 6000 {
		t.Fatalf("daily cash = %d, want 6000", got.Cents)
	}
}

func TestDailyCashEmptyDay(t *testing.T) {
	txs := []Transaction{bizTx(Income, CategoryProductSale, 10000)}
	got := DailyCash(txs, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if got.Cents != 0 {
		t.Fatalf("expected zero cash for empty day, got %d", got.Cents)
	}
}

func TestDailyCashCanGoNegative(t *testing.T) {
	txs := []Transaction{bizTx(Expense, "Arriendo Local", 12000)}
	got := DailyCash(txs, day(10))
	if got.Cents != -12000 {
		t.Fatalf("daily cash = %d, want -12000", got.Cents)
	}
}
