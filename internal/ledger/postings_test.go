package ledger

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"kadai-backend/internal/models"
)

func TestPostings_EndToEnd(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	pen := mustCreate(t, store, "Pen", "10")
	assertBalance(t, store, "1000")
	assertQty(t, store, pen.ID, 0)

	purchase, err := store.PostPurchase(ctx, pen.ID, 100, dec("3"))
	if err != nil {
		t.Fatalf("PostPurchase() error = %v", err)
	}
	if !purchase.Amount.Equal(dec("300")) {
		t.Errorf("purchase amount = %s, want 300", purchase.Amount)
	}
	if purchase.ItemID == nil || *purchase.ItemID != pen.ID {
		t.Errorf("purchase item id = %v, want %d", purchase.ItemID, pen.ID)
	}
	if purchase.ItemName != "Pen" || purchase.Stock != 100 || !purchase.CashBalance.Equal(dec("700")) {
		t.Errorf("purchase receipt = %q stock %d balance %s, want Pen 100 700", purchase.ItemName, purchase.Stock, purchase.CashBalance)
	}
	assertBalance(t, store, "700")
	assertQty(t, store, pen.ID, 100)

	sale, err := store.PostSale(ctx, pen.ID, 40, dec("5"))
	if err != nil {
		t.Fatalf("PostSale() error = %v", err)
	}
	if !sale.Amount.Equal(dec("200")) {
		t.Errorf("sale amount = %s, want 200", sale.Amount)
	}
	if sale.ItemName != "Pen" || sale.Stock != 60 || !sale.CashBalance.Equal(dec("900")) {
		t.Errorf("sale receipt = %q stock %d balance %s, want Pen 60 900", sale.ItemName, sale.Stock, sale.CashBalance)
	}
	assertBalance(t, store, "900")
	assertQty(t, store, pen.ID, 60)

	purchases, err := store.ListPurchases(ctx, Page{})
	if err != nil {
		t.Fatal(err)
	}
	sales, err := store.ListSales(ctx, Page{})
	if err != nil {
		t.Fatal(err)
	}
	if purchases.Total != 1 || sales.Total != 1 {
		t.Errorf("ledger rows = %d purchases, %d sales, want 1 and 1", purchases.Total, sales.Total)
	}
}

func TestPostSale_InsufficientStock(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	pen := mustCreate(t, store, "Pen", "10")
	if _, err := store.PostPurchase(ctx, pen.ID, 5, dec("2")); err != nil {
		t.Fatal(err)
	}

	_, err := store.PostSale(ctx, pen.ID, 6, dec("4"))
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("PostSale() error = %v, want ErrInsufficientStock", err)
	}

	assertBalance(t, store, "990")
	assertQty(t, store, pen.ID, 5)
	sales, err := store.ListSales(ctx, Page{})
	if err != nil {
		t.Fatal(err)
	}
	if sales.Total != 0 {
		t.Errorf("sales = %d, want 0", sales.Total)
	}

	// selling exactly what is in stock is allowed
	if _, err := store.PostSale(ctx, pen.ID, 5, dec("4")); err != nil {
		t.Fatalf("PostSale() of full stock error = %v", err)
	}
	assertQty(t, store, pen.ID, 0)
	assertBalance(t, store, "1010")
}

func TestPostPurchase_InsufficientFunds(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	pen := mustCreate(t, store, "Pen", "10")

	_, err := store.PostPurchase(ctx, pen.ID, 101, dec("10"))
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("PostPurchase() error = %v, want ErrInsufficientFunds", err)
	}
	assertBalance(t, store, "1000")
	assertQty(t, store, pen.ID, 0)

	// spending the whole balance is allowed
	if _, err := store.PostPurchase(ctx, pen.ID, 100, dec("10")); err != nil {
		t.Fatalf("PostPurchase() of full balance error = %v", err)
	}
	assertBalance(t, store, "0")
	assertQty(t, store, pen.ID, 100)
}

func TestPostings_InvalidInput(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	pen := mustCreate(t, store, "Pen", "10")

	tests := []struct {
		name string
		qty  int64
		rate string
	}{
		{"zero qty", 0, "1"},
		{"negative qty", -2, "1"},
		{"negative rate", 1, "-1"},
		{"three decimals", 1, "0.125"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.PostPurchase(ctx, pen.ID, tt.qty, dec(tt.rate)); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("PostPurchase() error = %v, want ErrInvalidInput", err)
			}
			if _, err := store.PostSale(ctx, pen.ID, tt.qty, dec(tt.rate)); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("PostSale() error = %v, want ErrInvalidInput", err)
			}
		})
	}
	assertBalance(t, store, "1000")
	assertQty(t, store, pen.ID, 0)
}

func TestPostings_UnknownItem(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	if _, err := store.PostPurchase(ctx, 99, 1, dec("1")); !errors.Is(err, ErrNotFound) {
		t.Errorf("PostPurchase() error = %v, want ErrNotFound", err)
	}
	// not found wins over insufficient stock
	if _, err := store.PostSale(ctx, 99, 1, dec("1")); !errors.Is(err, ErrNotFound) {
		t.Errorf("PostSale() error = %v, want ErrNotFound", err)
	}
	assertBalance(t, store, "1000")
}

func TestPostings_ZeroRate(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	pen := mustCreate(t, store, "Pen", "10")

	p, err := store.PostPurchase(ctx, pen.ID, 3, dec("0"))
	if err != nil {
		t.Fatalf("PostPurchase() error = %v", err)
	}
	if !p.Amount.IsZero() {
		t.Errorf("amount = %s, want 0", p.Amount)
	}
	assertBalance(t, store, "1000")
	assertQty(t, store, pen.ID, 3)
}

func TestPostings_DecimalExact(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	pen := mustCreate(t, store, "Pen", "0.10")

	for i := 0; i < 3; i++ {
		if _, err := store.PostPurchase(ctx, pen.ID, 1, dec("0.10")); err != nil {
			t.Fatal(err)
		}
	}
	assertBalance(t, store, "999.70")

	if _, err := store.PostSale(ctx, pen.ID, 3, dec("0.33")); err != nil {
		t.Fatal(err)
	}
	assertBalance(t, store, "1000.69")
}

func TestPostings_Concurrent(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	pen := mustCreate(t, store, "Pen", "1")

	if _, err := store.PostPurchase(ctx, pen.ID, 50, dec("1")); err != nil {
		t.Fatal(err)
	}

	// 80 sales of one unit compete for 50 units of stock
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		sold   int
		failed int
	)
	for i := 0; i < 80; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.PostSale(ctx, pen.ID, 1, dec("2"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				sold++
			case errors.Is(err, ErrInsufficientStock):
				failed++
			default:
				t.Errorf("PostSale() unexpected error = %v", err)
			}
		}()
	}
	wg.Wait()

	if sold != 50 || failed != 30 {
		t.Errorf("sold = %d, refused = %d, want 50 and 30", sold, failed)
	}
	assertQty(t, store, pen.ID, 0)
	assertBalance(t, store, "1050")
}

func TestPostings_MagnitudeLimits(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	pen := mustCreate(t, store, "Pen", "10")

	tests := []struct {
		name string
		qty  int64
		rate string
	}{
		{"qty above limit", MaxQty + 1, "0"},
		{"max int64 qty", math.MaxInt64, "0"},
		{"rate above column", 1, "1000000000000"},
		{"huge rate", 1, "12345678901234567.89"},
		{"amount above column", 2, "500000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.PostPurchase(ctx, pen.ID, tt.qty, dec(tt.rate)); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("PostPurchase() error = %v, want ErrInvalidInput", err)
			}
			if _, err := store.PostSale(ctx, pen.ID, tt.qty, dec(tt.rate)); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("PostSale() error = %v, want ErrInvalidInput", err)
			}
		})
	}
	assertBalance(t, store, "1000")
	assertQty(t, store, pen.ID, 0)

	// the largest single posting is accepted
	p, err := store.PostPurchase(ctx, pen.ID, MaxQty, dec("0"))
	if err != nil {
		t.Fatalf("PostPurchase(MaxQty) error = %v", err)
	}
	if p.Stock != MaxQty {
		t.Errorf("Stock = %d, want %d", p.Stock, MaxQty)
	}
}

func TestPostPurchase_StockOverflow(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	pen := mustCreate(t, store, "Pen", "10")

	full := int64(math.MaxInt64 - 5)
	if err := store.db.Model(&models.Item{}).Where("id = ?", pen.ID).Update("qty", full).Error; err != nil {
		t.Fatal(err)
	}

	if _, err := store.PostPurchase(ctx, pen.ID, 10, dec("0")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("PostPurchase() error = %v, want ErrInvalidInput", err)
	}
	assertQty(t, store, pen.ID, full)

	p, err := store.PostPurchase(ctx, pen.ID, 5, dec("0"))
	if err != nil {
		t.Fatalf("PostPurchase() up to the limit error = %v", err)
	}
	if p.Stock != math.MaxInt64 {
		t.Errorf("Stock = %d, want MaxInt64", p.Stock)
	}
	assertQty(t, store, pen.ID, math.MaxInt64)
}

func TestPostSale_BalanceCapacity(t *testing.T) {
	store, _ := setupStore(t, WithCompany("Test Kadai", dec("0")))
	ctx := context.Background()
	pen := mustCreate(t, store, "Pen", "10")
	if _, err := store.PostPurchase(ctx, pen.ID, 2, dec("0")); err != nil {
		t.Fatal(err)
	}

	s, err := store.PostSale(ctx, pen.ID, 1, MaxAmount)
	if err != nil {
		t.Fatalf("PostSale() at column capacity error = %v", err)
	}
	if !s.Amount.Equal(MaxAmount) {
		t.Errorf("amount = %s, want %s", s.Amount, MaxAmount)
	}
	assertBalance(t, store, MaxAmount.String())

	// any further cash would no longer fit the balance column
	if _, err := store.PostSale(ctx, pen.ID, 1, dec("0.01")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("PostSale() past capacity error = %v, want ErrInvalidInput", err)
	}
	assertBalance(t, store, MaxAmount.String())
	assertQty(t, store, pen.ID, 1)

	sales, err := store.ListSales(ctx, Page{})
	if err != nil {
		t.Fatal(err)
	}
	if len(sales.Rows) != 1 {
		t.Fatalf("sales = %d, want 1", len(sales.Rows))
	}
	if !sales.Rows[0].Amount.Equal(MaxAmount) {
		t.Errorf("stored amount = %s, want %s", sales.Rows[0].Amount, MaxAmount)
	}
}
