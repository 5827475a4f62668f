package ledger

import (
	"context"
	"testing"
)

func TestStockReport(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	pen := mustCreate(t, store, "Pen", "10")
	ink := mustCreate(t, store, "Ink", "2.50")
	mustCreate(t, store, "Stapler", "120")
	if _, err := store.PostPurchase(ctx, pen.ID, 10, dec("6")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.PostPurchase(ctx, ink.ID, 3, dec("1")); err != nil {
		t.Fatal(err)
	}

	report, err := store.StockReport(ctx)
	if err != nil {
		t.Fatalf("StockReport() error = %v", err)
	}
	if len(report.Lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(report.Lines))
	}
	want := []string{"100", "7.5", "0"}
	for i, l := range report.Lines {
		if !l.Value.Equal(dec(want[i])) {
			t.Errorf("%s value = %s, want %s", l.Item.Name, l.Value, want[i])
		}
	}
	if !report.StockValue.Equal(dec("107.5")) {
		t.Errorf("StockValue = %s, want 107.50", report.StockValue)
	}
	if !report.CashBalance.Equal(dec("937")) {
		t.Errorf("CashBalance = %s, want 937", report.CashBalance)
	}
}

func TestImportItems(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	mustCreate(t, store, "Pen", "10")

	res, err := store.ImportItems(ctx, []ItemRow{
		{Row: 2, Name: "Notebook", Price: "45"},
		{Row: 3, Name: "Pen", Price: "11"},
		{Row: 4, Name: "Ruler", Price: "cheap"},
		{Row: 5, Name: "", Price: "1"},
		{Row: 6, Name: "Eraser", Price: "3.25"},
		{Row: 7, Name: "Notebook", Price: "50"},
	})
	if err != nil {
		t.Fatalf("ImportItems() error = %v", err)
	}

	if len(res.Created) != 2 || res.Created[0].Name != "Notebook" || res.Created[1].Name != "Eraser" {
		t.Errorf("created = %+v, want Notebook and Eraser", res.Created)
	}

	wantSkipped := map[int]bool{3: true, 4: true, 5: true, 7: true}
	if len(res.Skipped) != len(wantSkipped) {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
	for _, s := range res.Skipped {
		if !wantSkipped[s.Row] {
			t.Errorf("row %d skipped unexpectedly: %s", s.Row, s.Reason)
		}
		if s.Reason == "" {
			t.Errorf("row %d has no reason", s.Row)
		}
	}

	items, err := store.ListItems(ctx, Page{})
	if err != nil {
		t.Fatal(err)
	}
	if items.Total != 3 {
		t.Errorf("items = %d, want 3", items.Total)
	}
}

func TestImportItems_Empty(t *testing.T) {
	store, _ := setupStore(t)
	res, err := store.ImportItems(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Created) != 0 || len(res.Skipped) != 0 {
		t.Errorf("ImportItems(nil) = %+v", res)
	}
}
