package export

import (
	"testing"
	"time"

	"go-stockcontrol-ws/internal/model"
)

func sampleItems() model.ItemList {
	return model.ItemList{
		{
			Kind:      "Remera",
			Size:      "M",
			Color:     "Azul",
			Quantity:  10,
			Price:     5.5,
			Category:  "remeras",
			UpdatedAt: time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			Kind:     "Pantalón",
			Size:     "42",
			Color:    "Negro",
			Quantity: 3,
			Price:    20,
			Category: "pantalones",
		},
	}
}

func TestInventoryTSV(t *testing.T) {
	got := InventoryTSV(sampleItems())
	want := "Tipo\tTalla\tColor\tCantidad\tPrecio\tCategoría\n" +
		"Remera\tM\tAzul\t10\t$5.50\tremeras\n" +
		"Pantalón\t42\tNegro\t3\t$20.00\tpantalones\n"
	if got != want {
		t.Errorf("unexpected TSV:\n%q\nwant:\n%q", got, want)
	}
}

func TestInventoryTSV_EmptyHasOnlyHeader(t *testing.T) {
	if got := InventoryTSV(nil); got != "Tipo\tTalla\tColor\tCantidad\tPrecio\tCategoría\n" {
		t.Errorf("unexpected TSV for empty inventory: %q", got)
	}
}

func TestInventoryWorkbook(t *testing.T) {
	f, err := InventoryWorkbook(sampleItems())
	if err != nil {
		t.Fatalf("InventoryWorkbook failed: %v", err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex("Inventario"); err != nil || idx < 0 {
		t.Fatalf("missing Inventario sheet: idx=%d err=%v", idx, err)
	}

	cases := []struct {
		cell string
		want string
	}{
		{"A1", "Tipo"},
		{"G1", "Última Modificación"},
		{"A2", "Remera"},
		{"D2", "10"},
		{"E2", "$5.50"},
		{"G2", "15/08/2026"},
		{"A3", "Pantalón"},
	}
	for _, tc := range cases {
		got, err := f.GetCellValue("Inventario", tc.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) failed: %v", tc.cell, err)
		}
		if got != tc.want {
			t.Errorf("cell %s = %q, want %q", tc.cell, got, tc.want)
		}
	}
}

func TestSalesWorkbook(t *testing.T) {
	when := time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC)
	sales := model.SaleList{
		{
			ID: "s1", Product: "Remera", Size: "M", Color: "Azul",
			Quantity: 2, UnitPrice: 5.5, Total: 11,
			Date: when, Seller: "maria", Status: model.SalePaid,
		},
		{
			ID: "s2", Product: "Pantalón", Quantity: 1, UnitPrice: 20, Total: 20,
			Date: when, Seller: "maria", Customer: "Carlos", Status: model.SaleDebt,
		},
	}

	f, err := SalesWorkbook(sales)
	if err != nil {
		t.Fatalf("SalesWorkbook failed: %v", err)
	}
	defer f.Close()

	cases := []struct {
		cell string
		want string
	}{
		{"A2", "15/08/2026"},
		{"B2", "14:30"},
		{"F2", model.DefaultCustomer},
		{"I2", "$11.00"},
		{"J2", "Pagado"},
		{"F3", "Carlos"},
		{"J3", "DEUDA"},
	}
	for _, tc := range cases {
		got, err := f.GetCellValue("Ventas", tc.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) failed: %v", tc.cell, err)
		}
		if got != tc.want {
			t.Errorf("cell %s = %q, want %q", tc.cell, got, tc.want)
		}
	}
}
