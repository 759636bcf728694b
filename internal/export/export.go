// Package export renders read-only projections of the snapshot: a
// tab-separated table for clipboard use and XLSX workbooks for download.
package export

import (
	"fmt"
	"strings"

	"go-stockcontrol-ws/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	inventorySheet = "Inventario"
	salesSheet     = "Ventas"
)

// InventoryTSV renders the inventory as tab-separated text, one header line
// followed by one line per item.
func InventoryTSV(items model.ItemList) string {
	var b strings.Builder
	b.WriteString("Tipo\tTalla\tColor\tCantidad\tPrecio\tCategoría\n")
	for _, it := range items {
		fmt.Fprintf(&b, "%s\t%s\t%s\t%d\t$%.2f\t%s\n",
			it.Kind, it.Size, it.Color, int(it.Quantity), float64(it.Price), it.Category)
	}
	return b.String()
}

// InventoryWorkbook builds an XLSX workbook with one "Inventario" sheet.
func InventoryWorkbook(items model.ItemList) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", inventorySheet); err != nil {
		return nil, err
	}

	header := []interface{}{"Tipo", "Talla", "Color", "Cantidad", "Precio", "Categoría", "Última Modificación"}
	if err := f.SetSheetRow(inventorySheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, it := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			it.Kind,
			it.Size,
			it.Color,
			int(it.Quantity),
			fmt.Sprintf("$%.2f", float64(it.Price)),
			it.Category,
			it.UpdatedAt.Format("02/01/2006"),
		}
		if err := f.SetSheetRow(inventorySheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// SalesWorkbook builds an XLSX workbook with one "Ventas" sheet.
func SalesWorkbook(sales model.SaleList) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", salesSheet); err != nil {
		return nil, err
	}

	header := []interface{}{
		"Fecha", "Hora", "Producto", "Talla", "Color", "Cliente",
		"Cantidad", "Precio Unit.", "Total Venta", "Estado", "Vendedor",
	}
	if err := f.SetSheetRow(salesSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, sale := range sales {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		customer := sale.Customer
		if customer == "" {
			customer = model.DefaultCustomer
		}
		status := "DEUDA"
		if sale.Status == model.SalePaid {
			status = "Pagado"
		}
		row := []interface{}{
			sale.Date.Format("02/01/2006"),
			sale.Date.Format("15:04"),
			sale.Product,
			sale.Size,
			sale.Color,
			customer,
			int(sale.Quantity),
			fmt.Sprintf("$%.2f", float64(sale.UnitPrice)),
			fmt.Sprintf("$%.2f", float64(sale.Total)),
			status,
			sale.Seller,
		}
		if err := f.SetSheetRow(salesSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}
