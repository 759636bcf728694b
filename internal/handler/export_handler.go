package handler

import (
	"fmt"
	"time"

	"go-stockcontrol-ws/internal/export"
	"go-stockcontrol-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	inventory service.InventoryService
	sales     service.SalesService
}

func NewExportHandler(inv service.InventoryService, sales service.SalesService) *ExportHandler {
	return &ExportHandler{inventory: inv, sales: sales}
}

// InventoryTSV returns the inventory as tab-separated text, suitable for
// pasting into a spreadsheet.
// GET /api/v1/export/inventory.tsv
func (h *ExportHandler) InventoryTSV(c *fiber.Ctx) error {
	items := h.inventory.Items(c.Context(), currentSession(c))
	if len(items) == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "No data to export"})
	}
	c.Set(fiber.HeaderContentType, "text/tab-separated-values; charset=utf-8")
	return c.SendString(export.InventoryTSV(items))
}

// InventoryXLSX returns the inventory as an XLSX workbook download.
// GET /api/v1/export/inventory.xlsx
func (h *ExportHandler) InventoryXLSX(c *fiber.Ctx) error {
	items := h.inventory.Items(c.Context(), currentSession(c))
	if len(items) == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "No data to export"})
	}

	f, err := export.InventoryWorkbook(items)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build workbook"})
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build workbook"})
	}

	name := fmt.Sprintf("Inventario_Stock_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(buf.Bytes())
}

// SalesXLSX returns the sales ledger as an XLSX workbook download.
// GET /api/v1/export/sales.xlsx
func (h *ExportHandler) SalesXLSX(c *fiber.Ctx) error {
	sales := h.sales.Sales(c.Context(), currentSession(c))
	if len(sales) == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "No sales to export"})
	}

	f, err := export.SalesWorkbook(sales)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build workbook"})
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build workbook"})
	}

	name := fmt.Sprintf("Reporte_Ventas_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(buf.Bytes())
}
