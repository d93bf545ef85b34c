package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	appstock "github.com/tu-usuario/taller-api/internal/application/stock"
	"github.com/tu-usuario/taller-api/internal/domain/entity"
)

var _ appstock.Exporter = (*StockExporter)(nil)

// StockExporter genera el catálogo de repuestos como hoja de cálculo xlsx.
type StockExporter struct{}

// NewStockExporter construye el exportador.
func NewStockExporter() *StockExporter { return &StockExporter{} }

// GenerateStockXLSX escribe una fila por repuesto con cabecera fija.
func (e *StockExporter) GenerateStockXLSX(items []*entity.StockItem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{"Código", "Nombre", "Tipo", "Modelo", "Cantidad", "Precio"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("excel: escribir cabecera: %w", err)
		}
	}

	for rowIdx, item := range items {
		values := []any{
			item.StockCode,
			item.Name,
			item.Type,
			item.Model,
			item.Quantity,
			item.Price.InexactFloat64(),
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("excel: escribir fila %d: %w", rowIdx+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar: %w", err)
	}
	return buf.Bytes(), nil
}
