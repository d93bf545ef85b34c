// Package pdf implementa la generación del recibo de recepción de un
// trabajo de reparación.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Recibo de recepción  │  N° Recibo + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre / Teléfono / Dirección                     │
//	│  EQUIPO: Tipo + Modelo / Accesorios / Falla reportada       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Repuestos usados (Cant | Repuesto | Modelo | Fecha) │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ESTADO + PRECIO COTIZADO                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appjob "github.com/tu-usuario/taller-api/internal/application/job"
	"github.com/tu-usuario/taller-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// statusLabels etiquetas legibles por estado.
var statusLabels = map[string]string{
	entity.JobStatusReceived:      "Recibido",
	entity.JobStatusInRepair:      "En reparación",
	entity.JobStatusAwaitingParts: "Esperando repuestos",
	entity.JobStatusCompleted:     "Reparado",
	entity.JobStatusCancelled:     "Cancelado",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa job.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

var _ appjob.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF genera el recibo y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, j *entity.Job) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de recepción "+j.ReceiptNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(j))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(j))
	m.AddRows(deviceRow(j))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(j.UsedParts) > 0 {
		m.AddRows(partsHeaderRow())
		for _, r := range partsRows(j.UsedParts) {
			m.AddRows(r)
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	m.AddRows(statusRow(j))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y N° de recibo + fecha de recepción (der).
func headerRow(j *entity.Job) core.Row {
	fecha := j.ReceivedDate.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("Recibo de recepción de equipo", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Código interno: "+j.JobCode, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Recibo N° "+j.ReceiptNumber, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente.
func customerRow(j *entity.Job) core.Row {
	contact := j.CustomerPhone
	if j.CustomerAddress != "" {
		if contact != "" {
			contact += " — "
		}
		contact += j.CustomerAddress
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("Cliente: "+j.CustomerName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 1}),
			text.New(contact, props.Text{Size: 9, Top: 7, Color: colorGray}),
		),
	)
}

// deviceRow: equipo, accesorios y falla reportada.
func deviceRow(j *entity.Job) core.Row {
	accessory := j.Accessory
	if accessory == "" {
		accessory = "—"
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("Equipo: "+j.DeviceType+" "+j.DeviceModel, props.Text{Size: 10, Top: 1}),
			text.New("Accesorios: "+accessory, props.Text{Size: 9, Top: 6, Color: colorGray}),
			text.New("Falla reportada: "+j.Symptom, props.Text{Size: 9, Top: 11}),
		),
	)
}

func partsHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}
	return row.New(7).Add(
		col.New(2).Add(text.New("Cant.", header)),
		col.New(4).Add(text.New("Repuesto", header)),
		col.New(3).Add(text.New("Modelo", header)),
		col.New(3).Add(text.New("Fecha", header)),
	)
}

func partsRows(parts []entity.UsedPart) []core.Row {
	cell := props.Text{Size: 9, Top: 1}
	rows := make([]core.Row, 0, len(parts))
	for _, p := range parts {
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(fmt.Sprintf("%d", p.Quantity), cell)),
			col.New(4).Add(text.New(p.Name, cell)),
			col.New(3).Add(text.New(p.Model, cell)),
			col.New(3).Add(text.New(p.UsedAt.Format("02/01/2006"), cell)),
		))
	}
	return rows
}

// statusRow: estado actual y precio cotizado.
func statusRow(j *entity.Job) core.Row {
	label := statusLabels[j.Status]
	if label == "" {
		label = j.Status
	}
	return row.New(12).Add(
		col.New(6).Add(
			text.New("Estado: "+label, props.Text{Style: fontstyle.Bold, Size: 11, Top: 2}),
		),
		col.New(6).Add(
			text.New("Precio cotizado: $"+j.PriceQuoted.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2, Color: colorPrimary,
			}),
		),
	)
}
