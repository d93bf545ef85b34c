package job

import (
	"context"
	"fmt"

	"github.com/tu-usuario/taller-api/internal/domain"
	"github.com/tu-usuario/taller-api/internal/domain/repository"
)

// PDFUseCase genera el recibo de recepción en PDF de un trabajo.
type PDFUseCase struct {
	repo      repository.JobRepository
	generator ReceiptPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando el generador.
func NewPDFUseCase(repo repository.JobRepository, generator ReceiptPDFGenerator) *PDFUseCase {
	return &PDFUseCase{repo: repo, generator: generator}
}

// DownloadReceiptPDF carga el trabajo y genera el recibo.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el trabajo no existe.
func (uc *PDFUseCase) DownloadReceiptPDF(ctx context.Context, jobID string) (pdfBytes []byte, filename string, err error) {
	j, err := uc.repo.GetByID(jobID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener trabajo: %w", err)
	}
	if j == nil {
		return nil, "", domain.ErrNotFound
	}

	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, j)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return pdfBytes, "recibo-" + j.ReceiptNumber + ".pdf", nil
}
