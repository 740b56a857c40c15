package usecase

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"time"

	"cv-builder/internal/domain"
	"cv-builder/internal/logger"
	"cv-builder/internal/model"
	"cv-builder/internal/render"

	"github.com/google/uuid"
)

// Exporter turns a document snapshot into a PDF through the Renderer.
type Exporter struct {
	renderer Renderer
	archive  Archive
	attempts int
	backoff  time.Duration
}

// NewExporter builds an Exporter. archive may be nil; attempts below one are treated as one.
func NewExporter(r Renderer, archive Archive, attempts int, backoff time.Duration) *Exporter {
	if attempts < 1 {
		attempts = 1
	}
	return &Exporter{renderer: r, archive: archive, attempts: attempts, backoff: backoff}
}

// ExportResult is a rendered PDF plus the name it should be downloaded as.
type ExportResult struct {
	PDF        []byte
	FileName   string
	ArchiveKey string
}

var unsafeFileChars = regexp.MustCompile(`["\\/\r\n]+`)

// FileName is "<personal name>.pdf", or "CV.pdf" when the name is blank.
func FileName(d model.Document) string {
	name := unsafeFileChars.ReplaceAllString(d.PersonalInfo.Name, " ")
	if name == "" {
		name = "CV"
	}
	return name + ".pdf"
}

// Export renders d with the named template. Every template name currently
// maps to the single built-in layout.
func (e *Exporter) Export(ctx context.Context, ownerID string, d model.Document, template string) (ExportResult, error) {
	if t := domain.TemplateOrDefault(template); template != "" && t != template {
		logger.Debug().Str("template", template).Str("using", t).Msg("unknown template")
	}

	html, err := render.Printable(d)
	if err != nil {
		return ExportResult{}, fmt.Errorf("%w: %v", domain.ErrConversion, err)
	}

	pdf, err := e.convert(ctx, html)
	if err != nil {
		return ExportResult{}, err
	}

	res := ExportResult{PDF: pdf, FileName: FileName(d)}
	if e.archive != nil {
		key := fmt.Sprintf("%s/%s.pdf", domain.OwnerOrAnonymous(ownerID), uuid.New().String())
		if stored, err := e.archive.Put(ctx, key, pdf); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("export archive failed (non-fatal)")
		} else {
			res.ArchiveKey = stored
		}
	}
	return res, nil
}

// convert retries the renderer with exponential backoff and rejects output
// that does not carry a PDF signature.
func (e *Exporter) convert(ctx context.Context, html string) ([]byte, error) {
	var lastErr error
	for i := 0; i < e.attempts; i++ {
		pdf, err := e.renderer.RenderHTMLToPDF(ctx, html)
		if err == nil {
			if bytes.HasPrefix(pdf, []byte("%PDF")) {
				return pdf, nil
			}
			err = fmt.Errorf("invalid PDF output (len=%d)", len(pdf))
		}
		lastErr = err
		logger.Warn().Err(err).Int("attempt", i+1).Msg("render attempt failed")

		if i < e.attempts-1 {
			select {
			case <-time.After(e.backoff * time.Duration(1<<i)):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", domain.ErrConversion, ctx.Err())
			}
		}
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrConversion, lastErr)
}
