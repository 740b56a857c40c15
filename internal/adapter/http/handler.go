package http

import (
	"encoding/json"
	"fmt"
	"strings"

	"cv-builder/internal/domain"
	"cv-builder/internal/editor"
	"cv-builder/internal/model"
	"cv-builder/internal/render"
	"cv-builder/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handler struct {
	cvs      *usecase.CVService
	exporter *usecase.Exporter
	sessions *usecase.Sessions
}

func NewHandler(cvs *usecase.CVService, exporter *usecase.Exporter, sessions *usecase.Sessions) *Handler {
	return &Handler{cvs: cvs, exporter: exporter, sessions: sessions}
}

func parseID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", domain.ErrValidation, param)
	}
	return id, nil
}

func decodeBody(c *fiber.Ctx, out interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: malformed JSON: %v", domain.ErrValidation, err)
	}
	return nil
}

func sendPDF(c *fiber.Ctx, res usecase.ExportResult) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", res.FileName))
	return c.Status(fiber.StatusOK).Send(res.PDF)
}

// ListCVs handles GET /cv?ownerId=.
func (h *Handler) ListCVs(c *fiber.Ctx) error {
	list, err := h.cvs.List(c.UserContext(), c.Query("ownerId"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *Handler) GetCV(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	rec, err := h.cvs.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(rec)
}

func (h *Handler) CreateCV(c *fiber.Ctx) error {
	in, err := usecase.DecodeCreate(c.Body())
	if err != nil {
		return err
	}
	rec, err := h.cvs.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

func (h *Handler) UpdateCV(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	in, err := usecase.DecodeUpdate(c.Body())
	if err != nil {
		return err
	}
	rec, err := h.cvs.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(rec)
}

func (h *Handler) DeleteCV(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.cvs.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "CV deleted successfully"})
}

func (h *Handler) DuplicateCV(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	rec, err := h.cvs.Duplicate(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// ExportCV handles GET /cv/:id/pdf.
func (h *Handler) ExportCV(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	rec, err := h.cvs.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	res, err := h.exporter.Export(c.UserContext(), rec.OwnerID, rec.Data, rec.Template)
	if err != nil {
		return err
	}
	return sendPDF(c, res)
}

// GeneratePDF handles POST /pdf/generate {cvData, template}.
func (h *Handler) GeneratePDF(c *fiber.Ctx) error {
	in, err := usecase.DecodeExport(c.Body())
	if err != nil {
		return err
	}
	res, err := h.exporter.Export(c.UserContext(), in.OwnerID, in.CVData, in.Template)
	if err != nil {
		return err
	}
	return sendPDF(c, res)
}

func previewDocument(c *fiber.Ctx) (model.Document, error) {
	d, err := model.DecodeDocument(c.Body())
	if err != nil {
		return model.Document{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return d, nil
}

// Preview handles POST /preview with a bare document body.
func (h *Handler) Preview(c *fiber.Ctx) error {
	d, err := previewDocument(c)
	if err != nil {
		return err
	}
	return c.JSON(render.Build(d))
}

// PreviewHTML handles POST /preview/html and returns the printable page.
func (h *Handler) PreviewHTML(c *fiber.Ctx) error {
	d, err := previewDocument(c)
	if err != nil {
		return err
	}
	html, err := render.Printable(d)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

type openSessionReq struct {
	CVID    string `json:"cvId"`
	OwnerID string `json:"ownerId"`
}

func (h *Handler) OpenSession(c *fiber.Ctx) error {
	var req openSessionReq
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	var cvID *uuid.UUID
	if s := strings.TrimSpace(req.CVID); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return fmt.Errorf("%w: invalid cvId", domain.ErrValidation)
		}
		cvID = &id
	}
	view, err := h.sessions.Open(c.UserContext(), req.OwnerID, cvID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	sid, err := parseID(c, "sid")
	if err != nil {
		return err
	}
	view, err := h.sessions.View(sid)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

func (h *Handler) ApplyOp(c *fiber.Ctx) error {
	sid, err := parseID(c, "sid")
	if err != nil {
		return err
	}
	var op editor.Op
	if err := decodeBody(c, &op); err != nil {
		return err
	}
	view, err := h.sessions.Apply(sid, op)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

type saveSessionReq struct {
	Name string `json:"name"`
}

func (h *Handler) SaveSession(c *fiber.Ctx) error {
	sid, err := parseID(c, "sid")
	if err != nil {
		return err
	}
	var req saveSessionReq
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	rec, err := h.sessions.Save(c.UserContext(), sid, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(rec)
}

func (h *Handler) ExportSession(c *fiber.Ctx) error {
	sid, err := parseID(c, "sid")
	if err != nil {
		return err
	}
	res, err := h.sessions.Export(c.UserContext(), sid)
	if err != nil {
		return err
	}
	return sendPDF(c, res)
}

func (h *Handler) DiscardSession(c *fiber.Ctx) error {
	sid, err := parseID(c, "sid")
	if err != nil {
		return err
	}
	if err := h.sessions.Discard(sid); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
