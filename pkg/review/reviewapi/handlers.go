package reviewapi

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/wesleysanjose/ocr/pkg/errx"
	"github.com/wesleysanjose/ocr/pkg/kernel"
	"github.com/wesleysanjose/ocr/pkg/review/reviewsrv"
)

// ReviewHandlers exposes the review session operations over HTTP.
type ReviewHandlers struct {
	service *reviewsrv.ReviewService
}

func NewReviewHandlers(service *reviewsrv.ReviewService) *ReviewHandlers {
	return &ReviewHandlers{service: service}
}

// RegisterRoutes mounts the review API under /api/v1.
func (h *ReviewHandlers) RegisterRoutes(app *fiber.App, authMiddleware fiber.Handler) {
	api := app.Group("/api/v1", authMiddleware)

	sessions := api.Group("/sessions")
	sessions.Post("/", h.openSession)
	sessions.Get("/:id", h.getSession)
	sessions.Delete("/:id", h.closeSession)
	sessions.Put("/:id/page", h.loadPage)

	sessions.Post("/:id/selection/click", h.click)
	sessions.Post("/:id/selection/toggle", h.toggle)
	sessions.Post("/:id/selection/extend", h.extend)
	sessions.Delete("/:id/selection", h.clearSelection)

	sessions.Post("/:id/commit", h.commitSelection)
	sessions.Post("/:id/apply", h.applyCandidate)
	sessions.Delete("/:id/candidate", h.cancelCandidate)

	sessions.Put("/:id/fields", h.upsertField)
	sessions.Patch("/:id/fields/rename", h.renameField)
	sessions.Delete("/:id/fields/:key", h.deleteField)
	sessions.Patch("/:id/fields/:key/category", h.recategorizeField)
	sessions.Get("/:id/fields", h.listFields)

	sessions.Get("/:id/export", h.exportGrouped)
	sessions.Get("/:id/export/text", h.exportText)

	sessions.Get("/:id/placeholders", h.resolvePlaceholders)
	sessions.Post("/:id/placeholders/:name/bind", h.bindPlaceholder)

	sessions.Post("/:id/analyze", h.analyze)

	sessions.Post("/:id/snapshots", h.saveSnapshot)
	sessions.Post("/:id/snapshots/restore", h.restoreSnapshot)

	api.Get("/cases/:caseId/snapshots", h.listSnapshots)
}

func authFrom(c *fiber.Ctx) (*kernel.AuthContext, error) {
	auth, ok := c.Locals("auth").(*kernel.AuthContext)
	if !ok || auth == nil {
		return nil, errx.New("Missing authentication context", errx.TypeAuthorization)
	}
	return auth, nil
}

func sessionID(c *fiber.Ctx) kernel.SessionID {
	return kernel.SessionID(c.Params("id"))
}

type openSessionRequest struct {
	CaseID     string `json:"case_id"`
	DocumentID string `json:"document_id"`
	Page       int    `json:"page"`
}

func (h *ReviewHandlers) openSession(c *fiber.Ctx) error {
	auth, err := authFrom(c)
	if err != nil {
		return err
	}

	var req openSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("Invalid request body", errx.TypeValidation)
	}
	if req.CaseID == "" || req.DocumentID == "" {
		return errx.New("case_id and document_id are required", errx.TypeValidation)
	}
	if req.Page < 1 {
		req.Page = 1
	}

	session, err := h.service.OpenSession(c.Context(), auth,
		kernel.CaseID(req.CaseID), kernel.DocumentID(req.DocumentID), req.Page)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(sessionView(session))
}

func (h *ReviewHandlers) getSession(c *fiber.Ctx) error {
	session, err := h.service.GetSession(sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(sessionView(session))
}

func (h *ReviewHandlers) closeSession(c *fiber.Ctx) error {
	h.service.CloseSession(sessionID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

type loadPageRequest struct {
	Page int `json:"page"`
}

func (h *ReviewHandlers) loadPage(c *fiber.Ctx) error {
	var req loadPageRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("Invalid request body", errx.TypeValidation)
	}
	if req.Page < 1 {
		return errx.New("page must be >= 1", errx.TypeValidation)
	}

	lines, err := h.service.LoadPage(c.Context(), sessionID(c), req.Page)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"page": req.Page, "lines": lines})
}

type lineRequest struct {
	Index int `json:"index"`
}

func (h *ReviewHandlers) click(c *fiber.Ctx) error {
	return h.selectionOp(c, h.service.SelectLine)
}

func (h *ReviewHandlers) toggle(c *fiber.Ctx) error {
	return h.selectionOp(c, h.service.ToggleLine)
}

func (h *ReviewHandlers) extend(c *fiber.Ctx) error {
	return h.selectionOp(c, h.service.ExtendSelection)
}

func (h *ReviewHandlers) selectionOp(c *fiber.Ctx, op func(kernel.SessionID, int) error) error {
	var req lineRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("Invalid request body", errx.TypeValidation)
	}
	if err := op(sessionID(c), req.Index); err != nil {
		return err
	}

	session, err := h.service.GetSession(sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(selectionView(session))
}

func (h *ReviewHandlers) clearSelection(c *fiber.Ctx) error {
	if err := h.service.ClearSelection(sessionID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ReviewHandlers) commitSelection(c *fiber.Ctx) error {
	candidate, err := h.service.CommitSelection(sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(candidate)
}

type fieldRequest struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Category string `json:"category"`
}

func (h *ReviewHandlers) applyCandidate(c *fiber.Ctx) error {
	var req fieldRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("Invalid request body", errx.TypeValidation)
	}
	if err := h.service.ApplyCandidate(sessionID(c), req.Key, req.Value, req.Category); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ReviewHandlers) cancelCandidate(c *fiber.Ctx) error {
	if err := h.service.CancelCandidate(sessionID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ReviewHandlers) upsertField(c *fiber.Ctx) error {
	var req fieldRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("Invalid request body", errx.TypeValidation)
	}
	if err := h.service.UpsertField(sessionID(c), req.Key, req.Value, req.Category); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type renameRequest struct {
	OldKey   string `json:"old_key"`
	NewKey   string `json:"new_key"`
	Value    string `json:"value"`
	Category string `json:"category"`
}

func (h *ReviewHandlers) renameField(c *fiber.Ctx) error {
	var req renameRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("Invalid request body", errx.TypeValidation)
	}
	if err := h.service.RenameField(sessionID(c), req.OldKey, req.NewKey, req.Value, req.Category); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ReviewHandlers) deleteField(c *fiber.Ctx) error {
	if err := h.service.DeleteField(sessionID(c), c.Params("key")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type categoryRequest struct {
	Category string `json:"category"`
}

func (h *ReviewHandlers) recategorizeField(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("Invalid request body", errx.TypeValidation)
	}
	if err := h.service.RecategorizeField(sessionID(c), c.Params("key"), req.Category); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ReviewHandlers) listFields(c *fiber.Ctx) error {
	query := c.Context().QueryArgs()
	var categories []string
	for _, v := range query.PeekMulti("category") {
		categories = append(categories, string(v))
	}

	fields, err := h.service.ListFields(sessionID(c), categories...)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"fields": fields})
}

func (h *ReviewHandlers) exportGrouped(c *fiber.Ctx) error {
	grouped, err := h.service.ExportGrouped(sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(grouped)
}

func (h *ReviewHandlers) exportText(c *fiber.Ctx) error {
	text, err := h.service.ExportText(sessionID(c))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(text)
}

func (h *ReviewHandlers) resolvePlaceholders(c *fiber.Ctx) error {
	resolved, err := h.service.ResolvePlaceholders(sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"placeholders": h.service.Placeholders(),
		"resolved":     resolved,
	})
}

type bindRequest struct {
	Value string `json:"value"`
}

func (h *ReviewHandlers) bindPlaceholder(c *fiber.Ctx) error {
	var req bindRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("Invalid request body", errx.TypeValidation)
	}
	if err := h.service.BindPlaceholder(sessionID(c), c.Params("name"), req.Value); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// analyze streams the AI-formatted record as server-sent events. The
// fasthttp request context is cancelled when the client disconnects,
// which aborts the upstream analysis and flushes whatever accumulated.
func (h *ReviewHandlers) analyze(c *fiber.Ctx) error {
	id := sessionID(c)
	if _, err := h.service.GetSession(id); err != nil {
		return err
	}

	reqCtx := c.Context()
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set("Connection", "keep-alive")

	reqCtx.SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		writeEvent := func(payload any) {
			data, err := json.Marshal(payload)
			if err != nil {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			w.Flush()
		}

		_, err := h.service.Analyze(reqCtx, id, func(fragment string) {
			writeEvent(fiber.Map{"content": fragment})
		})
		if err != nil {
			writeEvent(fiber.Map{"error": err.Error()})
			return
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
		w.Flush()
	}))
	return nil
}

func (h *ReviewHandlers) saveSnapshot(c *fiber.Ctx) error {
	auth, err := authFrom(c)
	if err != nil {
		return err
	}
	snapshot, err := h.service.SaveSnapshot(c.Context(), auth, sessionID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(snapshot)
}

func (h *ReviewHandlers) restoreSnapshot(c *fiber.Ctx) error {
	snapshot, err := h.service.RestoreSnapshot(c.Context(), sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(snapshot)
}

func (h *ReviewHandlers) listSnapshots(c *fiber.Ctx) error {
	auth, err := authFrom(c)
	if err != nil {
		return err
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	snapshots, err := h.service.ListSnapshots(c.Context(), auth,
		kernel.CaseID(c.Params("caseId")), page, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(snapshots)
}
