package handlers

import (
	"errors"
	"strconv"

	"nomadtax/internal/core/domain"
	"nomadtax/internal/core/services"
	"nomadtax/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DocumentHandler handles document endpoints
type DocumentHandler struct {
	documentService *services.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// ShareRequest represents the share request body
type ShareRequest struct {
	Email string `json:"email"`
}

// StatusRequest represents the status change request body
type StatusRequest struct {
	Status string `json:"status"`
}

// Create creates a document
// @Summary Create document
// @Description Register a document (passport, visa, permit, ...); file_key is an opaque storage reference
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateDocumentInput true "Document"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateDocumentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	doc, err := h.documentService.Create(c.Context(), userID, &input)
	if err != nil {
		return documentError(c, err)
	}

	return response.Created(c, "Document created successfully", doc)
}

// List lists the user's documents
// @Summary List documents
// @Description List all documents owned by the user
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	docs, err := h.documentService.List(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list documents")
	}

	return response.Success(c, "Documents retrieved successfully", docs)
}

// GetByID returns one document
// @Summary Get document
// @Description Get a single document by ID
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid document ID")
	}

	doc, err := h.documentService.GetByID(c.Context(), userID, uint(id))
	if err != nil {
		return documentError(c, err)
	}

	return response.Success(c, "Document retrieved successfully", doc)
}

// Update updates a document
// @Summary Update document
// @Description Update fields of a document
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Param body body services.UpdateDocumentInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /documents/{id} [put]
func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid document ID")
	}

	var input services.UpdateDocumentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	doc, err := h.documentService.Update(c.Context(), userID, uint(id), &input)
	if err != nil {
		return documentError(c, err)
	}

	return response.Success(c, "Document updated successfully", doc)
}

// SetStatus activates or deactivates a document
// @Summary Set document status
// @Description Activate or deactivate a document; inactive documents drop out of risk computation
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Param body body StatusRequest true "New status (ACTIVE or INACTIVE)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /documents/{id}/status [put]
func (h *DocumentHandler) SetStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid document ID")
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	doc, err := h.documentService.SetStatus(c.Context(), userID, uint(id), domain.DocumentStatus(req.Status))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Status must be ACTIVE or INACTIVE")
		}
		return documentError(c, err)
	}

	return response.Success(c, "Document status updated successfully", doc)
}

// Delete removes a document
// @Summary Delete document
// @Description Delete a document by ID
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid document ID")
	}

	if err := h.documentService.Delete(c.Context(), userID, uint(id)); err != nil {
		return documentError(c, err)
	}

	return response.Success(c, "Document deleted successfully", nil)
}

// Share creates a share link for an outside party
// @Summary Share document
// @Description Create a share token granting read access to one document
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Param body body ShareRequest true "Recipient email"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /documents/{id}/share [post]
func (h *DocumentHandler) Share(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid document ID")
	}

	var req ShareRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Recipient email is required")
	}

	share, err := h.documentService.Share(c.Context(), userID, uint(id), req.Email)
	if err != nil {
		return documentError(c, err)
	}

	return response.Created(c, "Document shared successfully", share)
}

// RevokeShare revokes a share
// @Summary Revoke document share
// @Description Revoke a previously created share token
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Param share_id path int true "Share ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /documents/{id}/share/{share_id} [delete]
func (h *DocumentHandler) RevokeShare(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid document ID")
	}

	shareID, err := strconv.ParseUint(c.Params("share_id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid share ID")
	}

	if err := h.documentService.RevokeShare(c.Context(), userID, uint(id), uint(shareID)); err != nil {
		return documentError(c, err)
	}

	return response.Success(c, "Share revoked successfully", nil)
}

// GetShared resolves a public share token
// @Summary Get shared document
// @Description Resolve a share token to the document it grants access to (no auth)
// @Tags Documents
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /shared/{token} [get]
func (h *DocumentHandler) GetShared(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return response.BadRequest(c, "Share token is required")
	}

	doc, err := h.documentService.GetShared(c.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrShareNotFound) {
			return response.NotFound(c, "Share link not found or revoked")
		}
		return response.InternalServerError(c, "Failed to resolve share link")
	}

	return response.Success(c, "Shared document retrieved successfully", doc)
}

// documentError maps document domain errors to HTTP responses
func documentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound):
		return response.NotFound(c, "Document not found")
	case errors.Is(err, domain.ErrShareNotFound):
		return response.NotFound(c, "Share not found")
	case errors.Is(err, domain.ErrInvalidDocumentType):
		return response.BadRequest(c, "Unknown document type")
	case errors.Is(err, domain.ErrInvalidCountry):
		return response.BadRequest(c, "Issuing country must be a 2-letter country code")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "Invalid input")
	default:
		return response.InternalServerError(c, "Document operation failed")
	}
}
