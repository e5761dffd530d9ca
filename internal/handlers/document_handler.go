package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "borrowtrack/internal/errors"
	"borrowtrack/internal/services"
)

// DocumentHandler handles identity document requests.
type DocumentHandler struct {
	documentService services.DocumentServicer
	auditService    services.AuditServicer
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService services.DocumentServicer, auditService services.AuditServicer) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, auditService: auditService}
}

// CreateDocumentRequest represents the request payload for attaching a document
type CreateDocumentRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	FileType    string `json:"file_type" binding:"omitempty,file_type"`
	FileSize    int64  `json:"file_size" binding:"omitempty,gte=0"`
	FileData    string `json:"file_data" binding:"required"`
	Description string `json:"description" binding:"max=255"`
}

// DocumentResponse represents a document in the response
type DocumentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	FileType    string `json:"file_type"`
	FileSize    int64  `json:"file_size"`
	Description string `json:"description"`
}

// CreateDocument handles attaching a document to a person
// @Summary     Add document
// @Description Attach an identity document with an inline base64 payload to a customer
// @Tags        documents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                true "Person ID"
// @Param       request body CreateDocumentRequest true "Document details"
// @Success     201 {object} DocumentResponse "Document created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Person not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /people/{id}/documents [post]
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	personID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	document, err := h.documentService.CreateDocument(userID, personID, services.NewDocument{
		Name:        req.Name,
		FileType:    req.FileType,
		FileSize:    req.FileSize,
		FileData:    req.FileData,
		Description: req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_DOCUMENT", "document", document.ID, c.ClientIP(),
		map[string]interface{}{"person_id": personID, "name": req.Name})

	c.JSON(http.StatusCreated, gin.H{"document": document})
}

// GetPersonDocuments handles listing a person's documents
// @Summary     List person documents
// @Description Get a customer's document metadata, newest first. Payloads are omitted; fetch a single document for its data.
// @Tags        people,documents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Person ID"
// @Success     200 {array} DocumentResponse "Documents"
// @Failure     400 {object} ErrorResponse "Invalid person ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Person not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /people/{id}/documents [get]
func (h *DocumentHandler) GetPersonDocuments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	personID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	documents, err := h.documentService.GetPersonDocuments(userID, personID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": documents})
}

// GetDocumentByID handles the retrieval of a document with its payload
// @Summary     Get document by ID
// @Description Get a document including its base64 payload
// @Tags        documents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Document ID"
// @Success     200 {object} DocumentResponse "Document with payload"
// @Failure     400 {object} ErrorResponse "Invalid document ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Document not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /documents/{id} [get]
func (h *DocumentHandler) GetDocumentByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	documentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	document, err := h.documentService.GetDocumentByID(userID, documentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": document})
}

// DeleteDocument handles the deletion of a document
// @Summary     Delete document
// @Description Delete a document by ID
// @Tags        documents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Document ID"
// @Success     200 {object} MessageResponse "Document deleted"
// @Failure     400 {object} ErrorResponse "Invalid document ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Document not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	documentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.documentService.DeleteDocument(userID, documentID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_DOCUMENT", "document", documentID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}
