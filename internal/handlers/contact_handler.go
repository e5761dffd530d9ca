package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "borrowtrack/internal/errors"
	"borrowtrack/internal/services"
)

// ContactHandler handles contact-related requests.
type ContactHandler struct {
	contactService services.ContactServicer
	auditService   services.AuditServicer
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService services.ContactServicer, auditService services.AuditServicer) *ContactHandler {
	return &ContactHandler{contactService: contactService, auditService: auditService}
}

// ContactRequest represents the request payload for creating or updating a contact
type ContactRequest struct {
	Number string `json:"number" binding:"required,phone"`
	Tag    string `json:"tag" binding:"max=50"`
}

// ContactResponse represents a contact in the response
type ContactResponse struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Tag    string `json:"tag"`
}

// AddContact handles attaching a contact number to a person
// @Summary     Add contact
// @Description Attach a phone number to a customer
// @Tags        contacts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string         true "Person ID"
// @Param       request body ContactRequest true "Contact details"
// @Success     201 {object} ContactResponse "Contact created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Person not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /people/{id}/contacts [post]
func (h *ContactHandler) AddContact(c *gin.Context) {
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

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	contact, err := h.contactService.AddContact(userID, personID, req.Number, req.Tag)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "ADD_CONTACT", "contact", contact.ID, c.ClientIP(),
		map[string]interface{}{"person_id": personID})

	c.JSON(http.StatusCreated, gin.H{"contact": contact})
}

// UpdateContact handles updating a contact's number and tag
// @Summary     Update contact
// @Description Replace a contact's number and tag
// @Tags        contacts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string         true "Contact ID"
// @Param       request body ContactRequest true "Contact details"
// @Success     200 {object} ContactResponse "Updated contact"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Contact not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contacts/{id} [put]
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	contactID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	contact, err := h.contactService.UpdateContact(userID, contactID, req.Number, req.Tag)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_CONTACT", "contact", contactID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"contact": contact})
}

// DeleteContact handles the deletion of a contact
// @Summary     Delete contact
// @Description Delete a contact by ID
// @Tags        contacts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Contact ID"
// @Success     200 {object} MessageResponse "Contact deleted"
// @Failure     400 {object} ErrorResponse "Invalid contact ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Contact not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contacts/{id} [delete]
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	contactID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.contactService.DeleteContact(userID, contactID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_CONTACT", "contact", contactID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted successfully"})
}
