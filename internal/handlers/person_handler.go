package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "borrowtrack/internal/errors"
	"borrowtrack/internal/listing"
	"borrowtrack/internal/services"
)

// PersonHandler handles customer-related requests.
type PersonHandler struct {
	personService services.PersonServicer
	auditService  services.AuditServicer
}

// NewPersonHandler creates a new PersonHandler.
func NewPersonHandler(personService services.PersonServicer, auditService services.AuditServicer) *PersonHandler {
	return &PersonHandler{personService: personService, auditService: auditService}
}

// NewContactRequest represents a contact created inline with a person.
type NewContactRequest struct {
	Number string `json:"number" binding:"required,phone"`
	Tag    string `json:"tag" binding:"max=50"`
}

// CreatePersonRequest represents the request payload for creating a person
type CreatePersonRequest struct {
	Name     string              `json:"name" binding:"required,max=255"`
	DOB      *string             `json:"dob"`
	Address  string              `json:"address" binding:"max=500"`
	Photo    string              `json:"photo"`
	GroupID  *string             `json:"group_id"`
	Contacts []NewContactRequest `json:"contacts" binding:"omitempty,dive"`
}

// UpdatePersonRequest represents the request payload for updating a person.
// Only provided fields are changed; group_id set to "" detaches the group.
type UpdatePersonRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=255"`
	DOB     *string `json:"dob"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	Photo   *string `json:"photo"`
	GroupID *string `json:"group_id"`
}

// PersonResponse represents a person with derived ledger state
type PersonResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Balance       string  `json:"balance"`
	TotalBorrowed string  `json:"total_borrowed"`
	TotalPaid     string  `json:"total_paid"`
	LastPaidDate  *string `json:"last_paid_date,omitempty"`
}

// parseDOB accepts YYYY-MM-DD or RFC3339 date-of-birth values.
func parseDOB(value string) (*time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid dob format, use YYYY-MM-DD or RFC3339")
	}
	return &t, nil
}

// CreatePerson handles the creation of a new customer
// @Summary     Create a person
// @Description Create a new customer, optionally with contacts and a group
// @Tags        people
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePersonRequest true "Person details"
// @Success     201 {object} PersonResponse "Person created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Group not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /people [post]
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.NewPerson{
		Name:    req.Name,
		Address: req.Address,
		Photo:   req.Photo,
		GroupID: req.GroupID,
	}
	if req.DOB != nil && *req.DOB != "" {
		dob, parseErr := parseDOB(*req.DOB)
		if parseErr != nil {
			respondWithError(c, parseErr)
			return
		}
		input.DOB = dob
	}
	for _, contact := range req.Contacts {
		input.Contacts = append(input.Contacts, services.NewContact{Number: contact.Number, Tag: contact.Tag})
	}

	person, err := h.personService.CreatePerson(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_PERSON", "person", person.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusCreated, gin.H{"person": person})
}

// GetPeople handles the roster listing with filter, search, and sort
// @Summary     List people
// @Description Get the customer roster with derived balances, filtered by group, searched by name or contact number, and ordered by the chosen sort key. Totals always cover the whole customer base.
// @Tags        people
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       group_id query string false "Group ID to filter by, or 'all' (default all)"
// @Param       search   query string false "Substring match on name or contact number"
// @Param       sort     query string false "Sort key (name, balance-high, balance-low, last-paid; default name)"
// @Success     200 {object} services.Roster "Roster with totals"
// @Failure     400 {object} ErrorResponse "Invalid sort key"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /people [get]
func (h *PersonHandler) GetPeople(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	opts := listing.Options{
		GroupID: c.DefaultQuery("group_id", listing.AllGroups),
		Search:  c.Query("search"),
		Sort:    listing.SortKey(c.DefaultQuery("sort", string(listing.SortByName))),
	}
	switch opts.Sort {
	case listing.SortByName, listing.SortByBalanceHigh, listing.SortByBalanceLow, listing.SortByLastPaid:
	default:
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid sort, must be name, balance-high, balance-low, or last-paid"))
		return
	}

	roster, err := h.personService.ListPeople(userID, opts)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, roster)
}

// GetPersonByID handles the retrieval of a specific customer
// @Summary     Get person by ID
// @Description Get a customer with derived balance, contacts, transactions, and document metadata
// @Tags        people
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Person ID"
// @Success     200 {object} PersonResponse "Person details"
// @Failure     400 {object} ErrorResponse "Invalid person ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Person not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /people/{id} [get]
func (h *PersonHandler) GetPersonByID(c *gin.Context) {
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

	person, err := h.personService.GetPersonByID(userID, personID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"person": person})
}

// UpdatePerson handles updating a customer's profile
// @Summary     Update person
// @Description Update a customer's profile fields. Only provided fields are changed; set group_id to an empty string to detach the group.
// @Tags        people
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Person ID"
// @Param       request body UpdatePersonRequest true "Fields to update"
// @Success     200 {object} PersonResponse "Updated person"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Person or group not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /people/{id} [put]
func (h *PersonHandler) UpdatePerson(c *gin.Context) {
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

	var req UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	patch := services.PersonPatch{
		Name:    req.Name,
		Address: req.Address,
		Photo:   req.Photo,
		GroupID: req.GroupID,
	}
	if req.DOB != nil && *req.DOB != "" {
		dob, parseErr := parseDOB(*req.DOB)
		if parseErr != nil {
			respondWithError(c, parseErr)
			return
		}
		patch.DOB = dob
	}

	person, err := h.personService.UpdatePerson(userID, personID, patch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_PERSON", "person", personID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"person": person})
}
