package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/dto"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	"github.com/BruksfildServices01/salon-manager/internal/middleware"
	"github.com/BruksfildServices01/salon-manager/internal/role"
	ucSpecialty "github.com/BruksfildServices01/salon-manager/internal/usecase/specialty"
)

// ======================================================
// HANDLER
// ======================================================

type SpecialtyHandler struct {
	create      *ucSpecialty.CreateSpecialty
	list        *ucSpecialty.ListSpecialties
	update      *ucSpecialty.UpdateSpecialty
	recount     *ucSpecialty.RecountSpecialties
	assignments *ucSpecialty.Assignments
	log         *zap.Logger
}

func NewSpecialtyHandler(
	create *ucSpecialty.CreateSpecialty,
	list *ucSpecialty.ListSpecialties,
	update *ucSpecialty.UpdateSpecialty,
	recount *ucSpecialty.RecountSpecialties,
	assignments *ucSpecialty.Assignments,
	log *zap.Logger,
) *SpecialtyHandler {
	return &SpecialtyHandler{
		create:      create,
		list:        list,
		update:      update,
		recount:     recount,
		assignments: assignments,
		log:         log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSpecialtyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateSpecialtyRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

type AssignSpecialtyRequest struct {
	SpecialtyID string `json:"specialty_id" binding:"required"`
}

// ======================================================
// SPECIALTIES
// ======================================================

// List traz só as ativas; admin pode pedir ?include_inactive=true.
func (h *SpecialtyHandler) List(c *gin.Context) {
	activeOnly := !(c.Query("include_inactive") == "true" && middleware.UserRole(c) == role.Admin)

	list, err := h.list.Execute(c.Request.Context(), activeOnly)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}

func (h *SpecialtyHandler) Create(c *gin.Context) {
	var req CreateSpecialtyRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.create.Execute(c.Request.Context(), ucSpecialty.CreateSpecialtyInput{
		ActorID:     middleware.UserID(c),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *SpecialtyHandler) Update(c *gin.Context) {
	var req UpdateSpecialtyRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.update.Execute(c.Request.Context(), ucSpecialty.UpdateSpecialtyInput{
		ActorID:     middleware.UserID(c),
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SpecialtyHandler) Deactivate(c *gin.Context) {
	off := false
	s, err := h.update.Execute(c.Request.Context(), ucSpecialty.UpdateSpecialtyInput{
		ActorID: middleware.UserID(c),
		ID:      c.Param("id"),
		Active:  &off,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SpecialtyHandler) Stylists(c *gin.Context) {
	users, err := h.assignments.ListStylists(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, dto.NewUserDTOs(users))
}

func (h *SpecialtyHandler) Recount(c *gin.Context) {
	counts, err := h.recount.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

// ======================================================
// STYLIST ASSIGNMENTS
// ======================================================

func (h *SpecialtyHandler) ListForStylist(c *gin.Context) {
	list, err := h.assignments.ListForStylist(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	out := make([]dto.AssignmentDTO, 0, len(list))
	for i := range list {
		out = append(out, dto.NewAssignmentDTO(&list[i]))
	}
	httpresp.List(c, out)
}

func (h *SpecialtyHandler) Assign(c *gin.Context) {
	var req AssignSpecialtyRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.assignments.Assign(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.SpecialtyID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAssignmentDTO(a))
}

func (h *SpecialtyHandler) Unassign(c *gin.Context) {
	err := h.assignments.Unassign(c.Request.Context(), middleware.UserID(c), c.Param("id"), c.Param("specialtyId"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
