package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	"github.com/BruksfildServices01/salon-manager/internal/middleware"
	ucSlot "github.com/BruksfildServices01/salon-manager/internal/usecase/slot"
)

type SlotHandler struct {
	slots *ucSlot.Slots
	log   *zap.Logger
}

func NewSlotHandler(slots *ucSlot.Slots, log *zap.Logger) *SlotHandler {
	return &SlotHandler{slots: slots, log: log}
}

// --------- Requests ---------

type CreateSlotRequest struct {
	Weekday   *int   `json:"weekday" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type UpdateSlotRequest struct {
	Weekday   *int    `json:"weekday,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func slotActor(c *gin.Context) ucSlot.Actor {
	return ucSlot.Actor{ID: middleware.UserID(c), Role: middleware.UserRole(c)}
}

// --------- Handlers ---------

// List aceita ?weekday=0..6 e ?active=true.
func (h *SlotHandler) List(c *gin.Context) {
	var weekday *int
	if raw := c.Query("weekday"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httperr.Abort(c, httperr.CodeInvalidWeekday)
			return
		}
		weekday = &n
	}

	activeOnly := c.Query("active") == "true"

	list, err := h.slots.List(c.Request.Context(), c.Param("id"), weekday, activeOnly)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}

func (h *SlotHandler) Create(c *gin.Context) {
	var req CreateSlotRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.slots.Create(c.Request.Context(), ucSlot.CreateSlotInput{
		Actor:     slotActor(c),
		StylistID: c.Param("id"),
		Weekday:   *req.Weekday,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *SlotHandler) Update(c *gin.Context) {
	var req UpdateSlotRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.slots.Update(c.Request.Context(), ucSlot.UpdateSlotInput{
		Actor:     slotActor(c),
		SlotID:    c.Param("id"),
		Weekday:   req.Weekday,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SlotHandler) SetActive(c *gin.Context) {
	var req SetActiveRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.slots.SetActive(c.Request.Context(), slotActor(c), c.Param("id"), *req.Active)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
