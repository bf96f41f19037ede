package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/dto"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/imaging"
	"github.com/BruksfildServices01/salon-manager/internal/middleware"
	ucHair "github.com/BruksfildServices01/salon-manager/internal/usecase/hairprofile"
)

type HairProfileHandler struct {
	profiles *ucHair.HairProfiles
	log      *zap.Logger
}

func NewHairProfileHandler(profiles *ucHair.HairProfiles, log *zap.Logger) *HairProfileHandler {
	return &HairProfileHandler{profiles: profiles, log: log}
}

type HairProfileRequest struct {
	HairType       string            `json:"hair_type"`
	Length         string            `json:"length"`
	Color          string            `json:"color"`
	ScalpCondition string            `json:"scalp_condition"`
	Allergies      string            `json:"allergies"`
	Notes          string            `json:"notes"`
	Attributes     map[string]string `json:"attributes"`
}

func actorOf(c *gin.Context) ucHair.Actor {
	return ucHair.Actor{ID: middleware.UserID(c), Role: middleware.UserRole(c)}
}

// --------- /me/hair-profile ---------

func (h *HairProfileHandler) GetMine(c *gin.Context) {
	h.get(c, middleware.UserID(c))
}

func (h *HairProfileHandler) PutMine(c *gin.Context) {
	h.put(c, middleware.UserID(c))
}

// --------- /users/:id/hair-profile ---------

func (h *HairProfileHandler) Get(c *gin.Context) {
	h.get(c, c.Param("id"))
}

func (h *HairProfileHandler) Put(c *gin.Context) {
	h.put(c, c.Param("id"))
}

func (h *HairProfileHandler) UploadPhoto(c *gin.Context) {
	fh, err := c.FormFile("photo")
	if err != nil || fh.Size > imaging.MaxUploadBytes {
		httperr.Abort(c, httperr.CodeInvalidImage)
		return
	}
	f, err := fh.Open()
	if err != nil {
		httperr.Abort(c, httperr.CodeInvalidImage)
		return
	}
	defer f.Close()

	p, err := h.profiles.UploadPhoto(c.Request.Context(), actorOf(c), c.Param("id"), f)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewHairProfileDTO(p))
}

func (h *HairProfileHandler) get(c *gin.Context, clientID string) {
	p, err := h.profiles.Get(c.Request.Context(), actorOf(c), clientID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewHairProfileDTO(p))
}

func (h *HairProfileHandler) put(c *gin.Context, clientID string) {
	var req HairProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.profiles.Upsert(c.Request.Context(), ucHair.UpsertInput{
		Actor:          actorOf(c),
		ClientID:       clientID,
		HairType:       req.HairType,
		Length:         req.Length,
		Color:          req.Color,
		ScalpCondition: req.ScalpCondition,
		Allergies:      req.Allergies,
		Notes:          req.Notes,
		Attributes:     req.Attributes,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewHairProfileDTO(p))
}
