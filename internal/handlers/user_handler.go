package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/dto"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	"github.com/BruksfildServices01/salon-manager/internal/middleware"
	ucUser "github.com/BruksfildServices01/salon-manager/internal/usecase/user"
)

// ======================================================
// HANDLER
// ======================================================

type UserHandler struct {
	create    *ucUser.CreateUser
	list      *ucUser.ListUsers
	get       *ucUser.GetUser
	update    *ucUser.UpdateUser
	setActive *ucUser.SetUserActive
	loyalty   *ucUser.AdjustLoyalty
	log       *zap.Logger
}

func NewUserHandler(
	create *ucUser.CreateUser,
	list *ucUser.ListUsers,
	get *ucUser.GetUser,
	update *ucUser.UpdateUser,
	setActive *ucUser.SetUserActive,
	loyalty *ucUser.AdjustLoyalty,
	log *zap.Logger,
) *UserHandler {
	return &UserHandler{
		create:    create,
		list:      list,
		get:       get,
		update:    update,
		setActive: setActive,
		loyalty:   loyalty,
		log:       log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Role  *string `json:"role,omitempty"`
}

type LoyaltyRequest struct {
	Delta  int `json:"delta"`
	Points int `json:"points"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *UserHandler) List(c *gin.Context) {
	out, err := h.list.Execute(c.Request.Context(), ucUser.ListUsersInput{
		Actor:  middleware.UserRole(c),
		Role:   c.Query("role"),
		Active: queryBool(c, "active"),
		Query:  c.Query("query"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Page(c, dto.NewUserDTOs(out.Users), out.Total, out.Page, out.Limit)
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.get.Execute(c.Request.Context(), middleware.UserRole(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserDTO(u))
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	actorID := middleware.UserID(c)
	u, err := h.create.Execute(c.Request.Context(), ucUser.CreateUserInput{
		ActorID:  &actorID,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserDTO(u))
}

func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.update.Execute(c.Request.Context(), ucUser.UpdateUserInput{
		ActorID:   middleware.UserID(c),
		ActorRole: middleware.UserRole(c),
		UserID:    c.Param("id"),
		Name:      req.Name,
		Phone:     req.Phone,
		Role:      req.Role,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserDTO(u))
}

// ======================================================
// ACTIVE FLAG
// ======================================================

func (h *UserHandler) Deactivate(c *gin.Context) {
	h.toggle(c, false)
}

func (h *UserHandler) Reactivate(c *gin.Context) {
	h.toggle(c, true)
}

func (h *UserHandler) toggle(c *gin.Context, active bool) {
	u, err := h.setActive.Execute(c.Request.Context(), middleware.UserID(c), c.Param("id"), active)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserDTO(u))
}

// ======================================================
// LOYALTY
// ======================================================

func (h *UserHandler) AddLoyalty(c *gin.Context) {
	var req LoyaltyRequest
	if !bindJSON(c, &req) {
		return
	}

	id := c.Param("id")
	balance, err := h.loyalty.Add(c.Request.Context(), middleware.UserID(c), id, req.Delta)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoyaltyDTO{UserID: id, Balance: balance})
}

func (h *UserHandler) RedeemLoyalty(c *gin.Context) {
	var req LoyaltyRequest
	if !bindJSON(c, &req) {
		return
	}

	id := c.Param("id")
	balance, err := h.loyalty.Redeem(c.Request.Context(), middleware.UserID(c), id, req.Points)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoyaltyDTO{UserID: id, Balance: balance})
}
