package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/domain"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	infraRepo "github.com/BruksfildServices01/salon-manager/internal/infra/repository"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLister interface {
	List(ctx context.Context, f infraRepo.AuditFilter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	repo AuditLister
	loc  *time.Location
	log  *zap.Logger
}

func NewAuditLogsHandler(repo AuditLister, loc *time.Location, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{repo: repo, loc: loc, log: log}
}

// List aceita ?action, ?entity, ?from e ?to (YYYY-MM-DD, inclusivos, no
// fuso do salão), ?page e ?limit.
func (h *AuditLogsHandler) List(c *gin.Context) {
	from, err := parseDateIn(h.loc, c.Query("from"))
	if err != nil {
		httperr.Abort(c, httperr.CodeInvalidRequest)
		return
	}
	to, err := parseDateIn(h.loc, c.Query("to"))
	if err != nil {
		httperr.Abort(c, httperr.CodeInvalidRequest)
		return
	}
	if to != nil {
		end := to.AddDate(0, 0, 1)
		to = &end
	}

	page, limit, _ := domain.Page(queryInt(c, "page"), queryInt(c, "limit"))

	logs, total, err := h.repo.List(c.Request.Context(), infraRepo.AuditFilter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		From:   from,
		To:     to,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Page(c, logs, total, page, limit)
}
