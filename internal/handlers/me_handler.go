package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/dto"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/middleware"
	ucAuth "github.com/BruksfildServices01/salon-manager/internal/usecase/auth"
)

type MeHandler struct {
	current *ucAuth.Current
	log     *zap.Logger
}

func NewMeHandler(current *ucAuth.Current, log *zap.Logger) *MeHandler {
	return &MeHandler{current: current, log: log}
}

// GetMe devolve a identidade corrente: usuário, perfil capilar (clientes)
// e o menu liberado para o papel.
func (h *MeHandler) GetMe(c *gin.Context) {
	cur, err := h.current.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	out := dto.CurrentUserDTO{
		User: dto.NewUserDTO(cur.User),
		Menu: cur.Menu,
	}
	if cur.HairProfile != nil {
		out.HairProfile = dto.NewHairProfileDTO(cur.HairProfile)
	}

	c.JSON(http.StatusOK, out)
}
