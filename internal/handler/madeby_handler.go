package handler

import (
	"net/http"

	"anoa.com/campuscircle/internal/service"
	"anoa.com/campuscircle/pkg/response"
	"github.com/gin-gonic/gin"
)

type MadeByHandler struct {
	madeByService service.MadeByService
}

func NewMadeByHandler(madeByService service.MadeByService) *MadeByHandler {
	return &MadeByHandler{
		madeByService: madeByService,
	}
}

func (h *MadeByHandler) Get(c *gin.Context) {
	res, err := h.madeByService.Get(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
