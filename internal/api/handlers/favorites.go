package handlers

import (
	"net/http"

	"vagas-rmc/internal/services"
	"vagas-rmc/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type FavoriteHandler struct {
	service   services.FavoriteService
	validator *validator.Validate
}

func NewFavoriteHandler(service services.FavoriteService, validate *validator.Validate) *FavoriteHandler {
	return &FavoriteHandler{service: service, validator: validate}
}

// ToggleFavorite godoc
// @Summary      Bookmark or un-bookmark a job
// @Tags         jobs
// @Produce      json
// @Param        slug path      string true "Job slug"
// @Success      200  {object}  dto.Response{data=dto.ToggleFavoriteResponse}
// @Failure      404  {object}  dto.Response
// @Router       /jobs/{slug}/favorite [post]
// @Security     BearerAuth
func (h *FavoriteHandler) ToggleFavorite(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	favorited, err := h.service.ToggleFavorite(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		respondError(c, err, "ToggleFavorite")
		return
	}

	message := "Job removed from favorites"
	if favorited {
		message = "Job added to favorites"
	}
	respondOK(c, http.StatusOK, dto.ToggleFavoriteResponse{Favorited: favorited, Message: message})
}

// ListFavorites godoc
// @Summary      List bookmarked jobs
// @Tags         candidate
// @Produce      json
// @Param        page  query int false "Page" default(1)
// @Param        limit query int false "Page size" default(10)
// @Success      200 {object}  dto.Response{data=[]models.FavoriteJob}
// @Router       /candidate/favorites [get]
// @Security     BearerAuth
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.PageQuery
	if !bindQuery(c, h.validator, &req) {
		return
	}

	favorites, page, err := h.service.ListFavorites(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "ListFavorites")
		return
	}
	respondPage(c, favorites, page)
}
