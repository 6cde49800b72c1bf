package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moodpick/moodpick-backend/internal/catalog"
	"github.com/moodpick/moodpick-backend/internal/http/response"
)

type CatalogHandler struct {
	store *catalog.Store
}

func NewCatalogHandler(store *catalog.Store) *CatalogHandler {
	return &CatalogHandler{store: store}
}

// POST /api/catalog/import
// Accepts either a multipart upload under "file" or a raw CSV body.
func (h *CatalogHandler) Import(c *gin.Context) {
	var stats catalog.ImportStats

	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_upload", err)
			return
		}
		defer f.Close()
		stats, err = h.store.ImportCSV(c.Request.Context(), f)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "import_failed", err)
			return
		}
	} else {
		var impErr error
		stats, impErr = h.store.ImportCSV(c.Request.Context(), c.Request.Body)
		if impErr != nil {
			response.RespondError(c, http.StatusBadRequest, "import_failed", impErr)
			return
		}
	}
	response.RespondOK(c, gin.H{"stats": stats})
}

// GET /api/catalog/genres
func (h *CatalogHandler) Genres(c *gin.Context) {
	tokens, err := h.store.GenreTokens(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "genres_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"genres": tokens})
}
