package handlers

import (
	"errors"
	"net/http"

	"cpr-rag-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// DocumentHandler handles HTTP requests for indexed documents
type DocumentHandler struct {
	docRepo   *repository.DocumentRepository
	chunkRepo *repository.ChunkRepository
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docRepo *repository.DocumentRepository, chunkRepo *repository.ChunkRepository) *DocumentHandler {
	return &DocumentHandler{docRepo: docRepo, chunkRepo: chunkRepo}
}

// ListDocuments handles GET /api/documents
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	docs, err := h.docRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LIST_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"documents": docs,
	})
}

// GetDocument handles GET /api/documents/:id
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id := c.Param("id")

	doc, err := h.docRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DOCUMENT_NOT_FOUND",
					"message": "No document with id " + id,
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "GET_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	chunkCount, err := h.chunkRepo.CountByParent(c.Request.Context(), id)
	if err != nil {
		chunkCount = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"document":    doc,
		"chunk_count": chunkCount,
	})
}

// isNotFound reports whether a repository error means the row does not
// exist, unwrapping any context the repository layer added.
func isNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
