package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"

	"storefront_back_end/internal/config"
	"storefront_back_end/internal/database"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/services"
)

type DocumentHandlers struct {
	accounts *services.AccountsService
}

func NewDocumentHandlers(accounts *services.AccountsService) *DocumentHandlers {
	return &DocumentHandlers{accounts: accounts}
}

//
// =========================
// 🟢 UPLOAD DOCUMENTS COMPTE
// =========================
//

// POST /api/users/:uid/documents — téléverse des pièces dans MinIO et
// attache leurs références au compte
func (h *DocumentHandlers) Upload(c *gin.Context) {
	if database.MinIO == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Stockage de documents non configuré"})
		return
	}

	uid := c.Param("uid")
	actor := actorFrom(c)
	if !actor.IsAdmin() && actor.ID != uid {
		c.JSON(http.StatusForbidden, gin.H{"error": "Vous ne pouvez téléverser que vos propres documents"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Form-data invalide"})
		return
	}

	files := form.File["documents"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun fichier fourni"})
		return
	}

	ctx := c.Request.Context()
	refs := []models.DocumentRef{}

	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			continue
		}

		objectName := fmt.Sprintf("users/%s/%d-%s", uid, time.Now().UnixNano(), fileHeader.Filename)
		_, err = database.MinIO.PutObject(
			ctx,
			config.MinIOBucket(),
			objectName,
			file,
			fileHeader.Size,
			minio.PutObjectOptions{ContentType: fileHeader.Header.Get("Content-Type")},
		)
		file.Close()
		if err != nil {
			continue
		}

		refs = append(refs, models.DocumentRef{
			Name:      fileHeader.Filename,
			Reference: fmt.Sprintf("%s/%s", config.MinIOBucket(), objectName),
		})
	}

	if len(refs) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Aucun document téléversé"})
		return
	}

	u, err := h.accounts.AddDocuments(ctx, uid, refs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Documents téléversés", "documents": u.Documents})
}
