package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_back_end/internal/cache"
	"storefront_back_end/internal/database"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/search"
	"storefront_back_end/internal/services"
	"storefront_back_end/internal/storage/file"
)

func newDocumentHandlers(t *testing.T) *DocumentHandlers {
	t.Helper()
	store, err := file.Open(t.TempDir())
	require.NoError(t, err)

	catalog := services.NewCatalogService(store.Products, search.New(nil), cache.New(nil))
	carts := services.NewCartsService(store.Carts, store.Products)
	chat := services.NewChatService(store.Chats)
	accounts := services.NewAccountsService(store.Users, carts, catalog, chat, "admin@storefront.local", "admin-pass")
	return NewDocumentHandlers(accounts)
}

func uploadContext(t *testing.T, uid, actorID, actorRole string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/users/"+uid+"/documents", strings.NewReader(""))
	c.Params = gin.Params{{Key: "uid", Value: uid}}
	c.Set("user_id", actorID)
	c.Set("email", actorID+"@example.com")
	c.Set("role", actorRole)
	return c, rec
}

func TestUploadRequiresConfiguredObjectStorage(t *testing.T) {
	h := newDocumentHandlers(t)
	orig := database.MinIO
	database.MinIO = nil
	t.Cleanup(func() { database.MinIO = orig })

	c, rec := uploadContext(t, "u-1", "u-1", models.RoleUser)
	h.Upload(c)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUploadOwnershipGuard(t *testing.T) {
	h := newDocumentHandlers(t)
	orig := database.MinIO
	client, err := minio.New("localhost:9000", &minio.Options{})
	require.NoError(t, err)
	database.MinIO = client
	t.Cleanup(func() { database.MinIO = orig })

	// Téléverser sur le compte d'un autre est refusé avant toute lecture
	c, rec := uploadContext(t, "u-1", "u-2", models.RoleUser)
	h.Upload(c)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Sans form-data multipart, requête rejetée et aucun fichier laissé ouvert
	c, rec = uploadContext(t, "u-1", "u-1", models.RoleUser)
	h.Upload(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
