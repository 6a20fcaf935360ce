package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_back_end/internal/errs"
	"storefront_back_end/internal/models"
)

func register(t *testing.T, env *testEnv, email, password string) models.User {
	t.Helper()
	u, err := env.accounts.Register(context.Background(), models.User{
		FirstName: "Jean",
		LastName:  "Dupont",
		Email:     email,
		Age:       30,
	}, password)
	require.NoError(t, err)
	return u
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := register(t, env, "Jean.Dupont@Example.com", "s3cret")

	// Email normalisé, rôle par défaut, mot de passe haché, panier créé
	assert.Equal(t, "jean.dupont@example.com", u.Email)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.NotEmpty(t, u.Password)
	assert.NotEqual(t, "s3cret", u.Password)
	assert.NotEmpty(t, u.CartID)

	_, err := env.carts.GetCart(ctx, u.CartID)
	assert.NoError(t, err)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	register(t, env, "jean@example.com", "s3cret")
	_, err := env.accounts.Register(context.Background(), models.User{
		FirstName: "Autre",
		LastName:  "Jean",
		Email:     "JEAN@example.com",
	}, "autre")
	assert.True(t, errs.Is(err, errs.AlreadyExists))
}

func TestRegisterRejectsAdminEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.accounts.Register(context.Background(), models.User{
		FirstName: "Usurpateur",
		LastName:  "Admin",
		Email:     "admin@storefront.local",
	}, "pass")
	assert.True(t, errs.Is(err, errs.AlreadyExists))
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.accounts.Register(context.Background(), models.User{Email: "x@y.z"}, "pass")
	assert.True(t, errs.Is(err, errs.InvalidData))
}

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	register(t, env, "jean@example.com", "s3cret")

	u, err := env.accounts.Authenticate(ctx, "Jean@Example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "jean@example.com", u.Email)

	_, err = env.accounts.Authenticate(ctx, "jean@example.com", "faux")
	assert.True(t, errs.Is(err, errs.InvalidCredentials))

	_, err = env.accounts.Authenticate(ctx, "inconnu@example.com", "s3cret")
	assert.True(t, errs.Is(err, errs.InvalidCredentials))
}

func TestAuthenticateAdminShortCircuit(t *testing.T) {
	env := newTestEnv(t)

	u, err := env.accounts.Authenticate(context.Background(), "ADMIN@storefront.local", "admin-pass")
	require.NoError(t, err)

	// Identité synthétique : jamais persistée
	assert.Equal(t, models.AdminID, u.ID)
	assert.Equal(t, models.RoleAdmin, u.Role)
	_, err = env.accounts.GetByEmail(context.Background(), "admin@storefront.local")
	assert.True(t, errs.Is(err, errs.NotFound))
}

func TestAuthenticateAdminDisabledWithoutConfiguredPassword(t *testing.T) {
	env := newTestEnv(t)
	noPass := NewAccountsService(env.store.Users, env.carts, env.catalog, env.chat, "admin@storefront.local", "")

	// Sans ADMIN_PASS configuré, un mot de passe vide ne donne jamais admin
	_, err := noPass.Authenticate(context.Background(), "admin@storefront.local", "")
	assert.True(t, errs.Is(err, errs.InvalidCredentials))
}

func TestAuthenticateFederatedAccountHasNoLocalPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.accounts.LoginOrCreate(ctx, "Marie", "Curie", "marie@example.com")
	require.NoError(t, err)

	_, err = env.accounts.Authenticate(ctx, "marie@example.com", "nimporte")
	assert.True(t, errs.Is(err, errs.AuthError))
}

func TestLoginOrCreateIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.accounts.LoginOrCreate(ctx, "Marie", "Curie", "Marie@Example.com")
	require.NoError(t, err)
	second, err := env.accounts.LoginOrCreate(ctx, "Marie", "Curie", "marie@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestChangeRoleCascadesProductStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := register(t, env, "seller@example.com", "s3cret")
	promoted, err := env.accounts.ChangeRole(ctx, u.ID, models.RolePremium)
	require.NoError(t, err)
	assert.Equal(t, models.RolePremium, promoted.Role)

	p1 := env.seedProduct(t, "Tableau", "TB-1", 50.0, 3, premiumActor("seller@example.com"))
	p2 := env.seedProduct(t, "Vase", "VS-1", 25.0, 2, premiumActor("seller@example.com"))

	// Rétrogradation : les produits du vendeur deviennent invisibles
	demoted, err := env.accounts.ChangeRole(ctx, u.ID, models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, demoted.Role)

	for _, id := range []string{p1.ID, p2.ID} {
		p, err := env.catalog.GetProduct(ctx, id)
		require.NoError(t, err)
		assert.False(t, p.Status)
	}

	// Re-promotion : les produits redeviennent visibles
	_, err = env.accounts.ChangeRole(ctx, u.ID, models.RolePremium)
	require.NoError(t, err)
	for _, id := range []string{p1.ID, p2.ID} {
		p, err := env.catalog.GetProduct(ctx, id)
		require.NoError(t, err)
		assert.True(t, p.Status)
	}
}

func TestChangeRoleRejectsAdminTarget(t *testing.T) {
	env := newTestEnv(t)

	u := register(t, env, "jean@example.com", "s3cret")
	_, err := env.accounts.ChangeRole(context.Background(), u.ID, models.RoleAdmin)
	assert.True(t, errs.Is(err, errs.Forbidden))

	// Le rôle n'a pas bougé
	after, err := env.accounts.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, after.Role)
}

func TestToggleRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := register(t, env, "jean@example.com", "s3cret")

	up, err := env.accounts.ToggleRole(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RolePremium, up.Role)

	down, err := env.accounts.ToggleRole(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, down.Role)
}

func TestDeleteUserCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := register(t, env, "seller@example.com", "s3cret")
	_, err := env.accounts.ChangeRole(ctx, u.ID, models.RolePremium)
	require.NoError(t, err)

	p := env.seedProduct(t, "Miroir", "MR-1", 40.0, 1, premiumActor("seller@example.com"))
	_, err = env.chat.Append(ctx, "seller@example.com", "bonjour")
	require.NoError(t, err)

	deleted, err := env.accounts.DeleteUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "seller@example.com", deleted.Email)

	_, err = env.accounts.GetByID(ctx, u.ID)
	assert.True(t, errs.Is(err, errs.NotFound))
	_, err = env.catalog.GetProduct(ctx, p.ID)
	assert.True(t, errs.Is(err, errs.NotFound))
	_, err = env.carts.GetCart(ctx, u.CartID)
	assert.True(t, errs.Is(err, errs.NotFound))

	chat, err := env.chat.History(ctx, "seller@example.com")
	require.NoError(t, err)
	assert.Empty(t, chat.Messages)
}

func TestSweepInactive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	old := register(t, env, "dormant@example.com", "s3cret")
	fresh := register(t, env, "actif@example.com", "s3cret")
	never := register(t, env, "jamais@example.com", "s3cret")

	// dormant : dernière connexion il y a 3 jours ; actif : il y a une heure
	stale := time.Now().Add(-72 * time.Hour)
	oldUser, err := env.accounts.GetByID(ctx, old.ID)
	require.NoError(t, err)
	oldUser.LastConnection = &stale
	_, err = env.store.Users.Update(ctx, old.ID, oldUser)
	require.NoError(t, err)

	env.accounts.RecordLogin(ctx, fresh.ID)

	deleted, err := env.accounts.SweepInactive(ctx, 1)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, "dormant@example.com", deleted[0].Email)

	_, err = env.accounts.GetByID(ctx, old.ID)
	assert.True(t, errs.Is(err, errs.NotFound))
	_, err = env.accounts.GetByID(ctx, fresh.ID)
	assert.NoError(t, err)

	// Jamais connecté = jamais balayé
	_, err = env.accounts.GetByID(ctx, never.ID)
	assert.NoError(t, err)
}

func TestSetPasswordByEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	register(t, env, "jean@example.com", "ancien")
	require.NoError(t, env.accounts.SetPasswordByEmail(ctx, "jean@example.com", "nouveau"))

	_, err := env.accounts.Authenticate(ctx, "jean@example.com", "ancien")
	assert.True(t, errs.Is(err, errs.InvalidCredentials))
	_, err = env.accounts.Authenticate(ctx, "jean@example.com", "nouveau")
	assert.NoError(t, err)
}

func TestAddDocuments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := register(t, env, "jean@example.com", "s3cret")
	updated, err := env.accounts.AddDocuments(ctx, u.ID, []models.DocumentRef{
		{Name: "piece-identite.pdf", Reference: "documents/users/x/piece-identite.pdf"},
	})
	require.NoError(t, err)
	require.Len(t, updated.Documents, 1)

	// La projection publique n'expose pas les documents
	assert.Equal(t, u.ID, updated.Public().ID)
}
