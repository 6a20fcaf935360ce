package services

import (
	"context"
	"log"
	"strings"
	"time"

	"storefront_back_end/internal/authz"
	"storefront_back_end/internal/errs"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/storage"
	"storefront_back_end/internal/utils"
)

// AccountsService gère le cycle de vie des comptes : inscription, login,
// transitions de rôle et suppression avec cascade sur les agrégats possédés
// (produits, panier, chat).
type AccountsService struct {
	users   storage.UserStore
	carts   *CartsService
	catalog *CatalogService
	chats   *ChatService

	adminEmail    string
	adminPassword string
}

func NewAccountsService(users storage.UserStore, carts *CartsService, catalog *CatalogService, chats *ChatService, adminEmail, adminPassword string) *AccountsService {
	return &AccountsService{
		users:         users,
		carts:         carts,
		catalog:       catalog,
		chats:         chats,
		adminEmail:    strings.ToLower(adminEmail),
		adminPassword: adminPassword,
	}
}

// Register crée un compte avec le rôle "user" et son panier personnel. Si la
// création du panier échoue, le compte est quand même créé (CartID vide) :
// mode dégradé plutôt que refus d'inscription.
func (s *AccountsService) Register(ctx context.Context, u models.User, password string) (models.User, error) {
	if u.FirstName == "" || u.LastName == "" || u.Email == "" || password == "" {
		return models.User{}, errs.New(errs.InvalidData, "champs obligatoires manquants")
	}
	u.Email = strings.ToLower(u.Email)
	if u.Email == s.adminEmail {
		return models.User{}, errs.New(errs.AlreadyExists, "cet email est déjà utilisé")
	}
	if _, err := s.users.GetByEmail(ctx, u.Email); err == nil {
		return models.User{}, errs.New(errs.AlreadyExists, "cet email est déjà utilisé")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return models.User{}, errs.Wrap(errs.Unknown, "hachage du mot de passe", err)
	}
	u.Password = hash
	u.Role = models.RoleUser
	u.Documents = nil

	if cart, err := s.carts.CreateCart(ctx); err != nil {
		log.Printf("⚠️ Panier non créé pour %s: %v", u.Email, err)
		u.CartID = ""
	} else {
		u.CartID = cart.ID
	}

	return s.users.Create(ctx, u)
}

// Authenticate vérifie un couple email/mot de passe. Le couple admin
// configuré court-circuite le stockage et retourne une identité synthétique
// jamais persistée.
func (s *AccountsService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	email = strings.ToLower(email)
	if s.adminEmail != "" && s.adminPassword != "" && email == s.adminEmail && password == s.adminPassword {
		return models.User{
			ID:        models.AdminID,
			FirstName: "admin",
			Email:     s.adminEmail,
			Role:      models.RoleAdmin,
		}, nil
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errs.Is(err, errs.NotFound) {
			return models.User{}, errs.New(errs.InvalidCredentials, "email ou mot de passe incorrect")
		}
		return models.User{}, err
	}
	if u.Password == "" {
		// Compte fédéré : pas de mot de passe local.
		return models.User{}, errs.New(errs.AuthError, "ce compte utilise une connexion externe")
	}
	ok, err := utils.VerifyPassword(password, u.Password)
	if err != nil {
		return models.User{}, errs.Wrap(errs.AuthError, "vérification du mot de passe", err)
	}
	if !ok {
		return models.User{}, errs.New(errs.InvalidCredentials, "email ou mot de passe incorrect")
	}
	return u, nil
}

// LoginOrCreate est le chemin des logins fédérés (Google, GitHub) : retrouve
// le compte par email ou le crée sans mot de passe local.
func (s *AccountsService) LoginOrCreate(ctx context.Context, firstName, lastName, email string) (models.User, error) {
	email = strings.ToLower(email)
	if email == "" {
		return models.User{}, errs.New(errs.InvalidData, "le fournisseur n'a pas transmis d'email")
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errs.Is(err, errs.NotFound) {
		return models.User{}, err
	}

	u = models.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Role:      models.RoleUser,
	}
	if cart, err := s.carts.CreateCart(ctx); err != nil {
		log.Printf("⚠️ Panier non créé pour %s: %v", email, err)
	} else {
		u.CartID = cart.ID
	}
	return s.users.Create(ctx, u)
}

// RecordLogin horodate la dernière connexion. Sans effet pour l'identité
// admin synthétique.
func (s *AccountsService) RecordLogin(ctx context.Context, userID string) {
	if userID == models.AdminID || userID == "" {
		return
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		log.Printf("⚠️ Horodatage de connexion impossible pour %s: %v", userID, err)
		return
	}
	now := time.Now()
	u.LastConnection = &now
	if _, err := s.users.Update(ctx, userID, u); err != nil {
		log.Printf("⚠️ Horodatage de connexion impossible pour %s: %v", userID, err)
	}
}

// ChangeRole fait passer un compte vers le rôle cible, si la transition est
// autorisée, puis active ou désactive en cascade les produits possédés
// (actifs en "premium", inactifs en "user"). La cascade est best-effort : un
// échec partiel est journalisé, le changement de rôle reste acquis.
func (s *AccountsService) ChangeRole(ctx context.Context, userID, target string) (models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	newRole, err := authz.Transition(u.Role, target)
	if err != nil {
		return models.User{}, err
	}

	u.Role = newRole
	u, err = s.users.Update(ctx, userID, u)
	if err != nil {
		return models.User{}, err
	}

	s.cascadeProductStatus(ctx, u.Email, newRole == models.RolePremium)
	return u, nil
}

// ToggleRole bascule user <-> premium sans cible explicite.
func (s *AccountsService) ToggleRole(ctx context.Context, userID string) (models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	target, err := authz.Toggle(u.Role)
	if err != nil {
		return models.User{}, err
	}
	return s.ChangeRole(ctx, userID, target)
}

func (s *AccountsService) cascadeProductStatus(ctx context.Context, ownerEmail string, enabled bool) {
	products, err := s.catalog.ListByOwner(ctx, ownerEmail)
	if err != nil {
		log.Printf("⚠️ Cascade de statut produits impossible pour %s: %v", ownerEmail, err)
		return
	}
	for _, p := range products {
		if _, err := s.catalog.SetEnabled(ctx, p.ID, enabled); err != nil {
			log.Printf("⚠️ Statut du produit %s non mis à jour: %v", p.ID, err)
		}
	}
}

// DeleteUser supprime le compte puis, en cascade best-effort, ses produits,
// son panier et son chat. Le compte d'abord : si cette étape échoue, rien
// d'autre n'est touché.
func (s *AccountsService) DeleteUser(ctx context.Context, userID string) (models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if _, err := s.users.Delete(ctx, userID); err != nil {
		return models.User{}, err
	}

	if products, err := s.catalog.ListByOwner(ctx, u.Email); err != nil {
		log.Printf("⚠️ Produits de %s non listés pour suppression: %v", u.Email, err)
	} else {
		for _, p := range products {
			if _, err := s.catalog.DeleteProduct(ctx, p.ID, ""); err != nil {
				log.Printf("⚠️ Produit %s non supprimé: %v", p.ID, err)
			}
		}
	}

	if u.CartID != "" {
		if err := s.carts.RemoveCart(ctx, u.CartID); err != nil {
			log.Printf("⚠️ Panier %s non supprimé: %v", u.CartID, err)
		}
	}

	if err := s.chats.Delete(ctx, u.Email); err != nil {
		log.Printf("⚠️ Chat de %s non supprimé: %v", u.Email, err)
	}

	return u, nil
}

// SweepInactive supprime les comptes dont la dernière connexion remonte à
// strictement plus de thresholdDays jours entiers. Les comptes sans
// horodatage sont conservés. Retourne les comptes supprimés.
func (s *AccountsService) SweepInactive(ctx context.Context, thresholdDays int) ([]models.User, error) {
	if thresholdDays <= 0 {
		thresholdDays = 1
	}
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var deleted []models.User
	for _, u := range users {
		if u.LastConnection == nil {
			continue
		}
		days := int(now.Sub(*u.LastConnection).Hours() / 24)
		if days <= thresholdDays {
			continue
		}
		d, err := s.DeleteUser(ctx, u.ID)
		if err != nil {
			log.Printf("⚠️ Compte inactif %s non supprimé: %v", u.Email, err)
			continue
		}
		deleted = append(deleted, d)
	}
	return deleted, nil
}

// SetPasswordByEmail remplace le mot de passe d'un compte. Chemin du reset
// par email.
func (s *AccountsService) SetPasswordByEmail(ctx context.Context, email, newPassword string) error {
	if newPassword == "" {
		return errs.New(errs.InvalidData, "le mot de passe est vide")
	}
	u, err := s.users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return err
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return errs.Wrap(errs.Unknown, "hachage du mot de passe", err)
	}
	u.Password = hash
	_, err = s.users.Update(ctx, u.ID, u)
	return err
}

// AttachChat mémorise l'identifiant du fil de chat créé paresseusement.
func (s *AccountsService) AttachChat(ctx context.Context, userID, chatID string) {
	if userID == models.AdminID || userID == "" {
		return
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil || u.ChatID == chatID {
		return
	}
	u.ChatID = chatID
	if _, err := s.users.Update(ctx, userID, u); err != nil {
		log.Printf("⚠️ ChatID non mémorisé pour %s: %v", userID, err)
	}
}

// AddDocuments ajoute des références de documents téléversés au compte.
func (s *AccountsService) AddDocuments(ctx context.Context, userID string, refs []models.DocumentRef) (models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	u.Documents = append(u.Documents, refs...)
	return s.users.Update(ctx, userID, u)
}

func (s *AccountsService) GetByID(ctx context.Context, userID string) (models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AccountsService) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return s.users.GetByEmail(ctx, strings.ToLower(email))
}

func (s *AccountsService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.users.GetAll(ctx)
}
