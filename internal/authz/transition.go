package authz

import (
	"storefront_back_end/internal/errs"
	"storefront_back_end/internal/models"
)

// transitions est la table explicite des changements de rôle légaux. Seul
// l'aller-retour user <-> premium existe : admin n'est jamais source ni cible.
var transitions = map[[2]string]bool{
	{models.RoleUser, models.RolePremium}: true,
	{models.RolePremium, models.RoleUser}: true,
}

// Transition valide un changement de rôle demandé et retourne le nouveau
// rôle. Tout couple hors table est refusé, au lieu d'un no-op silencieux.
func Transition(current, target string) (string, error) {
	if !transitions[[2]string{current, target}] {
		return "", errs.Newf(errs.Forbidden, "transition de rôle interdite: %s -> %s", current, target)
	}
	return target, nil
}

// Toggle calcule la cible de la bascule historique user <-> premium.
func Toggle(current string) (string, error) {
	switch current {
	case models.RoleUser:
		return models.RolePremium, nil
	case models.RolePremium:
		return models.RoleUser, nil
	default:
		return "", errs.Newf(errs.Forbidden, "aucune bascule de rôle définie pour %q", current)
	}
}
