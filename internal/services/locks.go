package services

import (
	"slices"
	"sync"
)

// keyedMutex fournit une exclusion mutuelle par produit. L'achat verrouille
// tous les produits du panier en ordre trié, pour que deux achats concurrents
// ne puissent ni s'interbloquer ni passer tous les deux le contrôle de stock.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

// LockAll verrouille chaque clé en ordre trié et retourne la fonction de
// déverrouillage (ordre inverse). Les clés doivent être uniques.
func (k *keyedMutex) LockAll(keys []string) func() {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)

	held := make([]*sync.Mutex, 0, len(sorted))
	for _, key := range sorted {
		m := k.get(key)
		m.Lock()
		held = append(held, m)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
