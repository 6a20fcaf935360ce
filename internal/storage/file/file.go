// Package file implémente la persistance sur fichiers JSON plats : un fichier
// par type d'entité, rechargé et réécrit en entier à chaque mutation. Le
// verrou de chaque store couvre toute la séquence load-mutate-save, ce qui
// rend atomique chaque mutation mono-agrégat.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type Store struct {
	Products *ProductStore
	Users    *UserStore
	Carts    *CartStore
	Tickets  *TicketStore
	Chats    *ChatStore
}

// Open prépare le répertoire de données et les cinq stores.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("impossible de créer le répertoire de données %s: %w", dir, err)
	}
	return &Store{
		Products: &ProductStore{path: filepath.Join(dir, "products.json")},
		Users:    &UserStore{path: filepath.Join(dir, "users.json")},
		Carts:    &CartStore{path: filepath.Join(dir, "carts.json")},
		Tickets:  &TicketStore{path: filepath.Join(dir, "tickets.json")},
		Chats:    &ChatStore{path: filepath.Join(dir, "chats.json")},
	}, nil
}

// readAll charge le contenu d'un fichier d'entités. Un fichier absent vaut
// une collection vide : il sera créé à la première écriture.
func readAll[T any](path string) ([]T, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lecture de %s: %w", path, err)
	}
	var items []T
	if err := json.Unmarshal(content, &items); err != nil {
		return nil, fmt.Errorf("décodage de %s: %w", path, err)
	}
	return items, nil
}

func writeAll[T any](path string, items []T) error {
	if items == nil {
		items = []T{}
	}
	content, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("écriture de %s: %w", path, err)
	}
	return nil
}
