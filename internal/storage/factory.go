package storage

import (
	"context"
	"fmt"

	"storefront_back_end/internal/config"
	"storefront_back_end/internal/storage/file"
	"storefront_back_end/internal/storage/mongodb"
)

// Open construit le jeu de stores correspondant à STORAGE_TYPE.
func Open(ctx context.Context) (*Stores, error) {
	switch config.StorageType() {
	case "file":
		fs, err := file.Open(config.DataDir())
		if err != nil {
			return nil, err
		}
		return &Stores{
			Products: fs.Products,
			Users:    fs.Users,
			Carts:    fs.Carts,
			Tickets:  fs.Tickets,
			Chats:    fs.Chats,
		}, nil
	case "mongo":
		db, err := mongodb.Open(ctx, config.MongoURI(), config.MongoDBName())
		if err != nil {
			return nil, err
		}
		return &Stores{
			Products: db.Products,
			Users:    db.Users,
			Carts:    db.Carts,
			Tickets:  db.Tickets,
			Chats:    db.Chats,
		}, nil
	default:
		return nil, fmt.Errorf("STORAGE_TYPE inconnu: %q", config.StorageType())
	}
}
