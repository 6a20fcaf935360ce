// Package mongodb implémente la persistance sur base documentaire. Les ids
// sont des chaînes UUID générées à l'insertion, comme pour le backend fichier,
// pour que les deux backends restent interchangeables.
package mongodb

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DB struct {
	client *mongo.Client

	Products *ProductStore
	Users    *UserStore
	Carts    *CartStore
	Tickets  *TicketStore
	Chats    *ChatStore
}

func Open(ctx context.Context, uri, dbName string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connexion MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	db := client.Database(dbName)
	s := &DB{
		client:   client,
		Products: &ProductStore{col: db.Collection("products")},
		Users:    &UserStore{col: db.Collection("users")},
		Carts:    &CartStore{col: db.Collection("carts")},
		Tickets:  &TicketStore{col: db.Collection("tickets")},
		Chats:    &ChatStore{col: db.Collection("chats")},
	}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	log.Println("✅ Connecté à MongoDB :", dbName)
	return s, nil
}

// ensureIndexes pose les contraintes d'unicité : le code produit et l'email
// utilisateur. Les violations remontent en erreur duplicate-key, traduites par
// les stores dans la taxonomie.
func (s *DB) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	if _, err := s.Products.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("index unique products.code: %w", err)
	}
	if _, err := s.Users.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("index unique users.email: %w", err)
	}
	if _, err := s.Tickets.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("index unique tickets.code: %w", err)
	}
	return nil
}

func (s *DB) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
