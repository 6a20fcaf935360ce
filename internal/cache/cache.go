// Package cache met en cache le listage public du catalogue dans Redis.
// Toute écriture catalogue invalide l'ensemble des pages en cache.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ProductCacheTTL = 10 * time.Minute
	productsPrefix  = "products:list:"
)

type Cache struct {
	client *redis.Client
}

// New accepte un client nil : le cache devient alors un no-op.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) GetProductList(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, productsPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *Cache) SetProductList(ctx context.Context, key string, data []byte) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, productsPrefix+key, data, ProductCacheTTL).Err(); err != nil {
		log.Println("⚠️  Erreur écriture cache produits:", err)
	}
}

// InvalidateProducts purge toutes les pages de listage en cache.
func (c *Cache) InvalidateProducts(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, productsPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Println("⚠️  Erreur invalidation cache produits:", err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Println("⚠️  Erreur scan cache produits:", err)
	}
}
