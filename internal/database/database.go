// Package database initialise les collaborateurs externes optionnels : Redis
// (cache catalogue), Elasticsearch (recherche produits) et MinIO (documents
// téléversés). Chaque client reste nil s'il n'est pas configuré; les couches
// qui en dépendent dégradent proprement.
package database

import (
	"context"
	"log"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"

	"storefront_back_end/internal/config"
)

var (
	Redis   *redis.Client
	Elastic *elasticsearch.Client
	MinIO   *minio.Client
)

func Connect(ctx context.Context) {
	connectRedis(ctx)
	connectElastic()
	connectMinIO(ctx)
}

func connectRedis(ctx context.Context) {
	if config.RedisAddr() == "" {
		log.Println("⚠️  Redis non configuré — cache catalogue désactivé")
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Println("⚠️  Erreur connexion Redis, cache désactivé:", err)
		return
	}
	Redis = client
	log.Println("✅ Connecté à Redis")
}

func connectElastic() {
	if config.ElasticURL() == "" {
		log.Println("⚠️  Elasticsearch non configuré — recherche produits en repli sur le stockage")
		return
	}
	cfg := elasticsearch.Config{
		Addresses: []string{config.ElasticURL()},
		Username:  config.ElasticUser(),
		Password:  config.ElasticPassword(),
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		log.Println("⚠️  Erreur création client Elasticsearch:", err)
		return
	}
	res, err := client.Info()
	if err != nil {
		log.Println("⚠️  Erreur connexion Elasticsearch:", err)
		return
	}
	defer res.Body.Close()

	Elastic = client
	log.Println("✅ Connecté à Elasticsearch")
}

func connectMinIO(ctx context.Context) {
	if config.MinIOEndpoint() == "" {
		log.Println("⚠️  MinIO non configuré — téléversement de documents désactivé")
		return
	}
	client, err := minio.New(config.MinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(config.MinIOAccessKey(), config.MinIOSecretKey(), ""),
		Secure: config.MinIOUseSSL(),
	})
	if err != nil {
		log.Println("⚠️  Erreur connexion MinIO:", err)
		return
	}

	bucketName := config.MinIOBucket()
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		log.Println("⚠️  Erreur vérification bucket MinIO:", err)
		return
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			log.Println("⚠️  Erreur création bucket MinIO:", err)
			return
		}
		log.Println("🪣 Bucket créé :", bucketName)
	}

	MinIO = client
	log.Println("✅ Connecté à MinIO :", config.MinIOEndpoint())
}
