// Package search indexe les produits dans Elasticsearch et sert la recherche
// plein texte du catalogue. L'indexation est du best-effort : un échec est
// journalisé, jamais remonté à l'appelant.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"storefront_back_end/internal/models"
)

const productIndex = "products"

type Index struct {
	client *elasticsearch.Client
}

// New accepte un client nil : l'index devient alors un no-op et la recherche
// est servie par le stockage.
func New(client *elasticsearch.Client) *Index {
	return &Index{client: client}
}

func (i *Index) Enabled() bool { return i != nil && i.client != nil }

// IndexProduct indexe (ou réindexe) un produit.
func (i *Index) IndexProduct(ctx context.Context, p models.Product) {
	if !i.Enabled() {
		return
	}

	data, _ := json.Marshal(p)
	req := esapi.IndexRequest{
		Index:      productIndex,
		DocumentID: p.ID,
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, i.client)
	if err != nil {
		log.Println("⚠️  Erreur indexation Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️  Elastic a renvoyé une erreur pour %s: %s", p.Title, res.String())
	}
}

// DeleteProduct retire un produit de l'index.
func (i *Index) DeleteProduct(ctx context.Context, id string) {
	if !i.Enabled() {
		return
	}

	req := esapi.DeleteRequest{Index: productIndex, DocumentID: id}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		log.Println("⚠️  Erreur suppression index Elastic:", err)
		return
	}
	res.Body.Close()
}

// Search cherche des produits par titre, description ou catégorie.
func (i *Index) Search(ctx context.Context, query string) ([]models.Product, error) {
	if !i.Enabled() {
		return nil, fmt.Errorf("client Elasticsearch non initialisé")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"title", "description", "category"},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("erreur encodage requête: %v", err)
	}

	req := esapi.SearchRequest{
		Index: []string{productIndex},
		Body:  &buf,
	}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		return nil, fmt.Errorf("erreur requête Elastic: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("erreur Elastic: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("erreur décodage réponse Elastic: %v", err)
	}

	products := make([]models.Product, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		products = append(products, hit.Source)
	}
	return products, nil
}
