// Package seed loads the shop's menu for manual testing and first deploys.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"kantinho-pos/internal/domain"
)

type pizzaSeed struct {
	Name        string
	Description string
	Large       int64
	Medium      int64
	Small       int64
}

type flatSeed struct {
	Name  string
	Price int64
}

// Apply inserts the menu seed data. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	for _, p := range pizzas {
		if err := upsertPizza(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert pizza %s: %w", p.Name, err)
		}
	}
	for kind, items := range flatItems {
		for _, item := range items {
			if err := upsertFlat(ctx, pool, kind, item); err != nil {
				return fmt.Errorf("upsert %s %s: %w", kind, item.Name, err)
			}
		}
	}
	return nil
}

var pizzas = []pizzaSeed{
	{"MARGUERITA", "Queijo mussarela, gouda, oregano e molho tomate", 800, 750, 500},
	{"4 QUEIJOS", "Queijo mussarela, queijo azul, edem e fogo e molho tomate", 950, 850, 650},
	{"FIAMBRE", "Fiambre, Queijo e molho tomate", 850, 800, 600},
	{"FRANGO", "Frango, queijo, molho tomate", 850, 850, 600},
	{"CHOURIÇO", "Chouriço Queijo e molho tomate", 850, 800, 550},
	{"BACON", "Bacon, queijo, molho tomate", 850, 800, 550},
	{"PRESUNTO", "Presunto, queijo, molho tomate", 850, 800, 550},
	{"LINGUIÇA E QUEIJO DE TERRA", "Linguiça, molho, tomate", 900, 850, 600},
	{"CARNE MOÍDA", "Chouriço Queijo e molho tomate", 900, 850, 600},
	{"ATUM", "Atum, cebola, queijo, molho tomate", 900, 850, 650},
	{"VEGETARIANO", "Cebola, tomate, pimentão, cogumelo, queijo, molho tomate", 900, 850, 600},
	{"ESPECIAL DA CASA", "Bacon, cogumelo, nata, queijo, molho tomate", 900, 850, 650},
	{"QUATRO ESTAÇÕES", "Queijo e molho tomate cogumelo Fiambre Chouriço atum", 1000, 850, 650},
	{"TROPICAL", "Frutas da época, queijo, molho tomate", 900, 850, 600},
	{"MARISCO", "Marisco, queijo, molho tomate", 1200, 1000, 650},
	{"CAMARÃO", "Camarão, queijo, molho tomate", 1200, 1000, 650},
	{"MADÁ", "Queijo, molho tomate, Chouriço, Bacon, Camarão e Ananás", 1500, 1200, 800},
	{"CALZONE", "Frango ou, Chouriço, Presunto, Cogumelo, Atum e Cebola (queijo e molho tomate)", 850, 800, 550},
}

var flatItems = map[domain.ItemKind][]flatSeed{
	domain.KindDeliveryZone: {
		{"Alto Glória", 200},
		{"Achada Santo António", 200},
		{"Achada São Filipe", 300},
		{"Achada Grande Frente", 300},
		{"Achada Grande Trás", 300},
		{"Achada Eugênio Lima", 300},
		{"Achada Limpo/Achada Mato", 300},
		{"Achadinha", 200},
		{"Achadinha Pires", 250},
		{"Bairro Craveiro Lopes", 200},
		{"Bela Vista", 150},
		{"Campus Unicv", 250},
		{"Cidadela", 200},
		{"Cova Minhoto", 250},
		{"Calabaceira", 250},
		{"Coqueiro", 250},
		{"Castelão", 250},
		{"Fazenda", 200},
		{"Zona Quelém", 150},
		{"Quebra Canela", 200},
		{"Fundo Cobom", 150},
		{"Terra Branca", 50},
		{"Tira Chapéu", 100},
		{"Lém Ferreira", 200},
		{"Monte Vermelho", 200},
		{"Ponta Água", 250},
		{"Pensamento", 250},
		{"Palmarejo", 250},
		{"Palmarejo Grande", 200},
		{"Praia Negra", 200},
		{"Plateau", 200},
		{"Prainha", 200},
		{"São Pedro Latada", 300},
		{"Safende", 250},
		{"Várzea", 150},
		{"Vila Nova", 250},
	},
	domain.KindBeverage: {
		{"Água Mineral 500ml", 100},
		{"Coca-Cola 330ml", 150},
		{"Fanta Laranja 330ml", 150},
		{"Sprite 330ml", 150},
		{"Sumol Ananás 330ml", 180},
		{"Cerveja Strela 330ml", 200},
	},
	domain.KindAddOn: {
		{"Ananás", 100},
		{"Cogumelo", 120},
		{"Queijo", 120},
		{"Queijo Azul", 150},
		{"Fiambre", 100},
		{"Chouriço", 100},
		{"Bacon", 120},
		{"Linguiça", 150},
		{"Atum", 130},
		{"Nata", 70},
		{"Marisco", 250},
		{"Camarão", 300},
	},
}

func upsertPizza(ctx context.Context, pool *pgxpool.Pool, p pizzaSeed) error {
	const q = `
INSERT INTO menu_items (kind, name, description, price_large, price_medium, price_small, active)
VALUES ($1, $2, $3, $4, $5, $6, TRUE)
ON CONFLICT (kind, name) DO UPDATE
SET description = EXCLUDED.description,
    price_large = EXCLUDED.price_large,
    price_medium = EXCLUDED.price_medium,
    price_small = EXCLUDED.price_small
`
	_, err := pool.Exec(ctx, q, string(domain.KindPizza), p.Name, p.Description, p.Large, p.Medium, p.Small)
	return err
}

func upsertFlat(ctx context.Context, pool *pgxpool.Pool, kind domain.ItemKind, item flatSeed) error {
	const q = `
INSERT INTO menu_items (kind, name, price, active)
VALUES ($1, $2, $3, TRUE)
ON CONFLICT (kind, name) DO UPDATE
SET price = EXCLUDED.price
`
	_, err := pool.Exec(ctx, q, string(kind), item.Name, item.Price)
	return err
}
