// Seeds a handful of demo shops and products so the API has a catalogue to
// serve locally. Run against the database named by DATABASE_URL.
package main

import (
	"context"
	"fmt"
	"os"

	"bloom-market/internal/database"
	"bloom-market/internal/validate"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type seedProduct struct {
	name        string
	description string
	priceCents  int64
	imageURL    string
	isBouquet   bool
}

type seedShop struct {
	name     string
	address  string
	products []seedProduct
}

var catalogue = []seedShop{
	{
		name:    "Kvity na Khreshchatyku",
		address: "Khreshchatyk St, 22, Kyiv",
		products: []seedProduct{
			{name: "Red Rose Bouquet", description: "15 red roses with eucalyptus", priceCents: 89900, isBouquet: true},
			{name: "White Tulips", description: "Bundle of 9 white tulips", priceCents: 45000, isBouquet: true},
			{name: "Ceramic Vase", description: "Hand-painted ceramic vase", priceCents: 32000},
		},
	},
	{
		name:    "Lviv Flower Atelier",
		address: "Rynok Square, 14, Lviv",
		products: []seedProduct{
			{name: "Peony Mix", description: "Seasonal peonies, mixed colours", priceCents: 124000, isBouquet: true},
			{name: "Dried Lavender", description: "Dried lavender bunch", priceCents: 28000},
		},
	},
}

func main() {
	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, database.Schema); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to apply schema: %v\n", err)
		os.Exit(1)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	for _, shop := range catalogue {
		shopID := validate.NewObjectID()
		_, err := conn.Exec(ctx,
			`INSERT INTO shops (id, name, address) VALUES ($1, $2, $3)`,
			shopID, shop.name, shop.address,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to insert shop %q: %v\n", shop.name, err)
			os.Exit(1)
		}

		for _, p := range shop.products {
			image := p.imageURL
			if image == "" {
				image = "https://placehold.co/600x400"
			}
			_, err := conn.Exec(ctx,
				`INSERT INTO products (id, shop_id, name, description, price_cents, image_url, is_bouquet)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				validate.NewObjectID(), shopID, p.name, p.description, p.priceCents, image, p.isBouquet,
			)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to insert product %q: %v\n", p.name, err)
				os.Exit(1)
			}
		}

		logger.Info().
			Str("shop", shop.name).
			Int("products", len(shop.products)).
			Msg("seeded shop")
	}

	logger.Info().Int("shops", len(catalogue)).Msg("catalogue seeded")
}
