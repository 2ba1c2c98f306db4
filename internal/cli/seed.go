package cli

import (
	"context"
	"fmt"

	"tienda/internal/services"

	"github.com/spf13/cobra"
)

// sampleCatalog is the stock of a small second-hand store.
var sampleCatalog = []services.ProductInput{
	{Name: "Oak dining table", Price: 120, Stock: 2, Category: "Furniture", Description: "Solid oak table for six, light scratches on top"},
	{Name: "Vintage armchair", Price: 85, Stock: 1, Category: "Furniture", Description: "Seventies armchair, reupholstered in green velvet"},
	{Name: "Pine writing desk", Price: 60, Stock: 3, Category: "Furniture", Description: "Desk with two drawers, some ink stains"},
	{Name: "Technics turntable", Price: 180, Stock: 1, Category: "Music", Description: "SL-1200 turntable, serviced, new belt"},
	{Name: "Jazz vinyl records", Price: 12, Stock: 10, Category: "Music", Description: "Assorted jazz LPs from the sixties"},
	{Name: "Sony cassette walkman", Price: 45, Stock: 2, Category: "Electronics", Description: "Working walkman with original headphones"},
	{Name: "Polaroid 600 camera", Price: 55, Stock: 1, Category: "Electronics", Description: "Tested with a fresh film pack"},
	{Name: "Wool winter coat", Price: 40, Stock: 4, Category: "Clothing", Description: "Grey wool coat, size M, dry cleaned"},
	{Name: "Ceramic vase set", Price: 25, Stock: 3, Category: "Decor", Description: "Three hand painted ceramic vases"},
	{Name: "Brass floor lamp", Price: 70, Stock: 1, Category: "Decor", Description: "Art deco floor lamp, rewired"},
	{Name: "Classic novels bundle", Price: 18, Stock: 6, Category: "Books", Description: "Ten paperback classics in good condition"},
	{Name: "Cast iron pan", Price: 22, Stock: 5, Category: "Home", Description: "Seasoned 28 cm cast iron skillet"},
	{Name: "Tennis racket", Price: 30, Stock: 2, Category: "Sports", Description: "Wilson racket with new grip"},
	{Name: "Wooden train set", Price: 35, Stock: 2, Category: "Toys", Description: "Complete wooden railway with 40 pieces"},
	{Name: "Spanish classical guitar", Price: 150, Stock: 1, Category: "Music", Description: "Handmade guitar with hard case"},
	{Name: "Silver charm bracelet", Price: 65, Stock: 1, Category: "Jewelry", Description: "Sterling silver bracelet with six charms"},
}

// seedCatalog loads sampleCatalog unless the store already has products.
func seedCatalog(ctx context.Context, products *services.ProductService) (int, error) {
	existing, err := products.ListProducts(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for _, in := range sampleCatalog {
		if _, err := products.CreateProduct(ctx, in); err != nil {
			return 0, fmt.Errorf("seeding %q: %w", in.Name, err)
		}
	}
	return len(sampleCatalog), nil
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample second-hand catalog into an empty store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := seedCatalog(cmd.Context(), a.Products)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if n == 0 {
				fmt.Fprint(out, warnLine("store already has products, nothing seeded"))
				return nil
			}
			fmt.Fprint(out, okLine("seeded %d products", n))
			return nil
		},
	}
}
