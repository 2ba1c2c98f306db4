package cli

import (
	"context"
	"fmt"
	"strconv"

	"tienda/internal/models"
	"tienda/internal/services"

	"github.com/spf13/cobra"
)

func newProductsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product", "p"},
		Short:   "Browse and edit the catalog",
	}
	cmd.AddCommand(newProductsListCmd(opts))
	cmd.AddCommand(newProductsShowCmd(opts))
	cmd.AddCommand(newProductsAddCmd(opts))
	cmd.AddCommand(newProductsUpdateCmd(opts))
	cmd.AddCommand(newProductsStockCmd(opts))
	cmd.AddCommand(newProductsDeleteCmd(opts))
	return cmd
}

func parseProductID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", arg)
	}
	return id, nil
}

func newProductsListCmd(opts *rootOptions) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally of one category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			list := a.Products.ListProducts
			if category != "" {
				list = func(ctx context.Context) ([]*models.Product, error) {
					return a.Products.ListByCategory(ctx, category)
				}
			}
			products, err := list(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderProducts(products))
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only products of this category")
	return cmd
}

func newProductsShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			product, err := a.Products.GetProduct(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderProduct(product))
			return nil
		},
	}
}

func addProductFlags(cmd *cobra.Command, in *services.ProductInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "product name")
	cmd.Flags().Float64Var(&in.Price, "price", 0, "unit price")
	cmd.Flags().IntVar(&in.Stock, "stock", 0, "units on hand")
	cmd.Flags().StringVar(&in.Category, "category", "", "category, e.g. Furniture or Music")
	cmd.Flags().StringVar(&in.Description, "description", "", "condition and details")
}

func newProductsAddCmd(opts *rootOptions) *cobra.Command {
	var in services.ProductInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			product, err := a.Products.CreateProduct(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), okLine("added %s", product))
			return nil
		},
	}
	addProductFlags(cmd, &in)
	return cmd
}

func newProductsUpdateCmd(opts *rootOptions) *cobra.Command {
	var in services.ProductInput
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of a product; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			current, err := a.Products.GetProduct(ctx, id)
			if err != nil {
				return err
			}
			merged := services.ProductInput{
				Name:        current.Name(),
				Price:       current.Price(),
				Stock:       current.Stock(),
				Category:    current.Category(),
				Description: current.Description(),
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				merged.Name = in.Name
			}
			if flags.Changed("price") {
				merged.Price = in.Price
			}
			if flags.Changed("stock") {
				merged.Stock = in.Stock
			}
			if flags.Changed("category") {
				merged.Category = in.Category
			}
			if flags.Changed("description") {
				merged.Description = in.Description
			}

			product, err := a.Products.UpdateProduct(ctx, id, merged)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), okLine("updated %s", product))
			return nil
		},
	}
	addProductFlags(cmd, &in)
	return cmd
}

func newProductsStockCmd(opts *rootOptions) *cobra.Command {
	var (
		delta  int
		count  int
		reason string
	)
	cmd := &cobra.Command{
		Use:   "stock ID (--delta N | --set N)",
		Short: "Add or remove units, or set the counted stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			var product *models.Product
			if cmd.Flags().Changed("set") {
				product, err = a.Products.SetStock(cmd.Context(), id, count, reason)
			} else {
				product, err = a.Products.AdjustStock(cmd.Context(), id, delta, reason)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), okLine("%s - stock updated: %d", product.Name(), product.Stock()))
			return nil
		},
	}
	cmd.Flags().IntVarP(&delta, "delta", "d", 0, "units to add (positive) or remove (negative)")
	cmd.Flags().StringVar(&reason, "reason", "manual", "why the stock changed")
	cmd.Flags().IntVar(&count, "set", 0, "counted units on hand")
	cmd.MarkFlagsMutuallyExclusive("delta", "set")
	cmd.MarkFlagsOneRequired("delta", "set")
	return cmd
}

func newProductsDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a product from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Products.DeleteProduct(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), okLine("deleted product %d", id))
			return nil
		},
	}
}
