package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tienda/internal/app"
	"tienda/internal/models"
	"tienda/internal/repositories"
	"tienda/internal/services"

	"github.com/spf13/cobra"
)

func newDemoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through a day at the store: stock, validation, sales and reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()
			return runDemo(cmd.Context(), a, cmd.OutOrStdout())
		},
	}
}

// runDemo only returns storage failures. Rejected products and stock changes
// are printed and the walk-through continues.
func runDemo(ctx context.Context, a *app.App, out io.Writer) error {
	fmt.Fprint(out, banner("SECOND-HAND STORE INVENTORY"))

	fmt.Fprint(out, section("1. Checking the store connection"))
	if err := a.CheckStorage(); err != nil {
		fmt.Fprint(out, errLine("could not reach the %s store: %v", a.StorageName(), err))
		return err
	}
	fmt.Fprint(out, okLine("connected to the %s store", a.StorageName()))

	if n, err := seedCatalog(ctx, a.Products); err != nil {
		return err
	} else if n > 0 {
		fmt.Fprint(out, okLine("empty store, loaded %d sample products", n))
	}

	fmt.Fprint(out, section("2. Initial inventory"))
	products, err := a.Products.ListProducts(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(out, okLine("%d products in the inventory", len(products)))

	fmt.Fprint(out, section("3. Products by category"))
	for _, category := range models.SuggestedCategories {
		fmt.Fprintf(out, "  %s\n", sectionStyle.Render(category))
		for _, p := range products {
			if p.Category() == category {
				fmt.Fprintf(out, "    - %s (%d units)\n", p.Name(), p.Stock())
			}
		}
	}

	fmt.Fprint(out, section("4. Adding new products"))
	for _, in := range []services.ProductInput{
		{Name: "Vintage Dutch bicycle", Price: 220, Stock: 2, Category: "Sports", Description: "Classic bicycle with basket, perfect condition"},
		{Name: "Singer sewing machine", Price: 95, Stock: 1, Category: "Home", Description: "Antique sewing machine in working order, iron foot"},
	} {
		created, err := a.Products.CreateProduct(ctx, in)
		if err := reportOutcome(out, err); err != nil {
			return err
		}
		if created != nil {
			fmt.Fprint(out, okLine("added %s", created))
		}
	}

	fmt.Fprint(out, section("4.1 Checking the validation rules"))
	if err := demoValidations(ctx, a, out); err != nil {
		return err
	}

	fmt.Fprint(out, section("5. Selling products"))
	for _, line := range []services.SaleLine{{ProductID: 1, Quantity: 1}, {ProductID: 5, Quantity: 2}} {
		sale, err := a.Sales.RecordSale(ctx, []services.SaleLine{line}, "demo")
		if err := reportOutcome(out, err); err != nil {
			return err
		}
		if sale != nil {
			fmt.Fprint(out, okLine("sale %s", sale.ID))
			fmt.Fprint(out, renderSale(sale))
		}
	}

	fmt.Fprint(out, section("6. Looking up products"))
	for _, id := range []int64{3, 15} {
		p, err := a.Products.GetProduct(ctx, id)
		switch {
		case errors.Is(err, repositories.ErrProductNotFound):
			fmt.Fprint(out, errLine("product with ID %d not found", id))
		case err != nil:
			return err
		default:
			fmt.Fprint(out, okLine("found %s - price %s - stock %d", p.Name(), formatMoney(p.Price()), p.Stock()))
		}
	}

	threshold := a.Config.LowStockThreshold
	fmt.Fprint(out, section(fmt.Sprintf("7. Low stock (< %d units)", threshold)))
	low, err := a.Products.LowStock(ctx, threshold)
	if err != nil {
		return err
	}
	fmt.Fprint(out, renderLowStock(low, threshold))

	fmt.Fprint(out, section("8. Final inventory"))
	final, err := a.Products.ListProducts(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(out, renderProducts(final))
	fmt.Fprint(out, section("Inventory summary"))
	fmt.Fprint(out, renderSummary(services.Summarize(final)))

	fmt.Fprint(out, "\n"+okStyle.Render("Inventory walk-through complete")+"\n")
	return nil
}

// demoValidations feeds invalid products through the same paths a clerk would use.
func demoValidations(ctx context.Context, a *app.App, out io.Writer) error {
	checks := []struct {
		title string
		input services.ProductInput
	}{
		{"negative price", services.ProductInput{Name: "Invalid product", Price: -50, Stock: 10, Category: "Test", Description: "Negative price"}},
		{"negative stock", services.ProductInput{Name: "Invalid product", Price: 50, Stock: -5, Category: "Test", Description: "Negative stock"}},
		{"empty name", services.ProductInput{Name: "", Price: 50, Stock: 10, Category: "Test", Description: "No name"}},
	}
	for _, check := range checks {
		fmt.Fprintf(out, "  %s\n", dimStyle.Render("creating a product with "+check.title))
		_, err := a.Products.CreateProduct(ctx, check.input)
		if err := expectRejected(out, err); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "  %s\n", dimStyle.Render("reducing stock below zero"))
	p, err := a.Products.GetProduct(ctx, 1)
	if errors.Is(err, repositories.ErrProductNotFound) {
		fmt.Fprint(out, warnLine("product 1 not found, skipped"))
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "    current stock: %d\n", p.Stock())
	return expectRejected(out, p.ReduceStock(p.Stock()+5))
}

// expectRejected prints the validation message of err, or flags a missed rule.
func expectRejected(out io.Writer, err error) error {
	if err == nil {
		fmt.Fprint(out, errLine("the invalid value was accepted"))
		return nil
	}
	if invalidErr, ok := models.AsInvalidProduct(err); ok {
		fmt.Fprint(out, okLine("rejected: %s", invalidErr.Message))
		return nil
	}
	return err
}

// reportOutcome prints product rule violations and returns anything else.
func reportOutcome(out io.Writer, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, models.ErrInvalidProduct) || errors.Is(err, repositories.ErrProductNotFound) {
		fmt.Fprint(out, errLine("%v", err))
		return nil
	}
	return err
}
