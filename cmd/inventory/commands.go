package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/yourusername/inventory-tracker/config"
	"github.com/yourusername/inventory-tracker/internal/delivery/tui"
	"github.com/yourusername/inventory-tracker/internal/domain/entity"
	"github.com/yourusername/inventory-tracker/internal/usecase"
)

// rootOptions umumiy flaglar
type rootOptions struct {
	configFile string
	envFile    string
	username   string
	password   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "inventory",
		Short:         "Single-user inventory tracker for raw materials and finished goods",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "config.yaml", "YAML config file (optional)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file with INVENTORY_* keys (optional)")
	root.PersistentFlags().StringVarP(&opts.username, "user", "u", "", "account used to attribute activity")
	root.PersistentFlags().StringVarP(&opts.password, "password", "p", "", "account password")

	root.AddCommand(
		newTUICmd(opts),
		newListCmd(opts),
		newAddCmd(opts),
		newQuantityCmd(opts, "set <id> <quantity>", "Set the stock quantity of a product", "Stock updated!",
			func(c usecase.ProductUseCase) quantityFunc { return c.SetQuantity }, validateSetArgs),
		newQuantityCmd(opts, "sell <id> <quantity>", "Record a sale", "Transaction Success!",
			func(c usecase.ProductUseCase) quantityFunc { return c.ApplySale }, usecase.ValidateTransaction),
		newQuantityCmd(opts, "buy <id> <quantity>", "Record a purchase", "Transaction Success!",
			func(c usecase.ProductUseCase) quantityFunc { return c.ApplyPurchase }, usecase.ValidateTransaction),
		newDeleteCmd(opts),
		newSearchCmd(opts),
		newLowStockCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newLogCmd(opts),
		newChartsCmd(opts),
	)
	return root
}

// withApp konfiguratsiyani yuklab app yaratish, kerak bo'lsa login, oxirida yopish
func withApp(cmd *cobra.Command, opts *rootOptions, login bool, fn func(ctx context.Context, a *app) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadFrom(opts.configFile, opts.envFile)
	if err != nil {
		return err
	}
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.close())
	}()

	if login {
		if _, err := a.auth.Login(ctx, opts.username, opts.password); err != nil {
			return err
		}
	}
	return fn(ctx, a)
}

func requireAdmin(a *app) error {
	if !a.auth.Current().Role.CanManageCatalog() {
		return fmt.Errorf("%s: only admin accounts can add or delete products", a.auth.Current().Username)
	}
	return nil
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return errors.New("tui requires an interactive terminal")
			}
			return withApp(cmd, opts, false, func(ctx context.Context, a *app) error {
				return tui.Run(ctx, tui.Deps{
					Auth:     a.auth,
					Catalog:  a.catalog,
					Reports:  a.reports,
					LowStock: a.cfg.Catalog.LowStock,
					Logger:   a.logger,
				})
			})
		},
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every product in catalog order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, true, func(ctx context.Context, a *app) error {
				printProducts(cmd.OutOrStdout(), a.catalog.All(), a.cfg.Catalog.LowStock)
				fmt.Fprintf(cmd.OutOrStdout(), "%d/%d products\n", a.catalog.Len(), a.catalog.Capacity())
				return nil
			})
		},
	}
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var (
		id       int
		name     string
		quantity int
		price    float64
		category string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product (admin only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := usecase.ValidateNewProduct(id, strings.TrimSpace(name)); err != nil {
				return err
			}
			c, err := entity.ParseCategory(category)
			if err != nil {
				return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
			}
			return withApp(cmd, opts, true, func(ctx context.Context, a *app) error {
				if err := requireAdmin(a); err != nil {
					return err
				}
				p, err := a.catalog.Add(ctx, id, name, quantity, price, c)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Product added! %s\n", productLine(p))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&id, "id", 0, "product id (positive)")
	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().IntVar(&quantity, "qty", 0, "initial quantity")
	cmd.Flags().Float64Var(&price, "price", 0, "unit price")
	cmd.Flags().StringVar(&category, "type", "raw", "raw | finished")
	return cmd
}

type quantityFunc func(ctx context.Context, id, quantity int) (entity.Product, error)

func validateSetArgs(id, _ int) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", usecase.ErrInvalidInput)
	}
	return nil
}

// newQuantityCmd set/sell/buy buyruqlari uchun umumiy konstruktor
func newQuantityCmd(
	opts *rootOptions,
	use, short, success string,
	pick func(usecase.ProductUseCase) quantityFunc,
	validate func(id, quantity int) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIntArg("id", args[0])
			if err != nil {
				return err
			}
			qty, err := parseIntArg("quantity", args[1])
			if err != nil {
				return err
			}
			if err := validate(id, qty); err != nil {
				return err
			}
			return withApp(cmd, opts, true, func(ctx context.Context, a *app) error {
				p, err := pick(a.catalog)(ctx, id, qty)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", success, productLine(p))
				return nil
			})
		},
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIntArg("id", args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, true, func(ctx context.Context, a *app) error {
				if err := requireAdmin(a); err != nil {
					return err
				}
				p, err := a.catalog.Delete(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", productLine(p))
				return nil
			})
		},
	}
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <id or name>",
		Short: "Find products by id or name substring",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, true, func(ctx context.Context, a *app) error {
				found := a.catalog.Search(strings.Join(args, " "))
				if len(found) == 0 {
					return usecase.ErrProductNotFound
				}
				printProducts(cmd.OutOrStdout(), found, a.cfg.Catalog.LowStock)
				return nil
			})
		},
	}
}

func newLowStockCmd(opts *rootOptions) *cobra.Command {
	var threshold int
	cmd := &cobra.Command{
		Use:   "low-stock",
		Short: "List products whose quantity is below the threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, true, func(ctx context.Context, a *app) error {
				t := threshold
				if !cmd.Flags().Changed("threshold") {
					t = a.cfg.Catalog.LowStock
				}
				for _, p := range a.reports.LowStockAlerts(t) {
					fmt.Fprintf(cmd.OutOrStdout(), "- %s (%d left)\n", p.Name, p.Quantity)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&threshold, "threshold", usecase.DefaultLowStockThreshold, "alert threshold (defaults to catalog.lowstock)")
	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog to CSV or XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := usecase.ParseFormat(format)
			if err != nil {
				return err
			}
			return withApp(cmd, opts, true, func(ctx context.Context, a *app) error {
				path, err := a.reports.Export(ctx, f)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(usecase.FormatCSV), "csv | xlsx")
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx | ->",
		Short: "Add products from the first sheet of an Excel workbook (admin only)",
		Long:  "Add products from the first sheet of an Excel workbook (admin only).\nUse - to read the workbook from standard input.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, true, func(ctx context.Context, a *app) error {
				if err := requireAdmin(a); err != nil {
					return err
				}

				var summary usecase.ImportSummary
				var err error
				if args[0] == "-" {
					data, readErr := io.ReadAll(cmd.InOrStdin())
					if readErr != nil {
						return fmt.Errorf("read stdin: %w", readErr)
					}
					summary, err = a.reports.ImportData(ctx, "stdin", data)
				} else {
					summary, err = a.reports.Import(ctx, args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d products, skipped %d\n", summary.Added, summary.Skipped)
				return err
			})
		},
	}
}

func newLogCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the most recent activity log lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, true, func(ctx context.Context, a *app) error {
				lines, err := a.reports.RecentActivity(ctx, limit)
				if err != nil {
					return err
				}
				for _, line := range lines {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", usecase.RecentActivityLimit, "number of lines")
	return cmd
}

func newChartsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "charts",
		Short: "Print stock levels of the first products and the type distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, true, func(ctx context.Context, a *app) error {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Stock Levels (First %d)\n", usecase.ChartProducts)
				for _, bar := range a.reports.StockLevels(usecase.ChartProducts, 40) {
					fmt.Fprintf(out, "%-4d %-20s %6d %s\n", bar.Product.ID, bar.Product.Name, bar.Product.Quantity, strings.Repeat("#", bar.Height))
				}
				d := a.reports.TypeDistribution()
				fmt.Fprintf(out, "Raw: %d | Finished: %d\n", d.Raw, d.Finished)
				return nil
			})
		},
	}
}

func parseIntArg(name, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", usecase.ErrInvalidInput, name, s)
	}
	return n, nil
}

func printProducts(w io.Writer, products []entity.Product, lowStock int) {
	fmt.Fprintf(w, "%-4s %-20s %-6s %-7s %-13s\n", "ID", "Name", "Qty", "Price", "Type")
	for _, p := range products {
		marker := ""
		if p.Quantity < lowStock {
			marker = " LOW"
		}
		fmt.Fprintf(w, "%-4d %-20s %-6d %-7.2f %-13s%s\n", p.ID, p.Name, p.Quantity, p.Price, p.Category, marker)
	}
}

func productLine(p entity.Product) string {
	return fmt.Sprintf("%s (ID: %d, qty %d, $%.2f, %s)", p.Name, p.ID, p.Quantity, p.Price, p.Category)
}
