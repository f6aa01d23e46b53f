package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"minis-storefront/internal/dashboard"
	"minis-storefront/internal/models"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(os.Stdout).RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:  "minis-admin",
		Usage: "manage storefront orders and premade products",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", EnvVars: []string{"MINIS_API_URL"}, Usage: "storefront API base URL"},
			&cli.StringFlag{Name: "username", Value: "artist", EnvVars: []string{"ADMIN_USERNAME"}},
			&cli.StringFlag{Name: "password", EnvVars: []string{"ADMIN_PASSWORD"}, Required: true},
		},
		Commands: []*cli.Command{
			{
				Name:  "orders",
				Usage: "list and update orders",
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Usage: "show every order, newest first",
						Action: func(c *cli.Context) error {
							board, err := loadBoard(c)
							if err != nil {
								return err
							}
							printOrders(out, board.Orders())
							return nil
						},
					},
					{
						Name:      "toggle",
						Usage:     "flip the completed flag of an order",
						ArgsUsage: "<order id>",
						Action: func(c *cli.Context) error {
							return changeOrder(c, out, (*dashboard.OrdersBoard).Toggle)
						},
					},
					{
						Name:      "delete",
						Usage:     "delete an order",
						ArgsUsage: "<order id>",
						Action: func(c *cli.Context) error {
							return changeOrder(c, out, (*dashboard.OrdersBoard).Delete)
						},
					},
				},
			},
			{
				Name:  "products",
				Usage: "list premade products",
				Action: func(c *cli.Context) error {
					products, err := newClient(c).ListProducts(c.Context)
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tSKU\tNAME\tPRICE")
					for _, p := range products {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.SKU, p.Name, p.Price.StringFixed(2))
					}
					return w.Flush()
				},
			},
		},
	}
}

func newClient(c *cli.Context) *dashboard.Client {
	return dashboard.NewClient(c.String("url"), c.String("username"), c.String("password"))
}

func loadBoard(c *cli.Context) (*dashboard.OrdersBoard, error) {
	board := dashboard.NewOrdersBoard(newClient(c))
	if err := board.Refresh(c.Context); err != nil {
		return nil, err
	}
	return board, nil
}

func changeOrder(c *cli.Context, out io.Writer, change func(*dashboard.OrdersBoard, context.Context, string) error) error {
	orderID := c.Args().First()
	if orderID == "" {
		return errors.New("order id is required")
	}

	board, err := loadBoard(c)
	if err != nil {
		return err
	}
	if err := change(board, c.Context, orderID); err != nil {
		return err
	}
	printOrders(out, board.Orders())
	return nil
}

func printOrders(out io.Writer, orders []models.Order) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSKU\tPRODUCT\tEMAIL\tPRICE\tDONE")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\n", o.ID, o.SKU, o.ProductName, o.CustomerEmail, o.Price, o.Completed)
	}
	_ = w.Flush()
}
