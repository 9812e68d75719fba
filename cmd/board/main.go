// Command board prints the current orders of the stalls an operator owns, the way the
// stall dashboard groups them.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"hawker/cmd"
	"hawker/internal/adapters/out/postgres"
	"hawker/internal/adapters/out/postgres/stallrepo"
	"hawker/internal/core/application/access"
	"hawker/internal/core/application/usecases/queries"
	"hawker/internal/pkg/logger"

	"github.com/olekukonko/tablewriter"
)

func main() {
	email := flag.String("email", "", "operator email")
	view := flag.String("view", string(queries.ViewCurrent), "current or history")
	flag.Parse()

	log := logger.New(logger.Options{ServiceName: "hawker-board", Format: "console"})
	ctx := context.Background()

	if err := run(ctx, *email, *view, os.Stdout, log); err != nil {
		log.Error(ctx, "board failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, email, rawView string, out io.Writer, log *logger.Logger) error {
	view, err := queries.ParseOrderView(rawView)
	if err != nil {
		return err
	}
	query, err := queries.NewListStallOrdersQuery(access.Identity{Email: email}, view)
	if err != nil {
		return err
	}

	dbConfig, err := cmd.LoadDBConfig()
	if err != nil {
		return err
	}
	db, err := postgres.Connect(ctx, postgres.ConnectionConfig{Driver: dbConfig.Driver, DSN: dbConfig.DSN}, log)
	if err != nil {
		return err
	}
	defer func() { _ = postgres.Close(db) }()

	handler := queries.NewListStallOrdersQueryHandler(db, access.NewOwnershipGuard(stallrepo.NewGormDirectory(db)))
	board, err := handler.Handle(ctx, query)
	if err != nil {
		return err
	}

	if view == queries.ViewHistory {
		return render(out, "History", board.History)
	}
	for _, section := range []struct {
		title  string
		orders []queries.OrderProjection
	}{
		{"Incoming", board.Incoming},
		{"Pending", board.Pending},
		{"Ready", board.Ready},
	} {
		if err = render(out, section.title, section.orders); err != nil {
			return err
		}
	}
	return nil
}

func render(out io.Writer, title string, orders []queries.OrderProjection) error {
	if _, err := fmt.Fprintf(out, "\n%s (%d)\n", title, len(orders)); err != nil {
		return err
	}
	if len(orders) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(out)
	table.Header("Code", "Stall", "Status", "Prepared", "Ready by", "Total")
	for _, o := range orders {
		if err := table.Append(boardRow(o)); err != nil {
			return err
		}
	}
	return table.Render()
}

func boardRow(o queries.OrderProjection) []string {
	prepared := 0
	for _, item := range o.Items {
		if item.IsPrepared {
			prepared++
		}
	}

	readyBy := "~" + strconv.Itoa(o.DefaultEstimateMinutes) + " min"
	if o.EstimatedReadyTime != nil {
		readyBy = o.EstimatedReadyTime.Local().Format(time.Kitchen)
	}

	return []string{
		o.OrderCode,
		o.StallName,
		o.FulfillmentStatus,
		fmt.Sprintf("%d/%d", prepared, len(o.Items)),
		readyBy,
		o.Total.StringFixed(2),
	}
}
