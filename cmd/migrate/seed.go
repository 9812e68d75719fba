package main

import (
	"context"
	"errors"
	"time"

	"hawker/cmd"
	"hawker/internal/adapters/out/postgres"
	"hawker/internal/adapters/out/postgres/orderrepo"
	"hawker/internal/adapters/out/postgres/stallrepo"
	"hawker/internal/core/application/access"
	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/core/domain/model/order"
	"hawker/internal/pkg/logger"

	"github.com/google/uuid"
)

// Fixed ids, so a second seed fails on the primary keys instead of adding a second stall.
var (
	demoOwnerID  = uuid.MustParse("5b0e5f0c-2d8e-4a53-9c55-0d3c1d4c7a01")
	demoStallID  = uuid.MustParse("5b0e5f0c-2d8e-4a53-9c55-0d3c1d4c7a02")
	chickenRice  = uuid.MustParse("5b0e5f0c-2d8e-4a53-9c55-0d3c1d4c7a03")
	barleyDrink  = uuid.MustParse("5b0e5f0c-2d8e-4a53-9c55-0d3c1d4c7a04")
	demoOperator = "ah.seng@example.com"
)

func seed(ctx context.Context, dbConfig cmd.DBConfig, log *logger.Logger) error {
	db, err := postgres.Connect(ctx, postgres.ConnectionConfig{
		Driver: dbConfig.Driver,
		DSN:    dbConfig.DSN,
	}, log)
	if err != nil {
		return err
	}
	defer func() { _ = postgres.Close(db) }()

	directory := stallrepo.NewGormDirectory(db)
	err = directory.Seed(ctx,
		[]stallrepo.UserDTO{{ID: demoOwnerID, Email: demoOperator, Role: access.RoleOperator}},
		[]stallrepo.StallDTO{{ID: demoStallID, OwnerID: demoOwnerID, Name: "Ah Seng Chicken Rice"}},
		[]stallrepo.MenuItemDTO{
			{ID: chickenRice, StallID: demoStallID, Name: "Steamed Chicken Rice", PrepTimeMinutes: 4, PriceCents: 450},
			{ID: barleyDrink, StallID: demoStallID, Name: "Barley", PrepTimeMinutes: 1, PriceCents: 180},
		},
	)
	if err != nil {
		return err
	}

	demoOrder, err := newDemoOrder()
	if err != nil {
		return err
	}
	return orderrepo.NewGormOrderRepository(db).Add(ctx, demoOrder)
}

func newDemoOrder() (*order.Order, error) {
	stallID, err := kernel.UUIDFromGoogle(demoStallID)
	if err != nil {
		return nil, err
	}
	riceID, riceErr := kernel.UUIDFromGoogle(chickenRice)
	drinkID, drinkErr := kernel.UUIDFromGoogle(barleyDrink)
	if err = errors.Join(riceErr, drinkErr); err != nil {
		return nil, err
	}

	rice, riceErr := order.NewItem(kernel.NewUUID(), riceID, 2, 4, "less rice")
	drink, drinkErr := order.NewItem(kernel.NewUUID(), drinkID, 1, 1, "")
	if err = errors.Join(riceErr, drinkErr); err != nil {
		return nil, err
	}

	return order.NewOrder(kernel.NewUUID(), stallID, order.PaymentPaid, []*order.Item{rice, drink}, time.Now().UTC())
}
