package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/pdv-core/internal/api"
	"github.com/nikolayk812/pdv-core/internal/cartstore"
	"github.com/nikolayk812/pdv-core/internal/cashsession"
	"github.com/nikolayk812/pdv-core/internal/checkout"
	"github.com/nikolayk812/pdv-core/internal/config"
	"github.com/nikolayk812/pdv-core/internal/coupon"
	"github.com/nikolayk812/pdv-core/internal/loyalty"
	"github.com/nikolayk812/pdv-core/internal/memstore"
	"github.com/nikolayk812/pdv-core/internal/migrations"
	"github.com/nikolayk812/pdv-core/internal/notify"
	"github.com/nikolayk812/pdv-core/internal/orders"
	"github.com/nikolayk812/pdv-core/internal/port"
	"github.com/nikolayk812/pdv-core/internal/repository"
	"github.com/nikolayk812/pdv-core/internal/schedule"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	configPath := flag.String("config", os.Getenv("PDV_CONFIG"), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("pdv stopped", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("zap.ParseAtomicLevel: %w", err)
	}
	zcfg.Level = level

	return zcfg.Build()
}

// repos groups the storage ports one backend provides.
type repos struct {
	stores    port.StoreRepository
	customers port.CustomerRepository
	addresses port.AddressRepository
	catalog   port.CatalogRepository
	methods   port.PaymentMethodRepository
	orders    port.OrderRepository
	coupons   port.CouponRepository
	loyalty   port.LoyaltyRepository
	registers port.CashRegisterRepository
	schedule  port.ScheduleRepository
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	unit, err := cfg.CurrencyUnit()
	if err != nil {
		return err
	}

	var r repos
	mem := memstore.New()

	switch cfg.Storage {
	case config.StorageMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		r = repos{
			stores: mem, customers: mem, addresses: mem, catalog: mem, methods: mem,
			orders: mem, coupons: mem, loyalty: mem, registers: mem, schedule: mem,
		}
	default:
		if cfg.Database.Migrate {
			if err := migrations.Up(cfg.Database.URL); err != nil {
				return fmt.Errorf("migrations.Up: %w", err)
			}
		}

		poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("pgxpool.ParseConfig: %w", err)
		}
		poolCfg.MaxConns = cfg.Database.MaxConns

		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return fmt.Errorf("pgxpool.NewWithConfig: %w", err)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			return fmt.Errorf("pool.Ping: %w", err)
		}

		r = repos{
			stores:    repository.NewStore(pool),
			customers: repository.NewCustomer(pool),
			addresses: repository.NewAddress(pool),
			catalog:   repository.NewCatalog(pool),
			methods:   repository.NewPaymentMethod(pool),
			orders:    repository.NewOrder(pool),
			coupons:   repository.NewCoupon(pool),
			loyalty:   repository.NewLoyalty(pool),
			registers: repository.NewCashRegister(pool, unit),
			schedule:  repository.NewSchedule(pool),
		}
	}

	var carts port.CartStore = mem
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		carts = cartstore.NewRedis(client, cfg.Redis.CartTTL)
	}

	var notifier port.Notifier
	if len(cfg.Kafka.Brokers) > 0 {
		writer := notify.NewKafkaWriter(cfg.Kafka.Topic, cfg.Kafka.Brokers...)
		defer writer.Close()
		notifier = notify.NewKafkaNotifier(writer, logger)
	}

	printer, closePrinter, err := newPrinter(cfg.Printer)
	if err != nil {
		return err
	}
	defer closePrinter()

	now := time.Now
	ledger := loyalty.NewLedger(r.loyalty, r.customers, r.catalog)
	binder := cashsession.NewBinder(r.registers, loc, now)
	gate := schedule.NewGate(r.schedule, loc, now)

	svc := checkout.New(checkout.Deps{
		Customers: r.customers,
		Addresses: r.addresses,
		Catalog:   r.catalog,
		Orders:    r.orders,
		Flow:      r.stores,
		Coupons:   r.coupons,
		Evaluator: coupon.NewEvaluator(r.coupons, now),
		Ledger:    ledger,
		Binder:    binder,
		Gate:      gate,
		Carts:     carts,
		Notifier:  notifier,
		Printer:   printer,
		Logger:    logger.Named("checkout"),
	})

	h := api.NewHandler(api.Deps{
		Checkout: svc,
		Orders:   orders.NewService(r.orders, r.stores, ledger, logger.Named("orders")),
		Binder:   binder,
		Gate:     gate,
		Stores:   r.stores,
		Catalog:  r.catalog,
		Methods:  r.methods,
		Carts:    carts,
		Logger:   logger.Named("api"),
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      otelhttp.NewHandler(h.Routes(), "pdv"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("pdv listening", zap.String("addr", cfg.HTTP.Addr), zap.String("storage", cfg.Storage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("srv.ListenAndServe: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}
	return nil
}

func newPrinter(cfg config.PrinterConfig) (port.Printer, func(), error) {
	var w io.WriteCloser
	switch cfg.Output {
	case "":
		return nil, func() {}, nil
	case "stdout":
		return notify.NewReceiptPrinter(os.Stdout, cfg.StoreName), func() {}, nil
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open printer output: %w", err)
		}
		w = f
	}
	return notify.NewReceiptPrinter(w, cfg.StoreName), func() { _ = w.Close() }, nil
}
