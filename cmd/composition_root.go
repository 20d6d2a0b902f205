package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	httpin "checkout/internal/adapters/in/http"
	"checkout/internal/adapters/out/analytics"
	"checkout/internal/adapters/out/backup"
	"checkout/internal/adapters/out/metrics"
	"checkout/internal/adapters/out/notification"
	"checkout/internal/adapters/out/payment"
	"checkout/internal/adapters/out/postgres"
	pgorderrepo "checkout/internal/adapters/out/postgres/orderrepo"
	sqliteorderrepo "checkout/internal/adapters/out/sqlite/orderrepo"
	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/services"
	"checkout/internal/core/domain/services/discount"
	"checkout/internal/core/ports"
	"checkout/internal/jobs"

	"github.com/shopspring/decimal"
)

// Storage pairs the write and read side of the configured repository.
type Storage interface {
	ports.OrderRepository
	ports.ProcessedOrderReader
}

// Adapters are the outbound adapters shared by every request.
type Adapters struct {
	Storage   Storage
	Notifier  ports.NotificationService
	Analytics ports.AnalyticsService
	Backup    ports.BackupService
}

// CompositionRoot owns the long-lived adapters and builds a fresh processor
// for every request, so no processing state is shared between orders.
type CompositionRoot struct {
	config    Config
	logger    *slog.Logger
	adapters  Adapters
	countries services.CountryPolicy
	tariff    discount.ExportTariff
	metrics   *metrics.PrometheusMetrics
	closers   []func() error
}

// NewCompositionRoot connects the adapters selected in config.
func NewCompositionRoot(ctx context.Context, config Config, logger *slog.Logger) (*CompositionRoot, error) {
	var closers []func() error
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}

	storage, closeStorage, err := openStorage(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("open %s repository: %w", config.RepositoryDriver, err)
	}
	closers = append(closers, closeStorage)

	notifier, closeNotifier, err := openNotifier(config, logger)
	if err != nil {
		closeAll()
		return nil, fmt.Errorf("open %s notification: %w", config.NotificationDriver, err)
	}
	closers = append(closers, closeNotifier)

	tracker, closeTracker := openAnalytics(config, logger)
	closers = append(closers, closeTracker)

	backupService, closeBackup, err := openBackup(config, logger)
	if err != nil {
		closeAll()
		return nil, fmt.Errorf("open %s backup: %w", config.BackupDriver, err)
	}
	closers = append(closers, closeBackup)

	root, err := newCompositionRoot(config, logger, Adapters{
		Storage:   storage,
		Notifier:  notifier,
		Analytics: tracker,
		Backup:    backupService,
	})
	if err != nil {
		closeAll()
		return nil, err
	}
	root.closers = closers
	return root, nil
}

func newCompositionRoot(config Config, logger *slog.Logger, adapters Adapters) (*CompositionRoot, error) {
	countries, err := services.NewCountryPolicy(config.Countries)
	if err != nil {
		return nil, err
	}
	tariff, err := discount.NewExportTariff(config.ExportTariffThreshold, config.ExportTariffRate)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		config:    config,
		logger:    logger,
		adapters:  adapters,
		countries: countries,
		tariff:    tariff,
		metrics:   metrics.NewPrometheusMetrics(),
	}, nil
}

// CreateProcessOrderCommandHandler assembles a processor for one payment
// method. The export tariff is applied to the subtotal before the method's
// discount or fee. An unset promoRate falls back to the configured rate.
func (c *CompositionRoot) CreateProcessOrderCommandHandler(
	method discount.Method,
	promoRate decimal.NullDecimal,
) (commands.ProcessOrderCommandHandler, error) {
	rate := c.config.PromoRate
	if promoRate.Valid {
		rate = promoRate.Decimal
	}

	methodPolicy, err := discount.ForMethod(method, rate)
	if err != nil {
		return commands.ProcessOrderCommandHandler{}, err
	}
	gateway, err := payment.ForMethod(method, c.logger)
	if err != nil {
		return commands.ProcessOrderCommandHandler{}, err
	}

	return commands.NewProcessOrderCommandHandler(
		discount.Chain{c.tariff, methodPolicy},
		gateway,
		commands.Collaborators{
			Repository: c.adapters.Storage,
			Notifier:   c.adapters.Notifier,
			Analytics:  c.adapters.Analytics,
			Backup:     c.adapters.Backup,
		},
		c.countries,
		c.metrics,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetProcessedOrdersQueryHandler() (queries.GetProcessedOrdersQueryHandler, error) {
	return queries.NewGetProcessedOrdersQueryHandler(c.adapters.Storage)
}

func (c *CompositionRoot) CreateOrderProcessorFactory() httpin.OrderProcessorFactory {
	return FuncOrderProcessorFactory(func(method discount.Method, promoRate decimal.NullDecimal) (httpin.OrderProcessor, error) {
		handler, err := c.CreateProcessOrderCommandHandler(method, promoRate)
		if err != nil {
			return nil, err
		}
		return handler, nil
	})
}

func (c *CompositionRoot) CreateServer() (*httpin.Server, error) {
	lister, err := c.CreateGetProcessedOrdersQueryHandler()
	if err != nil {
		return nil, err
	}
	return httpin.NewServer(c.CreateOrderProcessorFactory(), lister, c.MetricsHandler()), nil
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	lister, err := c.CreateGetProcessedOrdersQueryHandler()
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(lister, c.config.ReportSchedule, c.config.ReportWindow, c.logger)
}

func (c *CompositionRoot) MetricsHandler() http.Handler {
	return c.metrics.Handler()
}

// Close releases the adapters in reverse order of creation.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i]())
	}
	c.closers = nil
	return err
}

type FuncOrderProcessorFactory func(method discount.Method, promoRate decimal.NullDecimal) (httpin.OrderProcessor, error)

func (f FuncOrderProcessorFactory) CreateOrderProcessor(
	method discount.Method,
	promoRate decimal.NullDecimal,
) (httpin.OrderProcessor, error) {
	return f(method, promoRate)
}

func noop() error { return nil }

func openStorage(ctx context.Context, config Config) (Storage, func() error, error) {
	switch config.RepositoryDriver {
	case RepositoryPostgres:
		db, err := postgres.Open(postgres.DSN{
			Host:     config.DBHost,
			Port:     config.DBPort,
			User:     config.DBUser,
			Password: config.DBPassword,
			Name:     config.DBName,
			SSLMode:  config.DBSslMode,
		})
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		if err = pgorderrepo.Migrate(db.WithContext(ctx)); err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		return pgorderrepo.NewGormOrderRepository(db), sqlDB.Close, nil
	default:
		repo, err := sqliteorderrepo.Open(ctx, config.SqlitePath)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	}
}

func openNotifier(config Config, logger *slog.Logger) (ports.NotificationService, func() error, error) {
	switch config.NotificationDriver {
	case NotificationAMQP:
		conn, ch, err := notification.Dial(config.AmqpURL, config.AmqpExchange)
		if err != nil {
			return nil, nil, err
		}
		closeAmqp := func() error {
			return errors.Join(ch.Close(), conn.Close())
		}
		return notification.NewAmqpNotification(ch, config.AmqpExchange, logger), closeAmqp, nil
	default:
		host := config.SMTPAddr
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
		return notification.NewEmailNotification(config.SMTPAddr, logger,
			notification.WithAuth(config.SMTPUser, config.SMTPPassword, host),
			notification.WithSender(config.SMTPFrom),
		), noop, nil
	}
}

func openAnalytics(config Config, logger *slog.Logger) (ports.AnalyticsService, func() error) {
	switch config.AnalyticsDriver {
	case AnalyticsKafka:
		writer := analytics.NewWriter(config.KafkaHost, config.KafkaAnalyticsTopic)
		return analytics.NewKafkaAnalytics(writer, logger), writer.Close
	default:
		return analytics.NewHTTPAnalytics(config.AnalyticsURL, nil, logger), noop
	}
}

func openBackup(config Config, logger *slog.Logger) (ports.BackupService, func() error, error) {
	switch config.BackupDriver {
	case BackupRedis:
		client, err := backup.NewRedisClient(config.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return backup.NewRedisBackup(client, config.RedisBackupKey, logger), client.Close, nil
	default:
		return backup.NewCsvBackup(config.BackupCSVPath, logger), noop, nil
	}
}
