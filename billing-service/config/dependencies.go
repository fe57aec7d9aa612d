package config

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/swiftship/courier-system/billing-service/application"
	"github.com/swiftship/courier-system/billing-service/domain"
	"github.com/swiftship/courier-system/billing-service/handlers"
	"github.com/swiftship/courier-system/billing-service/infrastructure"
	"github.com/swiftship/courier-system/shared/events"
	sharedinfra "github.com/swiftship/courier-system/shared/infrastructure"
	"github.com/swiftship/courier-system/shared/telemetry"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	PaymentRepository       *infrastructure.PostgresPaymentRepository
	AttemptRepository       *infrastructure.PostgresAttemptRepository
	PaymentMethodRepository *infrastructure.PostgresPaymentMethodRepository
	OrderRepository         *infrastructure.PostgresOrderRepository
	ParcelRepository        *infrastructure.PostgresParcelRepository

	// Use Cases
	ProcessPayment      *application.ProcessPayment
	GetPaymentDetails   *application.GetPaymentDetails
	CreatePayment       *application.CreatePayment
	UpdatePaymentStatus *application.UpdatePaymentStatus
	ListPaymentMethods  *application.ListPaymentMethods

	// HTTP Handlers
	BillingHandlers *handlers.BillingHandlers

	// Event Handlers
	BillingEventHandlers *handlers.BillingEventHandlers

	// Infrastructure
	EventStore      *sharedinfra.PostgresEventStore
	EventPublisher  events.Publisher
	EventSubscriber *sharedinfra.SQSSubscriberAdapter

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()

	snsPublisher *sharedinfra.SNSPublisherAdapter
}

func BuildDependencies(ctx context.Context, config *Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{}

	// Initialize telemetry first
	if config.Telemetry.Enabled {
		telConfig := telemetry.BillingServiceConfig.WithOTLPEndpoint(config.Telemetry.OTLPEndpoint)
		tel, telemetryShutdown, err := telemetry.InitTelemetry(ctx, telConfig)
		if err != nil {
			logger.Warn("failed to initialize telemetry, continuing without it",
				slog.String("error", err.Error()))
		} else {
			deps.Telemetry = tel
			deps.TelemetryShutdown = telemetryShutdown
		}
	}

	// Initialize database
	db, err := sqlx.Connect("postgres", config.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	deps.DB = db

	// Initialize AWS infrastructure
	snsPublisher, err := sharedinfra.NewSNSPublisherAdapter(config.AWS.SNSTopicArn)
	if err != nil {
		return nil, fmt.Errorf("failed to create SNS publisher: %w", err)
	}
	deps.snsPublisher = snsPublisher

	// Every published event is journaled to the event store first, so
	// administrative overrides and settlement transitions leave a durable
	// audit trail even when the broker is down.
	deps.EventStore = sharedinfra.NewPostgresEventStore(db)
	deps.EventPublisher = sharedinfra.NewJournalingPublisher(deps.EventStore, snsPublisher)

	eventSubscriber, err := sharedinfra.NewSQSSubscriberAdapter(config.AWS.SQSQueueURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQS subscriber: %w", err)
	}
	deps.EventSubscriber = eventSubscriber

	// Initialize repositories
	deps.PaymentRepository = infrastructure.NewPostgresPaymentRepository(db)
	deps.AttemptRepository = infrastructure.NewPostgresAttemptRepository(db)
	deps.PaymentMethodRepository = infrastructure.NewPostgresPaymentMethodRepository(db)
	deps.OrderRepository = infrastructure.NewPostgresOrderRepository(db)
	deps.ParcelRepository = infrastructure.NewPostgresParcelRepository(db)

	// Initialize use cases
	txManager := infrastructure.NewSqlxTxManager(db)
	factory := domain.NewPaymentMethodFactory(deps.PaymentMethodRepository)
	processors := domain.NewDefaultProcessorRegistry()

	deps.ProcessPayment = application.NewProcessPayment(
		deps.PaymentRepository,
		deps.AttemptRepository,
		deps.OrderRepository,
		deps.ParcelRepository,
		deps.PaymentMethodRepository,
		factory,
		processors,
		deps.EventPublisher,
		txManager,
	)
	deps.GetPaymentDetails = application.NewGetPaymentDetails(deps.PaymentRepository, deps.AttemptRepository)
	deps.CreatePayment = application.NewCreatePayment(deps.PaymentRepository, deps.EventPublisher)
	deps.UpdatePaymentStatus = application.NewUpdatePaymentStatus(deps.PaymentRepository, deps.EventPublisher)
	deps.ListPaymentMethods = application.NewListPaymentMethods(deps.PaymentMethodRepository)

	// Initialize handlers
	deps.BillingHandlers = handlers.NewBillingHandlers(
		deps.ProcessPayment,
		deps.GetPaymentDetails,
		deps.CreatePayment,
		deps.UpdatePaymentStatus,
		deps.ListPaymentMethods,
	)
	deps.BillingEventHandlers = handlers.NewBillingEventHandlers(deps.CreatePayment, logger)

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if d.snsPublisher != nil {
		if err := d.snsPublisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event publisher: %w", err))
		}
	}

	if d.EventSubscriber != nil {
		if err := d.EventSubscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event subscriber: %w", err))
		}
	}

	if d.TelemetryShutdown != nil {
		d.TelemetryShutdown()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
