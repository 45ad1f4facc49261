package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrmateussiilva/petstory/config"
	"github.com/mrmateussiilva/petstory/internal/archive"
	"github.com/mrmateussiilva/petstory/internal/clients/gemini"
	"github.com/mrmateussiilva/petstory/internal/clients/mailer"
	"github.com/mrmateussiilva/petstory/internal/clients/mercadopago"
	handlers "github.com/mrmateussiilva/petstory/internal/handlers"
	"github.com/mrmateussiilva/petstory/internal/kit"
	"github.com/mrmateussiilva/petstory/internal/metrics"
	"github.com/mrmateussiilva/petstory/internal/pipeline"
	"github.com/mrmateussiilva/petstory/internal/publisher"
	"github.com/mrmateussiilva/petstory/internal/ratelimit"
	"github.com/mrmateussiilva/petstory/internal/service"
	"github.com/mrmateussiilva/petstory/internal/subscriber"
	"github.com/mrmateussiilva/petstory/internal/tribute"
	"github.com/sirupsen/logrus"
)

const limiterCleanupInterval = 10 * time.Minute

type App struct {
	config *config.Config
	Router *gin.Engine

	server       *http.Server
	orchestrator *pipeline.Orchestrator
	publisher    *publisher.KafkaPublisher
	consumer     *subscriber.KafkaConsumer
}

// Initialize builds every component and registers the routes. Background
// loops (sweeps, consumers, limiter cleanup) stop when ctx is cancelled.
func (a *App) Initialize(ctx context.Context, cfg *config.Config) error {
	a.config = cfg
	metrics.RegisterMetrics()

	ledger := service.NewPaymentLedger(mercadopago.NewClient(cfg.Payment), cfg.Ledger)
	paymentService := service.NewPaymentService(ledger, cfg.Payment.Price)
	gate := service.NewUploadGate(ledger)

	var eventPublisher pipeline.Publisher
	if cfg.Kafka.Enabled {
		a.publisher = publisher.NewKafkaPublisher(cfg.Kafka.Brokers, splitList(cfg.Kafka.PublishTopics), cfg.Kafka.GetRetryConfig())
		eventPublisher = a.publisher
	}

	var archiver pipeline.Archiver
	if cfg.S3.Enabled {
		s3Archive, err := archive.NewS3Archive(ctx, cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 archive: %w", err)
		}
		archiver = s3Archive
	}

	tributes, err := tribute.NewGenerator()
	if err != nil {
		return fmt.Errorf("failed to load tribute template: %w", err)
	}

	art := pipeline.NewArtStage(
		gemini.NewClient(cfg.Gemini),
		ratelimit.New(cfg.Gemini.MinInterval),
		gemini.StyleDirective,
		cfg.Gemini.Timeout,
		cfg.Pipeline.MaxImageSide,
	)
	delivery := pipeline.NewDeliveryStage(mailer.NewSMTPMailer(cfg.SMTP), archiver, cfg.Storage.WorkDir)
	a.orchestrator = pipeline.NewOrchestrator(art, kit.NewBuilder(), tributes, delivery, eventPublisher, cfg.Storage.WorkDir)

	service.NewSweeper(ledger, a.orchestrator, cfg.Ledger.ExpirySweepInterval, cfg.Ledger.PurgeInterval, cfg.Ledger.Retention).Start(ctx)

	paymentHandler := handlers.NewPaymentHandler(paymentService)
	orderHandler := handlers.NewOrderHandler(gate, a.orchestrator)
	limiter := handlers.NewClientRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	go a.cleanupLimiter(ctx, limiter)

	a.Router = gin.Default()
	a.Router.Use(gin.Recovery())
	a.Router.Use(handlers.CORS(cfg.CORS))
	a.RegisterRoutes(paymentHandler, orderHandler, limiter)

	if cfg.Kafka.Enabled {
		a.initSubscribers(ctx, paymentHandler, a.publisher, cfg.Kafka.GetRetryConfig())
	}

	logrus.WithFields(logrus.Fields{
		"work_dir": cfg.Storage.WorkDir,
		"kafka":    cfg.Kafka.Enabled,
		"s3":       cfg.S3.Enabled,
	}).Info("petstory initialized")
	return nil
}

// Run serves HTTP until Shutdown is called.
func (a *App) Run() error {
	a.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", a.config.APP.PORT),
		Handler: a.Router,
	}
	logrus.Infof("listening on %s", a.server.Addr)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight orders and closes
// the Kafka clients.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.server != nil {
		errs = append(errs, a.server.Shutdown(ctx))
	}
	if a.orchestrator != nil {
		done := make(chan struct{})
		go func() {
			a.orchestrator.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			errs = append(errs, fmt.Errorf("orders still running: %w", ctx.Err()))
		}
	}
	if a.consumer != nil {
		errs = append(errs, a.consumer.Close())
	}
	if a.publisher != nil {
		errs = append(errs, a.publisher.Close())
	}
	return errors.Join(errs...)
}

func (a *App) initSubscribers(ctx context.Context, paymentHandler *handlers.PaymentHandler, publisher *publisher.KafkaPublisher, retryConfig config.RetryConfig) {
	brokers := splitList(a.config.Kafka.Brokers)
	topics := splitList(a.config.Kafka.SubscriberTopics)
	groupID := a.config.Kafka.PaymentConsumerGroup

	a.consumer = subscriber.NewMultiTopicConsumer(brokers, topics, groupID, publisher, retryConfig)

	a.consumer.Listen(ctx, func(topic string, value []byte) error {
		logrus.WithField("topic", topic).Debugf("received message: %s", string(value))
		return paymentHandler.HandleEvents(ctx, topic, value)
	})
}

func (a *App) cleanupLimiter(ctx context.Context, limiter *handlers.ClientRateLimiter) {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := limiter.Cleanup(); n > 0 {
				logrus.Debugf("forgot %d idle rate limit clients", n)
			}
		case <-ctx.Done():
			return
		}
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
