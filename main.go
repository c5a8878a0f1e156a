package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"

	"github.com/tanpawarit/Chative-Food-Delivery-Support/agent/agents/orchestrator"
	"github.com/tanpawarit/Chative-Food-Delivery-Support/agent/agents/support"
	"github.com/tanpawarit/Chative-Food-Delivery-Support/agent/api"
	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
	"github.com/tanpawarit/Chative-Food-Delivery-Support/agent/enrich"
	llmx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/llm"
	"github.com/tanpawarit/Chative-Food-Delivery-Support/agent/normalize"
	"github.com/tanpawarit/Chative-Food-Delivery-Support/agent/repository"
	"github.com/tanpawarit/Chative-Food-Delivery-Support/agent/state"
	toolx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/tool"
	configx "github.com/tanpawarit/Chative-Food-Delivery-Support/pkg/config"
	logx "github.com/tanpawarit/Chative-Food-Delivery-Support/pkg/logger"
	_ "github.com/tanpawarit/Chative-Food-Delivery-Support/pkg/logger/autoload"
	qstashx "github.com/tanpawarit/Chative-Food-Delivery-Support/pkg/qstash"
)

const (
	storeBackendPostgres = "postgres"
	storeBackendUpstash  = "upstash"
	storeBackendMemory   = "memory"
)

type AppConfig struct {
	ContextStoreBackend string `envconfig:"CONTEXT_STORE_BACKEND" default:"postgres"`
	TicketWebhookURL    string `envconfig:"TICKET_WEBHOOK_URL"`
	AutoMigrate         bool   `envconfig:"AUTO_MIGRATE" default:"false"`
}

func (c AppConfig) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.ContextStoreBackend)) {
	case storeBackendPostgres, storeBackendUpstash, storeBackendMemory:
		return nil
	}
	return fmt.Errorf("%w: unknown CONTEXT_STORE_BACKEND %q", contractx.ErrValidation, c.ContextStoreBackend)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("food support service stopped")
	}
}

func run(ctx context.Context) error {
	appCfg := configx.MustNew[AppConfig]("")
	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")
	agentCfg := configx.MustNew[support.Config]("AGENT")
	normCfg := configx.MustNew[normalize.Config]("NORMALIZER")
	httpCfg := configx.MustNew[api.Config]("HTTP")
	pgCfg := configx.MustNew[repository.Config]("POSTGRES")

	db, err := repository.Open(*pgCfg)
	if err != nil {
		return err
	}
	defer db.Close()

	orders := repository.NewPostgres(db)
	if appCfg.AutoMigrate {
		if err := orders.Migrate(ctx); err != nil {
			return err
		}
	}

	store, err := newContextStore(ctx, *appCfg, db)
	if err != nil {
		return err
	}

	var repo contractx.OrderRepository = orders
	if webhook := strings.TrimSpace(appCfg.TicketWebhookURL); webhook != "" {
		qstashCfg := configx.MustNew[qstashx.Config]("QSTASH")
		repo = repository.NewNotifyingTickets(orders, qstashx.MustNew(*qstashCfg), webhook, logx.Component("tickets"))
	}

	tools, err := toolx.NewRegistry(repo, agentCfg.TerminalTools, toolx.WithLogger(logx.Component("tools")))
	if err != nil {
		return err
	}

	agents, err := support.NewRegistry(ctx, *llmCfg, *agentCfg, tools, store)
	if err != nil {
		return err
	}

	svc, err := orchestrator.New(orchestrator.Deps{
		Classifier: agents.Classifier,
		Chat:       agents.Chat,
		Enricher:   enrich.New(store),
		Dispatcher: agents.Dispatcher,
		Normalizer: normalize.New(*normCfg, agents.Summarizer),
	})
	if err != nil {
		return err
	}

	server, err := api.New(*httpCfg, svc)
	if err != nil {
		return err
	}

	log.Info().
		Str("context_store", appCfg.ContextStoreBackend).
		Int("max_iterations", agentCfg.Bound()).
		Bool("ticket_webhook", appCfg.TicketWebhookURL != "").
		Msg("food support service ready")

	return server.Run(ctx)
}

func newContextStore(ctx context.Context, cfg AppConfig, db *bun.DB) (state.Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.ContextStoreBackend)) {
	case storeBackendUpstash:
		redisCfg := configx.MustNew[state.UpstashRedisConfig]("UPSTASH_REDIS")
		store, err := state.NewUpstashRedisStore(*redisCfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	case storeBackendMemory:
		return state.NewMemoryStore(), nil
	default:
		store := state.NewPostgresStore(db)
		if cfg.AutoMigrate {
			if err := store.CreateTable(ctx); err != nil {
				return nil, err
			}
		}
		return store, nil
	}
}
