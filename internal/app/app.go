package app

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/redis/go-redis/v9"
	"github.com/spacesedan/sentidesk/config"
	"github.com/spacesedan/sentidesk/internal/clients"
	"github.com/spacesedan/sentidesk/internal/db"
	"github.com/spacesedan/sentidesk/internal/emotion"
	"github.com/spacesedan/sentidesk/internal/knowledge"
	"github.com/spacesedan/sentidesk/internal/models"
	"github.com/spacesedan/sentidesk/internal/monitoring"
	"github.com/spacesedan/sentidesk/internal/retrieval"
	"github.com/spacesedan/sentidesk/internal/sentiment"
	"github.com/spacesedan/sentidesk/internal/session"
	"github.com/spacesedan/sentidesk/internal/support"
)

const memoryCacheEntries = 10_000

// App is the wired service graph shared by every command.
type App struct {
	Config       config.Config
	Assistant    *support.Assistant
	Conversation *support.Conversation
	// AnalyzerHealthy is true for in-process analyzers and tracks the health
	// endpoint for the remote one.
	AnalyzerHealthy *atomic.Bool

	healthChecker monitoring.HealthChecker
	recorder      *db.TurnRecorder
	dynamo        *dynamodb.Client
	closers       []func()
	wg            sync.WaitGroup
}

// Build connects every backend named by cfg. Nothing runs in the background
// until Start is called.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{Config: cfg, AnalyzerHealthy: &atomic.Bool{}}
	a.AnalyzerHealthy.Store(true)

	ok := false
	defer func() {
		if !ok {
			a.Close()
		}
	}()

	analyzer, err := a.buildAnalyzer(ctx)
	if err != nil {
		return nil, err
	}
	scorer := sentiment.NewScorer(analyzer, sentiment.Thresholds{
		Positive: cfg.Sentiment.PositiveThreshold,
		Negative: cfg.Sentiment.NegativeThreshold,
	})

	retriever, err := retrieval.New(cfg.Retrieval.Mode, cfg.Retrieval.FuzzyThreshold)
	if err != nil {
		return nil, err
	}

	kb, err := a.buildKnowledge(ctx)
	if err != nil {
		return nil, err
	}

	a.Assistant = support.NewAssistant(scorer, emotion.NewDetector(nil), retriever, kb, support.EscalationPolicy{
		SatisfactionFloor: cfg.Escalation.SatisfactionFloor,
		NegativeTurnLimit: cfg.Escalation.NegativeTurnLimit,
	})

	store, err := a.buildSessionStore()
	if err != nil {
		return nil, err
	}

	opts := []support.ConversationOption{support.WithMaxHistory(cfg.Session.MaxHistory)}
	if cfg.AWS.TurnsTable != "" {
		client, err := a.dynamoClient(ctx)
		if err != nil {
			return nil, err
		}
		a.recorder = db.NewTurnRecorder(client, cfg.AWS.TurnsTable)
		opts = append(opts, support.WithRecorder(a.recorder))
	}
	if cfg.Kafka.Broker != "" {
		publisher, err := clients.NewKafkaPublisher(cfg.Kafka)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, publisher.Close)
		opts = append(opts, support.WithPublisher(publisher))
	}
	a.Conversation = support.NewConversation(a.Assistant, store, opts...)

	ok = true
	slog.Info("[App] Services wired",
		slog.String("analyzer", cfg.Analyzer.Backend),
		slog.String("cache", cfg.Cache.Kind),
		slog.String("retrieval", cfg.Retrieval.Mode),
		slog.String("sessions", cfg.Session.Store),
		slog.Int("articles", kb.Len()),
		slog.Bool("recorder", a.recorder != nil),
		slog.Bool("publisher", cfg.Kafka.Broker != ""))
	return a, nil
}

// Start launches the turn recorder's flush loop and the analyzer health
// monitor. Both stop when ctx is done; Close waits for them.
func (a *App) Start(ctx context.Context) {
	if a.recorder != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.recorder.Run(ctx)
		}()
	}
	if a.healthChecker != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			monitoring.MonitorAnalyzerHealth(ctx, a.healthChecker, a.AnalyzerHealthy, monitoring.HEALTHCHECK_INTERVAL)
		}()
	}
}

// Close waits for background work and releases connections in reverse order.
func (a *App) Close() {
	a.wg.Wait()
	if a.recorder != nil {
		if err := a.recorder.Flush(context.Background()); err != nil {
			slog.Error("[App] Failed to flush turn records", slog.String("error", err.Error()))
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) buildAnalyzer(ctx context.Context) (sentiment.Analyzer, error) {
	cfg := a.Config

	var base sentiment.Analyzer
	switch cfg.Analyzer.Backend {
	case config.AnalyzerVADER:
		base = sentiment.NewVADER()
	case config.AnalyzerRemote:
		client := clients.NewAnalyzerClient(ctx, cfg.Analyzer)
		if client.HealthURL != "" {
			a.healthChecker = client
			a.AnalyzerHealthy.Store(false)
		}
		base = client
	case config.AnalyzerOpenAI:
		base = clients.NewOpenAIClient(cfg.Analyzer)
	case config.AnalyzerHugot:
		client, err := clients.NewHugotClient(cfg.Analyzer)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		base = client
	default:
		return nil, fmt.Errorf("unknown analyzer backend %q", cfg.Analyzer.Backend)
	}

	namespace := analyzerNamespace(cfg.Analyzer)
	switch cfg.Cache.Kind {
	case config.CacheMemory:
		base = sentiment.NewCached(base, sentiment.NewMemoryCache(memoryCacheEntries), namespace)
	case config.CacheValkey:
		vc, err := clients.NewValkeyClient(cfg.Cache)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = vc.Close() })
		base = sentiment.NewCached(base, vc, namespace)
	}

	if cfg.Analyzer.Backend == config.AnalyzerVADER {
		return base, nil
	}
	return sentiment.Fallback{Name: cfg.Analyzer.Backend, Analyzer: base, Timeout: cfg.Analyzer.Timeout}, nil
}

// analyzerNamespace scopes cached scores to the backend and model that
// produced them.
func analyzerNamespace(cfg config.AnalyzerConfig) string {
	switch cfg.Backend {
	case config.AnalyzerRemote:
		return cfg.Backend + ":" + cfg.URL
	case config.AnalyzerOpenAI:
		return cfg.Backend + ":" + cfg.OpenAIModel
	case config.AnalyzerHugot:
		return cfg.Backend + ":" + cfg.HugotModel
	default:
		return cfg.Backend
	}
}

func (a *App) buildKnowledge(ctx context.Context) (*knowledge.Store, error) {
	cfg := a.Config.Knowledge

	switch {
	case cfg.Path != "":
		return knowledge.LoadYAML(cfg.Path)
	case cfg.Table != "":
		client, err := a.dynamoClient(ctx)
		if err != nil {
			return nil, err
		}
		articles, err := db.GetAllArticles(ctx, client, cfg.Table)
		if err != nil {
			return nil, err
		}
		slices.SortFunc(articles, func(x, y models.Article) int { return x.ID - y.ID })
		return knowledge.NewStore(articles)
	default:
		return knowledge.Default(), nil
	}
}

func (a *App) buildSessionStore() (session.Store, error) {
	cfg := a.Config.Session

	opts := []session.StoreOption{session.WithTTL(cfg.TTL)}
	if session.StoreType(cfg.Store) == session.StoreTypeRedis {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		opts = append(opts, session.WithRedisClient(rdb))
	}

	store, err := session.NewStore(session.StoreType(cfg.Store), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build %q session store: %w", cfg.Store, err)
	}
	a.closers = append(a.closers, func() { _ = store.Close() })
	return store, nil
}

func (a *App) dynamoClient(ctx context.Context) (*dynamodb.Client, error) {
	if a.dynamo != nil {
		return a.dynamo, nil
	}
	client, err := clients.NewDynamoDBClient(ctx, a.Config.AWS)
	if err != nil {
		return nil, err
	}
	a.dynamo = client
	return client, nil
}
