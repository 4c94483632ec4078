package main

import (
	// Go Internal Packages
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Local Packages
	config "momo-ledger/config"
	helpers "momo-ledger/helpers"
	kafka "momo-ledger/kafka"
	models "momo-ledger/models"
	mongodb "momo-ledger/repositories/mongodb"
	redis "momo-ledger/repositories/redis"
	changes "momo-ledger/services/changes"
	ledgersvc "momo-ledger/services/ledger"
	normalizer "momo-ledger/services/normalizer"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	_ "github.com/jsternberg/zap-logfmt"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

// LoadSecrets Loads the secret variables and overrides the config
func LoadSecrets(k config.Config) config.Config {
	MongoURI := os.Getenv("MONGO_URI")
	if MongoURI != "" {
		k.Mongo.URI = MongoURI
	}

	RedisURI := os.Getenv("REDIS_URI")
	if RedisURI != "" {
		k.Redis.URI = RedisURI
	}

	RedisPassword := os.Getenv("REDIS_PASSWORD")
	if RedisPassword != "" {
		k.Redis.Password = RedisPassword
	}

	KafkaBrokers := os.Getenv("KAFKA_BROKERS")
	if KafkaBrokers != "" {
		k.Kafka.Brokers = []string{KafkaBrokers}
	}

	IsProdMode := os.Getenv("IS_PROD_MODE")
	if IsProdMode != "" {
		k.IsProdMode = IsProdMode == "true"
	}
	return k
}

// LoadConfig loads the default configuration and overrides it with the config file
// specified by the path defined in the config flag
func LoadConfig() *koanf.Koanf {
	configPathMsg := "Path to the application config file"
	configPath := kingpin.Flag("config", configPathMsg).Short('c').Default("config.yml").String()

	kingpin.Parse()
	k := koanf.New(".")
	_ = k.Load(rawbytes.Provider(config.DefaultConfig), yaml.Parser())
	if *configPath != "" {
		_ = k.Load(file.Provider(*configPath), yaml.Parser())
	}
	return k
}

func main() {
	k := LoadConfig()
	appKonf := config.Config{}

	// Unmarshalling config into struct
	err := k.Unmarshal("", &appKonf)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Update and Validate config before starting the service
	updatedKonf := LoadSecrets(appKonf)
	if err = updatedKonf.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	pollInterval, err := time.ParseDuration(updatedKonf.Sync.PollInterval)
	if err != nil {
		log.Fatalf("Invalid sync.poll_interval: %v", err)
	}

	if !updatedKonf.IsProdMode {
		helpers.PrintStruct(updatedKonf)
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "logfmt"
	_ = cfg.Level.UnmarshalText([]byte(k.String("logger.level")))
	cfg.InitialFields = make(map[string]any)
	cfg.InitialFields["host"], _ = os.Hostname()
	cfg.InitialFields["service"] = updatedKonf.Application
	cfg.OutputPaths = []string{"stdout"}
	logger, _ := cfg.Build()
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Mongo Connection
	mongoClient, err := mongodb.Connect(ctx, updatedKonf.Mongo.URI)
	if err != nil {
		logger.Fatal("cannot create mongo client", zap.Error(err))
	}

	// Redis Connection
	redisClient, err := redis.Connect(ctx, updatedKonf.Redis.URI, updatedKonf.Redis.Password)
	if err != nil {
		logger.Fatal("cannot create redis client", zap.Error(err))
	}

	txRepo := mongodb.NewTxRepository(mongoClient, updatedKonf.Mongo.Database)
	if err := txRepo.EnsureIndexes(ctx); err != nil {
		logger.Warn("cannot ensure transaction indexes", zap.Error(err))
	}

	signalRepo := redis.NewSignalRepo(redisClient, logger, updatedKonf.Redis.SignalChannel)
	caps := redis.ListCaps{
		General: updatedKonf.Cache.GeneralCap,
		Send:    updatedKonf.Cache.SendCap,
		Airtime: updatedKonf.Cache.AirtimeCap,
	}
	cacheStore := redis.NewCacheStore(redisClient, logger, signalRepo, caps)

	session := &models.Session{
		UserID:          updatedKonf.Session.UserID,
		IsAuthenticated: updatedKonf.Session.Authenticated,
		IsAdmin:         updatedKonf.Session.Admin,
	}

	norm := normalizer.New(normalizer.Labeler{Fallback: updatedKonf.Ledger.DateFallbackLabel})
	ledger := ledgersvc.New(session, txRepo, cacheStore, signalRepo, norm, logger, pollInterval)

	if updatedKonf.Kafka.Consume {
		dlQueue := redis.NewDeadLetterQueue(redisClient, logger)
		changeProcessor := changes.NewChangeProcessor(logger, ledger, dlQueue)

		metrics := kprom.NewMetrics("ml")
		conf := &kafka.ConsumerConfig{
			Brokers:        updatedKonf.Kafka.Brokers,
			Name:           updatedKonf.Kafka.ConsumerName,
			Topic:          updatedKonf.Kafka.Topic,
			RecordsPerPoll: updatedKonf.Kafka.RecordsPerPoll,
		}

		changeConsumer, err := kafka.NewChangeConsumer(conf, changeProcessor, metrics, logger)
		if err != nil {
			logger.Fatal("cannot create change consumer", zap.Error(err))
		}

		go func() {
			if err := changeConsumer.Poll(ctx); err != nil {
				logger.Warn("change consumer stopped", zap.Error(err))
			}
		}()
	}

	if err := ledger.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Fatal("ledger sync loop failed", zap.Error(err))
	}
}
