package kernel

import (
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// InitLogger configures the base logger from cfg. When LOG_MONGO_URI is set
// every line is also shipped to MongoDB; the returned func flushes it.
func InitLogger(cfg *config.Config) (func(), error) {
	opts := logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	}

	if cfg.LogSink.MongoURI == "" {
		logger.Init(opts)
		return func() {}, nil
	}

	sink, err := logger.NewMongoWriter(cfg.LogSink.MongoURI, cfg.LogSink.MongoDB, cfg.LogSink.MongoCollection)
	if err != nil {
		return nil, err
	}
	opts.Extra = sink
	logger.Init(opts)
	return sink.Close, nil
}
