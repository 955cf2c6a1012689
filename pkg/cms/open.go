package cms

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/scaduxx/folio/pkg/cache"
	"github.com/scaduxx/folio/pkg/config"
	"github.com/scaduxx/folio/pkg/errors"
)

// Open builds the source selected by cfg.CMS.Driver. The cache is used by
// the Sanity driver only and may be nil. A watched file source stops
// watching when ctx is cancelled.
func Open(ctx context.Context, cfg config.Config, c cache.Cache, logger *log.Logger) (Source, error) {
	if logger == nil {
		logger = log.Default()
	}

	switch cms := cfg.CMS; cms.Driver {
	case config.DriverSanity, "":
		s := cms.Sanity
		logger.Debug("opening sanity source", "project", s.ProjectID, "dataset", s.Dataset, "cdn", s.UseCDN)
		client, err := NewSanityClient(SanityConfig{
			ProjectID:  s.ProjectID,
			Dataset:    s.Dataset,
			APIVersion: s.APIVersion,
			Token:      s.Token,
			UseCDN:     s.UseCDN,
			BaseURL:    s.BaseURL,
			TTL:        cfg.Cache.TTL.Duration,
		}, c)
		if err != nil {
			return nil, err
		}
		return client, nil

	case config.DriverFile:
		logger.Debug("opening file source", "path", cms.File.Path, "watch", cms.File.Watch)
		f, err := NewFileSource(cms.File.Path, logger)
		if err != nil {
			return nil, err
		}
		if cms.File.Watch {
			if err := f.Watch(ctx); err != nil {
				return nil, err
			}
		}
		return f, nil

	case config.DriverMongo:
		logger.Debug("opening mongo source", "database", cms.Mongo.Database, "collection", cms.Mongo.Collection)
		m, err := NewMongoSource(ctx, MongoConfig{
			URI:        cms.Mongo.URI,
			Database:   cms.Mongo.Database,
			Collection: cms.Mongo.Collection,
		})
		if err != nil {
			return nil, err
		}
		return m, nil

	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cms driver %q", cms.Driver)
	}
}
