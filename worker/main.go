package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/hsuanlee/sentiment-radar/backend/internal/config"
	"github.com/hsuanlee/sentiment-radar/backend/internal/dedupe"
	"github.com/hsuanlee/sentiment-radar/backend/internal/elasticsearch"
	"github.com/hsuanlee/sentiment-radar/backend/internal/ingest"
	"github.com/hsuanlee/sentiment-radar/backend/internal/logger"
	"github.com/hsuanlee/sentiment-radar/backend/internal/models"
	"github.com/hsuanlee/sentiment-radar/backend/internal/normalize"
	"github.com/hsuanlee/sentiment-radar/backend/internal/sentiment"
)

type documentIndexer interface {
	IndexDocument(ctx context.Context, doc models.Document) error
}

func main() {
	log := logger.New("worker")
	cfg, err := config.LoadWorker()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	esClient, err := elasticsearch.New(cfg.ElasticsearchAddr, cfg.ElasticsearchIndex, log)
	if err != nil {
		log.Error("init elasticsearch", slog.Any("err", err))
		os.Exit(1)
	}

	tracker := dedupe.NewTracker(cfg.DedupeCapacity, cfg.DedupeTTL)
	normalizer := normalize.New(sentiment.NewScorer(sentiment.DefaultLexicon()), cfg.KeywordLimit, nil)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		Topic:          cfg.KafkaTopic,
		GroupID:        cfg.KafkaConsumer,
		QueueCapacity:  cfg.BatchSize,
		MinBytes:       1e3,
		MaxBytes:       10e6,
		CommitInterval: 0, // Disable auto-commit; manual commit only
	})
	defer reader.Close()

	dlqWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers:     cfg.KafkaBrokers,
		Topic:       cfg.KafkaTopic + "_dlq",
		MaxAttempts: 3,
	})
	defer dlqWriter.Close()

	log.Info("worker started",
		slog.String("topic", cfg.KafkaTopic),
		slog.String("group", cfg.KafkaConsumer),
		slog.String("dlq_topic", cfg.KafkaTopic+"_dlq"),
	)

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Info("context canceled, stopping")
				return
			}
			log.Error("fetch message", slog.Any("err", err))
			continue
		}

		if err := processMessage(ctx, log, esClient, tracker, normalizer, msg); err != nil {
			log.Warn("process message failed, sending to DLQ",
				slog.Any("err", err),
				slog.Int("partition", msg.Partition),
				slog.Int64("offset", msg.Offset),
			)

			dlqMsg := kafka.Message{
				Value: msg.Value,
				Headers: append(msg.Headers,
					kafka.Header{Key: "original_partition", Value: []byte(fmt.Sprintf("%d", msg.Partition))},
					kafka.Header{Key: "original_offset", Value: []byte(fmt.Sprintf("%d", msg.Offset))},
					kafka.Header{Key: "error", Value: []byte(err.Error())},
					kafka.Header{Key: "timestamp", Value: []byte(time.Now().UTC().Format(time.RFC3339))},
				),
			}

			// Retry DLQ write with exponential backoff
			dlqSuccess := false
			for attempt := 0; attempt < 5; attempt++ {
				if dlqErr := dlqWriter.WriteMessages(ctx, dlqMsg); dlqErr == nil {
					dlqSuccess = true
					log.Info("message sent to DLQ",
						slog.Int("partition", msg.Partition),
						slog.Int64("offset", msg.Offset),
						slog.Int("attempt", attempt+1),
					)
					break
				} else {
					backoff := time.Duration(1<<uint(attempt)) * time.Second
					log.Warn("DLQ write failed, retrying",
						slog.Any("err", dlqErr),
						slog.Int("attempt", attempt+1),
						slog.Duration("backoff", backoff),
					)
					select {
					case <-time.After(backoff):
					case <-ctx.Done():
						log.Info("context canceled during DLQ retry")
						return
					}
				}
			}

			// Only commit if DLQ write succeeded; otherwise skip commit and reprocess on restart
			if dlqSuccess {
				if err := reader.CommitMessages(ctx, msg); err != nil {
					log.Error("commit failed message to dlq", slog.Any("err", err))
				}
			} else {
				log.Error("DLQ write exhausted retries, message may be lost if later messages commit",
					slog.Int("partition", msg.Partition),
					slog.Int64("offset", msg.Offset),
				)
			}
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message", slog.Any("err", err))
		}
	}
}

// processMessage decodes one Kafka message (a single raw document or an
// array of them), normalizes each record and indexes the results. A record
// without a usable text container is skipped, not fatal; only an
// undecodable payload or a failed index write errors out to the DLQ.
func processMessage(ctx context.Context, log *slog.Logger, indexer documentIndexer, tracker *dedupe.Tracker, normalizer *normalize.Normalizer, msg kafka.Message) error {
	batch, err := ingest.DecodeBatch(msg.Value)
	if err != nil {
		return err
	}

	indexed := 0
	skipped := 0
	for _, raw := range batch {
		doc := normalizer.Normalize(raw)
		if doc == nil {
			skipped++
			log.Warn("skipping malformed record", slog.String("id", raw.ID))
			continue
		}

		if tracker.Seen(doc.ID) {
			log.Debug("duplicate document", slog.String("id", doc.ID))
			continue
		}

		if err := indexer.IndexDocument(ctx, *doc); err != nil {
			return err
		}

		tracker.Record(doc.ID)
		indexed++
	}

	log.Info("processed batch",
		slog.Int("records", len(batch)),
		slog.Int("indexed", indexed),
		slog.Int("skipped", skipped),
	)
	return nil
}
