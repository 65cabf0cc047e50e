package logger

// MongoWriter ships zerolog JSON lines to a MongoDB collection without
// touching the request path:
//
//   - Write parses the line and enqueues it on a buffered channel.
//   - A single goroutine drains the channel with InsertMany batches.
//   - When the channel is full the line is dropped.
//   - Close flushes what is queued and disconnects.

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoQueueSize = 4096
	mongoBatchSize = 50
	mongoDrainTick = 2 * time.Second
)

// LogDocument is the shape written to MongoDB.
type LogDocument struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Msg       string    `bson:"msg"`
	RequestID string    `bson:"request_id,omitempty"`
	Attrs     bson.M    `bson:"attrs,omitempty"`
}

// MongoWriter is an io.Writer that stores log lines in MongoDB asynchronously.
type MongoWriter struct {
	col       *mongo.Collection
	client    *mongo.Client
	queue     chan LogDocument
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// NewMongoWriter connects to uri and starts the drain loop.
// The caller must eventually call Close.
func NewMongoWriter(uri, db, collection string) (*MongoWriter, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("logger/mongo: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("logger/mongo: ping: %w", err)
	}

	col := client.Database(db).Collection(collection)

	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "time", Value: -1}},
	})

	w := &MongoWriter{
		col:     col,
		client:  client,
		queue:   make(chan LogDocument, mongoQueueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	go w.drainLoop()
	return w, nil
}

// Write implements io.Writer. It never blocks and never fails the caller.
func (w *MongoWriter) Write(p []byte) (int, error) {
	doc, ok := toDocument(p)
	if !ok {
		return len(p), nil
	}

	select {
	case w.queue <- doc:
	default:
	}
	return len(p), nil
}

// toDocument converts one zerolog JSON line into a LogDocument.
func toDocument(line []byte) (LogDocument, bool) {
	var fields map[string]interface{}
	if err := json.Unmarshal(line, &fields); err != nil {
		return LogDocument{}, false
	}

	doc := LogDocument{Time: time.Now().UTC(), Attrs: bson.M{}}
	for key, val := range fields {
		switch key {
		case "time":
			if s, ok := val.(string); ok {
				if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
					doc.Time = t
				}
			}
		case "level":
			doc.Level, _ = val.(string)
		case "message":
			doc.Msg, _ = val.(string)
		case "request_id":
			doc.RequestID, _ = val.(string)
		default:
			doc.Attrs[key] = val
		}
	}
	if len(doc.Attrs) == 0 {
		doc.Attrs = nil
	}
	return doc, true
}

func (w *MongoWriter) drainLoop() {
	defer close(w.stopped)

	ticker := time.NewTicker(mongoDrainTick)
	defer ticker.Stop()

	batch := make([]interface{}, 0, mongoBatchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, _ = w.col.InsertMany(ctx, batch)
		batch = batch[:0]
	}

	for {
		select {
		case doc := <-w.queue:
			batch = append(batch, doc)
			if len(batch) >= mongoBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-w.done:
			for len(w.queue) > 0 {
				batch = append(batch, <-w.queue)
			}
			flush()
			return
		}
	}
}

// Close flushes pending lines and disconnects. Safe to call more than once.
func (w *MongoWriter) Close() {
	w.closeOnce.Do(func() {
		close(w.done)
		<-w.stopped

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = w.client.Disconnect(ctx)
	})
}
