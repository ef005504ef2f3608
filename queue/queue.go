package queue

import (
	"context"
	"fmt"
	"log"

	mail "github.com/Adedunmol/pulso/api/email"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

type Processor interface {
	Process() (*asynq.Task, error)
	ProcessorName() string
}

type Queue interface {
	Enqueue(processor Processor) error
}

type Client struct {
	client *asynq.Client
	redis  asynq.RedisClientOpt
}

func RedisOptions(redisURL string) (asynq.RedisClientOpt, error) {
	if redisURL == "" {
		return asynq.RedisClientOpt{}, fmt.Errorf("REDIS_URL environment variable not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, fmt.Errorf("error parsing redis url: %w", err)
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}

func NewClient(redisURL string) (*Client, error) {
	opt, err := RedisOptions(redisURL)
	if err != nil {
		return nil, err
	}

	log.Printf("setting up connection for asynq redis queue")
	return &Client{client: asynq.NewClient(opt), redis: opt}, nil
}

func (c *Client) Enqueue(processor Processor) error {
	task, err := processor.Process()
	if err != nil {
		return fmt.Errorf("could not build %s task: %w", processor.ProcessorName(), err)
	}

	if _, err = c.client.Enqueue(task); err != nil {
		return fmt.Errorf("could not enqueue %s task: %w", processor.ProcessorName(), err)
	}

	return nil
}

func (c *Client) Close() error {
	log.Println("closing connection to asynq queue")
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("error closing connection: %w", err)
	}
	return nil
}

// Worker processes queued tasks until ctx is cancelled.
type Worker struct {
	server *asynq.Server
	mailer *mail.Mailer
}

func NewWorker(c *Client, mailer *mail.Mailer) *Worker {
	server := asynq.NewServer(c.redis, asynq.Config{
		Concurrency: 5,
		Queues:      map[string]int{"default": 1},
	})
	return &Worker{server: server, mailer: mailer}
}

func (w *Worker) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeEmailDelivery, w.HandleEmailTask)
	mux.HandleFunc(TypeResponseReceived, w.HandleResponseReceivedTask)
	return mux
}

func (w *Worker) Run(ctx context.Context) error {
	if err := w.server.Start(w.Mux()); err != nil {
		return fmt.Errorf("error running queue server: %w", err)
	}

	<-ctx.Done()
	w.server.Shutdown()
	return nil
}
