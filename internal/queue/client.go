package queue

import (
	"fmt"
	"strings"

	"github.com/scouttrack/internal/config"
	"github.com/scouttrack/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 既定キュー名
	DefaultQueue = constants.QueueDefault
)

// Client キュークライアント
type Client struct {
	client       *asynq.Client
	enabled      bool
	defaultQueue string
}

// NewClient キュークライアントを生成する
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{enabled: false, defaultQueue: DefaultQueue}, nil
	}
	opt := buildRedisOpt(cfg)
	client := asynq.NewClient(opt)
	return &Client{
		client:       client,
		enabled:      true,
		defaultQueue: DefaultQueue,
	}, nil
}

// Enabled キューが有効か
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close クライアントを閉じる
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueLinkClickAudit クリック監査タスクを投入する
func (c *Client) EnqueueLinkClickAudit(linkID, clickID uint) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewLinkClickAuditTask(LinkClickAuditPayload{LinkID: linkID, ClickID: clickID})
	if err != nil {
		return err
	}
	_, err = c.client.Enqueue(task, asynq.Queue(c.defaultQueue))
	return err
}

// EnqueueCastEmploymentSync キャスト稼働区分同期タスクを投入する
func (c *Client) EnqueueCastEmploymentSync(conversionID, castID uint) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewCastEmploymentSyncTask(CastEmploymentSyncPayload{ConversionID: conversionID, CastID: castID})
	if err != nil {
		return err
	}
	_, err = c.client.Enqueue(task, asynq.Queue(c.defaultQueue))
	return err
}

// BuildServerConfig キューサーバ設定を生成する
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	opt := buildRedisOpt(cfg)
	concurrency := 10
	if cfg != nil && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}
	queues := map[string]int{DefaultQueue: 1}
	if cfg != nil && len(cfg.Queues) > 0 {
		queues = cfg.Queues
	}
	return opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host := "127.0.0.1"
	port := 6379
	password := ""
	db := 0
	if cfg != nil {
		if strings.TrimSpace(cfg.Host) != "" {
			host = strings.TrimSpace(cfg.Host)
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		password = cfg.Password
		db = cfg.DB
	}
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	}
}
