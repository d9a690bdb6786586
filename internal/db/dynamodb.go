package db

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/spacesedan/sentidesk/internal/models"
	"github.com/spacesedan/sentidesk/internal/utils"
)

const (
	maxBatchSize      = 25
	flushInterval     = 5 * time.Second
	turnRetention     = 30 * 24 * time.Hour
	unprocessedRounds = 3
)

// BatchWriter is the part of *dynamodb.Client the recorder needs.
type BatchWriter interface {
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// TurnRecorder buffers turn records and writes them to DynamoDB in batches of
// up to 25. It implements support.Recorder.
type TurnRecorder struct {
	client  BatchWriter
	table   string
	buffer  *utils.BatchBuffer[models.TurnRecord]
	backoff time.Duration
	flushMu sync.Mutex
}

func NewTurnRecorder(client BatchWriter, table string) *TurnRecorder {
	return &TurnRecorder{
		client:  client,
		table:   table,
		buffer:  utils.NewBatchBuffer[models.TurnRecord](maxBatchSize),
		backoff: 500 * time.Millisecond,
	}
}

// Record queues r and writes the batch once it is full.
func (tr *TurnRecorder) Record(ctx context.Context, r models.TurnRecord) error {
	if full := tr.buffer.Add(r); full {
		return tr.Flush(ctx)
	}
	return nil
}

// Run flushes on a timer until ctx is done, then writes whatever is left.
func (tr *TurnRecorder) Run(ctx context.Context) {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if !tr.buffer.HasData() {
				return
			}
			slog.Info("[DynamoDB] Flushing buffered turns before shutdown",
				slog.Int("buffered", tr.buffer.Size()))
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := tr.Flush(shutdownCtx); err != nil {
				slog.Error("[DynamoDB] Final turn flush failed", slog.String("error", err.Error()))
			}
			cancel()
			return
		case <-ticker.C:
			if !tr.buffer.HasData() {
				continue
			}
			if err := tr.Flush(ctx); err != nil {
				slog.Error("[DynamoDB] Turn flush failed", slog.String("error", err.Error()))
			}
		}
	}
}

func (tr *TurnRecorder) Flush(ctx context.Context) error {
	tr.flushMu.Lock()
	defer tr.flushMu.Unlock()

	records := tr.buffer.GetAndClear()
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	for _, chunk := range utils.Chunk(records, maxBatchSize) {
		select {
		case <-ctx.Done():
			slog.Warn("[DynamoDB] context canceled")
			return ctx.Err()
		default:
		}

		writeRequests := make([]types.WriteRequest, 0, len(chunk))
		for _, r := range chunk {
			item, err := TurnToDynamoDBItem(r, now)
			if err != nil {
				slog.Error("[DynamoDB] Skipping turn that could not be marshalled",
					slog.String("turn_id", r.TurnID),
					slog.String("error", err.Error()))
				continue
			}
			writeRequests = append(writeRequests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		if err := tr.writeBatch(ctx, writeRequests); err != nil {
			return err
		}
	}

	slog.Info("[DynamoDB] Stored turn records", slog.Int("count", len(records)))
	return nil
}

func (tr *TurnRecorder) writeBatch(ctx context.Context, writeRequests []types.WriteRequest) error {
	if len(writeRequests) == 0 {
		return nil
	}

	out, err := tr.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{
			tr.table: writeRequests,
		},
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to batch write turns: %w", err)
	}

	retryCount := 0
	backoff := tr.backoff
	for len(out.UnprocessedItems) > 0 && retryCount < unprocessedRounds {
		time.Sleep(backoff)
		backoff *= 2

		slog.Warn("[DynamoDB] Retrying unprocessed turn items...",
			slog.Int("attempt", retryCount+1),
			slog.Int("remaining", len(out.UnprocessedItems[tr.table])))

		out, err = tr.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: out.UnprocessedItems,
		})
		if err != nil {
			return fmt.Errorf("[DynamoDB] Retry error %w", err)
		}
		retryCount++
	}

	if remaining := len(out.UnprocessedItems[tr.table]); remaining > 0 {
		slog.Error("[DynamoDB] Some turn items failed after retries",
			slog.Int("remaining", remaining))
		return fmt.Errorf("[DynamoDB] %d turn items were not written", remaining)
	}
	return nil
}

// TurnToDynamoDBItem marshals r and stamps created_at and a ttl so old turns
// age out of the table.
func TurnToDynamoDBItem(r models.TurnRecord, now time.Time) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal turn: %w", err)
	}

	created := r.CreatedAt
	if created.IsZero() {
		created = now
	}
	item["created_at"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", created.Unix())}
	item["ttl"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", created.Add(turnRetention).Unix())}

	return item, nil
}
