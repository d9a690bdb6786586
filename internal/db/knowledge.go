package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/spacesedan/sentidesk/internal/models"
)

// GetAllArticles scans the knowledge base table. Scan order is not stable, so
// callers that care about ordering sort by ID.
func GetAllArticles(ctx context.Context, client dynamodb.ScanAPIClient, table string) ([]models.Article, error) {
	var articles []models.Article
	input := &dynamodb.ScanInput{
		TableName: aws.String(table),
	}

	paginator := dynamodb.NewScanPaginator(client, input)

	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[DynamoDB] Scan for articles failed: %w", err)
		}

		var page []models.Article
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			slog.Error("[DynamoDB] Unable to unmarshal article page", slog.String("error", err.Error()))
			return nil, err
		}
		articles = append(articles, page...)
	}

	slog.Info("[DynamoDB] Successfully retrieved articles", slog.Int("count", len(articles)))
	return articles, nil
}
