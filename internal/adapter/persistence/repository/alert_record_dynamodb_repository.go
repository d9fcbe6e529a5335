package repository

import (
	"context"
	"time"

	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// alertRecordTTL keeps markers around long enough to audit recent alerts.
const alertRecordTTL = 30 * 24 * time.Hour

type alertRecordItem struct {
	ID          string   `dynamodbav:"id"`
	StockItemID string   `dynamodbav:"stock_item_id"`
	Day         string   `dynamodbav:"day"`
	Recipients  []string `dynamodbav:"recipients,omitempty,stringset"`
	CreatedAt   string   `dynamodbav:"created_at"`
	ExpiresAt   int64    `dynamodbav:"expires_at"`
}

// AlertRecordDynamoRepository stores one marker per (stock item, day).
//
// Table requirements:
//   - PK: id (string, "<stock_item_id>#<day>")
//   - TTL attribute: expires_at
type AlertRecordDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IAlertRecordRepository = (*AlertRecordDynamoRepository)(nil)

func NewAlertRecordDynamoRepository(ddb DynamoDBAPI, tableName string) *AlertRecordDynamoRepository {
	return &AlertRecordDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *AlertRecordDynamoRepository) Exists(ctx context.Context, stockItemID, day string) (bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            aws.String(r.tableName),
		Key:                  stringKey(entities.AlertRecordID(stockItemID, day)),
		ConsistentRead:       aws.Bool(true),
		ProjectionExpression: aws.String("#id"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return false, err
	}
	return len(out.Item) > 0, nil
}

// Create reports false when another writer already recorded the same day.
func (r *AlertRecordDynamoRepository) Create(ctx context.Context, rec entities.AlertRecord) (bool, error) {
	av, err := attributevalue.MarshalMap(alertRecordItem{
		ID:          rec.ID,
		StockItemID: rec.StockItemID,
		Day:         rec.Day,
		Recipients:  rec.Recipients,
		CreatedAt:   formatTime(rec.CreatedAt),
		ExpiresAt:   rec.CreatedAt.Add(alertRecordTTL).Unix(),
	})
	if err != nil {
		return false, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *AlertRecordDynamoRepository) Delete(ctx context.Context, stockItemID, day string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       stringKey(entities.AlertRecordID(stockItemID, day)),
	})
	return err
}
