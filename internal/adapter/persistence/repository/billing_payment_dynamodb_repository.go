package repository

import (
	"context"
	"fmt"
	"sort"

	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const paymentsOrderIDIndex = "order_id-index"

type billingPaymentItem struct {
	ID           string                 `dynamodbav:"id"`
	OrderID      string                 `dynamodbav:"order_id"`
	BudgetID     string                 `dynamodbav:"budget_id"`
	Amount       string                 `dynamodbav:"amount"`
	Date         string                 `dynamodbav:"date"`
	Status       string                 `dynamodbav:"status"`
	MPPayload    map[string]interface{} `dynamodbav:"mp_payload,omitempty"`
	MPPayloadRaw string                 `dynamodbav:"mp_payload_raw,omitempty"`
}

// BillingPaymentDynamoRepository persists BillingPayment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_id-index (PK: order_id)
type BillingPaymentDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IBillingPaymentRepository = (*BillingPaymentDynamoRepository)(nil)

func NewBillingPaymentDynamoRepository(ddb DynamoDBAPI, tableName string) *BillingPaymentDynamoRepository {
	return &BillingPaymentDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *BillingPaymentDynamoRepository) Create(ctx context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
	av, err := attributevalue.MarshalMap(toBillingPaymentItem(p))
	if err != nil {
		return entities.BillingPayment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.BillingPayment{}, err
	}
	return p, nil
}

func (r *BillingPaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.BillingPayment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.BillingPayment{}, err
	}
	if len(out.Item) == 0 {
		return entities.BillingPayment{}, nil
	}

	var it billingPaymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.BillingPayment{}, err
	}
	return fromBillingPaymentItem(it)
}

func (r *BillingPaymentDynamoRepository) ListByOrderID(ctx context.Context, orderID string) ([]entities.BillingPayment, error) {
	paginator := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsOrderIDIndex),
		KeyConditionExpression: aws.String("order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: orderID},
		},
	})

	items := make([]entities.BillingPayment, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it billingPaymentItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			p, err := fromBillingPaymentItem(it)
			if err != nil {
				return nil, err
			}
			items = append(items, p)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Date.Before(items[j].Date) })
	return items, nil
}

func toBillingPaymentItem(p entities.BillingPayment) billingPaymentItem {
	return billingPaymentItem{
		ID:           p.ID,
		OrderID:      p.OrderID,
		BudgetID:     p.BudgetID,
		Amount:       p.Amount.String(),
		Date:         formatTime(p.Date),
		Status:       string(p.Status),
		MPPayload:    p.MPPayload,
		MPPayloadRaw: string(p.MPPayloadRaw),
	}
}

func fromBillingPaymentItem(it billingPaymentItem) (entities.BillingPayment, error) {
	amount, err := decimal.NewFromString(it.Amount)
	if err != nil {
		return entities.BillingPayment{}, fmt.Errorf("payment %s amount %q: %w", it.ID, it.Amount, err)
	}
	return entities.BillingPayment{
		ID:           it.ID,
		OrderID:      it.OrderID,
		BudgetID:     it.BudgetID,
		Amount:       amount,
		Date:         parseTime(it.Date),
		Status:       entities.PaymentStatus(it.Status),
		MPPayload:    it.MPPayload,
		MPPayloadRaw: []byte(it.MPPayloadRaw),
	}, nil
}
