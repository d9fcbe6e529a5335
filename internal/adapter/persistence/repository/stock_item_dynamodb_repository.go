package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	batchGetLimit         = 100
	maxUnprocessedRetries = 5
)

var ErrUnprocessedKeys = errors.New("dynamodb batch get left unprocessed keys")

type stockItemItem struct {
	ID              string `dynamodbav:"id"`
	Name            string `dynamodbav:"name"`
	Description     string `dynamodbav:"description,omitempty"`
	UnitPrice       string `dynamodbav:"unit_price"`
	Quantity        int    `dynamodbav:"quantity"`
	MinimumQuantity int    `dynamodbav:"minimum_quantity"`
	CreatedAt       string `dynamodbav:"created_at"`
	UpdatedAt       string `dynamodbav:"updated_at"`
}

// StockItemDynamoRepository persists stock items.
//
// Table requirements:
//   - PK: id (string)
//
// Quantities only change through conditional UpdateItem calls, never through
// read-modify-write.
type StockItemDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.IStockItemRepository = (*StockItemDynamoRepository)(nil)

func NewStockItemDynamoRepository(ddb DynamoDBAPI, tableName string) *StockItemDynamoRepository {
	return &StockItemDynamoRepository{ddb: ddb, tableName: tableName, now: time.Now}
}

func (r *StockItemDynamoRepository) Create(ctx context.Context, item entities.StockItem) (entities.StockItem, error) {
	av, err := attributevalue.MarshalMap(toStockItemItem(item))
	if err != nil {
		return entities.StockItem{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		return entities.StockItem{}, err
	}
	return item, nil
}

func (r *StockItemDynamoRepository) GetByID(ctx context.Context, id string) (entities.StockItem, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.StockItem{}, err
	}
	if len(out.Item) == 0 {
		return entities.StockItem{}, nil
	}
	return unmarshalStockItem(out.Item)
}

// GetMany reads ids in chunks of 100. Unknown ids are absent from the map.
func (r *StockItemDynamoRepository) GetMany(ctx context.Context, ids []string) (map[string]entities.StockItem, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" && !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	out := make(map[string]entities.StockItem, len(unique))
	for start := 0; start < len(unique); start += batchGetLimit {
		end := min(start+batchGetLimit, len(unique))
		keys := make([]map[string]types.AttributeValue, 0, end-start)
		for _, id := range unique[start:end] {
			keys = append(keys, stringKey(id))
		}
		if err := r.batchGet(ctx, keys, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *StockItemDynamoRepository) batchGet(ctx context.Context, keys []map[string]types.AttributeValue, out map[string]entities.StockItem) error {
	request := map[string]types.KeysAndAttributes{
		r.tableName: {Keys: keys, ConsistentRead: aws.Bool(true)},
	}
	for attempt := 0; len(request) > 0; attempt++ {
		if attempt > maxUnprocessedRetries {
			return ErrUnprocessedKeys
		}
		resp, err := r.ddb.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
		if err != nil {
			return err
		}
		for _, raw := range resp.Responses[r.tableName] {
			item, err := unmarshalStockItem(raw)
			if err != nil {
				return err
			}
			out[item.ID] = item
		}
		request = resp.UnprocessedKeys
	}
	return nil
}

func (r *StockItemDynamoRepository) List(ctx context.Context) ([]entities.StockItem, error) {
	return r.scan(ctx, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
}

func (r *StockItemDynamoRepository) ListCritical(ctx context.Context) ([]entities.StockItem, error) {
	return r.scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("#quantity <= #minimum_quantity"),
		ExpressionAttributeNames: map[string]string{
			"#quantity":         "quantity",
			"#minimum_quantity": "minimum_quantity",
		},
	})
}

func (r *StockItemDynamoRepository) scan(ctx context.Context, input *dynamodb.ScanInput) ([]entities.StockItem, error) {
	items := make([]entities.StockItem, 0)
	paginator := dynamodb.NewScanPaginator(r.ddb, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			item, err := unmarshalStockItem(raw)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// ApplyMovement returns a zero StockItem when the item does not exist and
// ErrStockConditionFailed when a debit would make it negative.
func (r *StockItemDynamoRepository) ApplyMovement(ctx context.Context, m entities.StockMovement) (entities.StockItem, error) {
	update := stockMovementUpdate(r.tableName, m, formatTime(r.now()))
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                           update.TableName,
		Key:                                 update.Key,
		UpdateExpression:                    update.UpdateExpression,
		ConditionExpression:                 update.ConditionExpression,
		ExpressionAttributeNames:            update.ExpressionAttributeNames,
		ExpressionAttributeValues:           update.ExpressionAttributeValues,
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			if len(ccf.Item) == 0 {
				return entities.StockItem{}, nil
			}
			return entities.StockItem{}, fmt.Errorf("%w: stock item %s", interfaces.ErrStockConditionFailed, m.StockItemID)
		}
		return entities.StockItem{}, err
	}
	return unmarshalStockItem(out.Attributes)
}

func (r *StockItemDynamoRepository) UpdateUnitPrice(ctx context.Context, id string, price decimal.Decimal) (entities.StockItem, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey(id),
		UpdateExpression:    aws.String("SET #unit_price = :price, #updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#unit_price": "unit_price",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":price": &types.AttributeValueMemberS{Value: price.String()},
			":now":   &types.AttributeValueMemberS{Value: formatTime(r.now())},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.StockItem{}, nil
		}
		return entities.StockItem{}, err
	}
	return unmarshalStockItem(out.Attributes)
}

func unmarshalStockItem(raw map[string]types.AttributeValue) (entities.StockItem, error) {
	var it stockItemItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.StockItem{}, err
	}
	return fromStockItemItem(it)
}

func toStockItemItem(s entities.StockItem) stockItemItem {
	return stockItemItem{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		UnitPrice:       s.UnitPrice.String(),
		Quantity:        s.Quantity,
		MinimumQuantity: s.MinimumQuantity,
		CreatedAt:       formatTime(s.CreatedAt),
		UpdatedAt:       formatTime(s.UpdatedAt),
	}
}

func fromStockItemItem(it stockItemItem) (entities.StockItem, error) {
	price, err := decimal.NewFromString(it.UnitPrice)
	if err != nil {
		return entities.StockItem{}, fmt.Errorf("stock item %s unit_price %q: %w", it.ID, it.UnitPrice, err)
	}
	return entities.StockItem{
		ID:              it.ID,
		Name:            it.Name,
		Description:     it.Description,
		UnitPrice:       price,
		Quantity:        it.Quantity,
		MinimumQuantity: it.MinimumQuantity,
		CreatedAt:       parseTime(it.CreatedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
	}, nil
}
