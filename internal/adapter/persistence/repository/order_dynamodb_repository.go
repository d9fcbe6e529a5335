package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const ordersStatusIndex = "status-index"

type orderItem struct {
	ID                string            `dynamodbav:"id"`
	ClientID          string            `dynamodbav:"client_id"`
	ClientEmail       string            `dynamodbav:"client_email,omitempty"`
	VehicleID         string            `dynamodbav:"vehicle_id"`
	ServiceID         string            `dynamodbav:"service_id"`
	Description       string            `dynamodbav:"description,omitempty"`
	Status            string            `dynamodbav:"status"`
	Budget            *budgetItem       `dynamodbav:"budget,omitempty"`
	Insumos           []orderInsumoItem `dynamodbav:"insumos"`
	BudgetSubmittedAt string            `dynamodbav:"budget_submitted_at,omitempty"`
	CreatedAt         string            `dynamodbav:"created_at"`
	UpdatedAt         string            `dynamodbav:"updated_at"`
	FinishedAt        string            `dynamodbav:"finished_at,omitempty"`
	DeliveredAt       string            `dynamodbav:"delivered_at,omitempty"`
	Version           int64             `dynamodbav:"version"`
}

type budgetItem struct {
	ID          string `dynamodbav:"id"`
	Value       string `dynamodbav:"value"`
	Status      string `dynamodbav:"status"`
	SubmittedAt string `dynamodbav:"submitted_at,omitempty"`
	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
}

type orderInsumoItem struct {
	ID          string `dynamodbav:"id"`
	StockItemID string `dynamodbav:"stock_item_id"`
	Quantity    int    `dynamodbav:"quantity"`
	Status      string `dynamodbav:"status"`
	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
}

// OrderDynamoRepository persists the order aggregate as one DynamoDB item.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: status-index (PK: status, SK: created_at)
//
// Commit writes the order and its stock movements in a single
// TransactWriteItems call, so the stock items table must live in the same
// account and region.
type OrderDynamoRepository struct {
	ddb        DynamoDBAPI
	tableName  string
	stockTable string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb DynamoDBAPI, tableName, stockTable string) *OrderDynamoRepository {
	return &OrderDynamoRepository{ddb: ddb, tableName: tableName, stockTable: stockTable}
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it)
}

func (r *OrderDynamoRepository) Commit(ctx context.Context, c interfaces.OrderCommit) (entities.Order, error) {
	stored := c.Order
	stored.Version = c.ExpectedVersion + 1

	av, err := attributevalue.MarshalMap(toOrderItem(stored))
	if err != nil {
		return entities.Order{}, err
	}

	put := &types.Put{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}
	if c.IsNew {
		put.ConditionExpression = aws.String("attribute_not_exists(#id)")
	} else {
		put.ConditionExpression = aws.String("attribute_exists(#id) AND #version = :expected")
		put.ExpressionAttributeNames["#version"] = "version"
		put.ExpressionAttributeValues = map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(c.ExpectedVersion, 10)},
		}
	}

	items := make([]types.TransactWriteItem, 0, len(c.Movements)+1)
	items = append(items, types.TransactWriteItem{Put: put})
	now := formatTime(stored.UpdatedAt)
	for _, m := range c.Movements {
		items = append(items, types.TransactWriteItem{Update: stockMovementUpdate(r.stockTable, m, now)})
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		return entities.Order{}, commitError(err, c)
	}
	return stored, nil
}

// stockMovementUpdate builds the conditional update applying m. Debits are
// guarded so the quantity can never go below zero.
func stockMovementUpdate(table string, m entities.StockMovement, now string) *types.Update {
	u := &types.Update{
		TableName:        aws.String(table),
		Key:              stringKey(m.StockItemID),
		UpdateExpression: aws.String("SET #quantity = #quantity + :delta, #updated_at = :now"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#quantity":   "quantity",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":delta": &types.AttributeValueMemberN{Value: strconv.Itoa(m.Delta)},
			":now":   &types.AttributeValueMemberS{Value: now},
		},
		ConditionExpression:                 aws.String("attribute_exists(#id)"),
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	}
	if m.IsDebit() {
		u.ConditionExpression = aws.String("attribute_exists(#id) AND #quantity >= :need")
		u.ExpressionAttributeValues[":need"] = &types.AttributeValueMemberN{Value: strconv.Itoa(-m.Delta)}
	}
	return u
}

// commitError maps a cancelled transaction to the repository sentinels. The
// first transact item is always the order put; stock legs return the old
// item on a failed condition, so an empty item means the stock item is gone.
func commitError(err error, c interfaces.OrderCommit) error {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return err
	}
	for i, reason := range tce.CancellationReasons {
		code := aws.ToString(reason.Code)
		if i == 0 {
			if code == conditionalCheckFailed || code == transactionConflict {
				return fmt.Errorf("%w: order %s expected version %d", interfaces.ErrVersionConflict, c.Order.ID, c.ExpectedVersion)
			}
			continue
		}
		if i-1 >= len(c.Movements) {
			continue
		}
		m := c.Movements[i-1]
		switch {
		case code == transactionConflict:
			return fmt.Errorf("%w: stock item %s", interfaces.ErrCommitConflict, m.StockItemID)
		case code == conditionalCheckFailed && (len(reason.Item) == 0 || !m.IsDebit()):
			return fmt.Errorf("%w: stock item %s", interfaces.ErrStockItemMissing, m.StockItemID)
		case code == conditionalCheckFailed:
			return fmt.Errorf("%w: stock item %s", interfaces.ErrStockConditionFailed, m.StockItemID)
		}
	}
	return err
}

func (r *OrderDynamoRepository) FindByStatus(ctx context.Context, status entities.OrderStatus) ([]entities.Order, error) {
	return r.queryStatus(ctx, status, nil)
}

func (r *OrderDynamoRepository) FindActive(ctx context.Context, statuses []entities.OrderStatus) ([]entities.Order, error) {
	out := make([]entities.Order, 0)
	for _, s := range statuses {
		orders, err := r.queryStatus(ctx, s, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, orders...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *OrderDynamoRepository) FindAwaitingApprovalPastDue(ctx context.Context, cutoff time.Time) ([]entities.Order, error) {
	return r.queryStatus(ctx, entities.OrderStatusAwaitingApproval, &cutoff)
}

func (r *OrderDynamoRepository) queryStatus(ctx context.Context, status entities.OrderStatus, submittedBefore *time.Time) ([]entities.Order, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(ordersStatusIndex),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
	}
	if submittedBefore != nil {
		input.FilterExpression = aws.String("attribute_exists(#submitted) AND #submitted <= :cutoff")
		input.ExpressionAttributeNames["#submitted"] = "budget_submitted_at"
		input.ExpressionAttributeValues[":cutoff"] = &types.AttributeValueMemberS{Value: formatTime(*submittedBefore)}
	}

	orders := make([]entities.Order, 0)
	paginator := dynamodb.NewQueryPaginator(r.ddb, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it orderItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			o, err := fromOrderItem(it)
			if err != nil {
				return nil, err
			}
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func toOrderItem(o entities.Order) orderItem {
	it := orderItem{
		ID:                o.ID,
		ClientID:          o.ClientID,
		ClientEmail:       o.ClientEmail,
		VehicleID:         o.VehicleID,
		ServiceID:         o.ServiceID,
		Description:       o.Description,
		Status:            string(o.Status),
		Insumos:           make([]orderInsumoItem, 0, len(o.Insumos)),
		BudgetSubmittedAt: formatTimePtr(o.BudgetSubmittedAt),
		CreatedAt:         formatTime(o.CreatedAt),
		UpdatedAt:         formatTime(o.UpdatedAt),
		FinishedAt:        formatTimePtr(o.FinishedAt),
		DeliveredAt:       formatTimePtr(o.DeliveredAt),
		Version:           o.Version,
	}
	if b := o.Budget; b != nil {
		it.Budget = &budgetItem{
			ID:          b.ID,
			Value:       b.Value.String(),
			Status:      string(b.Status),
			SubmittedAt: formatTimePtr(b.SubmittedAt),
			CreatedAt:   formatTime(b.CreatedAt),
			UpdatedAt:   formatTime(b.UpdatedAt),
		}
	}
	for _, in := range o.Insumos {
		it.Insumos = append(it.Insumos, orderInsumoItem{
			ID:          in.ID,
			StockItemID: in.StockItemID,
			Quantity:    in.Quantity,
			Status:      string(in.Status),
			CreatedAt:   formatTime(in.CreatedAt),
			UpdatedAt:   formatTime(in.UpdatedAt),
		})
	}
	return it
}

func fromOrderItem(it orderItem) (entities.Order, error) {
	o := entities.Order{
		ID:                it.ID,
		ClientID:          it.ClientID,
		ClientEmail:       it.ClientEmail,
		VehicleID:         it.VehicleID,
		ServiceID:         it.ServiceID,
		Description:       it.Description,
		Status:            entities.OrderStatus(it.Status),
		Insumos:           make([]entities.OrderInsumo, 0, len(it.Insumos)),
		BudgetSubmittedAt: parseTimePtr(it.BudgetSubmittedAt),
		CreatedAt:         parseTime(it.CreatedAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
		FinishedAt:        parseTimePtr(it.FinishedAt),
		DeliveredAt:       parseTimePtr(it.DeliveredAt),
		Version:           it.Version,
	}
	if b := it.Budget; b != nil {
		value, err := decimal.NewFromString(b.Value)
		if err != nil {
			return entities.Order{}, fmt.Errorf("order %s budget value %q: %w", it.ID, b.Value, err)
		}
		o.Budget = &entities.Budget{
			ID:          b.ID,
			OrderID:     it.ID,
			Value:       value,
			Status:      entities.BudgetStatus(b.Status),
			SubmittedAt: parseTimePtr(b.SubmittedAt),
			CreatedAt:   parseTime(b.CreatedAt),
			UpdatedAt:   parseTime(b.UpdatedAt),
		}
	}
	for _, in := range it.Insumos {
		o.Insumos = append(o.Insumos, entities.OrderInsumo{
			ID:          in.ID,
			OrderID:     it.ID,
			StockItemID: in.StockItemID,
			Quantity:    in.Quantity,
			Status:      entities.OrderInsumoStatus(in.Status),
			CreatedAt:   parseTime(in.CreatedAt),
			UpdatedAt:   parseTime(in.UpdatedAt),
		})
	}
	return o, nil
}
