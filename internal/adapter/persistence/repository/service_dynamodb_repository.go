package repository

import (
	"context"

	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/shopspring/decimal"
)

type serviceItem struct {
	ID          string `dynamodbav:"id"`
	Name        string `dynamodbav:"name"`
	Description string `dynamodbav:"description,omitempty"`
	Price       string `dynamodbav:"price"`
	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
}

// ServiceDynamoRepository reads the service catalogue. Table PK: id.
type ServiceDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IServiceRepository = (*ServiceDynamoRepository)(nil)

func NewServiceDynamoRepository(ddb DynamoDBAPI, tableName string) *ServiceDynamoRepository {
	return &ServiceDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *ServiceDynamoRepository) Create(ctx context.Context, s entities.Service) (entities.Service, error) {
	av, err := attributevalue.MarshalMap(serviceItem{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price.String(),
		CreatedAt:   formatTime(s.CreatedAt),
		UpdatedAt:   formatTime(s.UpdatedAt),
	})
	if err != nil {
		return entities.Service{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		return entities.Service{}, err
	}
	return s, nil
}

func (r *ServiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Service, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       stringKey(id),
	})
	if err != nil {
		return entities.Service{}, err
	}
	if len(out.Item) == 0 {
		return entities.Service{}, nil
	}

	var it serviceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Service{}, err
	}
	price, err := decimal.NewFromString(it.Price)
	if err != nil {
		return entities.Service{}, err
	}
	return entities.Service{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       price,
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}, nil
}
