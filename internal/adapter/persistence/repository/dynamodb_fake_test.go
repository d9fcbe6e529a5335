package repository

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// fakeDynamo records every call and answers from the configured funcs.
type fakeDynamo struct {
	getItem      func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	putItem      func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error)
	updateItem   func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error)
	deleteItem   func(*dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error)
	batchGetItem func(*dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error)
	query        func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	scan         func(*dynamodb.ScanInput) (*dynamodb.ScanOutput, error)
	transact     func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error)

	puts      []*dynamodb.PutItemInput
	updates   []*dynamodb.UpdateItemInput
	deletes   []*dynamodb.DeleteItemInput
	queries   []*dynamodb.QueryInput
	scans     []*dynamodb.ScanInput
	transacts []*dynamodb.TransactWriteItemsInput
	batchGets int
}

var _ DynamoDBAPI = (*fakeDynamo)(nil)

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.getItem == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return f.getItem(in)
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts = append(f.puts, in)
	if f.putItem == nil {
		return &dynamodb.PutItemOutput{}, nil
	}
	return f.putItem(in)
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updates = append(f.updates, in)
	return f.updateItem(in)
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.deletes = append(f.deletes, in)
	if f.deleteItem == nil {
		return &dynamodb.DeleteItemOutput{}, nil
	}
	return f.deleteItem(in)
}

func (f *fakeDynamo) BatchGetItem(_ context.Context, in *dynamodb.BatchGetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error) {
	f.batchGets++
	return f.batchGetItem(in)
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queries = append(f.queries, in)
	return f.query(in)
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scans = append(f.scans, in)
	return f.scan(in)
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.transacts = append(f.transacts, in)
	if f.transact == nil {
		return &dynamodb.TransactWriteItemsOutput{}, nil
	}
	return f.transact(in)
}
