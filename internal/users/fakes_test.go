package users_test

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// fakeDynamo is a single-table, single-key DynamoDB stand-in that honors the existence conditions
// the store uses.
type fakeDynamo struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue
	err   error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: map[string]map[string]types.AttributeValue{}}
}

func idOf(item map[string]types.AttributeValue) string {
	return item["id"].(*types.AttributeValueMemberS).Value
}

func (f *fakeDynamo) check(id, cond string) error {
	_, exists := f.items[id]
	if (cond == "attribute_exists(id)" && !exists) || (cond == "attribute_not_exists(id)" && exists) {
		return &types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
	}

	return nil
}

func (f *fakeDynamo) GetItem(
	_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options),
) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	return &dynamodb.GetItemOutput{Item: f.items[idOf(in.Key)]}, nil
}

func (f *fakeDynamo) PutItem(
	_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options),
) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := idOf(in.Item)
	if err := f.check(id, aws.ToString(in.ConditionExpression)); err != nil {
		return nil, err
	}

	f.items[id] = in.Item

	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(
	_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options),
) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := idOf(in.Key)
	if err := f.check(id, aws.ToString(in.ConditionExpression)); err != nil {
		return nil, err
	}

	delete(f.items, id)

	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Scan(
	_ context.Context, _ *dynamodb.ScanInput, _ ...func(*dynamodb.Options),
) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := &dynamodb.ScanOutput{}
	for _, item := range f.items {
		out.Items = append(out.Items, item)
	}

	return out, nil
}

type fakeSQS struct {
	mu   sync.Mutex
	sent []*sqs.SendMessageInput
	err  error
}

func (f *fakeSQS) SendMessage(
	_ context.Context, in *sqs.SendMessageInput, _ ...func(*sqs.Options),
) (*sqs.SendMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	f.sent = append(f.sent, in)

	return &sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}
