package users

import (
	"context"
	"slices"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// DynamoAPI is the part of the DynamoDB client the store uses.
type DynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, opts ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoStore keeps users in a DynamoDB table with the string partition key "id".
type DynamoStore struct {
	client DynamoAPI
	table  string
	newID  func() string
}

// NewDynamoStore creates a store on the given table.
func NewDynamoStore(client DynamoAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table, newID: uuid.NewString}
}

func (s *DynamoStore) List(ctx context.Context) ([]User, error) {
	var out []User

	pages := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{TableName: aws.String(s.table)})
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan users")
		}

		for _, item := range page.Items {
			u, err := fromItem(item)
			if err != nil {
				return nil, err
			}

			out = append(out, u)
		}
	}

	slices.SortStableFunc(out, func(a, b User) int { return a.CreatedAt.Compare(b.CreatedAt) })

	return out, nil
}

func (s *DynamoStore) Get(ctx context.Context, id string) (User, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            key(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return User{}, errors.Wrapf(err, "failed to get user %q", id)
	}

	if len(out.Item) == 0 {
		return User{}, ErrNotFound
	}

	return fromItem(out.Item)
}

func (s *DynamoStore) Create(ctx context.Context, u User) (User, error) {
	u.ID = s.newID()
	if err := s.put(ctx, u, "attribute_not_exists(id)"); err != nil {
		return User{}, err
	}

	return u, nil
}

func (s *DynamoStore) Update(ctx context.Context, u User) error {
	return s.put(ctx, u, "attribute_exists(id)")
}

func (s *DynamoStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.table),
		Key:                 key(id),
		ConditionExpression: aws.String("attribute_exists(id)"),
	})

	return conditional(err, "failed to delete user %q", id)
}

func (s *DynamoStore) put(ctx context.Context, u User, cond string) error {
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                toItem(u),
		ConditionExpression: aws.String(cond),
	})

	return conditional(err, "failed to put user %q", u.ID)
}

// conditional maps a failed existence condition onto ErrNotFound.
func conditional(err error, format string, id string) error {
	if err == nil {
		return nil
	}

	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return errors.Wrapf(ErrNotFound, format, id)
	}

	return errors.Wrapf(err, format, id)
}

func key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}}
}

func toItem(u User) map[string]types.AttributeValue {
	str := func(s string) types.AttributeValue { return &types.AttributeValueMemberS{Value: s} }

	return map[string]types.AttributeValue{
		"id":        str(u.ID),
		"name":      str(u.Name),
		"email":     str(u.Email),
		"password":  str(u.Password),
		"createdAt": str(u.CreatedAt.UTC().Format(time.RFC3339Nano)),
		"updatedAt": str(u.UpdatedAt.UTC().Format(time.RFC3339Nano)),
	}
}

func fromItem(item map[string]types.AttributeValue) (User, error) {
	str := func(name string) string {
		if v, ok := item[name].(*types.AttributeValueMemberS); ok {
			return v.Value
		}

		return ""
	}

	u := User{ID: str("id"), Name: str("name"), Email: str("email"), Password: str("password")}

	var err error
	if u.CreatedAt, err = time.Parse(time.RFC3339Nano, str("createdAt")); err != nil {
		return User{}, errors.Wrapf(err, "user %q: invalid createdAt", u.ID)
	}

	if u.UpdatedAt, err = time.Parse(time.RFC3339Nano, str("updatedAt")); err != nil {
		return User{}, errors.Wrapf(err, "user %q: invalid updatedAt", u.ID)
	}

	return u, nil
}
