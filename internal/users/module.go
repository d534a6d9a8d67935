package users

import (
	"github.com/advdv/anyhttp/app"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/fx"
)

// Module provides the users routes with the store and event publisher selected by the environment.
var Module = fx.Module("users",
	fx.Provide(ProvideStore, ProvideEvents, NewService, NewController),
	app.ProvideRoutes(NewRoutes),
)

// ProvideStore returns the DynamoDB store when USERS_STORE is dynamodb and the memory store otherwise.
func ProvideStore(env app.Environment, client *dynamodb.Client) Store {
	if env.UsersStore == "dynamodb" {
		return NewDynamoStore(client, env.UsersTable)
	}

	return NewMemoryStore()
}

// ProvideEvents publishes to SQS when a queue is configured.
func ProvideEvents(env app.Environment, client *sqs.Client) Events {
	if env.UsersEventsQueueURL == "" {
		return NopEvents{}
	}

	return NewSQSEvents(client, env.UsersEventsQueueURL)
}
