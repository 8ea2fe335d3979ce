package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"todo-api/domain/todo"
	apperrors "todo-api/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// Client is the subset of *dynamodb.Client used by the store
type Client interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Attribute names of the todo table. "id" is the partition key.
const (
	attrID          = "id"
	attrTitle       = "title"
	attrDescription = "description"
	attrCompleted   = "completed"
	attrUpdatedAt   = "updatedAt"
)

// TodoRecord is the DynamoDB representation of a todo
type TodoRecord struct {
	ID          string    `dynamodbav:"id"`
	Title       string    `dynamodbav:"title"`
	Description string    `dynamodbav:"description"`
	Completed   bool      `dynamodbav:"completed"`
	CreatedAt   time.Time `dynamodbav:"createdAt"`
	UpdatedAt   time.Time `dynamodbav:"updatedAt"`
}

// TodoStore persists todos in a single DynamoDB table keyed by id
type TodoStore struct {
	client    Client
	tableName string
	logger    *zap.Logger
}

// NewTodoStore creates a new DynamoDB-backed todo store
func NewTodoStore(client Client, tableName string, logger *zap.Logger) *TodoStore {
	return &TodoStore{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// Get retrieves a todo by ID
func (s *TodoStore) Get(ctx context.Context, id string) (*todo.Todo, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       s.key(id),
	})
	if err != nil {
		return nil, s.wrapError("GetItem", err)
	}

	if result.Item == nil {
		return nil, apperrors.NewNotFoundError("Todo")
	}

	return s.parseItem(result.Item)
}

// Put writes the full item. Identifiers are fresh, so no existence check is made.
func (s *TodoStore) Put(ctx context.Context, item *todo.Todo) error {
	av, err := attributevalue.MarshalMap(toRecord(item))
	if err != nil {
		return fmt.Errorf("failed to marshal todo: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return s.wrapError("PutItem", err)
	}

	s.logger.Debug("Todo saved", zap.String("todoID", item.ID))
	return nil
}

// Update sets the present fields and updatedAt on an existing item and
// returns the post-update image.
func (s *TodoStore) Update(ctx context.Context, id string, fields todo.UpdateFields, updatedAt time.Time) (*todo.Todo, error) {
	update := expression.Set(expression.Name(attrUpdatedAt), expression.Value(updatedAt.UTC()))
	if fields.Title != nil {
		update = update.Set(expression.Name(attrTitle), expression.Value(*fields.Title))
	}
	if fields.Description != nil {
		update = update.Set(expression.Name(attrDescription), expression.Value(*fields.Description))
	}
	if fields.Completed != nil {
		update = update.Set(expression.Name(attrCompleted), expression.Value(*fields.Completed))
	}

	// Without the condition UpdateItem would upsert a title-less item
	condition := expression.Name(attrID).AttributeExists()

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(condition).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	result, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       s.key(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, s.wrapError("UpdateItem", err)
	}

	return s.parseItem(result.Attributes)
}

// Delete removes an item, failing with NotFound when it does not exist
func (s *TodoStore) Delete(ctx context.Context, id string) error {
	expr, err := expression.NewBuilder().
		WithCondition(expression.Name(attrID).AttributeExists()).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build expression: %w", err)
	}

	_, err = s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(s.tableName),
		Key:                      s.key(id),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		return s.wrapError("DeleteItem", err)
	}

	s.logger.Debug("Todo deleted", zap.String("todoID", id))
	return nil
}

// Scan reads the table in a single call. LastEvaluatedKey is not followed.
func (s *TodoStore) Scan(ctx context.Context) ([]*todo.Todo, error) {
	result, err := s.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.tableName),
	})
	if err != nil {
		return nil, s.wrapError("Scan", err)
	}

	var records []TodoRecord
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal todos: %w", err)
	}

	if result.LastEvaluatedKey != nil {
		s.logger.Warn("Scan result truncated",
			zap.String("table", s.tableName),
			zap.Int("returned", len(records)),
		)
	}

	todos := make([]*todo.Todo, 0, len(records))
	for _, record := range records {
		todos = append(todos, record.toTodo())
	}
	return todos, nil
}

func (s *TodoStore) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrID: &types.AttributeValueMemberS{Value: id},
	}
}

func (s *TodoStore) parseItem(item map[string]types.AttributeValue) (*todo.Todo, error) {
	var record TodoRecord
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal todo: %w", err)
	}
	return record.toTodo(), nil
}

// wrapError maps a DynamoDB failure onto the store's error kinds
func (s *TodoStore) wrapError(operation string, err error) error {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return apperrors.NewNotFoundError("Todo").WithCause(err)
	}

	fields := []zap.Field{
		zap.String("operation", operation),
		zap.String("table", s.tableName),
		zap.Error(err),
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		fields = append(fields,
			zap.String("awsErrorCode", apiErr.ErrorCode()),
			zap.String("awsErrorFault", apiErr.ErrorFault().String()),
		)
	}
	s.logger.Debug("DynamoDB request failed", fields...)

	return apperrors.NewDatabaseError(operation, err)
}

func toRecord(t *todo.Todo) TodoRecord {
	return TodoRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
}

func (r TodoRecord) toTodo() *todo.Todo {
	return &todo.Todo{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
