package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"todo-api/application/ports"
	"todo-api/domain/todo"
	apperrors "todo-api/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var _ ports.TodoStore = (*TodoStore)(nil)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.GetItemOutput)
	return out, args.Error(1)
}

func (m *mockClient) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.PutItemOutput)
	return out, args.Error(1)
}

func (m *mockClient) UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.UpdateItemOutput)
	return out, args.Error(1)
}

func (m *mockClient) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.DeleteItemOutput)
	return out, args.Error(1)
}

func (m *mockClient) Scan(ctx context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.ScanOutput)
	return out, args.Error(1)
}

const testTable = "todos-test"

func newTestStore() (*TodoStore, *mockClient) {
	client := new(mockClient)
	return NewTodoStore(client, testTable, zap.NewNop()), client
}

func sampleItem(t *testing.T) (*todo.Todo, map[string]types.AttributeValue) {
	t.Helper()
	created := time.Date(2024, 5, 1, 10, 0, 0, 123000000, time.UTC)
	item := &todo.Todo{
		ID:          "7b1f1c1e-0000-4000-8000-000000000001",
		Title:       "Ship it",
		Description: "before friday",
		Completed:   false,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	av, err := attributevalue.MarshalMap(toRecord(item))
	require.NoError(t, err)
	return item, av
}

func keyID(key map[string]types.AttributeValue) string {
	if s, ok := key["id"].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func TestTodoStore_Get(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore()
	item, av := sampleItem(t)

	client.On("GetItem", ctx, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
		return aws.ToString(in.TableName) == testTable && keyID(in.Key) == item.ID
	})).Return(&dynamodb.GetItemOutput{Item: av}, nil)

	got, err := store.Get(ctx, item.ID)

	require.NoError(t, err)
	assert.Equal(t, item, got)
	client.AssertExpectations(t)
}

func TestTodoStore_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore()
	client.On("GetItem", ctx, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

	got, err := store.Get(ctx, "missing")

	assert.Nil(t, got)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestTodoStore_Get_ClientError(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore()
	client.On("GetItem", ctx, mock.Anything).Return(nil, errors.New("throttled"))

	_, err := store.Get(ctx, "id")

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeDatabase, apperrors.TypeOf(err))
	assert.False(t, apperrors.IsNotFound(err))
}

func TestTodoStore_Put(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore()
	item, _ := sampleItem(t)

	client.On("PutItem", ctx, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		var record TodoRecord
		if err := attributevalue.UnmarshalMap(in.Item, &record); err != nil {
			return false
		}
		return aws.ToString(in.TableName) == testTable &&
			in.ConditionExpression == nil &&
			record.ID == item.ID &&
			record.Title == item.Title &&
			record.CreatedAt.Equal(item.CreatedAt)
	})).Return(&dynamodb.PutItemOutput{}, nil)

	require.NoError(t, store.Put(ctx, item))
	client.AssertExpectations(t)
}

func TestTodoStore_Update(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore()
	item, _ := sampleItem(t)

	done := true
	updatedAt := item.CreatedAt.Add(time.Minute)
	expected := item.Clone()
	expected.Completed = true
	expected.UpdatedAt = updatedAt
	newImage, err := attributevalue.MarshalMap(toRecord(expected))
	require.NoError(t, err)

	client.On("UpdateItem", ctx, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
		names := make(map[string]bool)
		for _, n := range in.ExpressionAttributeNames {
			names[n] = true
		}
		return keyID(in.Key) == item.ID &&
			in.ReturnValues == types.ReturnValueAllNew &&
			in.ConditionExpression != nil &&
			names["completed"] && names["updatedAt"] && names["id"] &&
			!names["title"] && !names["description"]
	})).Return(&dynamodb.UpdateItemOutput{Attributes: newImage}, nil)

	got, err := store.Update(ctx, item.ID, todo.UpdateFields{Completed: &done}, updatedAt)

	require.NoError(t, err)
	assert.Equal(t, expected, got)
	client.AssertExpectations(t)
}

func TestTodoStore_Update_ConditionFailedIsNotFound(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore()
	client.On("UpdateItem", ctx, mock.Anything).
		Return(nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")})

	title := "x"
	_, err := store.Update(ctx, "missing", todo.UpdateFields{Title: &title}, time.Now())

	assert.True(t, apperrors.IsNotFound(err))
}

func TestTodoStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore()

	client.On("DeleteItem", ctx, mock.MatchedBy(func(in *dynamodb.DeleteItemInput) bool {
		return keyID(in.Key) == "abc" && in.ConditionExpression != nil
	})).Return(&dynamodb.DeleteItemOutput{}, nil)

	require.NoError(t, store.Delete(ctx, "abc"))
	client.AssertExpectations(t)
}

func TestTodoStore_Delete_Missing(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore()
	client.On("DeleteItem", ctx, mock.Anything).
		Return(nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")})

	err := store.Delete(ctx, "missing")

	assert.True(t, apperrors.IsNotFound(err))
}

func TestTodoStore_Delete_OtherError(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore()
	client.On("DeleteItem", ctx, mock.Anything).
		Return(nil, &types.ResourceNotFoundException{Message: aws.String("table missing")})

	err := store.Delete(ctx, "abc")

	require.Error(t, err)
	assert.False(t, apperrors.IsNotFound(err))
	assert.Equal(t, apperrors.ErrorTypeDatabase, apperrors.TypeOf(err))
}

func TestTodoStore_Scan(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore()
	item, av := sampleItem(t)

	client.On("Scan", ctx, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return aws.ToString(in.TableName) == testTable && in.ExclusiveStartKey == nil
	})).Return(&dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{av}}, nil).Once()

	got, err := store.Scan(ctx)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, item, got[0])
	client.AssertExpectations(t)
}

func TestTodoStore_Scan_Empty(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore()
	client.On("Scan", ctx, mock.Anything).Return(&dynamodb.ScanOutput{}, nil)

	got, err := store.Scan(ctx)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
