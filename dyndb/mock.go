// dyndb/mock.go
package dyndb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// MockStore é um mock da interface Store[T] para testes de quem consome o store.
//
// Ele expõe campos de função (`GetFn`, `PutFn`, etc.) que podem ser definidos
// para simular o comportamento desejado do DynamoDB durante os testes.
type MockStore[T any] struct {
	GetFn         func(ctx context.Context, hashKey, sortKey any) (*T, error)
	PutFn         func(ctx context.Context, item T) error
	PutIfAbsentFn func(ctx context.Context, item T) error
	DescribeFn    func(ctx context.Context) (*TableInfo, error)
	CountFn       func(ctx context.Context) (int64, error)
}

func (m *MockStore[T]) Get(ctx context.Context, hashKey, sortKey any) (*T, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, hashKey, sortKey)
	}
	return nil, ErrNotFound
}

func (m *MockStore[T]) Put(ctx context.Context, item T) error {
	if m.PutFn != nil {
		return m.PutFn(ctx, item)
	}
	return nil
}

func (m *MockStore[T]) PutIfAbsent(ctx context.Context, item T) error {
	if m.PutIfAbsentFn != nil {
		return m.PutIfAbsentFn(ctx, item)
	}
	return nil
}

func (m *MockStore[T]) Describe(ctx context.Context) (*TableInfo, error) {
	if m.DescribeFn != nil {
		return m.DescribeFn(ctx)
	}
	return nil, ErrTableNotFound
}

func (m *MockStore[T]) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}

// MockDynamoClient é um mock para a interface DynamoDBClient de baixo nível.
//
// Permite testar a lógica interna do `dynamoStore` (e o comando inteiro)
// sem tocar no AWS SDK. Funções não definidas devolvem ErrNotFound.
type MockDynamoClient struct {
	GetItemFn       func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItemFn       func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	ScanFn          func(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DescribeTableFn func(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

func (m *MockDynamoClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if m.GetItemFn != nil {
		return m.GetItemFn(ctx, params, optFns...)
	}
	return nil, ErrNotFound
}

func (m *MockDynamoClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if m.PutItemFn != nil {
		return m.PutItemFn(ctx, params, optFns...)
	}
	return nil, ErrNotFound
}

func (m *MockDynamoClient) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if m.ScanFn != nil {
		return m.ScanFn(ctx, params, optFns...)
	}
	return nil, ErrNotFound
}

func (m *MockDynamoClient) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if m.DescribeTableFn != nil {
		return m.DescribeTableFn(ctx, params, optFns...)
	}
	return nil, ErrNotFound
}
