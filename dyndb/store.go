// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package dyndb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/raywall/products-cli/envloader"
)

type dynamoStore[T any] struct {
	client DynamoDBClient
	cfg    TableConfig[T]
}

// New cria um store reutilizável.
//
// Se TableName vier vazio, a configuração é lida das variáveis de ambiente
// (DYNAMODB_TABLE_NAME, DYNAMODB_HASH_KEY, DYNAMODB_SORT_KEY).
func New[T any](client DynamoDBClient, cfg TableConfig[T]) Store[T] {
	if cfg.TableName == "" {
		_ = envloader.Load(&cfg)
	}

	return &dynamoStore[T]{
		client: client,
		cfg:    cfg,
	}
}

// Get item por chave primária
func (s *dynamoStore[T]) Get(ctx context.Context, hashKey, sortKey any) (*T, error) {
	key := map[string]types.AttributeValue{
		s.cfg.HashKey: attr(hashKey),
	}
	if s.cfg.SortKey != "" && sortKey != nil {
		key[s.cfg.SortKey] = attr(sortKey)
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.cfg.TableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, classify("get", s.cfg.TableName, err)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var item T
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("dyndb: unmarshal failed: %w", err)
	}
	return &item, nil
}

// Put item (upsert)
func (s *dynamoStore[T]) Put(ctx context.Context, item T) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("dyndb: marshal failed: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.cfg.TableName),
		Item:      av,
	})
	return classify("put", s.cfg.TableName, err)
}

// PutIfAbsent grava com a condição attribute_not_exists(<hashKey>).
func (s *dynamoStore[T]) PutIfAbsent(ctx context.Context, item T) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("dyndb: marshal failed: %w", err)
	}

	cond := expression.AttributeNotExists(expression.Name(s.cfg.HashKey))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("dyndb: build condition failed: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(s.cfg.TableName),
		Item:                     av,
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	return classify("put", s.cfg.TableName, err)
}

// Describe retorna os metadados da tabela do store.
func (s *dynamoStore[T]) Describe(ctx context.Context) (*TableInfo, error) {
	return DescribeTable(ctx, s.client, s.cfg.TableName)
}

// Count percorre a tabela inteira com Select=COUNT e soma os Counts de cada
// página. O ItemCount do DescribeTable só é atualizado a cada ~6 horas.
func (s *dynamoStore[T]) Count(ctx context.Context) (int64, error) {
	var (
		total   int64
		lastKey map[string]types.AttributeValue
	)
	for {
		out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.cfg.TableName),
			Select:            types.SelectCount,
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return total, classify("scan", s.cfg.TableName, err)
		}
		total += int64(out.Count)
		if len(out.LastEvaluatedKey) == 0 {
			return total, nil
		}
		lastKey = out.LastEvaluatedKey
	}
}

// DescribeTable consulta os metadados de qualquer tabela pelo nome.
func DescribeTable(ctx context.Context, client TableDescriber, name string) (*TableInfo, error) {
	out, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(name),
	})
	if err != nil {
		return nil, classify("describe", name, err)
	}
	if out.Table == nil {
		return nil, &OpError{Op: "describe", Table: name, Kind: ErrTableNotFound, Err: fmt.Errorf("empty table description")}
	}
	return tableInfo(out.Table), nil
}

func tableInfo(t *types.TableDescription) *TableInfo {
	info := &TableInfo{
		Name:        aws.ToString(t.TableName),
		Status:      string(t.TableStatus),
		ARN:         aws.ToString(t.TableArn),
		CreatedAt:   aws.ToTime(t.CreationDateTime),
		ItemCount:   aws.ToInt64(t.ItemCount),
		SizeBytes:   aws.ToInt64(t.TableSizeBytes),
		BillingMode: string(types.BillingModeProvisioned),
	}
	for _, k := range t.KeySchema {
		info.KeySchema = append(info.KeySchema, KeyElement{
			Attribute: aws.ToString(k.AttributeName),
			KeyType:   string(k.KeyType),
		})
	}
	for _, a := range t.AttributeDefinitions {
		info.Attributes = append(info.Attributes, AttributeDefinition{
			Name: aws.ToString(a.AttributeName),
			Type: string(a.AttributeType),
		})
	}
	// tabelas antigas em modo provisionado não trazem BillingModeSummary
	if t.BillingModeSummary != nil && t.BillingModeSummary.BillingMode != "" {
		info.BillingMode = string(t.BillingModeSummary.BillingMode)
	}
	if t.ProvisionedThroughput != nil {
		info.ReadCapacity = aws.ToInt64(t.ProvisionedThroughput.ReadCapacityUnits)
		info.WriteCapacity = aws.ToInt64(t.ProvisionedThroughput.WriteCapacityUnits)
	}
	return info
}

// attr converte qualquer valor para types.AttributeValue
func attr(v any) types.AttributeValue {
	if v == nil {
		return &types.AttributeValueMemberNULL{Value: true}
	}
	av, err := attributevalue.Marshal(v)
	if err != nil {
		return &types.AttributeValueMemberNULL{Value: true}
	}
	return av
}
