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
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoDBClient interface para abstrair o cliente DynamoDB do SDK da AWS.
//
// Contém apenas as quatro operações que a ferramenta usa; o *dynamodb.Client
// real a satisfaz e os testes a substituem por mocks.
type DynamoDBClient interface {
	TableDescriber
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// TableDescriber é o subconjunto usado pela inspeção de tabelas.
type TableDescriber interface {
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// Store é a interface principal e genérica para interagir com uma tabela.
//
// O tipo genérico `T` é a struct Go que representa o item da tabela.
type Store[T any] interface {
	// Get item por chave primária (hashKey e sortKey opcional).
	Get(ctx context.Context, hashKey, sortKey any) (*T, error)
	// Put grava o item inteiro (upsert) em uma única chamada.
	Put(ctx context.Context, item T) error
	// PutIfAbsent grava o item somente se a chave ainda não existir.
	// Retorna ErrConditionFailed em caso de colisão.
	PutIfAbsent(ctx context.Context, item T) error
	// Describe retorna os metadados da tabela configurada.
	Describe(ctx context.Context) (*TableInfo, error)
	// Count conta os itens com um Scan paginado (Select=COUNT).
	Count(ctx context.Context) (int64, error)
}

// TableConfig é a configuração da tabela
type TableConfig[T any] struct {
	TableName string `env:"DYNAMODB_TABLE_NAME"`
	HashKey   string `env:"DYNAMODB_HASH_KEY"`
	SortKey   string `env:"DYNAMODB_SORT_KEY"` // opcional
}

// KeyElement descreve um atributo do esquema de chaves (HASH ou RANGE).
type KeyElement struct {
	Attribute string
	KeyType   string
}

// AttributeDefinition descreve um atributo declarado na tabela.
type AttributeDefinition struct {
	Name string
	Type string
}

// TableInfo é a visão simplificada do DescribeTable.
type TableInfo struct {
	Name          string
	Status        string
	ARN           string
	CreatedAt     time.Time
	ItemCount     int64
	SizeBytes     int64
	KeySchema     []KeyElement
	Attributes    []AttributeDefinition
	BillingMode   string
	ReadCapacity  int64
	WriteCapacity int64
}

// Active informa se a tabela aceita leituras e escritas.
func (t *TableInfo) Active() bool {
	return t.Status == "ACTIVE"
}
