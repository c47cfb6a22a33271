// Package dyndb fornece uma abstração genérica e fortemente tipada sobre o
// AWS DynamoDB Go SDK (v2).
//
// Visão Geral:
// O pacote `dyndb` oferece a interface `Store[T]`, com as operações que a
// ferramenta de produtos precisa: `Get`, `Put`, `PutIfAbsent` (escrita
// condicional), `Describe` e `Count`. Os tipos de baixo nível do SDK
// (AttributeValue, TableDescription) ficam escondidos atrás de structs Go.
//
// Erros:
// Toda falha do SDK volta como `*OpError`, classificada em um dos sentinelas
// (`ErrTableNotFound`, `ErrAccessDenied`, `ErrConditionFailed`) quando o código
// da API permite. `OutcomeUnknown` diz se uma escrita que falhou pode ter sido
// aplicada mesmo assim (timeout, falha de transporte).
//
// Exemplo:
//
//	type Product struct {
//		ID   string `dynamodbav:"productID"`
//		Name string `dynamodbav:"name"`
//	}
//
//	store := dyndb.New(client, dyndb.TableConfig[Product]{TableName: "Products", HashKey: "productID"})
//
//	if err := store.PutIfAbsent(ctx, Product{ID: "PRD-1", Name: "Shirt"}); err != nil {
//		if errors.Is(err, dyndb.ErrConditionFailed) { /* ID já existe */ }
//	}
//
//	p, err := store.Get(ctx, "PRD-1", nil)
//	if errors.Is(err, dyndb.ErrNotFound) { /* ... */ }
//
// Mocks:
// `MockStore` e `MockDynamoClient` permitem testes unitários sem AWS.
package dyndb
