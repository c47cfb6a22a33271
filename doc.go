// Package productscli reúne a ferramenta de linha de comando para cadastrar e
// consultar produtos de e-commerce em uma tabela DynamoDB.
//
// Visão Geral:
// O binário fica em cmd/products. Sem argumentos ele testa a conexão e
// descreve a tabela de produtos e as tabelas colaboradoras; com --create
// conduz um diálogo interativo que monta o produto e suas variantes e grava
// tudo em uma única escrita condicional.
//
// Sub-Pacotes Principais:
//
// 1. envloader:
//   - Carregamento de configurações via tags "env" e "envDefault".
//   - Suporte a tipos nativos, durações, listas e structs aninhadas.
//
// 2. dyndb:
//   - Abstração de persistência (Store[T]) sobre o AWS SDK v2.
//   - Get, Put, PutIfAbsent, Describe e Count, com erros classificados.
//
// 3. pkg/catalog e pkg/intake:
//   - Modelo do produto, cálculo de status e geração de IDs.
//   - Máquina de estados da coleta e o diálogo com o operador.
//
// 4. pkg/config, pkg/awsenv e pkg/inspect:
//   - Configuração em camadas (arquivo local ou s3://, env, profile).
//   - Resolução única da configuração AWS.
//   - Teste de conexão e conferência das chaves contra o guia embutido.
//
// Exemplo de uso:
//
//	products                  # teste de conexão com o profile padrão
//	products staging --count  # profile "staging", com contagem real
//	products -c               # cadastra um produto
//	products --get PRD-0190e1c2-...
//	products --schema         # contrato de referência das tabelas
package productscli
