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
//
// Package envloader carrega variáveis de ambiente em campos de uma struct Go
// usando as tags `env` (nome da variável) e `envDefault` (valor padrão).
//
// É a última camada da configuração da CLI: o YAML preenche a struct
// primeiro e o envloader só sobrescreve o que estiver definido no ambiente.
// Campos ainda vazios recebem o envDefault.
//
// Tipos suportados: string, int*, uint*, bool, float*, time.Duration
// ("10s", "1m30s") e []string (lista separada por vírgulas), além de structs
// aninhadas e ponteiros para struct.
//
// Exemplo:
//
//	type Config struct {
//		Region  string        `env:"AWS_REGION" envDefault:"ap-south-1"`
//		Timeout time.Duration `env:"PRODUCTS_TIMEOUT" envDefault:"10s"`
//		Tables  []string      `env:"PRODUCTS_COLLABORATOR_TABLES"`
//	}
//
//	var cfg Config
//	if err := envloader.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
package envloader
