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
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

var (
	// ErrNotFound – erro padrão retornado quando o GetItem não encontra o item.
	ErrNotFound = errors.New("dyndb: item not found")
	// ErrTableNotFound – a tabela não existe na conta/região configurada.
	ErrTableNotFound = errors.New("dyndb: table not found")
	// ErrAccessDenied – falha de credencial ou permissão (IAM).
	ErrAccessDenied = errors.New("dyndb: access denied")
	// ErrConditionFailed – a condição de escrita (ex: attribute_not_exists) falhou.
	ErrConditionFailed = errors.New("dyndb: condition check failed")
)

var authCodes = map[string]bool{
	"AccessDeniedException":               true,
	"UnrecognizedClientException":         true,
	"InvalidSignatureException":           true,
	"IncompleteSignature":                 true,
	"MissingAuthenticationToken":          true,
	"MissingAuthenticationTokenException": true,
	"ExpiredToken":                        true,
	"ExpiredTokenException":               true,
	"InvalidClientTokenId":                true,
}

// mensagens do SDK quando a cadeia de credenciais não resolve nada;
// esses erros não trazem código de API.
var credentialHints = []string{
	"failed to retrieve credentials",
	"failed to refresh cached credentials",
	"get identity",
	"no EC2 IMDS role found",
}

// OpError encapsula a falha de uma operação com a sua classificação.
//
// Kind é um dos sentinelas do pacote (ou nil quando não classificado) e Err é
// o erro original do SDK; ambos participam de errors.Is / errors.As.
type OpError struct {
	Op    string
	Table string
	Kind  error
	Err   error
}

func (e *OpError) Error() string {
	if e.Kind != nil {
		return fmt.Sprintf("dyndb: %s %s: %s: %v", e.Op, e.Table, strings.TrimPrefix(e.Kind.Error(), "dyndb: "), e.Err)
	}
	return fmt.Sprintf("dyndb: %s %s failed: %v", e.Op, e.Table, e.Err)
}

func (e *OpError) Unwrap() []error {
	if e.Kind == nil {
		return []error{e.Err}
	}
	return []error{e.Kind, e.Err}
}

// classify converte o erro do SDK em *OpError.
func classify(op, table string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Table: table, Kind: kindOf(err), Err: err}
}

func kindOf(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch {
		case code == "ResourceNotFoundException":
			return ErrTableNotFound
		case code == "ConditionalCheckFailedException":
			return ErrConditionFailed
		case authCodes[code]:
			return ErrAccessDenied
		}
		return nil
	}
	msg := err.Error()
	for _, hint := range credentialHints {
		if strings.Contains(msg, hint) {
			return ErrAccessDenied
		}
	}
	return nil
}

// IsAuth informa se o erro é de credencial/permissão.
func IsAuth(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// OutcomeUnknown informa se não dá para saber se a escrita chegou a ser
// aplicada: timeout, cancelamento ou falha de transporte sem resposta do
// servidor. Uma resposta de erro da API (ou falha de credencial antes do
// envio) garante que nada foi gravado.
func OutcomeUnknown(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var sendErr *smithyhttp.RequestSendError
	if errors.As(err, &sendErr) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) || IsAuth(err) {
		return false
	}
	if errors.Is(err, ErrConditionFailed) || errors.Is(err, ErrTableNotFound) {
		return false
	}
	return true
}
