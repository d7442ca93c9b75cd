package credentials

import "errors"

var (
	// ErrNoCredentials indica que nenhuma fonte forneceu um conjunto completo de credenciais.
	// É um erro de configuração e nunca deve ser repetido.
	ErrNoCredentials = errors.New("no complete marketplace credentials found")
	// ErrUnknownIdentifier indica que o identificador não pertence a nenhuma conta do catálogo
	ErrUnknownIdentifier = errors.New("identifier not found in catalog")
)
