package mpdomain

// ErrorResponse representa a estrutura de erro da API do marketplace
type ErrorResponse struct {
	Errors []ErrorDetails `json:"errors"`
}

type ErrorDetails struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// FirstMessage retorna a primeira mensagem de erro, quando houver
func (e *ErrorResponse) FirstMessage() string {
	if e == nil || len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Code + ": " + e.Errors[0].Message
}
