package mpclient

import (
	"context"
	"strconv"
	"strings"

	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
)

type Page[T any] struct {
	Items      []T
	NextCursor string
}

// PageFetcher busca a página indicada pelo cursor; cursor vazio é a primeira página
type PageFetcher[T any] func(ctx context.Context, cursor string) (Page[T], error)

type CollectResult[T any] struct {
	Items []T
	// NextCursor permite retomar a coleta quando o orçamento acaba ou uma página falha
	NextCursor string
	Pages      int
	Incomplete bool
	Exhausted  bool
	Err        error
}

const resumePrefix = "ofs:"

// ResumeCursor codifica o cursor de uma página junto com quantos itens dela já foram entregues
func ResumeCursor(cursor string, skip int) string {
	if skip <= 0 {
		return cursor
	}
	return resumePrefix + strconv.Itoa(skip) + ":" + cursor
}

// ParseResumeCursor é o inverso de ResumeCursor; cursores do marketplace passam inalterados
func ParseResumeCursor(token string) (cursor string, skip int) {
	rest, ok := strings.CutPrefix(token, resumePrefix)
	if !ok {
		return token, 0
	}

	count, cursor, found := strings.Cut(rest, ":")
	if !found {
		return token, 0
	}

	skip, err := strconv.Atoi(count)
	if err != nil || skip < 0 {
		return token, 0
	}
	return cursor, skip
}

// Collect percorre as páginas a partir de startCursor até o cursor acabar,
// o orçamento se esgotar ou uma página falhar. Itens já coletados nunca são descartados.
// Quando o orçamento de itens corta uma página no meio, o cursor devolvido aponta para
// a mesma página e pula os itens já entregues.
func Collect[T any](ctx context.Context, budget *domain.Budget, startCursor string, fetch PageFetcher[T]) CollectResult[T] {
	if budget == nil {
		budget = domain.NewBudget(0, 0)
	}

	result := CollectResult[T]{Items: make([]T, 0)}
	cursor, skip := ParseResumeCursor(startCursor)

	for {
		if err := ctx.Err(); err != nil {
			result.Incomplete = true
			result.Err = err
			result.NextCursor = ResumeCursor(cursor, skip)
			return result
		}

		if !budget.TakePage() {
			result.Exhausted = true
			result.NextCursor = ResumeCursor(cursor, skip)
			return result
		}

		page, err := fetch(ctx, cursor)
		if err != nil {
			result.Incomplete = true
			result.Err = err
			result.NextCursor = ResumeCursor(cursor, skip)
			return result
		}
		result.Pages++

		for i := skip; i < len(page.Items); i++ {
			if !budget.TakeItem() {
				result.Exhausted = true
				result.NextCursor = ResumeCursor(cursor, i)
				return result
			}
			result.Items = append(result.Items, page.Items[i])
		}
		skip = 0

		if page.NextCursor == "" {
			return result
		}

		if budget.Exhausted() {
			result.Exhausted = true
			result.NextCursor = page.NextCursor
			return result
		}

		cursor = page.NextCursor
	}
}
