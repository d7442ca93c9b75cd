package domain

// Budget limita o trabalho de uma execução. Valores negativos significam sem limite.
type Budget struct {
	PagesLeft int `json:"pages_left"`
	ItemsLeft int `json:"items_left"`
}

func NewBudget(maxPages, maxItems int) *Budget {
	if maxPages <= 0 {
		maxPages = -1
	}
	if maxItems <= 0 {
		maxItems = -1
	}
	return &Budget{PagesLeft: maxPages, ItemsLeft: maxItems}
}

// TakePage consome uma página do orçamento; retorna false se não houver mais páginas
func (b *Budget) TakePage() bool {
	if b == nil || b.PagesLeft < 0 {
		return true
	}
	if b.PagesLeft == 0 {
		return false
	}
	b.PagesLeft--
	return true
}

// TakeItem consome um item do orçamento; retorna false se não houver mais itens
func (b *Budget) TakeItem() bool {
	if b == nil || b.ItemsLeft < 0 {
		return true
	}
	if b.ItemsLeft == 0 {
		return false
	}
	b.ItemsLeft--
	return true
}

func (b *Budget) Exhausted() bool {
	if b == nil {
		return false
	}
	return b.PagesLeft == 0 || b.ItemsLeft == 0
}
