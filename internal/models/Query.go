package models

import (
	"strconv"
	"strings"
)

const (
	CollectionTopFree  = "TOP_FREE"
	CollectionTopPaid  = "TOP_PAID"
	CollectionGrossing = "GROSSING"
)

const (
	PriceAll  = "all"
	PriceFree = "free"
	PricePaid = "paid"
)

type SearchQuery struct {
	Term       string
	Count      int
	Price      string
	FullDetail bool
}

type ListQuery struct {
	Category   string
	Collection string
	Count      int
	FullDetail bool
}

// Signature composes a stable cache key from the query parameters.
func (q SearchQuery) Signature() string {
	return signature("search",
		"term", strings.ToLower(strings.TrimSpace(q.Term)),
		"count", strconv.Itoa(q.Count),
		"price", q.Price,
		"full", strconv.FormatBool(q.FullDetail))
}

func (q ListQuery) Signature() string {
	return signature("list",
		"category", q.Category,
		"collection", q.Collection,
		"count", strconv.Itoa(q.Count),
		"full", strconv.FormatBool(q.FullDetail))
}

func signature(op string, kv ...string) string {
	var b strings.Builder
	b.WriteString(op)
	for i := 0; i+1 < len(kv); i += 2 {
		b.WriteByte('|')
		b.WriteString(kv[i])
		b.WriteByte('=')
		b.WriteString(kv[i+1])
	}
	return b.String()
}
