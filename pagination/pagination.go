// Package pagination computes page windows and builds the self/proximo/
// anterior navigation link set for collection endpoints.
package pagination

import "fmt"

const (
	// DefaultPageSize is used whenever the requested size is out of range.
	DefaultPageSize = 10
	// MaxPageSize caps the requested size; anything above it falls back to
	// DefaultPageSize, it is not clamped.
	MaxPageSize = 50
)

// Link is a single navigation entry in the response envelope.
type Link struct {
	Rel    string `json:"rel"`
	Href   string `json:"href"`
	Method string `json:"metodo"`
}

// Result is the page envelope: a data window plus total count and links.
// Page and PageSize always reflect the effective, normalized request.
type Result[T any] struct {
	Items      []T    `json:"itens"`
	Page       int    `json:"pagina"`
	PageSize   int    `json:"tamanhoPagina"`
	TotalItems int    `json:"totalItens"`
	Links      []Link `json:"links"`
}

// Normalize applies the page policy: page ≤ 0 becomes 1; size ≤ 0 or above
// MaxPageSize becomes DefaultPageSize. It must run before Window and before
// BuildLinks so the envelope reflects effective values.
func Normalize(page, size int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}

// Window translates an effective page/size pair into an offset/limit pair.
func Window(page, size int) (offset, limit int) {
	return (page - 1) * size, size
}

// BuildLinks generates the navigation links for an effective page/size pair
// against a total item count. Order is fixed: self, then proximo when a next
// window exists, then anterior when the page is past the first.
func BuildLinks(baseURL string, page, size, total int) []Link {
	links := []Link{pageLink("self", baseURL, page, size)}

	if page*size < total {
		links = append(links, pageLink("proximo", baseURL, page+1, size))
	}

	if page > 1 {
		links = append(links, pageLink("anterior", baseURL, page-1, size))
	}

	return links
}

// NewResult assembles the envelope for an already-normalized request.
func NewResult[T any](items []T, baseURL string, page, size, total int) Result[T] {
	if items == nil {
		items = []T{}
	}

	return Result[T]{
		Items:      items,
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		Links:      BuildLinks(baseURL, page, size, total),
	}
}

func pageLink(rel, baseURL string, page, size int) Link {
	return Link{
		Rel:    rel,
		Href:   fmt.Sprintf("%s?pagina=%d&tamanhoPagina=%d", baseURL, page, size),
		Method: "GET",
	}
}
