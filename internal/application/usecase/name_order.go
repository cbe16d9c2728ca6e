package usecase

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NameOrder ordena productos por nombre. Sin etiqueta usa el orden por bytes de Go
// (strings.Compare); con etiqueta BCP-47 usa el collator de x/text para ese idioma.
type NameOrder struct {
	tag    language.Tag
	locale bool
}

// NewNameOrder construye el orden a partir de una etiqueta BCP-47 ("" = orden por bytes).
func NewNameOrder(tag string) (NameOrder, error) {
	if strings.TrimSpace(tag) == "" {
		return NameOrder{}, nil
	}
	t, err := language.Parse(tag)
	if err != nil {
		return NameOrder{}, fmt.Errorf("collation %q inválida: %w", tag, err)
	}
	return NameOrder{tag: t, locale: true}, nil
}

// compareFunc devuelve la función de comparación. collate.Collator no es seguro para uso
// concurrente, así que se crea uno por ordenamiento.
func (o NameOrder) compareFunc() func(a, b string) int {
	if !o.locale {
		return strings.Compare
	}
	return collate.New(o.tag).CompareString
}

// sortByName ordena items de forma estable por nombre y, a igual nombre, por id.
func sortByName[T any](o NameOrder, items []T, name, id func(T) string) {
	cmp := o.compareFunc()
	sort.SliceStable(items, func(i, j int) bool {
		if c := cmp(name(items[i]), name(items[j])); c != 0 {
			return c < 0
		}
		return id(items[i]) < id(items[j])
	})
}
