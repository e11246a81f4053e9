package repositories

import (
	"fmt"
	"strings"

	"franchises-backend/models"
)

// Derived-key builders. Pure functions, no I/O, called before every write
// that touches a product's name or stock.
//
// NameSortKey gives prefix queries on the normalized name a total,
// collision-free order: two products with the same normalized name still
// differ in the appended id. RankSortKey encodes (rankBase - stock) as a
// fixed-width decimal so ascending lexicographic order over the key equals
// descending numeric order over stock, with the id as tie-break. "#" cannot
// appear between the segments ambiguously because the stock segment is
// always exactly 12 digits.

const (
	// rankBase bounds the representable stock: 12 digits cover the full
	// valid range and keep the encoded key fixed-width.
	rankBase int64 = 999_999_999_999

	nameKeyTag = "NAME#"
	rankKeyTag = "RANK#"
	idKeyTag   = "#PROD#"
)

// NormalizeName lowercases and trims a product name. Total: empty input maps
// to empty output, rejection happens upstream.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NameSortKey builds the branch-scoped name index key for a product.
func NameSortKey(normalizedName string, id string) string {
	return nameKeyTag + normalizedName + idKeyTag + id
}

// NamePrefix builds the begins-with pattern matching every NameSortKey whose
// name segment starts with the given normalized prefix.
func NamePrefix(normalizedPrefix string) string {
	return nameKeyTag + normalizedPrefix
}

// RankSortKey builds the branch-scoped rank index key. Stock is clamped to
// >= 0 defensively; the invariant should already hold.
func RankSortKey(stock int, id string) string {
	safe := int64(stock)
	if safe < 0 {
		safe = 0
	}
	return fmt.Sprintf("%s%012d%s%s", rankKeyTag, rankBase-safe, idKeyTag, id)
}

// applyDerivedKeys recomputes every derived column from the product's current
// mutable fields. Callers persist the result in the same write as the fields
// it derives from; the columns are never partially updated.
func applyDerivedKeys(p *models.Product) {
	p.NameNormalized = NormalizeName(p.Name)
	p.NameSortKey = NameSortKey(p.NameNormalized, p.ID.String())
	p.RankSortKey = RankSortKey(p.Stock, p.ID.String())
}

// escapeLike escapes LIKE metacharacters so a normalized prefix is matched
// literally. Backslash is the escape character in the queries that use this.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
