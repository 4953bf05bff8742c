package attrs

import (
	"strings"

	"github.com/connerohnesorge/asciidork/token"
)

// AttrMissing controls how an undefined `{name}` reference is handled,
// mirroring asciidoctor's attribute-missing document attribute.
type AttrMissing int

const (
	// AttrMissingSkip leaves the reference's lexeme untouched in the
	// output (asciidoctor's default "skip" behavior).
	AttrMissingSkip AttrMissing = iota
	// AttrMissingDrop silently removes the reference.
	AttrMissingDrop
	// AttrMissingDropLine names asciidoctor's drop-line value; Expand
	// handles it like AttrMissingDrop, removing only the reference and
	// keeping the rest of the line.
	AttrMissingDropLine
)

// NameFromRef extracts "name" from a "{name}" AttrRef lexeme.
func NameFromRef(lexeme string) string {
	return strings.TrimSuffix(strings.TrimPrefix(lexeme, "{"), "}")
}

// Expand resolves an AttrRef token against the store by pushing the
// attribute's value as a temporary lexer buffer whose tokens all carry
// the original AttrRef token's Location (PolicyRepeat) - so a
// diagnostic raised while re-lexing an expanded value still points at
// the `{name}` site in the real source.
//
// It returns false (and records nothing) when the attribute is unset
// and missing AttrMissingSkip behavior applies; callers should in that
// case leave the original AttrRef token as literal text.
func Expand(src *token.SourceStack, store *Store, ref token.Token, missing AttrMissing) bool {
	name := NameFromRef(ref.Text())
	val, ok := store.Get(name)
	if !ok {
		if missing == AttrMissingDrop || missing == AttrMissingDropLine {
			src.SetTmpBuf("", token.PolicyRepeat, ref.Loc, token.Location{}, 0)

			return true
		}

		return false
	}
	src.SetTmpBuf(val, token.PolicyRepeat, ref.Loc, token.Location{}, 0)

	return true
}
