package term

import (
	"encoding/binary"
	"encoding/hex"
	"hash"

	"github.com/zeebo/blake3"
)

const (
	tagIdent byte = iota + 1
	tagGroup
	tagApply
	tagArrow
	tagEntity
	tagIsA
	tagEquation
	tagFuncDef
	tagBuiltin
	tagMarker
	tagBuiltinMarker
)

// Fingerprint returns a digest of the structure of t. Equal terms have the
// same fingerprint.
func Fingerprint(t Term) [32]byte {
	h := blake3.New()
	writeTerm(h, t)

	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

func Digest(t Term) string {
	sum := Fingerprint(t)
	return hex.EncodeToString(sum[:8])
}

// DigestList combines the fingerprints of list, in order.
func DigestList(list []Term) string {
	h := blake3.New()
	for _, t := range list {
		sum := Fingerprint(t)
		h.Write(sum[:])
	}
	return hex.EncodeToString(h.Sum(nil)[:8])
}

func writeTerm(h hash.Hash, t Term) {
	switch t := t.(type) {
	case Identifier:
		h.Write([]byte{tagIdent})
		writeString(h, t.Name)
	case Group:
		h.Write([]byte{tagGroup})
		writeTerm(h, t.Inner)
	case Application:
		writeSeq(h, tagApply, t.Seq)
	case Arrow:
		writeSeq(h, tagArrow, t.Seq)
	case Entity:
		writeSeq(h, tagEntity, t.Seq)
	case IsA:
		h.Write([]byte{tagIsA})
		writeTerm(h, t.Left)
		writeTerm(h, t.Right)
	case Equation:
		h.Write([]byte{tagEquation})
		writeTerm(h, t.Left)
		writeTerm(h, t.Right)
	case FuncDef:
		h.Write([]byte{tagFuncDef})
		writeTerm(h, t.Left)
		writeTerm(h, t.Right)
	case Builtin:
		h.Write([]byte{tagBuiltin})
		writeTerm(h, t.Decl)
	case Marker:
		h.Write([]byte{tagMarker})
	case BuiltinMarker:
		h.Write([]byte{tagBuiltinMarker})
	}
}

func writeSeq(h hash.Hash, tag byte, seq []Term) {
	h.Write([]byte{tag})
	writeLen(h, len(seq))
	for _, t := range seq {
		writeTerm(h, t)
	}
}

func writeString(h hash.Hash, str string) {
	writeLen(h, len(str))
	h.Write([]byte(str))
}

func writeLen(h hash.Hash, n int) {
	var buf [binary.MaxVarintLen64]byte
	z := binary.PutUvarint(buf[:], uint64(n))
	h.Write(buf[:z])
}
