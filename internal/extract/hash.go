package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashLength is the number of hex characters kept from a SHA-256 digest.
const HashLength = 8

// Fingerprint identifies a function by "sig:body", two truncated hashes.
// The signature half covers the name and raw parameters; the body half
// covers the source with whitespace runs collapsed, so re-indented copies
// of the same method share a fingerprint.
func Fingerprint(fn *ExtractedFunction) string {
	return FormatHashPair(SignatureHash(fn.Name, fn.Parameters), BodyHash(fn.Source))
}

// SignatureHash hashes a method name and its parameter declarations.
func SignatureHash(name string, params []string) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strings.Join(strings.Fields(p), " "))
	}
	sb.WriteByte(')')
	return truncateHash(hashBytes([]byte(sb.String())))
}

// BodyHash hashes source text, ignoring differences in whitespace.
func BodyHash(source string) string {
	fields := strings.Fields(source)
	if len(fields) == 0 {
		return emptyHash()
	}
	return truncateHash(hashBytes([]byte(strings.Join(fields, " "))))
}

// CompareHashes reports which half of two fingerprints differs. A value
// without a colon is treated as changed in both halves.
func CompareHashes(old, new string) (sigChanged, bodyChanged bool) {
	oldSig, oldBody := ParseHashPair(old)
	newSig, newBody := ParseHashPair(new)
	if oldBody == "" || newBody == "" {
		return true, true
	}
	return oldSig != newSig, oldBody != newBody
}

// FormatHashPair formats signature and body hashes as "sig:body".
func FormatHashPair(sigHash, bodyHash string) string {
	return sigHash + ":" + bodyHash
}

// ParseHashPair splits a "sig:body" pair. Without a colon the whole value is
// returned as the signature hash.
func ParseHashPair(hashPair string) (sigHash, bodyHash string) {
	idx := strings.Index(hashPair, ":")
	if idx == -1 {
		return hashPair, ""
	}
	return hashPair[:idx], hashPair[idx+1:]
}

func hashBytes(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func truncateHash(hash string) string {
	if len(hash) <= HashLength {
		return hash
	}
	return hash[:HashLength]
}

func emptyHash() string {
	return "00000000"
}

// IsEmptyHash reports whether hash is the value used for empty source.
func IsEmptyHash(hash string) bool {
	return hash == emptyHash()
}
